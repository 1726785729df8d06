package repository

import (
	"context"
	"fmt"

	"github.com/lib/pq"
)

// insertDocument stores doc under id in table.
func (r *Repository) insertDocument(ctx context.Context, table, id string, doc any) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := fmt.Sprintf(`INSERT INTO %s (id, doc) VALUES ($1, $2)`, pq.QuoteIdentifier(table))
	_, err := r.pool.Exec(ctx, query, id, doc)
	return err
}

// listDocuments returns every document of table in insertion order.
// The result is never nil.
func listDocuments[T any](ctx context.Context, r *Repository, table string) ([]*T, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := fmt.Sprintf(`SELECT doc FROM %s ORDER BY created_at, id`, pq.QuoteIdentifier(table))
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]*T, 0)
	for rows.Next() {
		var doc T
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, &doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating documents: %w", err)
	}

	return docs, nil
}

// deleteDocument removes the document with id from table.
// It returns the number of deleted documents.
func (r *Repository) deleteDocument(ctx context.Context, table, id string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, pq.QuoteIdentifier(table))
	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

// deleteAllDocuments empties table.
func (r *Repository) deleteAllDocuments(ctx context.Context, table string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := fmt.Sprintf(`DELETE FROM %s`, pq.QuoteIdentifier(table))
	result, err := r.pool.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
