package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/contacttrace/contacttrace/internal/model"
)

// Common errors for visitor entry operations.
var (
	ErrEntryExists = errors.New("entry with this id already exists")
)

// GetAllEntries returns every visitor entry.
func (r *Repository) GetAllEntries(ctx context.Context) ([]*model.UserEntry, error) {
	entries, err := listDocuments[model.UserEntry](ctx, r, TableEntries)
	if err != nil {
		r.logger.Error("error while retrieving entries", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}

// AddEntry stores a visitor entry under its caller-supplied id.
func (r *Repository) AddEntry(ctx context.Context, entry *model.UserEntry) error {
	if err := r.insertDocument(ctx, TableEntries, entry.ID, entry); err != nil {
		if isUniqueViolation(err) {
			r.logger.Warn("entry id already taken", slog.String("entry_id", entry.ID))
			return ErrEntryExists
		}
		r.logger.Error("error while adding entry",
			slog.String("entry_id", entry.ID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to add entry: %w", err)
	}

	r.logger.Info("entry added", slog.String("entry_id", entry.ID))
	return nil
}

// DeleteEntry removes the entry with id. Deleting an absent id is not an error.
func (r *Repository) DeleteEntry(ctx context.Context, id string) error {
	deleted, err := r.deleteDocument(ctx, TableEntries, id)
	if err != nil {
		r.logger.Error("error while deleting entry",
			slog.String("entry_id", id),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	r.logger.Info("entry deleted", slog.String("entry_id", id), slog.Int64("deleted", deleted))
	return nil
}

// DeleteAllEntries removes every visitor entry.
func (r *Repository) DeleteAllEntries(ctx context.Context) error {
	deleted, err := r.deleteAllDocuments(ctx, TableEntries)
	if err != nil {
		r.logger.Error("error while deleting entries", slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete entries: %w", err)
	}

	r.logger.Info("entries deleted", slog.Int64("deleted", deleted))
	return nil
}
