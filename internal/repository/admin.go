package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/oklog/ulid/v2"

	"github.com/contacttrace/contacttrace/internal/model"
)

// GetAllAdmins returns every stored admin.
func (r *Repository) GetAllAdmins(ctx context.Context) ([]*model.AdminEntry, error) {
	admins, err := listDocuments[model.AdminEntry](ctx, r, TableAdmins)
	if err != nil {
		r.logger.Error("error while retrieving admin entries", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	return admins, nil
}

// AddAdmin stores a new admin under a generated document key.
// Emails are not unique and passwords are stored as given.
func (r *Repository) AddAdmin(ctx context.Context, email, password string) (*model.AdminEntry, error) {
	admin := &model.AdminEntry{
		Email:    email,
		Password: password,
	}

	key := ulid.Make().String()
	if err := r.insertDocument(ctx, TableAdmins, key, admin); err != nil {
		r.logger.Error("error while adding admin", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to add admin: %w", err)
	}

	r.logger.Info("admin added", slog.String("key", key))
	return admin, nil
}
