package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/contacttrace/contacttrace/internal/model"
)

// Common errors for tracking entry operations.
var (
	ErrTrackingEntryExists = errors.New("tracking entry with this id already exists")
)

// GetAllTrackingEntries returns every tracking entry.
func (r *Repository) GetAllTrackingEntries(ctx context.Context) ([]*model.TrackingEntry, error) {
	entries, err := listDocuments[model.TrackingEntry](ctx, r, TableTracking)
	if err != nil {
		r.logger.Error("error while retrieving tracking entries", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list tracking entries: %w", err)
	}
	return entries, nil
}

// CheckIn records a new check-in stamped with the current local time.
// The check-out fields are left empty.
func (r *Repository) CheckIn(ctx context.Context, id, name string) (*model.TrackingEntry, error) {
	entry := model.NewCheckIn(id, name, time.Now())

	if err := r.insertDocument(ctx, TableTracking, entry.ID, entry); err != nil {
		if isUniqueViolation(err) {
			r.logger.Warn("tracking id already taken", slog.String("tracking_id", id))
			return nil, ErrTrackingEntryExists
		}
		r.logger.Error("error while adding tracking entry",
			slog.String("tracking_id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to check in: %w", err)
	}

	r.logger.Info("tracking entry added", slog.String("tracking_id", id))
	return entry, nil
}
