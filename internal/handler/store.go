package handler

import (
	"context"

	"github.com/contacttrace/contacttrace/internal/model"
)

// AdminStore persists admin credentials.
type AdminStore interface {
	GetAllAdmins(ctx context.Context) ([]*model.AdminEntry, error)
	AddAdmin(ctx context.Context, email, password string) (*model.AdminEntry, error)
}

// EntryStore persists visitor entries.
type EntryStore interface {
	GetAllEntries(ctx context.Context) ([]*model.UserEntry, error)
	AddEntry(ctx context.Context, entry *model.UserEntry) error
	DeleteEntry(ctx context.Context, id string) error
	DeleteAllEntries(ctx context.Context) error
}

// TrackingStore persists check-ins.
type TrackingStore interface {
	GetAllTrackingEntries(ctx context.Context) ([]*model.TrackingEntry, error)
	CheckIn(ctx context.Context, id, name string) (*model.TrackingEntry, error)
}

// Store is the full persistence gateway used by the router.
type Store interface {
	AdminStore
	EntryStore
	TrackingStore
}
