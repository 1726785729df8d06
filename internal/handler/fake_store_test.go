package handler

import (
	"context"
	"sync"
	"time"

	"github.com/contacttrace/contacttrace/internal/model"
	"github.com/contacttrace/contacttrace/internal/repository"
)

// fakeStore is an in-memory Store that mimics the repository's contract.
type fakeStore struct {
	mu       sync.Mutex
	admins   []*model.AdminEntry
	entries  []*model.UserEntry
	tracking []*model.TrackingEntry

	// err, when set, is returned by every call.
	err error
}

func newFakeStore() *fakeStore {
	return &fakeStore{}
}

func (s *fakeStore) GetAllAdmins(ctx context.Context) ([]*model.AdminEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return append(make([]*model.AdminEntry, 0, len(s.admins)), s.admins...), nil
}

func (s *fakeStore) AddAdmin(ctx context.Context, email, password string) (*model.AdminEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	admin := &model.AdminEntry{Email: email, Password: password}
	s.admins = append(s.admins, admin)
	return admin, nil
}

func (s *fakeStore) GetAllEntries(ctx context.Context) ([]*model.UserEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return append(make([]*model.UserEntry, 0, len(s.entries)), s.entries...), nil
}

func (s *fakeStore) AddEntry(ctx context.Context, entry *model.UserEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	for _, e := range s.entries {
		if e.ID == entry.ID {
			return repository.ErrEntryExists
		}
	}
	stored := *entry
	s.entries = append(s.entries, &stored)
	return nil
}

func (s *fakeStore) DeleteEntry(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	s.entries = kept
	return nil
}

func (s *fakeStore) DeleteAllEntries(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.entries = nil
	return nil
}

func (s *fakeStore) GetAllTrackingEntries(ctx context.Context) ([]*model.TrackingEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return append(make([]*model.TrackingEntry, 0, len(s.tracking)), s.tracking...), nil
}

func (s *fakeStore) CheckIn(ctx context.Context, id, name string) (*model.TrackingEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	for _, e := range s.tracking {
		if e.ID == id {
			return nil, repository.ErrTrackingEntryExists
		}
	}
	entry := model.NewCheckIn(id, name, time.Now())
	s.tracking = append(s.tracking, entry)
	return entry, nil
}
