package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	AdminsCreated  uint64
	EntriesCreated uint64
	EntriesDeleted uint64
	EntriesCleared uint64
	CheckIns       uint64
	StoreErrors    uint64
}

// InMemoryRecorder keeps counters in process memory.
type InMemoryRecorder struct {
	adminsCreated  atomic.Uint64
	entriesCreated atomic.Uint64
	entriesDeleted atomic.Uint64
	entriesCleared atomic.Uint64
	checkIns       atomic.Uint64
	storeErrors    atomic.Uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		AdminsCreated:  m.adminsCreated.Load(),
		EntriesCreated: m.entriesCreated.Load(),
		EntriesDeleted: m.entriesDeleted.Load(),
		EntriesCleared: m.entriesCleared.Load(),
		CheckIns:       m.checkIns.Load(),
		StoreErrors:    m.storeErrors.Load(),
	}
}

// IncAdminCreated increments the created admins counter.
func (m *InMemoryRecorder) IncAdminCreated() { m.adminsCreated.Add(1) }

// IncEntryCreated increments the created entries counter.
func (m *InMemoryRecorder) IncEntryCreated() { m.entriesCreated.Add(1) }

// IncEntryDeleted increments the single-entry delete counter.
func (m *InMemoryRecorder) IncEntryDeleted() { m.entriesDeleted.Add(1) }

// IncEntriesCleared increments the bulk delete counter.
func (m *InMemoryRecorder) IncEntriesCleared() { m.entriesCleared.Add(1) }

// IncCheckIn increments the check-in counter.
func (m *InMemoryRecorder) IncCheckIn() { m.checkIns.Add(1) }

// IncStoreError increments the store error counter.
func (m *InMemoryRecorder) IncStoreError() { m.storeErrors.Add(1) }
