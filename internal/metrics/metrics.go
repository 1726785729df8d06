// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	IncAdminCreated()

	IncEntryCreated()
	IncEntryDeleted()
	IncEntriesCleared()

	IncCheckIn()

	// IncStoreError counts failed persistence calls surfaced to clients.
	IncStoreError()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
