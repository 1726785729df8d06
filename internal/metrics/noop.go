package metrics

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncAdminCreated is a no-op.
func (n *NoopRecorder) IncAdminCreated() {}

// IncEntryCreated is a no-op.
func (n *NoopRecorder) IncEntryCreated() {}

// IncEntryDeleted is a no-op.
func (n *NoopRecorder) IncEntryDeleted() {}

// IncEntriesCleared is a no-op.
func (n *NoopRecorder) IncEntriesCleared() {}

// IncCheckIn is a no-op.
func (n *NoopRecorder) IncCheckIn() {}

// IncStoreError is a no-op.
func (n *NoopRecorder) IncStoreError() {}
