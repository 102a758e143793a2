package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncBacking is a no-op.
func (n *NoopRecorder) IncBacking(status string) {}

// ObserveBackingAmount is a no-op.
func (n *NoopRecorder) ObserveBackingAmount(amount int64) {}

// IncProjectCreated is a no-op.
func (n *NoopRecorder) IncProjectCreated() {}

// IncProjectUpdated is a no-op.
func (n *NoopRecorder) IncProjectUpdated() {}

// IncProjectDeleted is a no-op.
func (n *NoopRecorder) IncProjectDeleted() {}

// IncUserRegistered is a no-op.
func (n *NoopRecorder) IncUserRegistered() {}

// IncLogin is a no-op.
func (n *NoopRecorder) IncLogin(success bool) {}

// IncCategoryCacheHit is a no-op.
func (n *NoopRecorder) IncCategoryCacheHit() {}

// IncCategoryCacheMiss is a no-op.
func (n *NoopRecorder) IncCategoryCacheMiss() {}

// ObserveHTTPRequest is a no-op.
func (n *NoopRecorder) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {}
