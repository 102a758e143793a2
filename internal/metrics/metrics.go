// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Backing outcomes passed to IncBacking.
const (
	BackingSuccess  = "success"
	BackingRejected = "rejected"
	BackingFailed   = "failed"
)

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus or keep them in memory.
type Recorder interface {
	// Ledger metrics
	IncBacking(status string) // status: "success", "rejected" or "failed"
	ObserveBackingAmount(amount int64)

	// Project lifecycle metrics
	IncProjectCreated()
	IncProjectUpdated()
	IncProjectDeleted()

	// Account metrics
	IncUserRegistered()
	IncLogin(success bool)

	// Category cache metrics
	IncCategoryCacheHit()
	IncCategoryCacheMiss()

	// HTTP metrics
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
