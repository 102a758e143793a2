package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	BackingsSucceeded   uint64
	BackingsRejected    uint64
	BackingsFailed      uint64
	BackedAmountTotal   int64
	ProjectsCreated     uint64
	ProjectsUpdated     uint64
	ProjectsDeleted     uint64
	UsersRegistered     uint64
	LoginsSucceeded     uint64
	LoginsFailed        uint64
	CategoryCacheHits   uint64
	CategoryCacheMiss   uint64
	HTTPRequests        uint64
	HTTPServerErrors    uint64
	HTTPDurationTotalNs int64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	backingsSucceeded   uint64
	backingsRejected    uint64
	backingsFailed      uint64
	backedAmountTotal   int64
	projectsCreated     uint64
	projectsUpdated     uint64
	projectsDeleted     uint64
	usersRegistered     uint64
	loginsSucceeded     uint64
	loginsFailed        uint64
	categoryCacheHits   uint64
	categoryCacheMiss   uint64
	httpRequests        uint64
	httpServerErrors    uint64
	httpDurationTotalNs int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		BackingsSucceeded:   atomic.LoadUint64(&m.backingsSucceeded),
		BackingsRejected:    atomic.LoadUint64(&m.backingsRejected),
		BackingsFailed:      atomic.LoadUint64(&m.backingsFailed),
		BackedAmountTotal:   atomic.LoadInt64(&m.backedAmountTotal),
		ProjectsCreated:     atomic.LoadUint64(&m.projectsCreated),
		ProjectsUpdated:     atomic.LoadUint64(&m.projectsUpdated),
		ProjectsDeleted:     atomic.LoadUint64(&m.projectsDeleted),
		UsersRegistered:     atomic.LoadUint64(&m.usersRegistered),
		LoginsSucceeded:     atomic.LoadUint64(&m.loginsSucceeded),
		LoginsFailed:        atomic.LoadUint64(&m.loginsFailed),
		CategoryCacheHits:   atomic.LoadUint64(&m.categoryCacheHits),
		CategoryCacheMiss:   atomic.LoadUint64(&m.categoryCacheMiss),
		HTTPRequests:        atomic.LoadUint64(&m.httpRequests),
		HTTPServerErrors:    atomic.LoadUint64(&m.httpServerErrors),
		HTTPDurationTotalNs: atomic.LoadInt64(&m.httpDurationTotalNs),
	}
}

// IncBacking increments the counter for the given outcome.
func (m *InMemoryRecorder) IncBacking(status string) {
	switch status {
	case BackingSuccess:
		atomic.AddUint64(&m.backingsSucceeded, 1)
	case BackingRejected:
		atomic.AddUint64(&m.backingsRejected, 1)
	default:
		atomic.AddUint64(&m.backingsFailed, 1)
	}
}

// ObserveBackingAmount adds to the running total of backed money.
func (m *InMemoryRecorder) ObserveBackingAmount(amount int64) {
	atomic.AddInt64(&m.backedAmountTotal, amount)
}

// IncProjectCreated increments project created counter.
func (m *InMemoryRecorder) IncProjectCreated() {
	atomic.AddUint64(&m.projectsCreated, 1)
}

// IncProjectUpdated increments project updated counter.
func (m *InMemoryRecorder) IncProjectUpdated() {
	atomic.AddUint64(&m.projectsUpdated, 1)
}

// IncProjectDeleted increments project deleted counter.
func (m *InMemoryRecorder) IncProjectDeleted() {
	atomic.AddUint64(&m.projectsDeleted, 1)
}

// IncUserRegistered increments user registered counter.
func (m *InMemoryRecorder) IncUserRegistered() {
	atomic.AddUint64(&m.usersRegistered, 1)
}

// IncLogin increments the login counter for the outcome.
func (m *InMemoryRecorder) IncLogin(success bool) {
	if success {
		atomic.AddUint64(&m.loginsSucceeded, 1)
		return
	}
	atomic.AddUint64(&m.loginsFailed, 1)
}

// IncCategoryCacheHit increments cache hit counter.
func (m *InMemoryRecorder) IncCategoryCacheHit() {
	atomic.AddUint64(&m.categoryCacheHits, 1)
}

// IncCategoryCacheMiss increments cache miss counter.
func (m *InMemoryRecorder) IncCategoryCacheMiss() {
	atomic.AddUint64(&m.categoryCacheMiss, 1)
}

// ObserveHTTPRequest records a served request.
func (m *InMemoryRecorder) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	atomic.AddUint64(&m.httpRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&m.httpServerErrors, 1)
	}
	atomic.AddInt64(&m.httpDurationTotalNs, duration.Nanoseconds())
}
