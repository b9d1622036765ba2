package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/spec-kit/event-registration/internal/domain"
)

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu            sync.Mutex
	requestCount  map[string]int64
	errorCount    map[string]int64
	fieldFailures map[domain.Field]int64
	checks        int64
	submissions   int64
	rejections    int64
}

// MetricsSnapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	Requests      map[string]int64 `json:"requests"`
	Errors        map[string]int64 `json:"errors"`
	FieldFailures map[string]int64 `json:"field_failures"`
	Checks        int64            `json:"checks"`
	Submissions   int64            `json:"submissions"`
	Rejections    int64            `json:"rejections"`
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount:  make(map[string]int64),
		errorCount:    make(map[string]int64),
		fieldFailures: make(map[domain.Field]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordCheck counts a blur-time validation and the fields it failed.
func (m *Metrics) RecordCheck(errs domain.FormErrors) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checks++
	m.countFailures(errs)
}

// RecordSubmission counts a submit attempt.
func (m *Metrics) RecordSubmission(errs domain.FormErrors) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if errs.Empty() {
		m.submissions++
		return
	}
	m.rejections++
	m.countFailures(errs)
}

func (m *Metrics) countFailures(errs domain.FormErrors) {
	for field := range errs {
		m.fieldFailures[field]++
	}
}

// Snapshot copies the current counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := MetricsSnapshot{
		Requests:      make(map[string]int64, len(m.requestCount)),
		Errors:        make(map[string]int64, len(m.errorCount)),
		FieldFailures: make(map[string]int64, len(m.fieldFailures)),
		Checks:        m.checks,
		Submissions:   m.submissions,
		Rejections:    m.rejections,
	}
	for k, v := range m.requestCount {
		snap.Requests[k] = v
	}
	for k, v := range m.errorCount {
		snap.Errors[k] = v
	}
	for k, v := range m.fieldFailures {
		snap.FieldFailures[string(k)] = v
	}
	return snap
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
