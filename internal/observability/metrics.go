package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics keeps in-process counters for the grievance API, keyed by
// route, method, and outcome. A nil receiver disables recording so
// handlers never need to guard against missing wiring.
type Metrics struct {
	mu       sync.Mutex
	requests map[string]int64
	errors   map[string]int64
}

// NewMetrics initializes counter storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requests: make(map[string]int64),
		errors:   make(map[string]int64),
	}
}

// RecordRequest counts a completed request by route, method, and HTTP
// status.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := counterKey(path, method, strconv.Itoa(status))
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[key]++
}

// RecordError counts a failed request by route, method, and domain
// error code (VALIDATION_FAILED, NOT_FOUND, and so on).
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := counterKey(path, method, code)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[key]++
}

// ErrorCount returns the recorded failures for one route, method, and
// error code.
func (m *Metrics) ErrorCount(path, method, code string) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errors[counterKey(path, method, code)]
}

// RequestCount returns the recorded completions for one route, method,
// and HTTP status.
func (m *Metrics) RequestCount(path, method string, status int) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests[counterKey(path, method, strconv.Itoa(status))]
}

func counterKey(path, method, outcome string) string {
	return path + "|" + method + "|" + outcome
}
