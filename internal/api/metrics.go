package api

import (
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
)

// Metrics holds lightweight counters for HTTP activity.
type Metrics struct {
	TotalRequests   atomic.Int64
	ReadRequests    atomic.Int64 // GET
	WriteRequests   atomic.Int64 // POST/PUT/PATCH/DELETE
	TransportErrors atomic.Int64

	mu        sync.Mutex
	status2xx int64
	status401 int64
	status4xx int64
	status5xx int64
	other     int64
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics { return &Metrics{} }

// IncRequest counts an outgoing request by method class.
func (m *Metrics) IncRequest(method string) {
	m.TotalRequests.Add(1)
	switch strings.ToUpper(method) {
	case http.MethodGet:
		m.ReadRequests.Add(1)
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		m.WriteRequests.Add(1)
	}
}

// IncTransportError counts a request that never produced a response.
func (m *Metrics) IncTransportError() { m.TransportErrors.Add(1) }

// IncStatus tracks status buckets. 401 is kept apart from other 4xx because
// it ends the session.
func (m *Metrics) IncStatus(code int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch {
	case code == http.StatusUnauthorized:
		m.status401++
	case code >= 200 && code < 300:
		m.status2xx++
	case code >= 400 && code < 500:
		m.status4xx++
	case code >= 500:
		m.status5xx++
	default:
		m.other++
	}
}

// MetricsSnapshot is a read-only copy of metrics state.
type MetricsSnapshot struct {
	TotalRequests   int64
	ReadRequests    int64
	WriteRequests   int64
	TransportErrors int64
	Status2xx       int64
	Status401       int64
	Status4xx       int64
	Status5xx       int64
	Other           int64
}

// Failures sums everything that did not end in a 2xx.
func (s MetricsSnapshot) Failures() int64 {
	return s.TransportErrors + s.Status401 + s.Status4xx + s.Status5xx
}

// Snapshot returns a copy of the metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return MetricsSnapshot{
		TotalRequests:   m.TotalRequests.Load(),
		ReadRequests:    m.ReadRequests.Load(),
		WriteRequests:   m.WriteRequests.Load(),
		TransportErrors: m.TransportErrors.Load(),
		Status2xx:       m.status2xx,
		Status401:       m.status401,
		Status4xx:       m.status4xx,
		Status5xx:       m.status5xx,
		Other:           m.other,
	}
}
