package api

import (
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"time"
)

// RouteMetrics aggregates timings for one route template
type RouteMetrics struct {
	Method      string        `json:"method"`
	Path        string        `json:"path"`
	Count       int64         `json:"count"`
	ErrorCount  int64         `json:"errorCount"`
	TotalTime   time.Duration `json:"totalTime"`
	AvgTime     time.Duration `json:"avgTime"`
	MinTime     time.Duration `json:"minTime"`
	MaxTime     time.Duration `json:"maxTime"`
	LastRequest time.Time     `json:"lastRequest"`
}

// MetricsSummary is the payload of the metrics endpoint
type MetricsSummary struct {
	Since         time.Time       `json:"since"`
	TotalRequests int64           `json:"totalRequests"`
	TotalErrors   int64           `json:"totalErrors"`
	ErrorRate     float64         `json:"errorRate"`
	Routes        []*RouteMetrics `json:"routes"`
}

// Metrics collects per-route request counts and latencies in memory
type Metrics struct {
	mu            sync.Mutex
	since         time.Time
	routes        map[string]*RouteMetrics
	totalRequests int64
	totalErrors   int64
}

// NewMetrics returns an empty collector
func NewMetrics() *Metrics {
	return &Metrics{
		since:  time.Now(),
		routes: make(map[string]*RouteMetrics),
	}
}

// Record adds one finished request. Statuses of 500 and above count as errors.
func (m *Metrics) Record(method, path string, status int, d time.Duration, at time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := method + " " + path
	rm, ok := m.routes[key]
	if !ok {
		rm = &RouteMetrics{Method: method, Path: path, MinTime: d}
		m.routes[key] = rm
	}
	rm.Count++
	rm.TotalTime += d
	rm.AvgTime = rm.TotalTime / time.Duration(rm.Count)
	rm.LastRequest = at
	if d < rm.MinTime {
		rm.MinTime = d
	}
	if d > rm.MaxTime {
		rm.MaxTime = d
	}

	m.totalRequests++
	if status >= http.StatusInternalServerError {
		rm.ErrorCount++
		m.totalErrors++
	}
}

// Summary returns a copy of the collected metrics, slowest routes first
func (m *Metrics) Summary() MetricsSummary {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := MetricsSummary{
		Since:         m.since,
		TotalRequests: m.totalRequests,
		TotalErrors:   m.totalErrors,
		Routes:        make([]*RouteMetrics, 0, len(m.routes)),
	}
	if m.totalRequests > 0 {
		s.ErrorRate = float64(m.totalErrors) / float64(m.totalRequests)
	}
	for _, rm := range m.routes {
		c := *rm
		s.Routes = append(s.Routes, &c)
	}
	sort.Slice(s.Routes, func(i, j int) bool {
		if s.Routes[i].AvgTime == s.Routes[j].AvgTime {
			return s.Routes[i].Method+s.Routes[i].Path < s.Routes[j].Method+s.Routes[j].Path
		}
		return s.Routes[i].AvgTime > s.Routes[j].AvgTime
	})
	return s
}

// Handler serves the summary as JSON
func (m *Metrics) Handler(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, m.Summary())
}

// WriteJSON marshals v and writes it with the given status
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "failed to marshal response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(b)
}
