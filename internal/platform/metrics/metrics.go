package metrics

import (
	"sync/atomic"
	"time"
)

// Collector keeps lock-free request counters for the admin metrics view.
type Collector struct {
	started time.Time

	requests   atomic.Uint64
	clientErrs atomic.Uint64
	serverErrs atomic.Uint64
	throttled  atomic.Uint64
	durationMs atomic.Uint64
}

type Snapshot struct {
	UptimeSeconds   int64   `json:"uptimeSeconds"`
	Requests        uint64  `json:"requests"`
	ClientErrors    uint64  `json:"clientErrors"`
	ServerErrors    uint64  `json:"serverErrors"`
	RateLimited     uint64  `json:"rateLimited"`
	AvgDurationMs   float64 `json:"avgDurationMs"`
	TotalDurationMs uint64  `json:"totalDurationMs"`
}

func New() *Collector {
	return &Collector{started: time.Now()}
}

func (c *Collector) Record(status int, duration time.Duration) {
	c.requests.Add(1)
	switch {
	case status == 429:
		c.throttled.Add(1)
		c.clientErrs.Add(1)
	case status >= 500:
		c.serverErrs.Add(1)
	case status >= 400:
		c.clientErrs.Add(1)
	}
	c.durationMs.Add(uint64(duration.Milliseconds()))
}

func (c *Collector) Snapshot() Snapshot {
	s := Snapshot{
		UptimeSeconds:   int64(time.Since(c.started).Seconds()),
		Requests:        c.requests.Load(),
		ClientErrors:    c.clientErrs.Load(),
		ServerErrors:    c.serverErrs.Load(),
		RateLimited:     c.throttled.Load(),
		TotalDurationMs: c.durationMs.Load(),
	}
	if s.Requests > 0 {
		s.AvgDurationMs = float64(s.TotalDurationMs) / float64(s.Requests)
	}
	return s
}
