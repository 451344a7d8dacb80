package source

import (
	"context"
	"time"

	"github.com/JPM1118/pawshower/internal/metrics"
)

// instrumented records fetch outcomes and latency for a wrapped Source.
type instrumented struct {
	Source
	m *metrics.Collectors
}

// Instrument wraps src so every FetchImage call is counted by outcome kind
// and timed. A nil collector set returns src unchanged.
func Instrument(src Source, m *metrics.Collectors) Source {
	if m == nil {
		return src
	}
	return &instrumented{Source: src, m: m}
}

func (s *instrumented) FetchImage(ctx context.Context) (string, error) {
	start := time.Now()
	url, err := s.Source.FetchImage(ctx)
	s.m.FetchDuration.WithLabelValues(s.Name()).Observe(time.Since(start).Seconds())
	s.m.FetchTotal.WithLabelValues(s.Name(), Kind(err)).Inc()
	return url, err
}

func (s *instrumented) Endpoint() string {
	return EndpointOf(s.Source)
}

// EndpointOf returns the endpoint src requests, or "" when src does not
// expose one.
func EndpointOf(src Source) string {
	if e, ok := src.(interface{ Endpoint() string }); ok {
		return e.Endpoint()
	}
	return ""
}
