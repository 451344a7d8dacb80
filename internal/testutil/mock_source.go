package testutil

import (
	"context"
	"sync"

	"github.com/JPM1118/pawshower/internal/source"
)

// Result is one scripted FetchImage outcome.
type Result struct {
	URL string
	Err error
}

// MockSource implements source.Source for testing. Scripted results are
// returned in order; once exhausted, URL and Err are returned.
type MockSource struct {
	mu      sync.Mutex
	SrcName string
	URL     string
	Err     error
	Script  []Result
	Calls   int
}

var _ source.Source = (*MockSource)(nil)

func (m *MockSource) Name() string {
	if m.SrcName == "" {
		return source.NameDog
	}
	return m.SrcName
}

func (m *MockSource) FetchImage(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if len(m.Script) > 0 {
		r := m.Script[0]
		m.Script = m.Script[1:]
		return r.URL, r.Err
	}
	return m.URL, m.Err
}

// SetResult updates the fallback result in a thread-safe manner.
func (m *MockSource) SetResult(url string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.URL = url
	m.Err = err
}

// GetCalls returns the number of FetchImage calls in a thread-safe manner.
func (m *MockSource) GetCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls
}
