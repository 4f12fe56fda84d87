package collector

import (
	"context"
	"sync"
	"sync/atomic"

	"StockAnalyzer/internal/model"
)

// MockFetcher wraps a Fetcher (DemoFetcher by default) with controllable
// failures and per-symbol gates for development and testing.
type MockFetcher struct {
	Source Fetcher

	mu       sync.Mutex
	failures map[string]error
	gates    map[string]chan struct{}
	calls    atomic.Int64
}

// NewMockFetcher returns a mock backed by deterministic demo data.
func NewMockFetcher() *MockFetcher {
	return &MockFetcher{Source: NewDemoFetcher()}
}

func (m *MockFetcher) Name() string { return "mock" }

// FailEndpoint makes every later call to endpoint return err.
func (m *MockFetcher) FailEndpoint(endpoint string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failures == nil {
		m.failures = make(map[string]error)
	}
	m.failures[endpoint] = err
}

// Hold blocks every fetch for symbol until the returned release func is
// called or the fetch's context ends.
func (m *MockFetcher) Hold(symbol string) (release func()) {
	ch := make(chan struct{})
	m.mu.Lock()
	if m.gates == nil {
		m.gates = make(map[string]chan struct{})
	}
	m.gates[symbol] = ch
	m.mu.Unlock()

	var once sync.Once
	return func() { once.Do(func() { close(ch) }) }
}

// Calls returns how many fetches have been started.
func (m *MockFetcher) Calls() int { return int(m.calls.Load()) }

func (m *MockFetcher) enter(ctx context.Context, endpoint, symbol string) error {
	m.calls.Add(1)
	m.mu.Lock()
	gate := m.gates[symbol]
	failure := m.failures[endpoint]
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return &model.NetworkError{Endpoint: endpoint, Err: ctx.Err()}
		}
	}
	return failure
}

func (m *MockFetcher) FetchQuote(ctx context.Context, symbol string) (model.Quote, error) {
	if err := m.enter(ctx, EndpointQuote, symbol); err != nil {
		return model.Quote{}, err
	}
	return m.Source.FetchQuote(ctx, symbol)
}

func (m *MockFetcher) FetchChart(ctx context.Context, symbol string) (model.ChartSeries, error) {
	if err := m.enter(ctx, EndpointChart, symbol); err != nil {
		return model.ChartSeries{}, err
	}
	return m.Source.FetchChart(ctx, symbol)
}

func (m *MockFetcher) FetchPrediction(ctx context.Context, symbol string) (model.Prediction, error) {
	if err := m.enter(ctx, EndpointPrediction, symbol); err != nil {
		return model.Prediction{}, err
	}
	return m.Source.FetchPrediction(ctx, symbol)
}

func (m *MockFetcher) FetchIndicators(ctx context.Context, symbol string) (model.IndicatorSet, error) {
	if err := m.enter(ctx, EndpointIndicators, symbol); err != nil {
		return model.IndicatorSet{}, err
	}
	return m.Source.FetchIndicators(ctx, symbol)
}
