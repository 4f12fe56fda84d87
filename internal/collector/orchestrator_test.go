package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"StockAnalyzer/internal/model"
)

func TestOrchestratorSuccess(t *testing.T) {
	o := NewOrchestrator(NewMockFetcher(), time.Second)
	out := o.FetchSnapshot(context.Background(), " aapl ")
	if out.Err != nil {
		t.Fatalf("unexpected error: %v", out.Err)
	}
	if out.Snapshot == nil {
		t.Fatal("expected snapshot")
	}
	if out.Seq != 1 || out.Snapshot.Seq != 1 {
		t.Errorf("seq = %d/%d, want 1", out.Seq, out.Snapshot.Seq)
	}
	if out.Snapshot.Symbol != "AAPL" || out.Snapshot.Quote.Symbol != "AAPL" {
		t.Errorf("symbol = %q / quote %q", out.Snapshot.Symbol, out.Snapshot.Quote.Symbol)
	}
	if n := out.Snapshot.Chart.Len(); n != DefaultDemoDays {
		t.Errorf("chart points = %d, want %d", n, DefaultDemoDays)
	}
}

func TestOrchestratorAllOrNothing(t *testing.T) {
	m := NewMockFetcher()
	m.FailEndpoint(EndpointIndicators, &model.HTTPError{Endpoint: EndpointIndicators, Status: 500, Body: "boom"})
	o := NewOrchestrator(m, time.Second)

	out := o.FetchSnapshot(context.Background(), "AAPL")
	if out.Snapshot != nil {
		t.Fatal("expected no snapshot when one request fails")
	}
	var he *model.HTTPError
	if !errors.As(out.Err, &he) {
		t.Fatalf("expected HTTPError, got %v", out.Err)
	}
	if he.Status != 500 {
		t.Errorf("status = %d, want 500", he.Status)
	}
}

func TestOrchestratorRejectsEmptySymbol(t *testing.T) {
	m := NewMockFetcher()
	o := NewOrchestrator(m, time.Second)

	for _, raw := range []string{"", "   "} {
		out := o.FetchSnapshot(context.Background(), raw)
		if !errors.Is(out.Err, model.ErrEmptySymbol) {
			t.Errorf("FetchSnapshot(%q) err = %v, want ErrEmptySymbol", raw, out.Err)
		}
	}
	if m.Calls() != 0 {
		t.Errorf("expected no requests, got %d", m.Calls())
	}
	if o.IsLatest(1) {
		t.Error("invalid input must not consume a sequence number")
	}
}

func TestOrchestratorIsLatest(t *testing.T) {
	o := NewOrchestrator(NewMockFetcher(), time.Second)
	a, _ := o.Issue("AAPL")
	b, _ := o.Issue("MSFT")

	if b.Seq <= a.Seq {
		t.Fatalf("sequence not increasing: %d then %d", a.Seq, b.Seq)
	}
	if o.IsLatest(a.Seq) {
		t.Error("older batch reported as latest")
	}
	if !o.IsLatest(b.Seq) {
		t.Error("newest batch not reported as latest")
	}
	if o.IsLatest(0) {
		t.Error("zero sequence must never be latest")
	}
}

type renamingFetcher struct {
	Fetcher
	quoteSymbol string
}

func (r renamingFetcher) FetchQuote(ctx context.Context, symbol string) (model.Quote, error) {
	q, err := r.Fetcher.FetchQuote(ctx, symbol)
	q.Symbol = r.quoteSymbol
	return q, err
}

func TestOrchestratorSymbolMismatch(t *testing.T) {
	o := NewOrchestrator(renamingFetcher{Fetcher: NewDemoFetcher(), quoteSymbol: "MSFT"}, time.Second)
	out := o.FetchSnapshot(context.Background(), "AAPL")

	var de *model.DecodeError
	if !errors.As(out.Err, &de) {
		t.Fatalf("expected DecodeError, got %v", out.Err)
	}
	if de.Endpoint != EndpointQuote {
		t.Errorf("endpoint = %q, want %q", de.Endpoint, EndpointQuote)
	}
	if out.Snapshot != nil {
		t.Error("expected no snapshot on mismatch")
	}
}

func TestOrchestratorTimeout(t *testing.T) {
	m := NewMockFetcher()
	release := m.Hold("AAPL")
	defer release()
	o := NewOrchestrator(m, 20*time.Millisecond)

	out := o.FetchSnapshot(context.Background(), "AAPL")
	var ne *model.NetworkError
	if !errors.As(out.Err, &ne) {
		t.Fatalf("expected NetworkError, got %v", out.Err)
	}
	if !errors.Is(out.Err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", out.Err)
	}
}

type plainErrFetcher struct{ Fetcher }

func (plainErrFetcher) FetchChart(context.Context, string) (model.ChartSeries, error) {
	return model.ChartSeries{}, errors.New("connection reset")
}

func TestOrchestratorClassifiesUntypedErrors(t *testing.T) {
	o := NewOrchestrator(plainErrFetcher{Fetcher: NewDemoFetcher()}, time.Second)
	out := o.FetchSnapshot(context.Background(), "AAPL")

	var ne *model.NetworkError
	if !errors.As(out.Err, &ne) {
		t.Fatalf("expected NetworkError, got %v", out.Err)
	}
	if ne.Endpoint != EndpointChart {
		t.Errorf("endpoint = %q, want %q", ne.Endpoint, EndpointChart)
	}
}
