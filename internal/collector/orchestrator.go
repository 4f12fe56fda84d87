package collector

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"StockAnalyzer/internal/model"
)

// DefaultRequestTimeout bounds each of the four requests in a batch.
const DefaultRequestTimeout = 5 * time.Second

// Batch is one stamped fetch of all four parts for a symbol.
type Batch struct {
	Seq    uint64
	Symbol string
}

// Outcome is a settled batch. Exactly one of Snapshot and Err is set.
type Outcome struct {
	Seq      uint64
	Symbol   string
	Snapshot *model.Snapshot
	Err      error
}

// Orchestrator fans out the four fetches for a symbol and joins them
// all-or-nothing. Every batch is stamped with an increasing sequence so
// callers can tell whether an outcome is still the latest.
type Orchestrator struct {
	fetcher Fetcher
	timeout time.Duration
	seq     atomic.Uint64
	log     zerolog.Logger
}

// NewOrchestrator creates an orchestrator. A non-positive timeout disables
// the per-request deadline.
func NewOrchestrator(fetcher Fetcher, timeout time.Duration) *Orchestrator {
	return &Orchestrator{
		fetcher: fetcher,
		timeout: timeout,
		log:     log.With().Str("component", "orchestrator").Str("source", fetcher.Name()).Logger(),
	}
}

// Issue normalizes raw and stamps a new batch. Invalid input returns a
// *model.ValidationError and consumes no sequence number.
func (o *Orchestrator) Issue(raw string) (Batch, error) {
	symbol, err := model.NormalizeSymbol(raw)
	if err != nil {
		return Batch{}, err
	}
	b := Batch{Seq: o.seq.Add(1), Symbol: symbol}
	o.log.Debug().Uint64("seq", b.Seq).Str("symbol", b.Symbol).Msg("batch issued")
	return b, nil
}

// IsLatest reports whether seq belongs to the most recently issued batch.
func (o *Orchestrator) IsLatest(seq uint64) bool {
	return seq != 0 && seq == o.seq.Load()
}

// FetchSnapshot issues and runs a batch in one call.
func (o *Orchestrator) FetchSnapshot(ctx context.Context, raw string) Outcome {
	b, err := o.Issue(raw)
	if err != nil {
		return Outcome{Symbol: raw, Err: err}
	}
	return o.Run(ctx, b)
}

// Run performs the four requests concurrently. The first failure cancels
// the rest and the outcome carries no snapshot.
func (o *Orchestrator) Run(ctx context.Context, b Batch) Outcome {
	start := time.Now()
	snap := &model.Snapshot{Seq: b.Seq, Symbol: b.Symbol}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.Quote, err = fetch(gctx, o.timeout, EndpointQuote, func(ctx context.Context) (model.Quote, error) {
			return o.fetcher.FetchQuote(ctx, b.Symbol)
		})
		return err
	})
	g.Go(func() (err error) {
		snap.Chart, err = fetch(gctx, o.timeout, EndpointChart, func(ctx context.Context) (model.ChartSeries, error) {
			return o.fetcher.FetchChart(ctx, b.Symbol)
		})
		return err
	})
	g.Go(func() (err error) {
		snap.Prediction, err = fetch(gctx, o.timeout, EndpointPrediction, func(ctx context.Context) (model.Prediction, error) {
			return o.fetcher.FetchPrediction(ctx, b.Symbol)
		})
		return err
	})
	g.Go(func() (err error) {
		snap.Indicators, err = fetch(gctx, o.timeout, EndpointIndicators, func(ctx context.Context) (model.IndicatorSet, error) {
			return o.fetcher.FetchIndicators(ctx, b.Symbol)
		})
		return err
	})

	err := g.Wait()
	if err == nil {
		err = checkSymbols(snap)
	}

	out := Outcome{Seq: b.Seq, Symbol: b.Symbol}
	elapsed := time.Since(start)
	if err != nil {
		out.Err = err
		o.log.Warn().Err(err).Uint64("seq", b.Seq).Str("symbol", b.Symbol).Dur("elapsed", elapsed).Msg("batch failed")
		return out
	}
	out.Snapshot = snap
	o.log.Info().Uint64("seq", b.Seq).Str("symbol", b.Symbol).Dur("elapsed", elapsed).
		Int("points", snap.Chart.Len()).Msg("batch settled")
	return out
}

// fetch runs one request under the per-request timeout. Errors that are not
// already classified are reported as network failures.
func fetch[T any](ctx context.Context, timeout time.Duration, endpoint string, fn func(context.Context) (T, error)) (T, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	v, err := fn(ctx)
	if err == nil {
		return v, nil
	}
	if !model.IsFetchError(err) {
		err = &model.NetworkError{Endpoint: endpoint, Err: err}
	}
	return v, fmt.Errorf("fetch %s: %w", endpoint, err)
}

// checkSymbols rejects a batch whose parts name a different symbol than requested.
func checkSymbols(s *model.Snapshot) error {
	parts := []struct {
		endpoint string
		symbol   string
	}{
		{EndpointQuote, s.Quote.Symbol},
		{EndpointChart, s.Chart.Symbol},
		{EndpointPrediction, s.Prediction.Symbol},
		{EndpointIndicators, s.Indicators.Symbol},
	}
	var errs []error
	for _, p := range parts {
		if p.symbol != "" && strings.ToUpper(p.symbol) != s.Symbol {
			errs = append(errs, &model.DecodeError{
				Endpoint: p.endpoint,
				Err:      fmt.Errorf("symbol %q does not match requested %q", p.symbol, s.Symbol),
			})
		}
	}
	return errors.Join(errs...)
}
