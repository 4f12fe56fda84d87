package dashboard

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"StockAnalyzer/internal/collector"
	"StockAnalyzer/internal/view"
)

// Notifier delivers user-visible failure notices.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// Ticket identifies a submitted batch. Done is closed once its outcome has
// been applied or discarded.
type Ticket struct {
	Seq    uint64
	Symbol string
	Done   <-chan struct{}
}

// Wait blocks until the batch settles or ctx ends.
func (t Ticket) Wait(ctx context.Context) error {
	select {
	case <-t.Done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Controller owns the dashboard state machine. It is the only writer of
// State and applies an outcome only if it belongs to the latest submission.
type Controller struct {
	orch     *collector.Orchestrator
	notifier Notifier
	log      zerolog.Logger

	// pubMu orders transitions and their delivery to subscribers. It is
	// always taken before mu, and mu is never held while subscribers run.
	pubMu sync.Mutex

	mu     sync.Mutex
	state  State
	cancel context.CancelFunc
	closed bool
	subs   []func(State)

	wg sync.WaitGroup
}

// NewController creates a controller in the Idle state. notifier may be nil.
func NewController(orch *collector.Orchestrator, notifier Notifier) *Controller {
	return &Controller{
		orch:     orch,
		notifier: notifier,
		log:      log.With().Str("component", "dashboard").Logger(),
	}
}

// State returns a copy of the current state. It never waits for subscribers.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers fn to receive every later transition. fn runs on the
// goroutine that made the transition. It may call State but must not call
// Submit or Apply.
func (c *Controller) Subscribe(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

// Submit validates raw and, if valid, moves to Loading and starts a batch.
// Invalid input returns the validation error and leaves the state untouched.
// Any batch still in flight is cancelled; its outcome will be discarded.
func (c *Controller) Submit(ctx context.Context, raw string) (Ticket, error) {
	c.pubMu.Lock()
	defer c.pubMu.Unlock()

	c.mu.Lock()
	b, err := c.orch.Issue(raw)
	if err != nil {
		c.mu.Unlock()
		return Ticket{}, err
	}
	if c.cancel != nil {
		c.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.wg.Add(1)
	next := State{Kind: Loading, Symbol: b.Symbol}
	subs := c.transitionLocked(next)

	done := make(chan struct{})
	go func() {
		defer c.wg.Done()
		defer close(done)
		defer cancel()
		out := c.orch.Run(runCtx, b)
		if runCtx.Err() != nil && errors.Is(out.Err, context.Canceled) {
			c.log.Debug().Uint64("seq", b.Seq).Str("symbol", b.Symbol).Msg("batch cancelled")
			return
		}
		c.Apply(out)
	}()

	c.log.Info().Uint64("seq", b.Seq).Str("symbol", b.Symbol).Msg("symbol submitted")
	deliver(subs, next)
	return Ticket{Seq: b.Seq, Symbol: b.Symbol, Done: done}, nil
}

// Apply transitions to Loaded or Failed for the latest batch and reports
// whether the outcome was applied. Stale outcomes, and any outcome after
// Close, are dropped.
func (c *Controller) Apply(out collector.Outcome) bool {
	var next State
	if out.Err != nil || out.Snapshot == nil {
		next = State{Kind: Failed, Symbol: out.Symbol, Reason: FailureMessage(out.Symbol)}
	} else {
		dm := view.Assemble(*out.Snapshot)
		next = State{Kind: Loaded, Symbol: out.Symbol, Snapshot: out.Snapshot, View: &dm}
	}

	c.pubMu.Lock()
	c.mu.Lock()
	if c.closed || !c.orch.IsLatest(out.Seq) {
		c.mu.Unlock()
		c.pubMu.Unlock()
		c.log.Debug().Uint64("seq", out.Seq).Str("symbol", out.Symbol).Msg("discarding stale outcome")
		return false
	}
	c.cancel = nil
	subs := c.transitionLocked(next)
	deliver(subs, next)
	c.pubMu.Unlock()

	if next.Kind == Failed {
		c.log.Error().Err(out.Err).Uint64("seq", out.Seq).Str("symbol", out.Symbol).Msg("load failed")
		c.notify(next.Reason)
	}
	return true
}

// transitionLocked sets the state and returns the subscribers to deliver it
// to. It must be called with mu held and returns with mu released.
func (c *Controller) transitionLocked(s State) []func(State) {
	c.state = s
	subs := make([]func(State), len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()
	return subs
}

func deliver(subs []func(State), s State) {
	for _, fn := range subs {
		fn(s)
	}
}

func (c *Controller) notify(text string) {
	if c.notifier == nil {
		return
	}
	if err := c.notifier.Notify(context.Background(), text); err != nil {
		c.log.Warn().Err(err).Msg("failure notice not delivered")
	}
}

// Close cancels the in-flight batch and waits for all batch goroutines.
// The state is left as it was; a batch cut short by Close is not a failure.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.mu.Unlock()
	c.wg.Wait()
}
