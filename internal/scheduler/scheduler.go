package scheduler

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"StockAnalyzer/internal/dashboard"
	"StockAnalyzer/internal/model"
	"StockAnalyzer/internal/notifier"
)

// Sender delivers bot messages.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler drives the dashboard from cron and chat commands.
type Scheduler struct {
	Cron       *cron.Cron
	Controller *dashboard.Controller
	Sender     Sender
	Ctx        context.Context
	log        zerolog.Logger
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, ctrl *dashboard.Controller, sender Sender) *Scheduler {
	return &Scheduler{
		Cron:       cron.New(cron.WithSeconds()),
		Controller: ctrl,
		Sender:     sender,
		Ctx:        ctx,
		log:        log.With().Str("component", "scheduler").Logger(),
	}
}

// Register adds the periodic refresh task. An empty spec disables it.
func (s *Scheduler) Register(refreshCron string) error {
	if refreshCron == "" {
		s.log.Info().Msg("periodic refresh disabled")
		return nil
	}
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Info().Msg("scheduler stopped")
}

// refreshTask reloads the current symbol. Only a Loaded dashboard is
// refreshed; Failed stays failed until the user submits again.
func (s *Scheduler) refreshTask() {
	st := s.Controller.State()
	if st.Kind != dashboard.Loaded {
		s.log.Debug().Str("state", st.Kind.String()).Msg("skipping refresh")
		return
	}
	s.log.Info().Str("symbol", st.Symbol).Msg("refreshing")
	if _, err := s.Controller.Submit(s.Ctx, st.Symbol); err != nil {
		s.log.Error().Err(err).Msg("refresh submit failed")
	}
}

// HandleCommand processes a chat command and returns a reply.
func (s *Scheduler) HandleCommand(_ context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	switch strings.ToLower(fields[0]) {
	case "/status":
		return notifier.FormatStatus(s.Controller.State())
	case "/help", "/start":
		return notifier.FormatHelp()
	case "/quote":
		if len(fields) < 2 {
			return "Usage: <code>/quote SYMBOL</code>"
		}
		return s.submit(fields[1])
	default:
		if strings.HasPrefix(fields[0], "/") {
			return notifier.FormatHelp()
		}
		return s.submit(command)
	}
}

func (s *Scheduler) submit(raw string) string {
	tk, err := s.Controller.Submit(s.Ctx, raw)
	if err != nil {
		var ve *model.ValidationError
		if errors.As(err, &ve) {
			return "⚠️ " + html.EscapeString(ve.Reason.Error())
		}
		return "⚠️ " + html.EscapeString(err.Error())
	}
	return fmt.Sprintf("⏳ Loading <b>%s</b>...", html.EscapeString(tk.Symbol))
}

// ReportState sends a report whenever the dashboard reaches Loaded.
// Failures are reported by the controller's notifier.
func (s *Scheduler) ReportState(st dashboard.State) {
	if st.Kind != dashboard.Loaded || st.View == nil {
		return
	}
	s.trySend(notifier.FormatSnapshotReport(*st.View))
}

func (s *Scheduler) trySend(text string) {
	if err := s.Sender.SendWithRetry(s.Ctx, text, 3); err != nil {
		s.log.Error().Err(err).Msg("send notification failed")
	}
}
