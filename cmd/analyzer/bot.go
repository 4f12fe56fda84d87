package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"StockAnalyzer/internal/notifier"
	"StockAnalyzer/internal/scheduler"
)

func (a *app) newBotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Serve the dashboard over Telegram",
		Long: `bot long-polls Telegram for commands from the configured chat.
Send a ticker (AAPL) or /quote AAPL to load it, /status for the current state.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBot(cmd)
		},
	}
}

func (a *app) runBot(cmd *cobra.Command) error {
	if err := a.cfg.ValidateBot(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	ctx := cmd.Context()

	tn := notifier.NewTelegramNotifier(a.cfg.Telegram.BotToken, a.cfg.Telegram.ChatID, a.cfg.Proxy)
	ctrl := a.newController(tn)
	defer ctrl.Close()

	sched := scheduler.NewScheduler(ctx, ctrl, tn)
	ctrl.Subscribe(sched.ReportState)
	if err := sched.Register(a.cfg.Schedule.RefreshCron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	log.Info().Msg("bot is running, press Ctrl+C to stop")
	tn.StartPolling(ctx, sched.HandleCommand)
	log.Info().Msg("shutdown signal received, stopping")
	return nil
}
