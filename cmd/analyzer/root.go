package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"StockAnalyzer/internal/collector"
	"StockAnalyzer/internal/config"
	"StockAnalyzer/internal/dashboard"
	"StockAnalyzer/internal/logger"
	"StockAnalyzer/internal/view"
)

// app holds global flags and the loaded config shared by subcommands.
type app struct {
	configPath string
	theme      string
	source     string
	logLevel   string

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "analyzer",
		Short: "Stock market analyzer: quotes, price history, predictions and indicators",
		Long: `analyzer loads a stock's quote, 60-day price history, next-day prediction and
technical indicators in one batch and renders them as a dashboard.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInteractive(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Configuration file path (default configs/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&a.theme, "theme", "", "Dashboard theme: light or dark")
	rootCmd.PersistentFlags().StringVar(&a.source, "source", "", "Data source: api or demo")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(a.newSearchCmd())
	rootCmd.AddCommand(a.newInteractiveCmd())
	rootCmd.AddCommand(a.newBotCmd())

	return rootCmd
}

// load reads config and applies flag overrides before logging is set up.
func (a *app) load() error {
	path := config.ResolvePath(a.configPath)
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.theme != "" {
		cfg.Dashboard.Theme = a.theme
	}
	if a.source != "" {
		cfg.API.Source = a.source
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	log.Debug().Str("path", path).Str("source", cfg.API.Source).Msg("config loaded")
	a.cfg = cfg
	return nil
}

func (a *app) themeValue() view.Theme {
	return view.ParseTheme(a.cfg.Dashboard.Theme)
}

func (a *app) newFetcher() collector.Fetcher {
	if a.cfg.API.Source == config.SourceDemo {
		return collector.NewDemoFetcher()
	}
	return collector.NewAPIFetcher(a.cfg.API.BaseURL, a.cfg.Proxy)
}

func (a *app) newController(n dashboard.Notifier) *dashboard.Controller {
	fetcher := a.newFetcher()
	log.Info().Str("source", fetcher.Name()).Dur("timeout", a.cfg.API.RequestTimeout).Msg("data source ready")
	return dashboard.NewController(collector.NewOrchestrator(fetcher, a.cfg.API.RequestTimeout), n)
}
