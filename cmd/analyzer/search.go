package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"StockAnalyzer/internal/dashboard"
	"StockAnalyzer/internal/render"
)

var errLoadFailed = errors.New("load failed")

func (a *app) newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search SYMBOL",
		Short: "Load and render the dashboard for one symbol",
		Example: `  analyzer search AAPL
  analyzer search msft --theme dark --source demo`,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := a.runSearch(cmd, args[0])
			if err != nil && !errors.Is(err, errLoadFailed) {
				fmt.Fprintln(os.Stderr, "Error:", err)
			}
			return err
		},
	}
}

func (a *app) runSearch(cmd *cobra.Command, symbol string) error {
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	ctx := cmd.Context()

	term := render.NewTerminal(cmd.OutOrStdout(), a.themeValue())
	ctrl := a.newController(term)
	defer ctrl.Close()

	tk, err := ctrl.Submit(ctx, symbol)
	if err != nil {
		return err
	}
	if err := tk.Wait(ctx); err != nil {
		return err
	}

	st := ctrl.State()
	if st.Kind != dashboard.Loaded {
		return errLoadFailed
	}
	term.Render(st)
	return nil
}
