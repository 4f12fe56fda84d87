package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"

	"StockAnalyzer/internal/model"
	"StockAnalyzer/internal/render"
)

func (a *app) newInteractiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Prompt for symbols and render each dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInteractive(cmd)
		},
	}
}

func (a *app) runInteractive(cmd *cobra.Command) error {
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	term := render.NewTerminal(out, a.themeValue())
	ctrl := a.newController(term)
	defer ctrl.Close()
	ctrl.Subscribe(term.Observe)

	term.Render(ctrl.State())
	for {
		input, err := promptSymbol()
		if errors.Is(err, terminal.InterruptErr) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch strings.ToLower(input) {
		case "":
			continue
		case "/quit", "/exit", "q":
			return nil
		}

		tk, err := ctrl.Submit(ctx, input)
		if err != nil {
			var ve *model.ValidationError
			if errors.As(err, &ve) {
				fmt.Fprintln(out, ve.Reason)
				continue
			}
			return err
		}
		if err := tk.Wait(ctx); err != nil {
			return nil
		}
	}
}

func promptSymbol() (string, error) {
	var input string
	prompt := &survey.Input{
		Message: "Enter a stock symbol (e.g., AAPL, MSFT, GOOGL):",
		Help:    "Type /quit to exit",
	}
	if err := survey.AskOne(prompt, &input); err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}
