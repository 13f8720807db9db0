package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Kochuseyin65/muayane/internal/config"
	"github.com/Kochuseyin65/muayane/internal/harness"
	"github.com/Kochuseyin65/muayane/internal/output"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Execute the full verification pipeline",
		RunE:  runExecute,
	}
}

func runExecute(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	fmt.Fprintf(cmd.OutOrStdout(), "Testing backend at %s as %s\n", cfg.BaseURL, cfg.AdminEmail)

	h := harness.New(cfg, logger)
	summary := h.Run()

	// The summary document is always written, whatever the display
	// format, so failed runs stay diagnosable.
	if err := output.WriteFile(cfg.Output, summary); err != nil {
		return fmt.Errorf("write report %q: %w", cfg.Output, err)
	}

	switch strings.ToLower(cfg.Format) {
	case config.FormatPretty:
		if err := output.NewPretty(cmd.OutOrStdout()).Render(summary); err != nil {
			return err
		}
	case config.FormatJSON:
		if err := output.NewJSON(cmd.OutOrStdout()).Render(summary); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q", cfg.Format)
	}

	if !summary.OK() {
		return fmt.Errorf("one or more steps failed")
	}
	return nil
}
