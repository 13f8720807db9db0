package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Kochuseyin65/muayane/internal/config"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "muayenecheck",
		Short:         "Muayenecheck verifies the muayene backend end to end",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	persistent := cmd.PersistentFlags()
	persistent.String("base", "", "backend base URL (default http://localhost:3000/api)")
	persistent.String("email", "", "admin email")
	persistent.String("pass", "", "admin password")
	persistent.String("format", "", "output format (pretty|json)")
	persistent.String("output", "", "summary report file")
	persistent.Int("poll-attempts", 0, "report job poll attempts")
	persistent.Duration("poll-delay", 0, "delay between report job polls")
	persistent.BoolP("verbose", "v", false, "log step progress")

	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newSeedCmd())

	return cmd
}

// loadConfig builds the effective configuration: defaults, then config
// file and environment, then explicitly set flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("base") {
		cfg.BaseURL, _ = flags.GetString("base")
	}
	if flags.Changed("email") {
		cfg.AdminEmail, _ = flags.GetString("email")
	}
	if flags.Changed("pass") {
		cfg.AdminPassword, _ = flags.GetString("pass")
	}
	if flags.Changed("format") {
		cfg.Format, _ = flags.GetString("format")
	}
	if flags.Changed("output") {
		cfg.Output, _ = flags.GetString("output")
	}
	if flags.Changed("poll-attempts") {
		cfg.PollAttempts, _ = flags.GetInt("poll-attempts")
	}
	if flags.Changed("poll-delay") {
		var d time.Duration
		d, _ = flags.GetDuration("poll-delay")
		cfg.PollDelay = d
	}
	if flags.Changed("verbose") {
		cfg.Verbose, _ = flags.GetBool("verbose")
	}

	switch cfg.Format {
	case config.FormatPretty, config.FormatJSON:
	default:
		return cfg, fmt.Errorf("unsupported format %q", cfg.Format)
	}
	return cfg, nil
}

// newLogger returns a development console logger when verbose is set
// and a nop logger otherwise.
func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}
