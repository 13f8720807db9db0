// Package config loads harness settings from flags, environment
// variables, an optional config file, and built-in defaults, in that
// order of precedence.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// FormatPretty renders human readable output.
	FormatPretty = "pretty"
	// FormatJSON renders machine readable output.
	FormatJSON = "json"
)

// Config captures every tunable of the check tool.
type Config struct {
	BaseURL       string
	AdminEmail    string
	AdminPassword string

	TechEmail    string
	TechPassword string
	TechPIN      string

	PollAttempts int
	PollDelay    time.Duration

	Output  string
	Format  string
	Verbose bool
}

// Default returns the baseline configuration matching the seeded demo
// backend.
func Default() Config {
	return Config{
		BaseURL:       "http://localhost:3000/api",
		AdminEmail:    "admin@abc.com",
		AdminPassword: "password",
		TechEmail:     "ahmet@abc.com",
		TechPassword:  "password",
		TechPIN:       "123456",
		PollAttempts:  20,
		PollDelay:     250 * time.Millisecond,
		Output:        "test_report.json",
		Format:        FormatJSON,
	}
}

// Load builds the configuration. An optional muayenecheck.yaml in the
// working directory is honored; environment variables override it. The
// legacy variable names BASE, EMAIL and PASS are kept for compatibility
// with the original scripts, everything else uses the MUAYENE_ prefix.
func Load() (Config, error) {
	v := viper.New()
	def := Default()

	v.SetDefault("base", def.BaseURL)
	v.SetDefault("email", def.AdminEmail)
	v.SetDefault("pass", def.AdminPassword)
	v.SetDefault("tech_email", def.TechEmail)
	v.SetDefault("tech_pass", def.TechPassword)
	v.SetDefault("tech_pin", def.TechPIN)
	v.SetDefault("poll_attempts", def.PollAttempts)
	v.SetDefault("poll_delay", def.PollDelay)
	v.SetDefault("output", def.Output)
	v.SetDefault("format", def.Format)
	v.SetDefault("verbose", false)

	v.SetConfigName("muayenecheck")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return def, fmt.Errorf("read config file: %w", err)
		}
	}

	// Legacy unprefixed names first, then the prefixed set.
	for _, key := range []string{"base", "email", "pass"} {
		if err := v.BindEnv(key, strings.ToUpper(key)); err != nil {
			return def, fmt.Errorf("bind env %s: %w", key, err)
		}
	}
	v.SetEnvPrefix("MUAYENE")
	v.AutomaticEnv()

	cfg := Config{
		BaseURL:       v.GetString("base"),
		AdminEmail:    v.GetString("email"),
		AdminPassword: v.GetString("pass"),
		TechEmail:     v.GetString("tech_email"),
		TechPassword:  v.GetString("tech_pass"),
		TechPIN:       v.GetString("tech_pin"),
		PollAttempts:  v.GetInt("poll_attempts"),
		PollDelay:     v.GetDuration("poll_delay"),
		Output:        v.GetString("output"),
		Format:        v.GetString("format"),
		Verbose:       v.GetBool("verbose"),
	}
	if cfg.PollAttempts <= 0 {
		cfg.PollAttempts = def.PollAttempts
	}
	if cfg.PollDelay <= 0 {
		cfg.PollDelay = def.PollDelay
	}
	return cfg, nil
}
