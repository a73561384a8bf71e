package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	bind           string
	port           int
	dbPath         string
	clientOrigin   string
	jwtSecret      string
	logLevel       string
	revealInterval time.Duration
	settleDelay    time.Duration
}

func (c *Config) validate() error {
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.revealInterval <= 0 || c.settleDelay <= 0 {
		return fmt.Errorf("intervals must be positive")
	}
	return nil
}

func (c *Config) addr() string {
	return fmt.Sprintf("%s:%d", c.bind, c.port)
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("LETTERDROP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "letterdrop",
		Short:         "Backend for Letterdrop, a timed five-letter word-guessing game.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return serve(cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: LETTERDROP_BIND)")
	fs.IntVarP(&cfg.port, "port", "p", 5175, "port to listen on (env: LETTERDROP_PORT)")
	fs.StringVar(&cfg.dbPath, "db", "./data/letterdrop.db", "sqlite database path, empty for in-memory state (env: LETTERDROP_DB)")
	fs.StringVar(&cfg.clientOrigin, "client-origin", "http://localhost:3000", "allowed CORS origin (env: LETTERDROP_CLIENT_ORIGIN)")
	fs.StringVar(&cfg.jwtSecret, "jwt-secret", "", "secret for session cookies (env: LETTERDROP_JWT_SECRET)")
	fs.StringVar(&cfg.logLevel, "log-level", "info", "zerolog level (env: LETTERDROP_LOG_LEVEL)")
	fs.DurationVar(&cfg.revealInterval, "reveal-interval", 3500*time.Millisecond, "time between letter reveals (env: LETTERDROP_REVEAL_INTERVAL)")
	fs.DurationVar(&cfg.settleDelay, "settle-delay", 1500*time.Millisecond, "pause after a round resolves (env: LETTERDROP_SETTLE_DELAY)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})

	return cmd
}
