package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tripplanner/tripplanner-client/client"
	"github.com/tripplanner/tripplanner-client/internal/config"
)

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// app is the composition root: it owns the configuration and the single
// gateway shared by every sub-command.
type app struct {
	configPath string
	baseURL    string
	timeout    time.Duration
	debug      bool

	cfg    *config.Config
	client *client.Client
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "tripctl",
		Short:         "tripctl talks to the trip planner backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.client != nil {
				return a.client.Close()
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath(), "Path to the YAML config file")
	rootCmd.PersistentFlags().StringVar(&a.baseURL, "base-url", "", "Base URL of the trip planner backend (overrides config)")
	rootCmd.PersistentFlags().DurationVar(&a.timeout, "timeout", 0, "Per-request timeout (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&a.debug, "debug", "d", false, "Enable verbose debug output")

	// Sub-commands
	rootCmd.AddCommand(newPlanCmd(a))
	rootCmd.AddCommand(newHealthCmd(a))

	return rootCmd
}

// init resolves configuration (flags > env > file > defaults), configures
// logging and constructs the gateway.
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL = a.baseURL
	}
	if flags.Changed("timeout") {
		cfg.Timeout = a.timeout
	}
	if flags.Changed("debug") {
		cfg.Debug = a.debug
	}
	a.cfg = cfg

	config.InitLogger(cmd.ErrOrStderr(), cfg.Level())
	log.Debug().
		Str("base_url", cfg.BaseURL).
		Dur("timeout", cfg.Timeout).
		Str("config_path", a.configPath).
		Msg("configuration loaded")

	c, err := client.New(client.Config{BaseURL: cfg.BaseURL, Timeout: cfg.Timeout},
		client.WithLogger(log.Logger),
		client.WithDebugLogging(cfg.Debug),
	)
	if err != nil {
		return fmt.Errorf("constructing client: %w", err)
	}
	a.client = c
	return nil
}
