// Package cmd is the gestao command tree.
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/camaragestao/gestao/internal/api"
	"github.com/camaragestao/gestao/internal/config"
	"github.com/camaragestao/gestao/internal/event"
	"github.com/camaragestao/gestao/internal/logging"
	"github.com/camaragestao/gestao/internal/session"
)

var rootCmd = &cobra.Command{
	Use:   "gestao",
	Short: "Terminal client for the CâmaraGestão helpdesk",
	Long: `Gestao is the terminal client for the CâmaraGestão IT asset and
helpdesk system: ticket lifecycle, inventory, dashboards and CSV imports,
all against the backend REST API.

Running gestao with no subcommand opens the interactive UI.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(false)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/gestao/config.yaml)")
	rootCmd.PersistentFlags().String("server", "", "backend base URL (overrides server.url)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("server.url", rootCmd.PersistentFlags().Lookup("server"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("GESTAO")
	// GESTAO_SERVER_URL maps to server.url and so on.
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

// appContext is the wired-up client shared by all commands.
type appContext struct {
	cfg    *config.Config
	log    *logging.Logger
	bus    *event.Bus
	store  *session.Store
	client *api.Client
}

// buildApp loads config and wires the session store, event bus, logger and
// API client together. A 401 anywhere drops the persisted session.
func buildApp() (*appContext, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := logging.Nop()
	if cfg.Logging.Enabled {
		log, err = logging.New(config.DataDir(), cfg.Logging.Level, logging.RotationConfig{
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to set up logging: %w", err)
		}
	}

	store, err := session.NewStore(config.DataDir())
	if err != nil {
		log.Close()
		return nil, err
	}

	bus := event.NewBus()
	client := api.New(api.Options{
		BaseURL: cfg.Server.URL,
		Tokens:  store,
		Timeout: cfg.Server.Timeout(),
		OnUnauthorized: func() {
			if err := store.Logout(); err != nil {
				log.Warn("logout after 401 failed", "error", err)
			}
			bus.Publish(event.NewSessionExpiredEvent("api"))
		},
	})

	return &appContext{cfg: cfg, log: log, bus: bus, store: store, client: client}, nil
}

func (a *appContext) Close() {
	a.log.Close()
}

// requireLogin fails fast when there is no session, before any request
// would bounce with a 401.
func (a *appContext) requireLogin() error {
	if !a.store.IsAuthenticated() {
		return fmt.Errorf("not logged in: run 'gestao login' first")
	}
	return nil
}
