package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/camaragestao/gestao/internal/notify"
	"github.com/camaragestao/gestao/internal/tui"
	"github.com/camaragestao/gestao/internal/watch"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive terminal UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(false)
	},
}

var tvCmd = &cobra.Command{
	Use:   "tv",
	Short: "Open the support wallboard (read-only, auto-refreshing)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTV()
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(tvCmd)
}

func runTUI(tvOnly bool) error {
	app, err := buildApp()
	if err != nil {
		return err
	}
	defer app.Close()

	notifier := notify.New(notify.Options{
		Enabled: app.cfg.Notifications.Enabled,
		Chime:   app.cfg.Notifications.Chime,
		Logger:  app.log,
	})
	watcher := watch.NewWatcher(nil, notifier, app.bus, app.log)

	model := tui.NewApp(tui.Deps{
		Config:  app.cfg,
		Client:  app.client,
		Session: app.store,
		Watcher: watcher,
		Bus:     app.bus,
		Logger:  app.log.WithView("tui"),
		TVOnly:  tvOnly,
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}

func runTV() error {
	return runTUI(true)
}
