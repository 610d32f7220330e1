package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/camaragestao/gestao/internal/notify"
	"github.com/camaragestao/gestao/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch for new tickets without opening the UI",
	Long: `Watch polls the backend at the dashboard interval and rings the
terminal bell (and the chime, when enabled) whenever a new ticket appears.
Stop with Ctrl+C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()
		if err := app.requireLogin(); err != nil {
			return err
		}

		notifier := notify.New(notify.Options{
			Enabled: app.cfg.Notifications.Enabled,
			Chime:   app.cfg.Notifications.Chime,
			Logger:  app.log,
		})
		watcher := watch.NewWatcher(func(ctx context.Context) ([]int, error) {
			tickets, err := app.client.ListTickets(ctx)
			if err != nil {
				return nil, err
			}
			ids := make([]int, len(tickets))
			for i, t := range tickets {
				ids[i] = t.ID
			}
			return ids, nil
		}, notifier, app.bus, app.log.WithView("watch"))

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		// Establish the baseline before the loop so the first interval can
		// already alert.
		if err := watcher.Poll(ctx); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Monitorando novos chamados a cada %s...\n",
			app.cfg.Poll.DashboardInterval())

		poller := watch.NewPoller(watcher.Poll, app.cfg.Poll.DashboardInterval(), nil, app.log)
		poller.Start(ctx)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
