package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "View and change global system settings",
}

var settingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List system settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()
		if err := app.requireLogin(); err != nil {
			return err
		}

		settings, err := app.client.ListSettings(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CHAVE\tVALOR\tDESCRIÇÃO")
		for _, s := range settings {
			fmt.Fprintf(w, "%s\t%s\t%s\n", s.Key, s.Value, s.Description)
		}
		return w.Flush()
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one system setting",
	Long: `Change one system setting by key. The system_notice key feeds the
banner shown on the wallboard (tv) view; set it to an empty string to clear.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()
		if err := app.requireLogin(); err != nil {
			return err
		}

		updated, err := app.client.UpdateSetting(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		app.log.Info("setting updated", "key", updated.Key)
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", updated.Key, updated.Value)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsListCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}
