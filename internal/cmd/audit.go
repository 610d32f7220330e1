package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/xeonx/timeago"
)

var (
	auditEntity string
	auditAction string
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show the admin audit trail",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()
		if err := app.requireLogin(); err != nil {
			return err
		}

		logs, err := app.client.AuditLogs(cmd.Context(), auditEntity, auditAction)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "QUANDO\tUSUÁRIO\tAÇÃO\tENTIDADE\tDETALHES")
		for _, l := range logs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s #%d\t%s\n",
				timeago.English.Format(l.CreatedAt), l.User.Username,
				l.Action, l.Entity, l.EntityID, l.Details)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.Flags().StringVar(&auditEntity, "entity", "", "filter by entity (ticket, asset, user...)")
	auditCmd.Flags().StringVar(&auditAction, "action", "", "filter by action (create, update, delete...)")
}
