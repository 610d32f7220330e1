package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var reportsTechID int

var reportsCmd = &cobra.Command{
	Use:     "reports",
	Aliases: []string{"relatorios"},
	Short:   "Show support performance reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()
		if err := app.requireLogin(); err != nil {
			return err
		}

		stats, err := app.client.Reports(cmd.Context(), reportsTechID)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Chamados:       %d no total, %d abertos, %d resolvidos\n",
			stats.TotalTickets, stats.OpenTickets, stats.ResolvedTickets)
		fmt.Fprintf(out, "MTTR:           %.1f h\n", stats.AvgMTTRHours)
		fmt.Fprintf(out, "SLA cumprido:   %.1f%%\n", stats.SLAComplianceRate)
		fmt.Fprintf(out, "Satisfação:     %.1f\n", stats.SatisfactionScore)

		if len(stats.TicketsByCategory) > 0 {
			fmt.Fprintln(out, "\nPor categoria:")
			names := make([]string, 0, len(stats.TicketsByCategory))
			for name := range stats.TicketsByCategory {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(out, "  %-24s %d\n", name, stats.TicketsByCategory[name])
			}
		}

		if len(stats.WeeklyTrend) > 0 {
			fmt.Fprintln(out, "\nÚltima semana:")
			for _, day := range stats.WeeklyTrend {
				fmt.Fprintf(out, "  %s  %d\n", day.Date, day.Count)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportsCmd)
	reportsCmd.Flags().IntVar(&reportsTechID, "tech", 0, "scope to one technician by user id")
}
