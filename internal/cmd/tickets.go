package cmd

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/xeonx/timeago"

	"github.com/camaragestao/gestao/internal/api"
	"github.com/camaragestao/gestao/internal/ticket"
)

var ticketsCmd = &cobra.Command{
	Use:     "tickets",
	Aliases: []string{"chamados"},
	Short:   "Manage support tickets",
}

var ticketsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tickets",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()
		if err := app.requireLogin(); err != nil {
			return err
		}

		tickets, err := app.client.ListTickets(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSTATUS\tPRIORIDADE\tTÍTULO\tABERTO")
		for _, t := range tickets {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
				t.ID, t.Status, t.Priority, t.Title, timeago.English.Format(t.CreatedAt))
		}
		return w.Flush()
	},
}

var ticketsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a ticket with its comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ticket id %q", args[0])
		}

		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()
		if err := app.requireLogin(); err != nil {
			return err
		}

		t, err := app.client.GetTicket(cmd.Context(), id)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "#%d %s\n", t.ID, t.Title)
		fmt.Fprintf(out, "Status: %s  Prioridade: %s\n", t.Status, t.Priority)
		if t.Sector != "" {
			fmt.Fprintf(out, "Setor: %s\n", t.Sector)
		}
		if t.Patrimony != "" {
			fmt.Fprintf(out, "Patrimônio: %s\n", t.Patrimony)
		}
		if t.Creator != nil {
			fmt.Fprintf(out, "Solicitante: %s\n", displayUser(*t.Creator))
		}
		if t.AssignedTo != nil {
			fmt.Fprintf(out, "Responsável: %s\n", displayUser(*t.AssignedTo))
		}
		fmt.Fprintf(out, "Aberto %s\n", timeago.English.Format(t.CreatedAt))
		if t.Description != "" {
			fmt.Fprintf(out, "\n%s\n", t.Description)
		}
		if len(t.Comments) > 0 {
			fmt.Fprintf(out, "\nComentários (%d):\n", len(t.Comments))
			for _, c := range t.Comments {
				fmt.Fprintf(out, "  [%s] %s: %s\n",
					timeago.English.Format(c.CreatedAt), c.Author, c.Content)
			}
		}
		return nil
	},
}

var (
	ticketTitle       string
	ticketDescription string
	ticketPriority    string
	ticketSector      string
	ticketPatrimony   string
	ticketAssetID     int
	ticketCategoryID  int
	ticketRequesterID int
)

var ticketsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Open a new ticket",
	RunE: func(cmd *cobra.Command, args []string) error {
		if ticketTitle == "" {
			return fmt.Errorf("--title is required")
		}
		if ticketPriority != "" {
			if _, err := ticket.ParsePriority(ticketPriority); err != nil {
				return err
			}
		}

		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()
		if err := app.requireLogin(); err != nil {
			return err
		}

		input := api.CreateTicketInput{
			Title:       ticketTitle,
			Description: ticketDescription,
			Priority:    ticketPriority,
			Sector:      ticketSector,
			Patrimony:   ticketPatrimony,
		}
		if ticketAssetID > 0 {
			input.AssetID = &ticketAssetID
		}
		if ticketCategoryID > 0 {
			input.CategoryID = &ticketCategoryID
		}
		if ticketRequesterID > 0 {
			input.RequesterID = &ticketRequesterID
		}

		t, err := app.client.CreateTicket(cmd.Context(), input)
		if err != nil {
			return err
		}

		// Feed the autocomplete history used by the TUI forms.
		if ticketSector != "" {
			_ = app.store.RememberSector(ticketSector)
		}
		if ticketPatrimony != "" {
			_ = app.store.RememberPatrimony(ticketPatrimony)
		}

		app.log.Info("ticket created", "ticket", t.ID)
		fmt.Fprintf(cmd.OutOrStdout(), "Chamado #%d aberto.\n", t.ID)
		return nil
	},
}

var ticketsStatusCmd = &cobra.Command{
	Use:   "status <id> <status>",
	Short: "Move a ticket along the lifecycle",
	Long: `Move a ticket to a new status. Valid statuses are Novo, Em Andamento,
Resolvido and Fechado; only transitions allowed for your role are accepted.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ticket id %q", args[0])
		}
		to, err := ticket.ParseStatus(args[1])
		if err != nil {
			return err
		}

		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()
		if err := app.requireLogin(); err != nil {
			return err
		}

		t, err := app.client.GetTicket(cmd.Context(), id)
		if err != nil {
			return err
		}
		from, err := ticket.ParseStatus(t.Status)
		if err != nil {
			return err
		}

		// OnReload only fires after a confirmed, successful mutation, so a
		// declined prompt stays silent.
		ctl := ticket.NewController(ticket.Options{
			API:     app.client,
			Confirm: stdinConfirmer(cmd),
			OnReload: func() {
				fmt.Fprintf(cmd.OutOrStdout(), "Chamado #%d agora está %q.\n", id, to)
			},
			Logger: app.log,
		})
		return ctl.ChangeStatus(cmd.Context(), id, app.role(), from, to)
	},
}

var ticketsCommentCmd = &cobra.Command{
	Use:   "comment <id> <text>",
	Short: "Add a comment to a ticket",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ticket id %q", args[0])
		}

		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()
		if err := app.requireLogin(); err != nil {
			return err
		}

		ctl := newTicketController(cmd, app)
		content := strings.Join(args[1:], " ")
		if err := ctl.AddComment(cmd.Context(), id, content); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Comentário adicionado.")
		return nil
	},
}

var ticketsAssignCmd = &cobra.Command{
	Use:   "assign <id> <tech-id>",
	Short: "Transfer a ticket to another technician",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ticket id %q", args[0])
		}
		techID, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid technician id %q", args[1])
		}

		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()
		if err := app.requireLogin(); err != nil {
			return err
		}

		t, err := app.client.GetTicket(cmd.Context(), id)
		if err != nil {
			return err
		}
		status, err := ticket.ParseStatus(t.Status)
		if err != nil {
			return err
		}

		ctl := newTicketController(cmd, app)
		if err := ctl.Assign(cmd.Context(), id, app.role(), status, techID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Chamado #%d transferido.\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ticketsCmd)
	ticketsCmd.AddCommand(ticketsListCmd)
	ticketsCmd.AddCommand(ticketsShowCmd)
	ticketsCmd.AddCommand(ticketsCreateCmd)
	ticketsCmd.AddCommand(ticketsStatusCmd)
	ticketsCmd.AddCommand(ticketsCommentCmd)
	ticketsCmd.AddCommand(ticketsAssignCmd)

	ticketsCreateCmd.Flags().StringVar(&ticketTitle, "title", "", "ticket title (required)")
	ticketsCreateCmd.Flags().StringVar(&ticketDescription, "description", "", "problem description")
	ticketsCreateCmd.Flags().StringVar(&ticketPriority, "priority", "", "priority (Baixa, Media, Alta)")
	ticketsCreateCmd.Flags().StringVar(&ticketSector, "sector", "", "requesting sector")
	ticketsCreateCmd.Flags().StringVar(&ticketPatrimony, "patrimony", "", "patrimony number of the affected asset")
	ticketsCreateCmd.Flags().IntVar(&ticketAssetID, "asset", 0, "linked asset id")
	ticketsCreateCmd.Flags().IntVar(&ticketCategoryID, "category", 0, "service category id")
	ticketsCreateCmd.Flags().IntVar(&ticketRequesterID, "requester", 0, "open on behalf of this user id (staff only)")
}

// newTicketController wires the shared lifecycle controller with a terminal
// confirmation prompt and the session's display name as comment author.
func newTicketController(cmd *cobra.Command, app *appContext) *ticket.Controller {
	return ticket.NewController(ticket.Options{
		API:     app.client,
		Confirm: stdinConfirmer(cmd),
		Author: func() string {
			profile, err := app.store.Profile()
			if err != nil {
				return ""
			}
			if profile.FullName != "" {
				return profile.FullName
			}
			return profile.Username
		},
		Logger: app.log,
	})
}

// stdinConfirmer asks on the command's output and reads s/n from its input.
func stdinConfirmer(cmd *cobra.Command) ticket.ConfirmerFunc {
	return func(prompt string) bool {
		fmt.Fprintf(cmd.OutOrStdout(), "%s [s/n] ", prompt)
		reader := bufio.NewReader(cmd.InOrStdin())
		line, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "s" || answer == "sim" || answer == "y"
	}
}

// role returns the session's role, defaulting to the least privileged one.
func (a *appContext) role() ticket.Role {
	profile, err := a.store.Profile()
	if err != nil {
		return ticket.RoleUser
	}
	role, err := ticket.ParseRole(profile.Role)
	if err != nil {
		return ticket.RoleUser
	}
	return role
}

func displayUser(u api.User) string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}
