package cmd

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/camaragestao/gestao/internal/api"
)

var usersCmd = &cobra.Command{
	Use:     "users",
	Aliases: []string{"usuarios"},
	Short:   "Manage system users",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()
		if err := app.requireLogin(); err != nil {
			return err
		}

		users, err := app.client.ListUsers(cmd.Context())
		if err != nil {
			return err
		}
		return printUsers(cmd, users)
	},
}

var usersTechsCmd = &cobra.Command{
	Use:   "techs",
	Short: "List the technicians available for ticket transfer",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()
		if err := app.requireLogin(); err != nil {
			return err
		}

		techs, err := app.client.ListTechs(cmd.Context())
		if err != nil {
			return err
		}
		return printUsers(cmd, techs)
	},
}

var userFields api.UserInput

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if userFields.Username == "" || userFields.Password == "" {
			return fmt.Errorf("--username and --password are required")
		}

		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()
		if err := app.requireLogin(); err != nil {
			return err
		}

		created, err := app.client.CreateUser(cmd.Context(), userFields)
		if err != nil {
			return err
		}
		app.log.Info("user created", "user", created.Username)
		fmt.Fprintf(cmd.OutOrStdout(), "Usuário %s criado.\n", created.Username)
		return nil
	},
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid user id %q", args[0])
		}

		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()
		if err := app.requireLogin(); err != nil {
			return err
		}

		updated, err := app.client.UpdateUser(cmd.Context(), id, userFields)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Usuário %s atualizado.\n", updated.Username)
		return nil
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid user id %q", args[0])
		}

		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()
		if err := app.requireLogin(); err != nil {
			return err
		}

		if !stdinConfirmer(cmd)(fmt.Sprintf("Remover o usuário #%d?", id)) {
			return nil
		}
		if err := app.client.DeleteUser(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Usuário #%d removido.\n", id)
		return nil
	},
}

func printUsers(cmd *cobra.Command, users []api.User) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSUÁRIO\tNOME\tPERFIL")
	for _, u := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", u.ID, u.Username, u.FullName, u.Role)
	}
	return w.Flush()
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersTechsCmd)
	usersCmd.AddCommand(usersCreateCmd)
	usersCmd.AddCommand(usersUpdateCmd)
	usersCmd.AddCommand(usersDeleteCmd)

	for _, c := range []*cobra.Command{usersCreateCmd, usersUpdateCmd} {
		c.Flags().StringVar(&userFields.Username, "username", "", "login name")
		c.Flags().StringVar(&userFields.Password, "password", "", "password")
		c.Flags().StringVar(&userFields.Role, "role", "", "role (Admin, Tech, User)")
		c.Flags().StringVar(&userFields.FullName, "name", "", "full name")
		c.Flags().StringVar(&userFields.Avatar, "avatar", "", "avatar identifier")
	}
}
