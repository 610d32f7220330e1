package cmd

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/camaragestao/gestao/internal/api"
)

var categoriesCmd = &cobra.Command{
	Use:     "categories",
	Aliases: []string{"categorias"},
	Short:   "Manage service categories",
}

var categoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List service categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()
		if err := app.requireLogin(); err != nil {
			return err
		}

		categories, err := app.client.ListCategories(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNOME\tRESPONSÁVEL PADRÃO\tSLA (h)")
		for _, c := range categories {
			responsible := strconv.Itoa(c.DefaultUserID)
			if c.DefaultUser != nil {
				responsible = displayUser(*c.DefaultUser)
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", c.ID, c.Name, responsible, c.SLATimeout)
		}
		return w.Flush()
	},
}

var (
	categoryName           string
	categoryDefaultUser    int
	categoryEscalationUser int
	categorySLATimeout     int
)

var categoriesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a service category",
	RunE: func(cmd *cobra.Command, args []string) error {
		if categoryName == "" || categoryDefaultUser <= 0 {
			return fmt.Errorf("--name and --default-user are required")
		}

		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()
		if err := app.requireLogin(); err != nil {
			return err
		}

		created, err := app.client.CreateCategory(cmd.Context(), categoryInput())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Categoria %q criada.\n", created.Name)
		return nil
	},
}

var categoriesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a service category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid category id %q", args[0])
		}

		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()
		if err := app.requireLogin(); err != nil {
			return err
		}

		updated, err := app.client.UpdateCategory(cmd.Context(), id, categoryInput())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Categoria %q atualizada.\n", updated.Name)
		return nil
	},
}

var categoriesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a service category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid category id %q", args[0])
		}

		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()
		if err := app.requireLogin(); err != nil {
			return err
		}

		if !stdinConfirmer(cmd)(fmt.Sprintf("Remover a categoria #%d?", id)) {
			return nil
		}
		if err := app.client.DeleteCategory(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Categoria #%d removida.\n", id)
		return nil
	},
}

func categoryInput() api.CategoryInput {
	input := api.CategoryInput{
		Name:          categoryName,
		DefaultUserID: categoryDefaultUser,
		SLATimeout:    categorySLATimeout,
	}
	if categoryEscalationUser > 0 {
		input.EscalationUserID = &categoryEscalationUser
	}
	return input
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
	categoriesCmd.AddCommand(categoriesListCmd)
	categoriesCmd.AddCommand(categoriesCreateCmd)
	categoriesCmd.AddCommand(categoriesUpdateCmd)
	categoriesCmd.AddCommand(categoriesDeleteCmd)

	for _, c := range []*cobra.Command{categoriesCreateCmd, categoriesUpdateCmd} {
		c.Flags().StringVar(&categoryName, "name", "", "category name")
		c.Flags().IntVar(&categoryDefaultUser, "default-user", 0, "user id that receives new tickets")
		c.Flags().IntVar(&categoryEscalationUser, "escalation-user", 0, "user id for SLA escalation")
		c.Flags().IntVar(&categorySLATimeout, "sla", 0, "SLA timeout in hours")
	}
}
