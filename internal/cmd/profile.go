package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/camaragestao/gestao/internal/api"
	"github.com/camaragestao/gestao/internal/session"
)

var profileCmd = &cobra.Command{
	Use:     "profile",
	Aliases: []string{"perfil"},
	Short:   "Show or update your own profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()
		if err := app.requireLogin(); err != nil {
			return err
		}

		profile, err := app.store.Profile()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Usuário: %s\n", profile.Username)
		if profile.FullName != "" {
			fmt.Fprintf(out, "Nome:    %s\n", profile.FullName)
		}
		fmt.Fprintf(out, "Perfil:  %s\n", profile.Role)
		return nil
	},
}

var (
	profileName     string
	profilePassword string
	profileAvatar   string
)

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update your name, password or avatar",
	RunE: func(cmd *cobra.Command, args []string) error {
		if profileName == "" && profilePassword == "" && profileAvatar == "" {
			return fmt.Errorf("nothing to update: pass --name, --password or --avatar")
		}

		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()
		if err := app.requireLogin(); err != nil {
			return err
		}

		profile, err := app.store.Profile()
		if err != nil {
			return err
		}

		updated, err := app.client.UpdateUser(cmd.Context(), profile.ID, api.UserInput{
			FullName: profileName,
			Password: profilePassword,
			Avatar:   profileAvatar,
		})
		if err != nil {
			return err
		}

		// Keep the cached profile in sync so the TUI shows the new name
		// without a fresh login.
		err = app.store.UpdateProfile(session.Profile{
			ID:       updated.ID,
			Username: updated.Username,
			FullName: updated.FullName,
			Role:     updated.Role,
			Avatar:   updated.Avatar,
		})
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Perfil atualizado.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileUpdateCmd)

	profileUpdateCmd.Flags().StringVar(&profileName, "name", "", "full name")
	profileUpdateCmd.Flags().StringVar(&profilePassword, "password", "", "new password")
	profileUpdateCmd.Flags().StringVar(&profileAvatar, "avatar", "", "avatar identifier")
}
