package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/camaragestao/gestao/internal/session"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the backend",
	RunE:  runLogin,
}

var (
	loginUsername string
	loginPassword string
)

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "password (prompted when omitted)")
}

func runLogin(cmd *cobra.Command, args []string) error {
	app, err := buildApp()
	if err != nil {
		return err
	}
	defer app.Close()

	reader := bufio.NewReader(cmd.InOrStdin())
	if loginUsername == "" {
		fmt.Fprint(cmd.OutOrStdout(), "Usuário: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		loginUsername = strings.TrimSpace(line)
	}
	if loginPassword == "" {
		fmt.Fprint(cmd.OutOrStdout(), "Senha: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		loginPassword = strings.TrimRight(line, "\r\n")
	}

	resp, err := app.client.Login(cmd.Context(), loginUsername, loginPassword)
	if err != nil {
		return err
	}

	err = app.store.Login(resp.Token, session.Profile{
		ID:       resp.User.ID,
		Username: resp.User.Username,
		FullName: resp.User.FullName,
		Role:     resp.User.Role,
		Avatar:   resp.User.Avatar,
	})
	if err != nil {
		return err
	}

	app.log.WithUser(resp.User.Username).Info("logged in", "role", resp.User.Role)
	fmt.Fprintf(cmd.OutOrStdout(), "Conectado como %s (%s)\n", resp.User.Username, resp.User.Role)
	return nil
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the persisted session",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.store.Logout(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Sessão encerrada.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
