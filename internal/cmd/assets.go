package cmd

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/xeonx/timeago"

	"github.com/camaragestao/gestao/internal/api"
)

var assetsCmd = &cobra.Command{
	Use:     "assets",
	Aliases: []string{"ativos"},
	Short:   "Manage the asset inventory",
}

var assetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List inventory assets",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()
		if err := app.requireLogin(); err != nil {
			return err
		}

		assets, err := app.client.ListAssets(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tHOSTNAME\tPATRIMÔNIO\tTIPO\tSTATUS\tLOCAL")
		for _, a := range assets {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
				a.ID, a.Hostname, a.AssetTag, a.Type, a.Status, a.Location)
		}
		return w.Flush()
	},
}

var assetFields api.Asset

var assetsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a new asset",
	RunE: func(cmd *cobra.Command, args []string) error {
		if assetFields.Hostname == "" && assetFields.AssetTag == "" {
			return fmt.Errorf("--hostname or --tag is required")
		}

		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()
		if err := app.requireLogin(); err != nil {
			return err
		}

		created, err := app.client.CreateAsset(cmd.Context(), assetFields)
		if err != nil {
			return err
		}
		app.log.Info("asset created", "asset", created.ID)
		fmt.Fprintf(cmd.OutOrStdout(), "Ativo #%d cadastrado.\n", created.ID)
		return nil
	},
}

var assetsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an asset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid asset id %q", args[0])
		}

		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()
		if err := app.requireLogin(); err != nil {
			return err
		}

		updated, err := app.client.UpdateAsset(cmd.Context(), id, assetFields)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Ativo #%d atualizado.\n", updated.ID)
		return nil
	},
}

var assetsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove an asset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid asset id %q", args[0])
		}

		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()
		if err := app.requireLogin(); err != nil {
			return err
		}

		if !stdinConfirmer(cmd)(fmt.Sprintf("Remover o ativo #%d?", id)) {
			return nil
		}
		if err := app.client.DeleteAsset(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Ativo #%d removido.\n", id)
		return nil
	},
}

var assetsHistoryCmd = &cobra.Command{
	Use:   "history <id>",
	Short: "Show the change history of an asset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid asset id %q", args[0])
		}

		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()
		if err := app.requireLogin(); err != nil {
			return err
		}

		history, err := app.client.AssetHistory(cmd.Context(), id)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "QUANDO\tEVENTO\tUSUÁRIO\tDETALHES")
		for _, h := range history {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				timeago.English.Format(h.CreatedAt), h.Event, h.User, h.Details)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(assetsCmd)
	assetsCmd.AddCommand(assetsListCmd)
	assetsCmd.AddCommand(assetsCreateCmd)
	assetsCmd.AddCommand(assetsUpdateCmd)
	assetsCmd.AddCommand(assetsDeleteCmd)
	assetsCmd.AddCommand(assetsHistoryCmd)

	for _, c := range []*cobra.Command{assetsCreateCmd, assetsUpdateCmd} {
		c.Flags().StringVar(&assetFields.Hostname, "hostname", "", "hostname")
		c.Flags().StringVar(&assetFields.AssetTag, "tag", "", "patrimony tag")
		c.Flags().StringVar(&assetFields.SerialNumber, "serial", "", "serial number")
		c.Flags().StringVar(&assetFields.Type, "type", "", "asset type")
		c.Flags().StringVar(&assetFields.Status, "status", "", "asset status")
		c.Flags().StringVar(&assetFields.Manufacturer, "manufacturer", "", "manufacturer")
		c.Flags().StringVar(&assetFields.Model, "model", "", "model")
		c.Flags().StringVar(&assetFields.Location, "location", "", "physical location")
		c.Flags().StringVar(&assetFields.Responsible, "responsible", "", "responsible person")
		c.Flags().StringVar(&assetFields.OS, "os", "", "operating system")
		c.Flags().StringVar(&assetFields.IPAddress, "ip", "", "IP address")
	}
}
