package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/camaragestao/gestao/internal/importer"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Bulk-import data from CSV files",
}

var importAssetsCmd = &cobra.Command{
	Use:   "assets <file.csv>",
	Short: "Import assets from a CSV file",
	Long: `Import assets from a CSV file with a header row and the columns
Hostname, Type, Serial, AssetTag, Location, Status. Rows with missing
columns are skipped; the rest are created.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd, importer.KindAssets, args[0])
	},
}

var importUsersCmd = &cobra.Command{
	Use:   "users <file.csv>",
	Short: "Import users from a CSV file",
	Long: `Import users from a CSV file with a header row and the columns
Username, Password, Role. Rows with missing columns are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd, importer.KindUsers, args[0])
	},
}

func runImport(cmd *cobra.Command, kind importer.Kind, path string) error {
	app, err := buildApp()
	if err != nil {
		return err
	}
	defer app.Close()
	if err := app.requireLogin(); err != nil {
		return err
	}

	imp := importer.New(app.client, app.log)
	result, report, err := imp.Run(cmd.Context(), kind, path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if report.Malformed > 0 {
		fmt.Fprintf(out, "Aviso: %d de %d linhas estavam incompletas.\n",
			report.Malformed, report.Rows)
	}
	fmt.Fprintf(out, "%s (%d importados, %d com erro)\n",
		result.Message, result.Success, result.Errors)
	return nil
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.AddCommand(importAssetsCmd)
	importCmd.AddCommand(importUsersCmd)
}
