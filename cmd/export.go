package main

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/region-service/internal/export"
)

var exportDir string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export users and regions as CSV files",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		usersPath := filepath.Join(exportDir, "users.csv")
		if err := export.ExportUsersCSV(ctx, env.users, usersPath); err != nil {
			return err
		}
		zap.L().Info("exported users", zap.String("path", usersPath))

		regionsPath := filepath.Join(exportDir, "regions.csv")
		if err := export.ExportRegionsCSV(ctx, env.regions, regionsPath); err != nil {
			return err
		}
		zap.L().Info("exported regions", zap.String("path", regionsPath))

		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportDir, "out", ".", "output directory")
	rootCmd.AddCommand(exportCmd)
}
