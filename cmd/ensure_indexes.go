package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reporthub/reporthub-api/config"
	"github.com/reporthub/reporthub-api/databases"
)

// ensureIndexesCmd represents the ensure-indexes command
var ensureIndexesCmd = &cobra.Command{
	Use:   "ensure-indexes",
	Short: "Create the collection indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := config.New()
		if err != nil {
			return err
		}
		client, err := databases.NewClient(conf)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if err := client.Connect(ctx); err != nil {
			return err
		}
		defer func() {
			if err := client.Disconnect(context.Background()); err != nil {
				zap.S().Errorw("failed to disconnect from database", "error", err)
			}
		}()

		return databases.EnsureIndexes(ctx, databases.NewDatabase(conf, client))
	},
}

func init() {
	rootCmd.AddCommand(ensureIndexesCmd)
}
