package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	migrations "tabletime/internal/migrations/mongo"
	"tabletime/pkg/client"
	"tabletime/pkg/config"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the MongoDB collection, validator and indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load(ServiceName + "-migrate")

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.MongoConnTimeout*3)
			defer cancel()

			mongoClient, err := client.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoConnTimeout)
			if err != nil {
				return fmt.Errorf("connect to mongo: %w", err)
			}
			defer func() { _ = mongoClient.Disconnect(context.Background()) }()

			return migrations.RunMigration(ctx, mongoClient.Database(cfg.MongoDatabaseName), cfg.Log)
		},
	}
}
