package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/vastra/config"
	"github.com/shashiranjanraj/vastra/database/seeders"
	"github.com/shashiranjanraj/vastra/pkg/docstore"
)

// vastra seed — run all registered seeders against MongoDB.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all registered document seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		store, err := docstore.ConnectMongo(ctx, config.MongoURI(), config.MongoDBName())
		if err != nil {
			return fmt.Errorf("connect mongo: %w", err)
		}
		defer store.Close(context.Background()) //nolint:errcheck

		fmt.Println("Seeding…")
		return seeders.RunAll(ctx, store)
	},
}
