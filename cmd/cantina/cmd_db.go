package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lacantina/backend/config"
	"github.com/lacantina/backend/database/seeders"
	"github.com/lacantina/backend/pkg/database"
)

// bootDB loads config and opens the database connection.
func bootDB() error {
	if err := config.Load(); err != nil {
		return err
	}
	return database.Connect()
}

// cantina seed — insert the base catalog, dev accounts and store state.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all registered database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		defer database.Disconnect()

		if err := seeders.RunAll(context.Background(), database.DB); err != nil {
			return err
		}
		fmt.Println("Seed completado.")
		return nil
	},
}

// cantina store:init — initialise only the store gate record.
var storeInitCmd = &cobra.Command{
	Use:   "store:init",
	Short: "Initialise the store open/closed record (default closed)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		defer database.Disconnect()

		return seeders.InitStoreStatus(context.Background(), database.DB)
	},
}
