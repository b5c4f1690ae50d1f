/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"fmt"
	"log"

	"github.com/sciops/workorder-gin/internal/config"
	"github.com/sciops/workorder-gin/internal/database"
	"github.com/sciops/workorder-gin/internal/repository"
	"github.com/sciops/workorder-gin/internal/service"
	"github.com/sciops/workorder-gin/internal/store"
	"github.com/spf13/cobra"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Run database migrations to create or update the schema, then
verify the stored work orders: every record must carry a known status
(legacy spellings are normalized) and ticket numbering must be free of
duplicates. A verification failure is reported and leaves the data
untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Load configuration
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// 2. Connect
		log.Printf("Connecting to database (driver=%s)", cfg.Database.Driver)
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect database: %w", err)
		}
		defer func() {
			sqlDB, _ := db.DB()
			if sqlDB != nil {
				sqlDB.Close()
			}
		}()

		// 3. Migrate
		log.Println("Running database migrations...")
		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		// 4. Verify stored work orders
		log.Println("Verifying work order integrity...")
		if err := service.LoadStore(store.New(), repository.NewWorkOrderRepository(db)); err != nil {
			return fmt.Errorf("work order verification failed: %w", err)
		}

		log.Println("Database migrations completed successfully!")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)

	migrateCmd.Flags().String("config", "", "Config file path (default: search in current directory, ./config, or $HOME/.workorder-gin)")
}
