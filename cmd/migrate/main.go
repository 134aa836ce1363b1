package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"election-assistant-be/internal/config"
	"election-assistant-be/internal/entity"
	"election-assistant-be/internal/model"
	"election-assistant-be/internal/repository/implementation"
	"election-assistant-be/pkg/chatbot/catalog"
	"election-assistant-be/pkg/database"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var seedCSV string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the candidates table and optionally load it from a CSV file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), seedCSV)
		},
	}
	cmd.Flags().StringVar(&seedCSV, "seed", "", "Replace all candidate rows with the contents of this CSV file")
	return cmd
}

func run(ctx context.Context, seedCSV string) error {
	// 1. Load Environment Variables
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		return fmt.Errorf("DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, true)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	// 3. AutoMigrate
	log.Println("Step 1: Running AutoMigrate for candidates...")
	if err := db.AutoMigrate(&model.Candidate{}); err != nil {
		return fmt.Errorf("AutoMigrate failed: %w", err)
	}

	if seedCSV == "" {
		log.Println("✅ Success: Database migration completed.")
		return nil
	}

	// 4. Seed from CSV. Rows are stored as written; the catalog classifies
	// positions when it loads them.
	log.Printf("Step 2: Seeding candidates from %s...", seedCSV)
	records, err := catalog.NewCSVFileSource(seedCSV).Records(ctx)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", seedCSV, err)
	}

	rows := make([]*entity.Candidate, 0, len(records))
	for _, r := range records {
		rows = append(rows, &entity.Candidate{Position: r.Position, Name: r.Name, Party: r.Party})
	}

	repo := implementation.NewCandidateRepository(db)
	if err := repo.ReplaceAll(ctx, rows); err != nil {
		return fmt.Errorf("failed to store candidates: %w", err)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	log.Printf("✅ Success: %d candidates stored.", count)
	return nil
}
