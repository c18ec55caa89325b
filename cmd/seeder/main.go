// cmd/seeder/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/ammerola/picking-be/internal/adapters/db"
	"github.com/ammerola/picking-be/internal/adapters/spreadsheet"
	"github.com/ammerola/picking-be/internal/core/services"
	"github.com/ammerola/picking-be/internal/pkg/config"
	"github.com/ammerola/picking-be/internal/pkg/logger"
)

// seederState records which spreadsheets were already loaded
type seederState struct {
	ProcessedFiles []string  `json:"processed_files"`
	ProcessedCount int       `json:"processed_count"`
	LastUpdate     time.Time `json:"last_update"`
}

func main() {
	var (
		ordersDir = flag.String("orders", "./orders", "Directory containing order spreadsheets (.xlsx)")
		stateFile = flag.String("state", "./.seed_state.json", "State file for tracking progress")
		logLevel  = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
		dryRun    = flag.Bool("dry-run", false, "Parse spreadsheets without writing to the database")
		force     = flag.Bool("force", false, "Reload every spreadsheet")
		notify    = flag.Bool("notify", false, "Post an upload memo per spreadsheet")
	)
	flag.Parse()

	slogger := logger.SetupLogger(*logLevel, "json")
	ctx := context.Background()

	var orders *services.OrderService
	if !*dryRun {
		cfg, err := config.Load(slogger.Logger)
		if err != nil {
			slogger.Error("failed to load configuration", slog.String("error", err.Error()))
			os.Exit(1)
		}
		database, err := db.NewDatabase(ctx, db.ConfigFrom(cfg.Database), slogger.Logger)
		if err != nil {
			slogger.Error("failed to connect to database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer database.Close()

		repo := db.NewOrderRepository(database, slogger.Logger)
		if *notify {
			memos := services.NewMemoService(db.NewMemoRepository(database, slogger.Logger), nil, nil, nil, nil, slogger.Logger)
			orders = services.NewOrderService(repo, memos, nil, slogger.Logger)
		} else {
			orders = services.NewOrderService(repo, nil, nil, slogger.Logger)
		}
	}

	var state seederState
	if !*force {
		if data, err := os.ReadFile(*stateFile); err == nil {
			if err := json.Unmarshal(data, &state); err != nil {
				slogger.Warn("ignoring unreadable state file", slog.String("error", err.Error()))
			}
		}
	}

	files, err := filepath.Glob(filepath.Join(*ordersDir, "*.xlsx"))
	if err != nil {
		slogger.Error("failed to find spreadsheets", slog.String("error", err.Error()))
		os.Exit(1)
	}

	totalFiles := 0
	totalLines := 0
	failed := []string{}

	for i, file := range files {
		name := filepath.Base(file)
		fmt.Printf("PROGRESS: Processing %d/%d: %s\n", i+1, len(files), name)

		if !*force && slices.Contains(state.ProcessedFiles, name) {
			slogger.Info("skipping already loaded spreadsheet", slog.String("file", name))
			continue
		}

		lines, err := loadFile(ctx, orders, file)
		if err != nil {
			slogger.Error("failed to load spreadsheet",
				slog.String("file", name),
				slog.String("error", err.Error()))
			failed = append(failed, name)
			fmt.Printf("ERROR: %s - %v\n", name, err)
			continue
		}
		if lines == 0 {
			fmt.Printf("WARNING: No order lines found in %s\n", name)
			failed = append(failed, fmt.Sprintf("%s (0 lines)", name))
			continue
		}

		fmt.Printf("SUCCESS: %s - %d lines\n", name, lines)
		totalFiles++
		totalLines += lines

		state.ProcessedFiles = append(state.ProcessedFiles, name)
		state.ProcessedCount = len(state.ProcessedFiles)
		state.LastUpdate = time.Now()
	}

	if !*dryRun {
		if err := writeState(*stateFile, state); err != nil {
			slogger.Warn("failed to save state file", slog.String("error", err.Error()))
		}
	}

	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("📊 SEEDING OPERATION SUMMARY")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Spreadsheets Loaded: %d\n", totalFiles)
	fmt.Printf("Order Lines Stored: %d\n", totalLines)
	if len(failed) > 0 {
		fmt.Printf("\n⚠️  Failed/Empty Spreadsheets (%d):\n", len(failed))
		for _, f := range failed {
			fmt.Printf("  - %s\n", f)
		}
	}

	slogger.Info("seed operation completed",
		slog.Int("files_loaded", totalFiles),
		slog.Int("lines_stored", totalLines),
		slog.Int("failed_files", len(failed)))

	if *dryRun {
		fmt.Println("\n[DRY RUN] No changes were made to the database")
	}
}

// loadFile parses one workbook and stores it when orders is non-nil
func loadFile(ctx context.Context, orders *services.OrderService, file string) (int, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return 0, fmt.Errorf("failed to read file: %w", err)
	}

	lines, err := spreadsheet.ParseOrders(data)
	if err != nil {
		return 0, err
	}
	if orders == nil || len(lines) == 0 {
		return len(lines), nil
	}

	return orders.UploadBatch(ctx, lines)
}

func writeState(path string, state seederState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
