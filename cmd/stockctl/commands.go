package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/config"
	"github.com/mamadbah2/stockroom/internal/repository/mongodb"
	"github.com/mamadbah2/stockroom/internal/repository/sheets"
	"github.com/mamadbah2/stockroom/internal/service/reporting"
	"github.com/mamadbah2/stockroom/pkg/logger"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "stockctl",
		Short:         "Stockroom maintenance commands",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("env-file", "", "Path to a .env file")

	root.AddCommand(newIndexesCmd(), newSnapshotCmd())
	return root
}

func newIndexesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "indexes",
		Short: "Create the MongoDB indexes used by the API.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRepository(cmd, func(ctx context.Context, _ *config.Config, repo *mongodb.Repository, log *zap.Logger) error {
				if err := repo.EnsureIndexes(ctx); err != nil {
					return fmt.Errorf("ensure indexes: %w", err)
				}
				log.Info("indexes ensured")
				return nil
			})
		},
	}
}

func newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Export the inventory ledger once.",
		Long:  `Writes the ledger to the configured Google Sheet, or to a local xlsx file when --xlsx is given.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			xlsxPath, _ := cmd.Flags().GetString("xlsx")

			return withRepository(cmd, func(ctx context.Context, cfg *config.Config, repo *mongodb.Repository, log *zap.Logger) error {
				if xlsxPath != "" {
					return writeWorkbookFile(ctx, repo, xlsxPath, log)
				}

				if !cfg.Sheets.Enabled() {
					return errors.New("google sheets is not configured; pass --xlsx to export to a file")
				}
				sheetsRepo, err := sheets.NewGoogleSheetRepository(ctx, cfg.Sheets, logger.Named(log, "repo.sheets"))
				if err != nil {
					return err
				}
				n, err := reporting.NewService(repo, sheetsRepo, cfg.Snapshot.SheetRange, nil, logger.Named(log, "svc.reporting")).ExportInventory(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "exported %d items to %s\n", n, cfg.Snapshot.SheetRange)
				return nil
			})
		},
	}
	cmd.Flags().String("xlsx", "", "Write an xlsx workbook to this path instead of Google Sheets")
	return cmd
}

func writeWorkbookFile(ctx context.Context, repo *mongodb.Repository, path string, log *zap.Logger) error {
	items, err := repo.ListItems(ctx)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := reporting.WriteWorkbook(f, items); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	log.Info("inventory workbook written", zap.String("path", path), zap.Int("items", len(items)))
	return nil
}

// withRepository loads configuration, connects to MongoDB and runs fn.
func withRepository(cmd *cobra.Command, fn func(ctx context.Context, cfg *config.Config, repo *mongodb.Repository, log *zap.Logger) error) error {
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	if cfg.Storage.Driver != config.StorageMongo {
		return fmt.Errorf("stockctl requires STORAGE_DRIVER=%s", config.StorageMongo)
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()
	connectCtx, cancel := context.WithTimeout(ctx, cfg.MongoDB.Timeout)
	defer cancel()

	repo, err := mongodb.NewMongoDBRepository(connectCtx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		return err
	}
	defer func() {
		if err := repo.Close(context.Background()); err != nil {
			log.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	return fn(ctx, cfg, repo, log)
}
