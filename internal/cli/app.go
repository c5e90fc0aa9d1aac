package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vijay-prabhu/subjectline/internal/analyzer"
	"github.com/vijay-prabhu/subjectline/internal/config"
	"github.com/vijay-prabhu/subjectline/internal/database"
	"github.com/vijay-prabhu/subjectline/internal/history"
	"github.com/vijay-prabhu/subjectline/internal/logging"
	"github.com/vijay-prabhu/subjectline/internal/output"
)

// app holds what a command needs: config, logger, analyzer and history
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	analyzer *analyzer.Analyzer
	db       *database.DB
	store    history.Store
}

// newApp loads configuration and builds the analyzer. The history database
// is only opened when withHistory is set.
func newApp(ctx context.Context, withHistory bool) (*app, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:      cfg,
		logger:   logger,
		analyzer: analyzer.New(cfg.Lexicon),
	}

	if withHistory {
		db, err := database.Open(cfg.Database.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		if err := db.Health(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("database health check failed: %w", err)
		}
		a.db = db
		a.store = history.NewSQL(db, cfg.History.Limit)
		logger.Debug("opened history", zap.String("path", cfg.Database.Path), zap.Int("limit", cfg.History.Limit))
	}

	return a, nil
}

// Close releases the database and flushes logs
func (a *app) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close database", zap.Error(err))
		}
	}
	_ = logging.Sync(a.logger)
}

// render writes data in the selected output format, with color only when
// the command writes to the real stdout
func render(cmd *cobra.Command, data any) error {
	if w := cmd.OutOrStdout(); w != os.Stdout {
		return output.OutputTo(w, outputFmt, data)
	}
	return output.Output(outputFmt, data)
}
