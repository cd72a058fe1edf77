package cmd

import (
	"database/sql"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/keisetsu/wed/internal/config"
	"github.com/keisetsu/wed/internal/db"
)

func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return log, nil
}

func loadConfig(path string, log *zap.Logger) (*config.Config, error) {
	cfg, err := config.LoadConfig(path, log)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// openHistory opens an existing history database.
func openHistory(cfg *config.Config) (*sql.DB, error) {
	if _, err := os.Stat(cfg.HistoryDB); os.IsNotExist(err) {
		return nil, fmt.Errorf("no history at %s, run `wed init` first", cfg.HistoryDB)
	}
	sqlDB, err := db.Open(cfg.HistoryDB)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return sqlDB, nil
}
