package overrides

import (
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"slayervault/pkg/database"
	"slayervault/pkg/utils"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

var ErrUnknownBackend = errors.New("unknown override backend")

// Backend is the store chosen by VAULT_OVERRIDE_BACKEND. DB is nil for the
// file backend.
type Backend struct {
	Store Store
	DB    *sql.DB
}

func (b *Backend) Close() error {
	if b == nil || b.DB == nil {
		return nil
	}
	return b.DB.Close()
}

// Open is shared by every binary so they all resolve the same store.
func Open(cfg utils.Config, logger *zap.Logger) (*Backend, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch cfg.OverrideBackend {
	case "", BackendFile:
		logger.Info("override store: file", zap.String("path", cfg.OverridesPath))
		return &Backend{Store: NewFileStore(cfg.OverridesPath, logger)}, nil
	case BackendSQLite:
		dbCfg := database.DefaultConfig()
		if cfg.DBPath != "" {
			dbCfg.Path = cfg.DBPath
		}
		db, err := database.Open(dbCfg)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(db); err != nil {
			_ = db.Close()
			return nil, err
		}
		logger.Info("override store: sqlite", zap.String("path", dbCfg.Path))
		return &Backend{Store: NewSQLStore(db), DB: db}, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownBackend, cfg.OverrideBackend)
	}
}
