package db

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"climate-server/internal/config"

	_ "github.com/mattn/go-sqlite3"
)

// readOnlyParams keep every pooled connection read-only at the driver level.
var readOnlyParams = []string{
	"mode=ro",
	"_query_only=true",
}

const defaultBusyTimeout = "_busy_timeout=5000"

const logSQLDriver = "sqlite3"

// Open returns a pooled read-only handle to the climate store. With
// cfg.LogSQL set, statements are routed through the logging connector.
func Open(cfg config.Config, logger *slog.Logger) (*sql.DB, error) {
	if cfg.LogSQL && cfg.Driver != logSQLDriver {
		return nil, fmt.Errorf("db open: DB_LOG_SQL requires driver %q, got %q", logSQLDriver, cfg.Driver)
	}

	dsn, err := buildDSN(cfg)
	if err != nil {
		return nil, err
	}

	var db *sql.DB
	if cfg.LogSQL {
		connector, err := NewLoggingConnector(dsn, logger)
		if err != nil {
			return nil, fmt.Errorf("db connector: %w", err)
		}
		db = sql.OpenDB(connector)
	} else {
		db, err = sql.Open(cfg.Driver, dsn)
		if err != nil {
			return nil, fmt.Errorf("db open: %w", err)
		}
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns >= 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	return db, nil
}

func Close(db *sql.DB) error {
	if db == nil {
		return nil
	}
	return db.Close()
}

// buildDSN turns DB_DSN, or SQLITE_PATH when it is unset, into a read-only
// file URI. Caller-supplied mode and _query_only values are replaced.
func buildDSN(cfg config.Config) (string, error) {
	source := cfg.DSN
	if source == "" {
		source = cfg.Path
	}

	base, query, _ := strings.Cut(source, "?")

	// The store is loaded out of band; opening must never create it.
	if !strings.HasPrefix(base, "file:") {
		if _, err := os.Stat(base); err != nil {
			return "", fmt.Errorf("sqlite database %s: %w", base, err)
		}
		base = "file:" + base
	}

	params := make([]string, 0, len(readOnlyParams)+1)
	hasBusyTimeout := false
	for _, kv := range strings.Split(query, "&") {
		if kv == "" {
			continue
		}
		key, _, _ := strings.Cut(kv, "=")
		switch key {
		case "mode", "_query_only":
			continue
		case "_busy_timeout", "_timeout":
			hasBusyTimeout = true
		}
		params = append(params, kv)
	}
	params = append(params, readOnlyParams...)
	if !hasBusyTimeout {
		params = append(params, defaultBusyTimeout)
	}

	return base + "?" + strings.Join(params, "&"), nil
}
