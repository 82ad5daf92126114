package storage

import (
	"context"
	"fmt"
)

// Driver names understood by Open.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
	DriverRedis  = "redis"
)

// Config selects and configures a backend.
type Config struct {
	Driver string
	// Path is the JSON file for DriverFile.
	Path string
	// DSN is the connection string for the SQL drivers.
	DSN string
	// Addr is the Redis address.
	Addr   string
	Prefix string
	UserID string
}

// Open returns the backend named by cfg.Driver.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case "", DriverFile:
		if cfg.Path == "" {
			return nil, fmt.Errorf("storage: file store needs a path")
		}
		return OpenFile(cfg.Path)
	case DriverSQLite, DriverMySQL:
		return OpenSQL(cfg.Driver, cfg.DSN, WithUserID(cfg.UserID))
	case DriverRedis:
		return OpenRedis(ctx, cfg.Addr, cfg.Prefix)
	}
	return nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
}
