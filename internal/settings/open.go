package settings

import (
	"context"
	"fmt"
)

// Backend names a Store implementation
type Backend string

// Supported backends
const (
	BackendFile     Backend = "file"
	BackendMemory   Backend = "memory"
	BackendRedis    Backend = "redis"
	BackendPostgres Backend = "postgres"
)

// Valid reports whether b is a supported backend
func (b Backend) Valid() bool {
	switch b {
	case BackendFile, BackendMemory, BackendRedis, BackendPostgres:
		return true
	default:
		return false
	}
}

// Options selects and configures a backend
type Options struct {
	Backend     Backend
	Path        string // file backend; empty uses DefaultFilePath
	RedisURL    string
	DatabaseURL string
}

// Open creates the Store described by opts. An empty backend means file.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case "", BackendFile:
		path := opts.Path
		if path == "" {
			var err error
			if path, err = DefaultFilePath(); err != nil {
				return nil, err
			}
		}
		return NewFileStore(path), nil
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendRedis:
		return ConnectRedis(ctx, opts.RedisURL)
	case BackendPostgres:
		if opts.DatabaseURL == "" {
			return nil, fmt.Errorf("database URL is required for the postgres settings backend")
		}
		return ConnectPostgres(ctx, opts.DatabaseURL)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}
