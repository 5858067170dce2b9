// Package persist keeps the client's state under a handful of keys.
// Every backend stores opaque JSON documents; decoding them is the caller's
// job, see LoadJSON.
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var ErrNotFound = errors.New("key not found")

type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

type Options struct {
	Driver string
	// Path is the json file or the sqlite database.
	Path string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	Logger *zap.Logger
}

// Open picks a backend by driver name. An empty driver means a json file.
func Open(opts Options) (KV, error) {
	switch opts.Driver {
	case "", DriverFile:
		return InJSON(opts.Path).WithLogger(opts.Logger), nil
	case DriverSQLite:
		return OpenSQLite(opts.Path)
	case DriverRedis:
		return OpenRedis(opts.RedisAddr, opts.RedisPassword, opts.RedisDB, opts.RedisPrefix)
	}
	return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
}

// LoadJSON decodes the value under key into dst.
// A missing key leaves dst untouched. So does a malformed value, which is
// only logged: a corrupt key must never stop the client from starting.
func LoadJSON(ctx context.Context, kv KV, key string, dst any, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	bs, err := kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return
	}
	if err != nil {
		logger.Warn("could not read key", zap.String("key", key), zap.Error(err))
		return
	}
	// decode into a scratch value so a partial decode cannot leak into dst
	scratch, err := json.Marshal(dst)
	if err != nil {
		logger.Warn("could not copy defaults", zap.String("key", key), zap.Error(err))
		return
	}
	if err := json.Unmarshal(bs, dst); err != nil {
		logger.Warn("malformed value, keeping defaults", zap.String("key", key), zap.Error(err))
		_ = json.Unmarshal(scratch, dst)
	}
}

// SaveJSON encodes v and writes it under key.
func SaveJSON(ctx context.Context, kv KV, key string, v any) error {
	bs, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return kv.Set(ctx, key, bs)
}
