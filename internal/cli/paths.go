package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/argmaplab/argmap/pkg/cache"
	"github.com/argmaplab/argmap/pkg/pipeline"
)

const appName = "argmap"

// cacheDir returns the local result cache directory,
// $XDG_CACHE_HOME/argmap or the platform user cache dir.
func cacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appName), nil
}

// newCache builds the cache backend selected by config.
// noCache and backend "none" yield a NullCache; backend "redis" needs
// a redis_url; everything else is the local file cache.
func newCache(ctx context.Context, cfg pipeline.CacheConfig, noCache bool) (cache.Cache, error) {
	if noCache || cfg.Backend == "none" {
		return cache.NewNullCache(), nil
	}
	if cfg.Backend == "redis" {
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("cache backend redis requires redis_url")
		}
		return cache.NewRedisCache(ctx, cfg.RedisURL)
	}
	dir := cfg.Dir
	if dir == "" {
		var err error
		dir, err = cacheDir()
		if err != nil {
			return nil, err
		}
	}
	return cache.NewFileCache(dir)
}

// newRunner builds a pipeline runner wired to the configured cache and
// the context logger.
func newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg := configFromContext(ctx)
	c, err := newCache(ctx, cfg.Cache, noCache)
	if err != nil {
		return nil, fmt.Errorf("initialize cache: %w", err)
	}
	return pipeline.NewRunner(c, nil, loggerFromContext(ctx)), nil
}
