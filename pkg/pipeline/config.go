package pipeline

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/argmaplab/argmap/pkg/errors"
	"github.com/argmaplab/argmap/pkg/graph/transform"
	"github.com/argmaplab/argmap/pkg/layout"
)

// Config is the on-disk TOML configuration shared by the CLI and the
// server. All sections are optional; zero values fall back to the
// package defaults.
//
// Example:
//
//	[cache]
//	backend = "file"          # file | redis | none
//	dir = "~/.cache/argmap"
//	redis_url = "redis://localhost:6379/0"
//
//	[store]
//	mongo_uri = "mongodb://localhost:27017"
//	database = "argmap"
//
//	[pipeline]
//	dedupe_threshold = 0.8
//	min_node_confidence = 0.2
//	min_edge_confidence = 0.2
//
//	[layout]
//	node_spacing = 250.0
//	layer_spacing = 200.0
type Config struct {
	Cache    CacheConfig    `toml:"cache"`
	Store    StoreConfig    `toml:"store"`
	Pipeline StageConfig    `toml:"pipeline"`
	Layout   GeometryConfig `toml:"layout"`
	Server   ServerConfig   `toml:"server"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend  string `toml:"backend"` // file | redis | none
	Dir      string `toml:"dir"`
	RedisURL string `toml:"redis_url"`
}

// StoreConfig configures result persistence.
type StoreConfig struct {
	MongoURI string `toml:"mongo_uri"`
	Database string `toml:"database"`
}

// StageConfig holds stage thresholds.
type StageConfig struct {
	DedupeThreshold     float64 `toml:"dedupe_threshold"`
	SkipBridging        bool    `toml:"skip_bridging"`
	ConclusionThreshold float64 `toml:"conclusion_threshold"`
	MaxConclusions      int     `toml:"max_conclusions"`
	MinClusterSize      int     `toml:"min_cluster_size"`
	MaxClusterSize      int     `toml:"max_cluster_size"`

	// Confidence inclusion bounds. Zero maxima mean 1; the zero value
	// admits every node and edge.
	MinNodeConfidence float64 `toml:"min_node_confidence"`
	MaxNodeConfidence float64 `toml:"max_node_confidence"`
	MinEdgeConfidence float64 `toml:"min_edge_confidence"`
	MaxEdgeConfidence float64 `toml:"max_edge_confidence"`
}

// GeometryConfig holds layout geometry.
type GeometryConfig struct {
	NodeSpacing  float64 `toml:"node_spacing"`
	LayerSpacing float64 `toml:"layer_spacing"`
	Iterations   int     `toml:"iterations"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// DefaultConfigPath returns the standard config location,
// $XDG_CONFIG_HOME/argmap/config.toml or ~/.config/argmap/config.toml.
func DefaultConfigPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "argmap", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "argmap", "config.toml")
}

// LoadConfig reads a TOML config file. A missing file is not an error;
// it yields the zero config, which means all defaults.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		path = DefaultConfigPath()
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return cfg, nil
}

// Options converts the file config into pipeline options. Fields the
// config leaves at zero keep their package defaults.
func (c Config) Options() Options {
	return Options{
		DedupeThreshold: c.Pipeline.DedupeThreshold,
		SkipBridging:    c.Pipeline.SkipBridging,
		Inclusion: transform.FilterConfig{
			MinNodeConfidence: c.Pipeline.MinNodeConfidence,
			MaxNodeConfidence: c.Pipeline.MaxNodeConfidence,
			MinEdgeConfidence: c.Pipeline.MinEdgeConfidence,
			MaxEdgeConfidence: c.Pipeline.MaxEdgeConfidence,
		},
		Conclusions: transform.ConclusionConfig{
			Threshold:      c.Pipeline.ConclusionThreshold,
			MaxConclusions: c.Pipeline.MaxConclusions,
		},
		Clustering: transform.ClusterConfig{
			MinClusterSize: c.Pipeline.MinClusterSize,
			MaxClusterSize: c.Pipeline.MaxClusterSize,
		},
		Layout: layout.Options{
			NodeSpacing:  c.Layout.NodeSpacing,
			LayerSpacing: c.Layout.LayerSpacing,
			Iterations:   c.Layout.Iterations,
		},
	}
}
