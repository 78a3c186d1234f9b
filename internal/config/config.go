// Package config loads and saves the mesher's small set of tunables: a
// flat struct round-tripped through plain JSON next to the executable.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config holds the mesher's runtime tunables.
type Config struct {
	BakeOcclusion          bool    `json:"bake_occlusion"`
	BakedOcclusionDarkness float32 `json:"baked_occlusion_darkness"`
	WorkerCount            int     `json:"worker_count"`
	CacheCapacity          int     `json:"cache_capacity"`
	CacheDatabasePath      string  `json:"cache_database_path"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		BakeOcclusion:          true,
		BakedOcclusionDarkness: 0.75,
		WorkerCount:            4,
		CacheCapacity:          4096,
		CacheDatabasePath:      "",
	}
}

func configPath() string {
	execDir, err := os.Executable()
	if err != nil {
		return "mesher_config.json"
	}
	return filepath.Join(filepath.Dir(execDir), "mesher_config.json")
}

// Load reads the config file next to the executable, falling back to
// DefaultConfig on any read or parse error.
func Load() *Config {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath())
	if err != nil {
		return cfg
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return DefaultConfig()
	}

	return cfg
}

// Save writes the config file next to the executable.
func (c *Config) Save() error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(configPath(), data, 0644)
}
