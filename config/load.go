package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/corelib/errors"
)

var (
	globalConfig  *Config
	viperInstance *viper.Viper
)

// Load reads corepulse's configuration through Viper, merging system, user,
// project, and environment-variable sources in ascending precedence, and
// caches the result.
func Load() (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	v := initViper()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal corepulse config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid corepulse config")
	}

	globalConfig = &cfg
	return globalConfig, nil
}

// LoadFromFile loads configuration from one specific TOML file, ignoring
// the layered system/user/project search (used by tests and one-off tools).
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal config from %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid corepulse config")
	}
	return &cfg, nil
}

// Reset clears the cached configuration; useful for tests.
func Reset() {
	globalConfig = nil
	viperInstance = nil
}

func initViper() *viper.Viper {
	if viperInstance != nil {
		return viperInstance
	}

	v := viper.New()
	v.SetEnvPrefix("COREPULSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	mergeConfigFiles(v)

	viperInstance = v
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("pool.workers", 4)
	v.SetDefault("pool.queue_capacity", 64)
	v.SetDefault("pool.rate_limit_per_second", 0.0)
	v.SetDefault("pool.rate_burst", 1)
	v.SetDefault("pool.memory_pressure_threshold", 0.0)
	v.SetDefault("pool.memory_pressure_interval_ms", 30000)
	v.SetDefault("pool.scheduler_resolution_ms", 1000)

	v.SetDefault("monitor.wait_timeout_ms", 1000)

	v.SetDefault("codec.max_depth", 64)
	v.SetDefault("codec.stream_chunk_size", 4096)
}

// findProjectConfig walks up from the working directory looking for
// corepulse.toml, mirroring the project-config search of the core config
// loader this package is modeled on.
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		path := filepath.Join(dir, "corepulse.toml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// mergeConfigFiles merges configuration files in precedence order (lowest
// to highest): system < user < project. Env vars win over all of them via
// Viper's AutomaticEnv, applied on top by the caller.
func mergeConfigFiles(v *viper.Viper) {
	homeDir, _ := os.UserHomeDir()
	userDir := filepath.Join(homeDir, ".corepulse")
	os.MkdirAll(userDir, 0o755)

	configPaths := []string{
		"/etc/corepulse/config.toml",
		filepath.Join(userDir, "config.toml"),
	}
	if proj := findProjectConfig(); proj != "" {
		configPaths = append(configPaths, proj)
	}

	for _, path := range configPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		tmp := viper.New()
		tmp.SetConfigFile(path)
		tmp.SetConfigType("toml")
		if err := tmp.ReadInConfig(); err != nil {
			continue
		}

		settings := tmp.AllSettings()
		keys := make([]string, 0, len(settings))
		for k := range settings {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			v.Set(k, settings[k])
		}
	}
}
