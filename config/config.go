// Package config layers corepulse's configuration from defaults, TOML
// files, and environment variables using Viper, the way am's core
// configuration does it, trimmed to this module's own concerns: the
// worker pool, resource monitor, and codec.
package config

// Config is the top-level corepulse configuration.
type Config struct {
	Pool    PoolConfig    `mapstructure:"pool"`
	Monitor MonitorConfig `mapstructure:"monitor"`
	Codec   CodecConfig   `mapstructure:"codec"`
}

// PoolConfig configures the worker pool (pool.Config).
type PoolConfig struct {
	Workers                 int     `mapstructure:"workers"`                   // Number of worker goroutines (default: 4)
	QueueCapacity            int     `mapstructure:"queue_capacity"`            // Bounded queue size (default: 64)
	RateLimitPerSecond       float64 `mapstructure:"rate_limit_per_second"`     // 0 disables rate limiting
	RateBurst                int     `mapstructure:"rate_burst"`                // Token bucket burst size
	MemoryPressureThreshold  float64 `mapstructure:"memory_pressure_threshold"` // 0.0-1.0, 0 disables the watchdog
	MemoryPressureIntervalMS int     `mapstructure:"memory_pressure_interval_ms"`
	SchedulerResolutionMS    int     `mapstructure:"scheduler_resolution_ms"` // TickerScheduler poll resolution
}

// MonitorConfig configures the resource monitor.
type MonitorConfig struct {
	WaitTimeoutMS int `mapstructure:"wait_timeout_ms"` // Fallback periodic re-evaluation interval
}

// CodecConfig configures the wire/stream codec layer.
type CodecConfig struct {
	MaxDepth      int `mapstructure:"max_depth"`       // Nesting depth guard (§6.3 depth overflow)
	StreamChunkSize int `mapstructure:"stream_chunk_size"` // Streamer's bounded read/write window
}

// Validate checks the configuration for internally-invalid values (not
// missing-file or I/O concerns, which Load surfaces directly).
func (c *Config) Validate() error {
	if c.Pool.Workers < 0 {
		return errNonNegative("pool.workers", c.Pool.Workers)
	}
	if c.Pool.QueueCapacity < 0 {
		return errNonNegative("pool.queue_capacity", c.Pool.QueueCapacity)
	}
	if c.Pool.RateLimitPerSecond < 0 {
		return errNonNegativeFloat("pool.rate_limit_per_second", c.Pool.RateLimitPerSecond)
	}
	if c.Pool.MemoryPressureThreshold < 0 || c.Pool.MemoryPressureThreshold > 1 {
		return errRange("pool.memory_pressure_threshold", c.Pool.MemoryPressureThreshold)
	}
	if c.Codec.MaxDepth < 0 {
		return errNonNegative("codec.max_depth", c.Codec.MaxDepth)
	}
	return nil
}
