package config

import "testing"

func TestValidateAcceptsDefaults(t *testing.T) {
	c := Config{
		Pool: PoolConfig{Workers: 4, QueueCapacity: 64},
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestValidateRejectsNegativeWorkers(t *testing.T) {
	c := Config{Pool: PoolConfig{Workers: -1}}
	if err := c.Validate(); err == nil {
		t.Fatal("Validate() error = nil, want error for negative Workers")
	}
}

func TestValidateRejectsNegativeQueueCapacity(t *testing.T) {
	c := Config{Pool: PoolConfig{QueueCapacity: -1}}
	if err := c.Validate(); err == nil {
		t.Fatal("Validate() error = nil, want error for negative QueueCapacity")
	}
}

func TestValidateRejectsNegativeRateLimit(t *testing.T) {
	c := Config{Pool: PoolConfig{RateLimitPerSecond: -0.5}}
	if err := c.Validate(); err == nil {
		t.Fatal("Validate() error = nil, want error for negative RateLimitPerSecond")
	}
}

func TestValidateRejectsMemoryPressureThresholdOutOfRange(t *testing.T) {
	cases := []float64{-0.1, 1.1}
	for _, v := range cases {
		c := Config{Pool: PoolConfig{MemoryPressureThreshold: v}}
		if err := c.Validate(); err == nil {
			t.Errorf("Validate() with MemoryPressureThreshold=%v error = nil, want error", v)
		}
	}
}

func TestValidateAcceptsMemoryPressureThresholdBoundaries(t *testing.T) {
	for _, v := range []float64{0, 1} {
		c := Config{Pool: PoolConfig{MemoryPressureThreshold: v}}
		if err := c.Validate(); err != nil {
			t.Errorf("Validate() with MemoryPressureThreshold=%v error = %v, want nil", v, err)
		}
	}
}

func TestValidateRejectsNegativeMaxDepth(t *testing.T) {
	c := Config{Codec: CodecConfig{MaxDepth: -1}}
	if err := c.Validate(); err == nil {
		t.Fatal("Validate() error = nil, want error for negative MaxDepth")
	}
}
