package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/teranos/corelib/config"
	"github.com/teranos/corelib/job"
	"github.com/teranos/corelib/logger"
	"github.com/teranos/corelib/pool"
	"github.com/teranos/corelib/resource"
	"github.com/teranos/corelib/stream"
	"github.com/teranos/corelib/wire"
)

// RunCmd wires the configuration, resource monitor, and worker pool
// together: a TickerResource registered on the monitor periodically
// submits a sample codec round-trip job to the pool, demonstrating the
// full pipeline end to end.
var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the corepulse demo pipeline",
	Long: `Starts a resource monitor driving a worker pool: every few seconds a
ticker resource submits a job that serializes and deserializes a sample
wire value, exercising the codec/resource/pool stack together.

Press Ctrl+C for a graceful shutdown: the ticker is unregistered first,
then the pool drains any in-flight job before exiting.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		mon, err := resource.New(nil)
		if err != nil {
			return fmt.Errorf("failed to start resource monitor: %w", err)
		}
		defer mon.Stop()

		dispatcher := sampleDispatcher{}
		scheduler := pool.NewTickerScheduler(
			time.Duration(cfg.Pool.SchedulerResolutionMS) * time.Millisecond)

		p, err := pool.New(pool.Config{
			Workers:                 cfg.Pool.Workers,
			QueueCapacity:           cfg.Pool.QueueCapacity,
			Dispatcher:              dispatcher,
			Scheduler:               scheduler,
			RateLimit:               rate.Limit(cfg.Pool.RateLimitPerSecond),
			RateBurst:               cfg.Pool.RateBurst,
			MemoryPressureThreshold: cfg.Pool.MemoryPressureThreshold,
			MemoryPressureInterval:  time.Duration(cfg.Pool.MemoryPressureIntervalMS) * time.Millisecond,
		})
		if err != nil {
			return fmt.Errorf("failed to start worker pool: %w", err)
		}

		ticker := resource.NewTickerResource(2*time.Second, func(time.Time) {
			j := job.New("codec.sample", samplePayload(), dispatcher)
			p.Submit(j, 500*time.Millisecond)
		})
		mon.Register(ticker)

		logger.PoolInfow("corepulse running",
			"workers", cfg.Pool.Workers, "queue_capacity", cfg.Pool.QueueCapacity)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh

		logger.PoolInfow("shutting down")
		ticker.Stop()
		mon.Unregister(ticker)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return p.Stop(ctx)
	},
}

type sampleDispatcher struct{}

func (sampleDispatcher) Dispatch(j *job.Job) error {
	encoded, err := stream.ToString(j.Payload())
	if err != nil {
		return err
	}

	decoded := wire.NewString(true)
	if err := stream.FromString(encoded, decoded); err != nil {
		return err
	}

	logger.JobInfow("sample job executed",
		logger.FieldJobID, string(j.ID()), "roundtrip", decoded.Value())
	return nil
}

func samplePayload() wire.Element {
	s := wire.NewString(true)
	s.SetValue("hello from corepulse")
	return s
}
