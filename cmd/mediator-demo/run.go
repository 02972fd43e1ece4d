package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/andrescamacho/mediator-go/audit"
	"github.com/andrescamacho/mediator-go/internal/infrastructure/config"
	"github.com/andrescamacho/mediator-go/mediator"
	"github.com/andrescamacho/mediator-go/middleware"
	"github.com/andrescamacho/mediator-go/middleware/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// NewRunCommand creates the run subcommand
func NewRunCommand() *cobra.Command {
	var count int
	var failEvery int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Dispatch sample requests through a fully wired mediator",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.MustLoadConfig(configPath)
			return runDemo(cfg, count, failEvery)
		},
	}

	cmd.Flags().IntVar(&count, "count", 5, "Number of sample dispatches")
	cmd.Flags().IntVar(&failEvery, "fail-every", 0, "Make every Nth ping fail (0 = never)")

	return cmd
}

func runDemo(cfg *config.Config, count, failEvery int) error {
	m, store, err := buildMediator(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if verbose {
		ctx = middleware.WithLogger(ctx, stdoutLogger{})
	}

	for i := 1; i <= count; i++ {
		ping := &PingCommand{Message: fmt.Sprintf("demo-%d", i)}
		if failEvery > 0 && i%failEvery == 0 {
			ping.Fail = true
		}

		response, err := m.Send(ctx, ping)
		if err != nil {
			fmt.Printf("dispatch %d failed: %v\n", i, err)
			continue
		}
		fmt.Printf("dispatch %d: %v\n", i, response)
	}

	// One deferred dispatch to show the async entry point
	future := m.SendAsync(ctx, &ShoutQuery{Text: "all done"})
	response, err := future.Await(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("async dispatch: %v\n", response)

	if store != nil {
		counts, err := store.CountByStatus(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("audit trail: %d success, %d error, %d observed\n",
			counts[audit.StatusSuccess], counts[audit.StatusError], counts[audit.StatusObserved])
	}

	return nil
}

// buildMediator wires the mediator with the middleware set the config enables
func buildMediator(cfg *config.Config) (mediator.Mediator, *audit.Store, error) {
	m := mediator.NewMediator()

	// Global middleware first so it wraps everything
	if cfg.Dispatch.DispatchID {
		if err := mediator.Use(m, middleware.DispatchID()); err != nil {
			return nil, nil, err
		}
	}
	if err := mediator.Use(m, middleware.Logging()); err != nil {
		return nil, nil, err
	}
	if cfg.Dispatch.RateLimit > 0 {
		limiter := rate.NewLimiter(rate.Limit(cfg.Dispatch.RateLimit), cfg.Dispatch.RateBurst)
		if err := mediator.Use(m, middleware.RateLimit(limiter)); err != nil {
			return nil, nil, err
		}
	}
	if cfg.Dispatch.Validation {
		if err := mediator.Use(m, middleware.Validation()); err != nil {
			return nil, nil, err
		}
	}
	if cfg.Dispatch.Metrics {
		collector := metrics.NewDispatchCollector()
		if err := collector.Register(prometheus.NewRegistry()); err != nil {
			return nil, nil, err
		}
		if err := mediator.Use(m, metrics.Middleware(collector)); err != nil {
			return nil, nil, err
		}
	}

	var store *audit.Store
	if cfg.Audit.Enabled {
		var err error
		store, err = audit.NewStore(&audit.Config{
			Type: cfg.Audit.Type,
			Path: cfg.Audit.Path,
			DSN:  cfg.Audit.DSN,
		})
		if err != nil {
			return nil, nil, err
		}
		recorder := audit.NewRecorder(store)
		if err := mediator.Use(m, recorder.Middleware()); err != nil {
			return nil, nil, err
		}
		if err := m.RegisterNotification(mediator.Any, recorder); err != nil {
			return nil, nil, err
		}
	}

	if err := mediator.RegisterHandler[*PingCommand](m, &pingHandler{}); err != nil {
		return nil, nil, err
	}
	if err := mediator.RegisterHandler[*ShoutQuery](m, &shoutHandler{}); err != nil {
		return nil, nil, err
	}

	return m, store, nil
}

// stdoutLogger prints middleware log lines for verbose runs
type stdoutLogger struct{}

func (stdoutLogger) Log(level, message string, metadata map[string]interface{}) {
	fmt.Printf("[%s] %s %v\n", level, message, metadata)
}
