// Command transcript-api runs the YouTube transcript REST service.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skillsenselab/transcript-api/api"
	"github.com/skillsenselab/transcript-api/config"
	"github.com/skillsenselab/transcript-api/logger"
	"github.com/skillsenselab/transcript-api/observability"
	"github.com/skillsenselab/transcript-api/server"
	"github.com/skillsenselab/transcript-api/transcript"
	"github.com/skillsenselab/transcript-api/youtube"
)

func main() {
	configFile := flag.String("config", "", "path to config.yml (searched if empty)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		logger.Fatal("configuration error", logger.ErrorFields("load", err))
	}

	logger.Init(cfg.Logging)
	log := logger.GetGlobalLogger()
	log.Info("starting service", logger.Fields(
		"name", cfg.Name,
		"version", cfg.Version,
		"environment", cfg.Environment,
	))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdowns := initObservability(ctx, cfg, log)

	// The provider handle is built once and shared read-only by every request.
	provider, err := youtube.NewClient(cfg.YouTube, log)
	if err != nil {
		log.Fatal("youtube client error", logger.ErrorFields("init", err))
	}

	serviceOpts := []transcript.ServiceOption{}
	if cfg.Observability.Enabled {
		metrics, err := observability.NewMetrics(observability.Meter(""))
		if err != nil {
			log.Fatal("metrics error", logger.ErrorFields("init", err))
		}
		serviceOpts = append(serviceOpts, transcript.WithMetrics(metrics))
	}
	service := transcript.NewService(provider, log, serviceOpts...)

	srv := server.New(cfg.Server, log)
	srv.ApplyMiddleware()
	api.NewHandler(service, log).Register(srv.GinEngine())

	if err := srv.Start(ctx); err != nil {
		log.Fatal("server error", logger.ErrorFields("start", err))
	}

	<-ctx.Done()
	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error("shutdown error", logger.ErrorFields("stop", err))
	}
	for _, shutdown := range shutdowns {
		if err := shutdown(shutdownCtx); err != nil {
			log.Error("shutdown error", logger.ErrorFields("observability", err))
		}
	}
	log.Info("service stopped")
	os.Exit(0)
}

// initObservability starts the OTLP exporters when enabled and returns their
// shutdown functions.
func initObservability(ctx context.Context, cfg *config.Config, log *logger.Logger) []func(context.Context) error {
	if !cfg.Observability.Enabled {
		return nil
	}

	var shutdowns []func(context.Context) error

	tp, err := observability.InitTracer(ctx, observability.TracerConfig{
		ServiceName:    cfg.Name,
		ServiceVersion: cfg.Version,
		Environment:    cfg.Environment,
		Endpoint:       cfg.Observability.Endpoint,
		Insecure:       cfg.Observability.Insecure,
		SampleRate:     cfg.Observability.SampleRate,
	})
	if err != nil {
		log.Fatal("tracer error", logger.ErrorFields("init", err))
	}
	shutdowns = append(shutdowns, tp.Shutdown)

	mp, err := observability.InitMeter(ctx, observability.MeterConfig{
		ServiceName:    cfg.Name,
		ServiceVersion: cfg.Version,
		Environment:    cfg.Environment,
		Endpoint:       cfg.Observability.Endpoint,
		Insecure:       cfg.Observability.Insecure,
		Interval:       time.Duration(cfg.Observability.MetricsInterval) * time.Second,
	})
	if err != nil {
		log.Fatal("meter error", logger.ErrorFields("init", err))
	}
	shutdowns = append(shutdowns, mp.Shutdown)

	return shutdowns
}
