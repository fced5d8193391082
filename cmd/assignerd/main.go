// Command assignerd runs the draw service: it connects to NATS, wires the
// engine to a dataset store, subscribes the request/reply handlers and serves
// Prometheus metrics over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gopkg.in/yaml.v3"

	assigner "github.com/xlittlerag/groups-assigner"
	"github.com/xlittlerag/groups-assigner/internal/logging"
	"github.com/xlittlerag/groups-assigner/internal/metrics"
	"github.com/xlittlerag/groups-assigner/service"
	"github.com/xlittlerag/groups-assigner/store"
)

// daemonConfig is the YAML layout of the assignerd configuration file.
type daemonConfig struct {
	// Engine holds the draw search budget.
	Engine assigner.Config `yaml:"engine"`

	// Service holds subjects, queue group and request timeout.
	Service service.Config `yaml:"service"`

	// Store selects and configures the dataset/result store.
	Store struct {
		// Backend is "memory" or "nats".
		Backend string `yaml:"backend"`

		// NATSKV configures the JetStream bucket for the "nats" backend.
		NATSKV store.NATSKVConfig `yaml:"natsKv"`
	} `yaml:"store"`

	// NATS holds the broker connection settings.
	NATS struct {
		URL string `yaml:"url"`
	} `yaml:"nats"`

	// Metrics holds the Prometheus HTTP endpoint settings. An empty listen
	// address disables the endpoint.
	Metrics struct {
		ListenAddr string `yaml:"listenAddr"`
		Namespace  string `yaml:"namespace"`
	} `yaml:"metrics"`

	// LogLevel is "debug", "info", "warn" or "error".
	LogLevel string `yaml:"logLevel"`
}

func (c *daemonConfig) setDefaults() {
	c.Engine.SetDefaults()
	c.Service.SetDefaults()
	if c.Store.Backend == "" {
		c.Store.Backend = "memory"
	}
	if c.NATS.URL == "" {
		c.NATS.URL = nats.DefaultURL
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func loadConfig(path string) (*daemonConfig, error) {
	cfg := &daemonConfig{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}
	cfg.setDefaults()

	return cfg, nil
}

func parseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", level)
	}
}

func main() {
	configPath := flag.String("config", "", "path to YAML configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "assignerd:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := logging.NewSlog(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})))

	registry := prometheus.NewRegistry()
	collector := metrics.NewPrometheus(registry, cfg.Metrics.Namespace)

	nc, err := nats.Connect(cfg.NATS.URL,
		nats.Name("assignerd"),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return fmt.Errorf("failed to connect to NATS at %s: %w", cfg.NATS.URL, err)
	}
	defer nc.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var st store.Store
	switch cfg.Store.Backend {
	case "memory":
		st = store.NewMemory(collector)
	case "nats":
		st, err = store.NewNATSKV(ctx, nc, cfg.Store.NATSKV, collector)
		if err != nil {
			return fmt.Errorf("failed to open NATS KV store: %w", err)
		}
	default:
		return fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	eng, err := assigner.NewEngine(&cfg.Engine,
		assigner.WithLogger(logger),
		assigner.WithMetrics(collector),
	)
	if err != nil {
		return err
	}

	svc, err := service.New(cfg.Service, nc, eng, st,
		service.WithLogger(logger),
		service.WithMetrics(collector),
	)
	if err != nil {
		return err
	}
	if err := svc.Start(); err != nil {
		return err
	}
	defer func() {
		if err := svc.Stop(); err != nil {
			logger.Error("failed to stop service", "error", err)
		}
	}()

	var metricsSrv *http.Server
	if cfg.Metrics.ListenAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		metricsSrv = &http.Server{
			Addr:              cfg.Metrics.ListenAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", "error", err)
			}
		}()
		logger.Info("metrics endpoint listening", "addr", cfg.Metrics.ListenAddr)
	}

	logger.Info("assignerd running",
		"nats", cfg.NATS.URL,
		"store", cfg.Store.Backend,
		"prefix", cfg.Service.SubjectPrefix,
	)

	<-ctx.Done()
	logger.Info("shutting down")

	if metricsSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to stop metrics server", "error", err)
		}
	}

	return nil
}
