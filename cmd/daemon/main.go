package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thenoetrevino/hireboard/internal/config"
	"github.com/thenoetrevino/hireboard/internal/daemon"
	"github.com/thenoetrevino/hireboard/internal/logging"
)

func main() {
	metricsAddr := flag.String("metrics-addr", "", "serve prometheus metrics on this address (e.g. :9464)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if closer, err := logging.Init(cfg.Logging.Path); err != nil {
		slog.Warn("logging to stderr", "error", err)
	} else {
		defer closer.Close()
	}

	// NewServer creates the socket directory with 0700
	server, err := daemon.NewServer(cfg.Daemon.SocketPath)
	if err != nil {
		slog.Error("failed to create daemon", "error", err)
		os.Exit(1)
	}

	if *metricsAddr != "" {
		stop, err := serveMetrics(*metricsAddr, server.Metrics())
		if err != nil {
			slog.Error("failed to start metrics endpoint", "error", err)
			os.Exit(1)
		}
		defer stop()
	}

	slog.Info("hireboard daemon starting", "socket_path", cfg.Daemon.SocketPath, "pid", os.Getpid())

	// Blocks until shutdown
	if err := server.Start(ctx); err != nil {
		slog.Error("daemon error", "error", err)
		os.Exit(1)
	}

	slog.Info("hireboard daemon shutting down gracefully")
}

func serveMetrics(addr string, m *daemon.Metrics) (func(), error) {
	reg := prometheus.NewRegistry()
	if err := m.Register(reg); err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics endpoint stopped", "error", err)
		}
	}()
	slog.Info("serving metrics", "addr", addr)

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
