package app

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/thenoetrevino/hireboard/internal/events"
	"github.com/thenoetrevino/hireboard/internal/reconcile"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	eventClient events.EventPublisher
	logger      *slog.Logger
	faults      reconcile.FaultInjector
	registry    *prometheus.Registry
}

// WithEventPublisher sets the event publisher for the application
func WithEventPublisher(ec events.EventPublisher) Option {
	return func(cfg *appConfig) {
		cfg.eventClient = ec
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}

// WithFaults injects failures into reconciliation, overriding fault_rate
func WithFaults(f reconcile.FaultInjector) Option {
	return func(cfg *appConfig) {
		cfg.faults = f
	}
}

// WithRegistry registers metrics on reg instead of a fresh registry
func WithRegistry(reg *prometheus.Registry) Option {
	return func(cfg *appConfig) {
		cfg.registry = reg
	}
}
