package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/damon-houk/exchange-quote-relay/internal/application/auth"
	"github.com/damon-houk/exchange-quote-relay/internal/application/service"
	"github.com/damon-houk/exchange-quote-relay/internal/config"
	"github.com/damon-houk/exchange-quote-relay/internal/infrastructure/api"
	"github.com/damon-houk/exchange-quote-relay/internal/infrastructure/handler"
	"github.com/damon-houk/exchange-quote-relay/internal/infrastructure/logger"
	"github.com/damon-houk/exchange-quote-relay/internal/infrastructure/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	logger.Info("Starting exchange quote relay", nil)

	// Load configuration; API_TOKEN is mandatory
	envFile := os.Getenv("ENV_FILE")
	cfg, envLoaded, err := config.Load(envFile)
	if err != nil {
		logger.Fatal("Failed to load configuration", map[string]interface{}{
			"error": err.Error(),
		})
	}

	log := logger.NewJSONLogger(os.Stdout, logger.ParseLevel(cfg.LogLevel)).
		WithField("service", "exchange-quote-relay")
	logger.SetDefaultLogger(log)

	log.Info("Configuration loaded", map[string]interface{}{
		"env_file_loaded":  envLoaded,
		"port":             cfg.Port,
		"upstream_url":     cfg.UpstreamBaseURL,
		"upstream_timeout": cfg.UpstreamTimeout.String(),
		"log_level":        cfg.LogLevel,
	})

	authn, err := auth.NewAuthenticator(cfg.APIToken)
	if err != nil {
		log.Fatal("Failed to create authenticator", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Metrics on a dedicated registry, plus runtime collectors
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	quoteMetrics := metrics.NewQuoteMetrics(registry)

	// Initialize API client and service
	upstream := api.NewAwesomeAPIClient(
		cfg.UpstreamBaseURL,
		&http.Client{Timeout: cfg.UpstreamTimeout},
		log.WithField("component", "awesomeapi"),
		quoteMetrics,
	)
	quotes := service.NewQuoteService(upstream, log, service.WithMetrics(quoteMetrics))

	router := handler.NewRouter(handler.RouterDeps{
		Quotes:        quotes,
		Authenticator: authn,
		Logger:        log,
		Metrics:       quoteMetrics,
		Gatherer:      registry,
	})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.UpstreamTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Server listening", map[string]interface{}{
			"addr": server.Addr,
		})
		serverErr <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	case sig := <-stop:
		log.Info("Shutting down", map[string]interface{}{
			"signal": sig.String(),
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Graceful shutdown failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	log.Info("Server stopped", nil)
}
