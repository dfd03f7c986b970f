package handler

import (
	"github.com/damon-houk/exchange-quote-relay/internal/application/auth"
	"github.com/damon-houk/exchange-quote-relay/internal/infrastructure/logger"
	"github.com/damon-houk/exchange-quote-relay/internal/infrastructure/metrics"
	"github.com/damon-houk/exchange-quote-relay/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
)

// RouterDeps groups what NewRouter wires together
type RouterDeps struct {
	Quotes        QuoteService
	Authenticator *auth.Authenticator
	Logger        logger.Logger
	Metrics       *metrics.QuoteMetrics
	Gatherer      prometheus.Gatherer
}

// NewRouter builds the relay router: request IDs, access logs and metrics on every
// route, bearer auth on the exchange route only
func NewRouter(deps RouterDeps) *mux.Router {
	log := deps.Logger
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	router := mux.NewRouter()
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.LoggingMiddleware(log))
	if deps.Metrics != nil {
		router.Use(middleware.MetricsMiddleware(deps.Metrics))
	}

	exchangeHandler := NewExchangeHandler(deps.Quotes, log)
	exchangeHandler.RegisterRoutes(router, middleware.BearerAuthMiddleware(deps.Authenticator, log, deps.Metrics))

	systemHandler := NewSystemHandler(deps.Gatherer, log)
	systemHandler.RegisterRoutes(router)

	return router
}
