// Package handler internal/infrastructure/handler/exchange_handler.go
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/damon-houk/exchange-quote-relay/internal/domain/entity"
	domain "github.com/damon-houk/exchange-quote-relay/internal/domain/service"
	"github.com/damon-houk/exchange-quote-relay/internal/infrastructure/logger"
	"github.com/damon-houk/exchange-quote-relay/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
)

// ExchangeRoute is the path template of the quote endpoint
const ExchangeRoute = "/exchange/{from_currency}/{to_currency}"

// QuoteService is what the exchange handler needs from the application layer
type QuoteService interface {
	GetQuote(ctx context.Context, from, to string) (*entity.RateQuote, error)
}

// ExchangeHandler handles HTTP requests for currency pair quotes
type ExchangeHandler struct {
	service QuoteService
	logger  logger.Logger
}

// NewExchangeHandler creates a new exchange handler
func NewExchangeHandler(service QuoteService, log logger.Logger) *ExchangeHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &ExchangeHandler{
		service: service,
		logger:  log,
	}
}

// GetExchange handles retrieving the current quote for a currency pair
func (h *ExchangeHandler) GetExchange(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	vars := mux.Vars(r)
	from := vars["from_currency"]
	to := vars["to_currency"]

	h.logger.Info("Handling exchange request", map[string]interface{}{
		"request_id": requestID,
		"from":       from,
		"to":         to,
	})

	quote, err := h.service.GetQuote(r.Context(), from, to)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCurrencyPair):
			h.logger.Warn("Invalid currency pair", map[string]interface{}{
				"request_id": requestID,
				"from":       from,
				"to":         to,
				"error":      err.Error(),
			})
			sendErrorResponse(w, h.logger, "Invalid currency pair", http.StatusNotFound, requestID)
		case errors.Is(err, domain.ErrUpstreamTimeout):
			h.logger.Error("Upstream timeout", map[string]interface{}{
				"request_id": requestID,
				"from":       from,
				"to":         to,
				"error":      err.Error(),
			})
			sendErrorResponse(w, h.logger, "Upstream service timeout", http.StatusGatewayTimeout, requestID)
		case errors.Is(err, domain.ErrUpstreamUnavailable), errors.Is(err, domain.ErrMalformedUpstreamBody):
			h.logger.Error("Upstream service error", map[string]interface{}{
				"request_id": requestID,
				"from":       from,
				"to":         to,
				"error":      err.Error(),
			})
			sendErrorResponse(w, h.logger, "Upstream service unavailable", http.StatusBadGateway, requestID)
		default:
			h.logger.Error("Unexpected error in exchange handler", map[string]interface{}{
				"request_id": requestID,
				"from":       from,
				"to":         to,
				"error":      err.Error(),
			})
			sendErrorResponse(w, h.logger, "Internal server error", http.StatusInternalServerError, requestID)
		}
		return
	}

	resp := QuoteResponse{
		Sell:      quote.Sell.InexactFloat64(),
		Buy:       quote.Buy.InexactFloat64(),
		Date:      quote.Date.Format(entity.QuoteDateLayout),
		IDAccount: quote.IDAccount,
	}

	h.logger.Info("Exchange quote served", map[string]interface{}{
		"request_id": requestID,
		"from":       from,
		"to":         to,
		"id_account": resp.IDAccount,
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// RegisterRoutes registers the exchange route behind authMiddleware
func (h *ExchangeHandler) RegisterRoutes(router *mux.Router, authMiddleware mux.MiddlewareFunc) {
	router.Handle(ExchangeRoute, authMiddleware(http.HandlerFunc(h.GetExchange))).Methods("GET")

	h.logger.Info("Exchange routes registered", map[string]interface{}{
		"routes": []string{
			"GET " + ExchangeRoute,
		},
	})
}

// sendErrorResponse sends a standardized error response
func sendErrorResponse(w http.ResponseWriter, log logger.Logger, detail string, statusCode int, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := ErrorResponse{
		Detail:    detail,
		Status:    statusCode,
		RequestID: requestID,
	}

	log.Debug("Sending error response", map[string]interface{}{
		"request_id":  requestID,
		"status_code": statusCode,
		"detail":      detail,
	})

	json.NewEncoder(w).Encode(resp)
}
