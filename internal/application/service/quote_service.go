// Package service internal/application/service/quote_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/damon-houk/exchange-quote-relay/internal/domain/entity"
	domain "github.com/damon-houk/exchange-quote-relay/internal/domain/service"
	"github.com/damon-houk/exchange-quote-relay/internal/infrastructure/logger"
	"github.com/damon-houk/exchange-quote-relay/internal/infrastructure/metrics"
	"github.com/damon-houk/exchange-quote-relay/internal/infrastructure/middleware"
	"github.com/google/uuid"
)

// QuoteService turns an upstream pair record into a RateQuote
type QuoteService struct {
	provider domain.QuoteProvider
	logger   logger.Logger
	metrics  *metrics.QuoteMetrics
	now      func() time.Time
	newID    func() string
}

// Option customizes a QuoteService
type Option func(*QuoteService)

// WithClock overrides the time source used for the quote date
func WithClock(now func() time.Time) Option {
	return func(s *QuoteService) {
		s.now = now
	}
}

// WithIDGenerator overrides the id-account generator
func WithIDGenerator(newID func() string) Option {
	return func(s *QuoteService) {
		s.newID = newID
	}
}

// WithMetrics records quote results on m
func WithMetrics(m *metrics.QuoteMetrics) Option {
	return func(s *QuoteService) {
		s.metrics = m
	}
}

// NewQuoteService creates a new quote service
func NewQuoteService(provider domain.QuoteProvider, log logger.Logger, opts ...Option) *QuoteService {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	s := &QuoteService{
		provider: provider,
		logger:   log.WithField("component", "quote_service"),
		now:      time.Now,
		newID:    uuid.NewString,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// GetQuote fetches the pair from -> to and builds a RateQuote.
// Sell is the upstream ask and Buy the upstream bid; date and id-account are generated here.
func (s *QuoteService) GetQuote(ctx context.Context, from, to string) (*entity.RateQuote, error) {
	requestID := middleware.GetRequestID(ctx)
	pairKey := entity.PairKey(from, to)

	log := s.logger.WithFields(map[string]interface{}{
		"request_id": requestID,
		"pair":       pairKey,
	})

	log.Info("Fetching exchange quote", map[string]interface{}{
		"from": from,
		"to":   to,
	})

	pair, err := s.provider.FetchPairQuote(ctx, from, to)
	if err != nil {
		s.count(errorKind(err))
		log.Error("Failed to fetch exchange quote", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("failed to get exchange quote: %w", err)
	}

	log.Debug("Upstream pair received", map[string]interface{}{
		"name":        pair.Name,
		"ask":         pair.Ask.String(),
		"bid":         pair.Bid.String(),
		"create_date": pair.CreateDate,
	})

	quote := &entity.RateQuote{
		Sell:      pair.Ask,
		Buy:       pair.Bid,
		Date:      s.now(),
		IDAccount: s.newID(),
	}

	s.count("ok")
	log.Info("Exchange quote built", map[string]interface{}{
		"sell":       quote.Sell.String(),
		"buy":        quote.Buy.String(),
		"id_account": quote.IDAccount,
	})

	return quote, nil
}

func (s *QuoteService) count(result string) {
	if s.metrics != nil {
		s.metrics.IncQuote(result)
	}
}

// errorKind names an error for the quotes metric
func errorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCurrencyPair):
		return "invalid_pair"
	case errors.Is(err, domain.ErrUpstreamTimeout):
		return "upstream_timeout"
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return "upstream_unavailable"
	case errors.Is(err, domain.ErrMalformedUpstreamBody):
		return "malformed_body"
	default:
		return "error"
	}
}
