// internal/application/service/quote_service_test.go
package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/damon-houk/exchange-quote-relay/internal/domain/entity"
	domain "github.com/damon-houk/exchange-quote-relay/internal/domain/service"
	"github.com/damon-houk/exchange-quote-relay/internal/infrastructure/logger"
	"github.com/damon-houk/exchange-quote-relay/internal/infrastructure/metrics"
	"github.com/damon-houk/exchange-quote-relay/internal/infrastructure/middleware"
	"github.com/damon-houk/exchange-quote-relay/internal/mocks"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func usdBRL() *entity.PairQuote {
	return &entity.PairQuote{
		PairKey: "USDBRL",
		Code:    "USD",
		CodeIn:  "BRL",
		Name:    "Dólar Americano/Real Brasileiro",
		Ask:     decimal.RequireFromString("5.10"),
		Bid:     decimal.RequireFromString("5.05"),
	}
}

func TestGetQuote(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewJSONLogger(&buf, logger.DebugLevel)
	ctx := context.Background()
	fixed := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

	t.Run("Successful quote", func(t *testing.T) {
		provider := new(mocks.MockQuoteProvider)
		svc := NewQuoteService(provider, log,
			WithClock(func() time.Time { return fixed }),
			WithIDGenerator(func() string { return "3f1c2a1e-8f3b-4e7a-9a51-0d4c2b6f7e11" }),
		)

		provider.On("FetchPairQuote", ctx, "USD", "BRL").Return(usdBRL(), nil).Once()

		quote, err := svc.GetQuote(ctx, "USD", "BRL")

		require.NoError(t, err)
		assert.True(t, quote.Sell.Equal(decimal.RequireFromString("5.10")))
		assert.True(t, quote.Buy.Equal(decimal.RequireFromString("5.05")))
		assert.Equal(t, fixed, quote.Date)
		assert.Equal(t, "3f1c2a1e-8f3b-4e7a-9a51-0d4c2b6f7e11", quote.IDAccount)
		provider.AssertExpectations(t)
	})

	t.Run("Codes are passed to the provider unchanged", func(t *testing.T) {
		provider := new(mocks.MockQuoteProvider)
		svc := NewQuoteService(provider, log)

		provider.On("FetchPairQuote", ctx, "usd", "brl").Return(usdBRL(), nil).Once()

		_, err := svc.GetQuote(ctx, "usd", "brl")

		require.NoError(t, err)
		provider.AssertExpectations(t)
	})

	t.Run("Default id generator yields distinct UUIDs", func(t *testing.T) {
		provider := new(mocks.MockQuoteProvider)
		svc := NewQuoteService(provider, log)

		provider.On("FetchPairQuote", ctx, "USD", "BRL").Return(usdBRL(), nil).Twice()

		first, err := svc.GetQuote(ctx, "USD", "BRL")
		require.NoError(t, err)
		second, err := svc.GetQuote(ctx, "USD", "BRL")
		require.NoError(t, err)

		_, err = uuid.Parse(first.IDAccount)
		assert.NoError(t, err)
		_, err = uuid.Parse(second.IDAccount)
		assert.NoError(t, err)
		assert.NotEqual(t, first.IDAccount, second.IDAccount)
	})

	t.Run("Invalid pair is propagated", func(t *testing.T) {
		provider := new(mocks.MockQuoteProvider)
		svc := NewQuoteService(provider, log)

		provider.On("FetchPairQuote", ctx, "USD", "XXX").
			Return(nil, fmt.Errorf("pair USDXXX not in response: %w", domain.ErrInvalidCurrencyPair)).Once()

		quote, err := svc.GetQuote(ctx, "USD", "XXX")

		assert.Nil(t, quote)
		assert.ErrorIs(t, err, domain.ErrInvalidCurrencyPair)
		provider.AssertExpectations(t)
	})

	t.Run("Upstream failure is propagated", func(t *testing.T) {
		provider := new(mocks.MockQuoteProvider)
		svc := NewQuoteService(provider, log)

		provider.On("FetchPairQuote", mock.Anything, "USD", "BRL").
			Return(nil, fmt.Errorf("failed to execute request: %w", domain.ErrUpstreamUnavailable)).Once()

		_, err := svc.GetQuote(ctx, "USD", "BRL")

		assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
		assert.NotErrorIs(t, err, domain.ErrInvalidCurrencyPair)
	})
}

func TestGetQuoteMetrics(t *testing.T) {
	m := metrics.NewQuoteMetrics(prometheus.NewRegistry())
	provider := new(mocks.MockQuoteProvider)
	svc := NewQuoteService(provider, logger.NewJSONLogger(&bytes.Buffer{}, logger.ErrorLevel), WithMetrics(m))
	ctx := context.Background()

	provider.On("FetchPairQuote", ctx, "USD", "BRL").Return(usdBRL(), nil).Once()
	provider.On("FetchPairQuote", ctx, "USD", "XXX").Return(nil, domain.ErrInvalidCurrencyPair).Once()
	provider.On("FetchPairQuote", ctx, "EUR", "BRL").Return(nil, fmt.Errorf("wrapped: %w", domain.ErrUpstreamTimeout)).Once()

	_, _ = svc.GetQuote(ctx, "USD", "BRL")
	_, _ = svc.GetQuote(ctx, "USD", "XXX")
	_, _ = svc.GetQuote(ctx, "EUR", "BRL")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.QuotesTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QuotesTotal.WithLabelValues("invalid_pair")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QuotesTotal.WithLabelValues("upstream_timeout")))
}

func TestErrorKind(t *testing.T) {
	assert.Equal(t, "invalid_pair", errorKind(domain.ErrInvalidCurrencyPair))
	assert.Equal(t, "upstream_timeout", errorKind(domain.ErrUpstreamTimeout))
	assert.Equal(t, "upstream_unavailable", errorKind(domain.ErrUpstreamUnavailable))
	assert.Equal(t, "malformed_body", errorKind(domain.ErrMalformedUpstreamBody))
	assert.Equal(t, "error", errorKind(errors.New("boom")))
}

func TestGetQuoteLogsFailureWithRequestID(t *testing.T) {
	provider := new(mocks.MockQuoteProvider)
	log := new(mocks.MockLogger)
	scoped := new(mocks.MockLogger)

	log.On("WithField", "component", "quote_service").Return(log).Once()
	svc := NewQuoteService(provider, log)

	ctx := middleware.WithRequestID(context.Background(), "req-42")

	log.On("WithFields", mock.MatchedBy(func(fields map[string]interface{}) bool {
		return fields["request_id"] == "req-42" && fields["pair"] == "USDXXX"
	})).Return(scoped).Once()
	scoped.On("Info", "Fetching exchange quote", mock.Anything).Once()
	scoped.On("Error", "Failed to fetch exchange quote", mock.MatchedBy(func(fields map[string]interface{}) bool {
		return fields["error"] != nil
	})).Once()
	provider.On("FetchPairQuote", ctx, "USD", "XXX").Return(nil, domain.ErrInvalidCurrencyPair).Once()

	_, err := svc.GetQuote(ctx, "USD", "XXX")

	assert.Error(t, err)
	log.AssertExpectations(t)
	scoped.AssertExpectations(t)
	scoped.AssertNotCalled(t, "Info", "Exchange quote built", mock.Anything)
}

func TestGetQuoteLogLinesCarryRequestScope(t *testing.T) {
	var buf bytes.Buffer
	provider := new(mocks.MockQuoteProvider)
	svc := NewQuoteService(provider, logger.NewJSONLogger(&buf, logger.InfoLevel))

	ctx := middleware.WithRequestID(context.Background(), "req-7")
	provider.On("FetchPairQuote", ctx, "USD", "BRL").Return(usdBRL(), nil).Once()

	_, err := svc.GetQuote(ctx, "USD", "BRL")
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Contains(t, string(line), `"request_id":"req-7"`)
		assert.Contains(t, string(line), `"pair":"USDBRL"`)
		assert.Contains(t, string(line), `"component":"quote_service"`)
	}
}
