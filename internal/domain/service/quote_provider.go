package service

import (
	"context"
	"errors"

	"github.com/damon-houk/exchange-quote-relay/internal/domain/entity"
)

var (
	// ErrInvalidCurrencyPair is returned when the provider has no record for the requested pair
	ErrInvalidCurrencyPair = errors.New("invalid currency pair")

	// ErrUpstreamUnavailable is returned when the provider cannot be reached or answers with a failure status
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrUpstreamTimeout is returned when the provider call exceeds its deadline.
	// It also matches ErrUpstreamUnavailable.
	ErrUpstreamTimeout = &timeoutError{}

	// ErrMalformedUpstreamBody is returned when the provider reply cannot be parsed
	ErrMalformedUpstreamBody = errors.New("malformed upstream body")
)

type timeoutError struct{}

func (e *timeoutError) Error() string { return "upstream timeout" }

func (e *timeoutError) Unwrap() error { return ErrUpstreamUnavailable }

// QuoteProvider defines the interface for fetching a currency pair from the upstream pricing service
type QuoteProvider interface {
	// FetchPairQuote retrieves the current ask/bid for the pair from -> to
	FetchPairQuote(ctx context.Context, from, to string) (*entity.PairQuote, error)
}
