// internal/mocks/mocks.go
package mocks

import (
	"context"

	"github.com/damon-houk/exchange-quote-relay/internal/domain/entity"
	"github.com/damon-houk/exchange-quote-relay/internal/infrastructure/logger"
	"github.com/stretchr/testify/mock"
)

// MockQuoteProvider mocks the QuoteProvider interface
type MockQuoteProvider struct {
	mock.Mock
}

func (m *MockQuoteProvider) FetchPairQuote(ctx context.Context, from, to string) (*entity.PairQuote, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PairQuote), args.Error(1)
}

// MockQuoteService mocks the quote service consumed by the exchange handler
type MockQuoteService struct {
	mock.Mock
}

func (m *MockQuoteService) GetQuote(ctx context.Context, from, to string) (*entity.RateQuote, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.RateQuote), args.Error(1)
}

// MockLogger mocks the logger interface
type MockLogger struct {
	mock.Mock
}

var _ logger.Logger = (*MockLogger)(nil)

func (m *MockLogger) Debug(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) Info(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) Warn(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) Error(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) Fatal(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) WithField(key string, value interface{}) logger.Logger {
	args := m.Called(key, value)
	return args.Get(0).(logger.Logger)
}

func (m *MockLogger) WithFields(fields map[string]interface{}) logger.Logger {
	args := m.Called(fields)
	return args.Get(0).(logger.Logger)
}
