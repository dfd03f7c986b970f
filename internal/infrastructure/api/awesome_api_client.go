package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/damon-houk/exchange-quote-relay/internal/domain/entity"
	"github.com/damon-houk/exchange-quote-relay/internal/domain/service"
	"github.com/damon-houk/exchange-quote-relay/internal/infrastructure/logger"
	"github.com/damon-houk/exchange-quote-relay/internal/infrastructure/metrics"
	"github.com/damon-houk/exchange-quote-relay/internal/infrastructure/middleware"
	"github.com/shopspring/decimal"
)

const (
	// DefaultBaseURL is the public AwesomeAPI endpoint
	DefaultBaseURL = "https://economia.awesomeapi.com.br"
	lastQuotePath  = "/last"

	// maxBodySize caps how much of an upstream reply is read
	maxBodySize = 1 << 20
)

// AwesomeAPIClient implements service.QuoteProvider against AwesomeAPI
type AwesomeAPIClient struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
	metrics    *metrics.QuoteMetrics
}

// NewAwesomeAPIClient creates a new AwesomeAPI client.
// A nil httpClient gets a client with a 10 second timeout.
func NewAwesomeAPIClient(baseURL string, httpClient *http.Client, log logger.Logger, m *metrics.QuoteMetrics) *AwesomeAPIClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 10 * time.Second,
		}
	}

	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &AwesomeAPIClient{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     log,
		metrics:    m,
	}
}

// awesomeQuote is a single pair record as AwesomeAPI sends it.
// Prices arrive as JSON strings; decimal accepts numbers too.
type awesomeQuote struct {
	Code       string              `json:"code"`
	CodeIn     string              `json:"codein"`
	Name       string              `json:"name"`
	High       string              `json:"high"`
	Low        string              `json:"low"`
	Ask        decimal.NullDecimal `json:"ask"`
	Bid        decimal.NullDecimal `json:"bid"`
	Timestamp  string              `json:"timestamp"`
	CreateDate string              `json:"create_date"`
}

// FetchPairQuote retrieves the latest ask/bid for a currency pair.
// The codes are sent to the provider unchanged; only the lookup key is upper-cased.
func (c *AwesomeAPIClient) FetchPairQuote(ctx context.Context, from, to string) (*entity.PairQuote, error) {
	requestID := middleware.GetRequestID(ctx)
	pairKey := entity.PairKey(from, to)

	reqURL := fmt.Sprintf("%s%s/%s", c.baseURL, lastQuotePath, url.PathEscape(from+"-"+to))

	c.logger.Debug("Requesting upstream quote", map[string]interface{}{
		"request_id": requestID,
		"url":        reqURL,
		"pair":       pairKey,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Add("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe("error", start)
		if isTimeout(err) {
			return nil, fmt.Errorf("failed to execute request: %w: %v", service.ErrUpstreamTimeout, err)
		}
		return nil, fmt.Errorf("failed to execute request: %w: %v", service.ErrUpstreamUnavailable, err)
	}

	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("Error closing response body", map[string]interface{}{
				"request_id": requestID,
				"error":      closeErr.Error(),
			})
		}
	}()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		c.observe("error", start)
		if isTimeout(err) {
			return nil, fmt.Errorf("failed to read response body: %w: %v", service.ErrUpstreamTimeout, err)
		}
		return nil, fmt.Errorf("failed to read response body: %w: %v", service.ErrUpstreamUnavailable, err)
	}
	c.observe(strconv.Itoa(resp.StatusCode), start)

	c.logger.Debug("Upstream response received", map[string]interface{}{
		"request_id": requestID,
		"status":     resp.StatusCode,
		"bytes":      len(bodyBytes),
	})

	switch {
	case resp.StatusCode == http.StatusNotFound:
		// AwesomeAPI answers unknown pairs with 404 and a CoinNotExists body
		return nil, fmt.Errorf("pair %s: %w", pairKey, service.ErrInvalidCurrencyPair)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("API returned error status %d: %w", resp.StatusCode, service.ErrUpstreamUnavailable)
	}

	var pairs map[string]json.RawMessage
	if err := json.Unmarshal(bodyBytes, &pairs); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w: %v", service.ErrMalformedUpstreamBody, err)
	}

	raw, ok := pairs[pairKey]
	if !ok {
		return nil, fmt.Errorf("pair %s not in response: %w", pairKey, service.ErrInvalidCurrencyPair)
	}

	var q awesomeQuote
	if err := json.Unmarshal(raw, &q); err != nil {
		return nil, fmt.Errorf("failed to decode pair %s: %w: %v", pairKey, service.ErrMalformedUpstreamBody, err)
	}

	if !q.Ask.Valid || !q.Bid.Valid {
		return nil, fmt.Errorf("pair %s lacks ask or bid: %w", pairKey, service.ErrMalformedUpstreamBody)
	}

	return &entity.PairQuote{
		PairKey:    pairKey,
		Code:       q.Code,
		CodeIn:     q.CodeIn,
		Name:       q.Name,
		High:       q.High,
		Low:        q.Low,
		Ask:        q.Ask.Decimal,
		Bid:        q.Bid.Decimal,
		Timestamp:  q.Timestamp,
		CreateDate: q.CreateDate,
	}, nil
}

func (c *AwesomeAPIClient) observe(outcome string, start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.ObserveUpstream(outcome, time.Since(start))
}

// isTimeout reports whether err came from a deadline or client timeout
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
