package handler

// QuoteResponse represents the response for the exchange endpoint
type QuoteResponse struct {
	Sell      float64 `json:"sell"`
	Buy       float64 `json:"buy"`
	Date      string  `json:"date"`
	IDAccount string  `json:"id-account"`
}

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Detail    string `json:"detail"`
	Status    int    `json:"status"`
	RequestID string `json:"request_id,omitempty"`
}

// HealthResponse represents the response for the health endpoint
type HealthResponse struct {
	Status string `json:"status"`
}
