package entity

import (
	"github.com/shopspring/decimal"
)

// PairQuote is the upstream record for one currency pair.
// Ask and Bid are kept exactly as the provider sent them.
type PairQuote struct {
	PairKey    string
	Code       string
	CodeIn     string
	Name       string
	High       string
	Low        string
	Ask        decimal.Decimal
	Bid        decimal.Decimal
	Timestamp  string
	CreateDate string
}
