package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// QuoteDateLayout is the layout of the date field in a rate quote response
const QuoteDateLayout = "2006-01-02 15:04:05"

// RateQuote is the normalized answer returned to callers
type RateQuote struct {
	Sell      decimal.Decimal
	Buy       decimal.Decimal
	Date      time.Time
	IDAccount string
}

// PairKey builds the upstream lookup key for a currency pair, e.g. "USDBRL"
func PairKey(from, to string) string {
	return strings.ToUpper(from + to)
}
