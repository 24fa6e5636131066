package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ConversionRequest inputs of a single quote computation. It is derived from
// UI state and recomputed from scratch on every change.
type ConversionRequest struct {
	// Amount raw user input, digits with at most one decimal point.
	Amount string `json:"amount"`
	// SourceMode fiat or crypto.
	SourceMode SourceMode `json:"source_mode"`
	// SourceCode source asset code within the mode's catalog.
	SourceCode string `json:"source_code"`
	// DestCode destination asset code, always crypto.
	DestCode string `json:"dest_code"`
	// SlippagePct tolerance haircut in percentage points.
	SlippagePct decimal.Decimal `json:"slippage_pct"`
}

// Quote computed conversion output with derived display values.
type Quote struct {
	// ID reference identifier of this quote.
	ID string `json:"id"`
	// Request the inputs this quote was computed from.
	Request ConversionRequest `json:"request"`
	// RawOutput destination units before the slippage haircut.
	RawOutput decimal.Decimal `json:"raw_output"`
	// Output destination units after slippage, rounded to 6 decimal places.
	Output decimal.Decimal `json:"output"`
	// SourceUSD USD equivalent of the source amount, crypto source only.
	SourceUSD *decimal.Decimal `json:"source_usd,omitempty"`
	// OutputUSD USD equivalent of the quoted output.
	OutputUSD decimal.Decimal `json:"output_usd"`
	// Rate USD price of one destination unit.
	Rate decimal.Decimal `json:"rate"`
	// NetworkFeeUSD destination network fee estimate in USD, 3 decimal places.
	NetworkFeeUSD decimal.Decimal `json:"network_fee_usd"`
	// Timestamp when the quote was computed.
	Timestamp time.Time `json:"ts"`
}

// Positive reports whether the quoted output is actionable.
func (q *Quote) Positive() bool {
	return q.Output.GreaterThan(decimal.Zero)
}

// String returns a human-readable string representation.
func (q *Quote) String() string {
	return fmt.Sprintf("%s %s -> %s %s", q.Request.Amount, q.Request.SourceCode, q.Output.StringFixed(6), q.Request.DestCode)
}
