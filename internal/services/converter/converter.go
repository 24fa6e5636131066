// Package converter implements the bridge conversion engine: a pure
// computation from (amount, source asset, destination asset, slippage) to a
// quoted destination amount over an injected price catalog.
package converter

import (
	"github.com/shopspring/decimal"

	"github.com/puentelabs/puente/internal/catalog"
	"github.com/puentelabs/puente/internal/domain"
)

// outputPrecision decimal places of the quoted output.
const outputPrecision = 6

// feePrecision decimal places of the USD network fee estimate.
const feePrecision = 3

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// SlippageChoices is the enumerated set of slippage tolerances offered to
// the user, in percentage points.
var SlippageChoices = []decimal.Decimal{
	decimal.NewFromFloat(0.5),
	decimal.NewFromFloat(1.0),
	decimal.NewFromFloat(2.0),
}

// Engine computes quotes over a fixed catalog. It has no side effects and
// never fails: unresolvable assets and unparseable amounts degrade to a zero
// output, the caller is expected to block submission on non-positive quotes.
type Engine struct {
	catalog catalog.Catalog
}

// New creates an Engine over the given catalog.
func New(c catalog.Catalog) *Engine {
	return &Engine{catalog: c}
}

// Catalog returns the price table the engine quotes against.
func (e *Engine) Catalog() catalog.Catalog {
	return e.catalog
}

// Quote computes the destination amount for a conversion request.
//
// Fiat source: raw = (amount / sourceRate) / destPrice.
// Crypto source: raw = (amount * sourcePrice) / destPrice.
// The slippage haircut is then applied verbatim: out = raw * (1 - pct/100).
// Slippage is not clamped here; callers restrict it to SlippageChoices.
func (e *Engine) Quote(req domain.ConversionRequest) domain.Quote {
	q := domain.Quote{Request: req}

	dest, err := e.catalog.CryptoByCode(req.DestCode)
	if err != nil {
		return q
	}
	q.Rate = dest.Price
	q.NetworkFeeUSD = dest.Fee.Mul(dest.Price).Round(feePrecision)

	amount := ParseAmount(req.Amount)

	var raw decimal.Decimal
	switch req.SourceMode {
	case domain.SourceModeFiat:
		src, err := e.catalog.FiatByCode(req.SourceCode)
		if err != nil {
			return q
		}
		raw = amount.Div(src.Rate).Div(dest.Price)
	case domain.SourceModeCrypto:
		src, err := e.catalog.CryptoByCode(req.SourceCode)
		if err != nil {
			return q
		}
		raw = amount.Mul(src.Price).Div(dest.Price)
		srcUSD := amount.Mul(src.Price)
		q.SourceUSD = &srcUSD
	default:
		return q
	}

	q.RawOutput = raw
	out := raw.Mul(one.Sub(req.SlippagePct.Div(hundred)))
	q.Output = out.Round(outputPrecision)
	q.OutputUSD = q.Output.Mul(dest.Price)
	return q
}

// NetworkFeeUSD estimates the destination network fee in USD. When a live
// gas price is known it is blended with the fixed gas unit constant,
// otherwise the static catalog fee applies. The gas price is optional and
// comes from the fee oracle; a missing value is not an error.
func (e *Engine) NetworkFeeUSD(destCode string, gasPrice decimal.Decimal) decimal.Decimal {
	dest, err := e.catalog.CryptoByCode(destCode)
	if err != nil {
		return decimal.Zero
	}
	fee := dest.Fee
	if gasPrice.GreaterThan(decimal.Zero) {
		fee = gasPrice.Mul(decimal.NewFromInt(gasUnits))
	}
	return fee.Mul(dest.Price).Round(feePrecision)
}

// gasUnits fixed gas amount of a plain transfer.
const gasUnits = 21000
