package converter

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var pricePrinter = message.NewPrinter(language.English)

var centi = decimal.NewFromFloat(0.01)

// FormatPrice renders a USD price for display. Prices of 1000 and above use
// locale grouping without an enforced decimal count, prices below 0.01 show
// four decimal places, everything else shows two.
func FormatPrice(price decimal.Decimal) string {
	switch {
	case price.GreaterThanOrEqual(decimal.NewFromInt(1000)):
		f, _ := price.Float64()
		return pricePrinter.Sprint(number.Decimal(f))
	case price.LessThan(centi):
		return price.StringFixed(4)
	default:
		return price.StringFixed(2)
	}
}
