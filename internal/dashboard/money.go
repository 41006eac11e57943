package dashboard

import "github.com/shopspring/decimal"

var decimalZero = decimal.Zero

var currencySymbols = map[string]string{
	"EUR": "€",
	"USD": "$",
	"GBP": "£",
	"CHF": "CHF ",
	"SEK": "kr ",
	"PLN": "zł ",
}

// FormatMoney renders an amount with the currency's symbol, two decimal
// places. Unknown currency codes are prefixed verbatim.
func FormatMoney(amount decimal.Decimal, currency string) string {
	symbol, ok := currencySymbols[currency]
	if !ok {
		symbol = currency + " "
	}
	if amount.Sign() < 0 {
		return "-" + symbol + amount.Abs().StringFixed(2)
	}
	return symbol + amount.StringFixed(2)
}
