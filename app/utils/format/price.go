package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var priceAccounting = accounting.Accounting{Symbol: "$", Precision: 2, Thousand: ".", Decimal: ","}

// FormatPrice renders a price for admin listings, e.g. "$450.000,00".
func FormatPrice(amount decimal.Decimal) string {
	return priceAccounting.FormatMoneyBigRat(amount.Rat())
}
