package format

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   string
	}{
		{name: "thousands", amount: "450000.00", want: "450.000,00"},
		{name: "millions", amount: "1250000.5", want: "1.250.000,50"},
		{name: "small", amount: "9.99", want: "9,99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatPrice(decimal.RequireFromString(tt.amount))
			if !strings.Contains(got, tt.want) {
				t.Errorf("FormatPrice(%s) = %q, want it to contain %q", tt.amount, got, tt.want)
			}
			if !strings.Contains(got, "$") {
				t.Errorf("FormatPrice(%s) = %q, want currency symbol", tt.amount, got)
			}
		})
	}
}
