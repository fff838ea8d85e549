package pricing

import "github.com/shopspring/decimal"

// DefaultVATRate is the standard UK rate.
var DefaultVATRate = decimal.RequireFromString("0.20")

// VATBreakdown splits a net amount. Values are unrounded: rounding to
// 2dp happens once at response assembly so chained line items do not
// compound rounding error.
type VATBreakdown struct {
	Net   decimal.Decimal
	VAT   decimal.Decimal
	Gross decimal.Decimal
}

// CalculateVAT is pure: vat = net * rate, gross = net + vat.
func CalculateVAT(net, rate decimal.Decimal) VATBreakdown {
	vat := net.Mul(rate)
	return VATBreakdown{
		Net:   net,
		VAT:   vat,
		Gross: net.Add(vat),
	}
}
