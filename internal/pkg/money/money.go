// Package money implements integer arithmetic on amounts expressed in minor
// currency units. Floating point never touches a stored or returned amount.
package money

import (
	domainErrors "github.com/cyna-app/commerce/internal/domain/errors"
)

// Rate is a VAT rate in basis points; 2000 means 20%.
type Rate int64

// DefaultVATRate is the French standard VAT rate.
const DefaultVATRate Rate = 2000

const rateScale = 10000

// Float returns the rate as a fraction, for display only.
func (r Rate) Float() float64 {
	return float64(r) / rateScale
}

// Valid reports whether the rate lies strictly between 0 and 100%.
func (r Rate) Valid() bool {
	return r > 0 && r < rateScale
}

// Breakdown splits a tax-inclusive total into pre-tax and VAT parts.
type Breakdown struct {
	TTC  int64
	HT   int64
	VAT  int64
	Rate Rate
}

// Compute derives HT and VAT from a tax-inclusive amount. HT is
// round(ttc / (1 + rate)) computed in integers with round-half-up; VAT is
// the remainder, so the two always sum exactly to TTC.
func Compute(ttc int64, rate Rate) (Breakdown, error) {
	if ttc < 0 {
		return Breakdown{}, domainErrors.ErrInvalidAmount
	}
	if !rate.Valid() {
		return Breakdown{}, domainErrors.ErrInvalidAmount
	}

	den := rateScale + int64(rate)
	ht := (ttc*rateScale + den/2) / den
	return Breakdown{
		TTC:  ttc,
		HT:   ht,
		VAT:  ttc - ht,
		Rate: rate,
	}, nil
}
