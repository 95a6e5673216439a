package viability

import (
	"math"
)

const (
	irrBracketLow    = -0.9999
	irrBracketHigh   = 10.0
	irrBracketGrowth = 12  // doublings of the upper bound while hunting a sign change
	irrMaxIterations = 200 // bisection budget
	irrTolerance     = 1e-7
)

// Rates bundles the discount assumptions used when summarizing a cash-flow
// series.
type Rates struct {
	Discount float64 `json:"discount"`
	Finance  float64 `json:"finance"`
	Reinvest float64 `json:"reinvest"`
}

// Result is the public viability contract. Metrics that cannot be computed are
// absent, never NaN.
type Result struct {
	NPV               float64  `json:"npv"`
	IRR               *float64 `json:"irr,omitempty"`
	MIRR              *float64 `json:"mirr,omitempty"`
	Payback           *int     `json:"payback,omitempty"`
	DiscountedPayback *int     `json:"discounted_payback,omitempty"`
}

// NPV discounts the cash-flow series at the given rate. Closed form; never
// fails.
func NPV(flows []float64, rate float64) float64 {
	npv := 0.0
	for t, cf := range flows {
		npv += cf / math.Pow(1+rate, float64(t))
	}
	return npv
}

// IRR finds the rate at which NPV is zero, using bracketing plus bisection.
// Unguarded Newton-Raphson can diverge on these series, so the bracket search
// is the contract: start wide, double the upper bound while the bracket holds
// no sign change, then bisect. Returns false when the flows have no sign
// change or no bracket can be found.
func IRR(flows []float64) (float64, bool) {
	hasPositive, hasNegative := false, false
	for _, cf := range flows {
		if cf > 0 {
			hasPositive = true
		} else if cf < 0 {
			hasNegative = true
		}
	}
	if !hasPositive || !hasNegative {
		return 0, false
	}

	lo, hi := irrBracketLow, irrBracketHigh
	fLo := NPV(flows, lo)
	fHi := NPV(flows, hi)
	for i := 0; i < irrBracketGrowth && fLo*fHi > 0; i++ {
		hi *= 2
		fHi = NPV(flows, hi)
	}
	if fLo*fHi > 0 {
		return 0, false
	}

	for i := 0; i < irrMaxIterations; i++ {
		mid := (lo + hi) / 2
		fMid := NPV(flows, mid)
		switch {
		case fMid == 0, hi-lo < irrTolerance:
			return mid, true
		case fLo*fMid < 0:
			hi = mid
		default:
			lo = mid
			fLo = fMid
		}
	}
	return (lo + hi) / 2, true
}

// MIRR discounts negative flows to period 0 at financeRate and compounds
// positive flows to the final period at reinvestRate. Returns false when the
// series has no negative flows, no positive flows, or fewer than two periods.
func MIRR(flows []float64, financeRate, reinvestRate float64) (float64, bool) {
	n := len(flows) - 1
	if n <= 0 {
		return 0, false
	}

	pvNegative := 0.0
	fvPositive := 0.0
	for t, cf := range flows {
		if cf < 0 {
			pvNegative += cf / math.Pow(1+financeRate, float64(t))
		} else if cf > 0 {
			fvPositive += cf * math.Pow(1+reinvestRate, float64(n-t))
		}
	}
	if pvNegative == 0 || fvPositive == 0 {
		return 0, false
	}

	mirr := math.Pow(fvPositive/-pvNegative, 1/float64(n)) - 1
	if math.IsNaN(mirr) || math.IsInf(mirr, 0) {
		return 0, false
	}
	return mirr, true
}

// PaybackPeriod returns the first period index at which the cumulative raw
// cash flow reaches zero or better, or false if it never recovers within the
// horizon.
func PaybackPeriod(flows []float64) (int, bool) {
	cumulative := 0.0
	for i, cf := range flows {
		cumulative += cf
		if cumulative >= 0 {
			return i, true
		}
	}
	return 0, false
}

// DiscountedPayback is PaybackPeriod over flows discounted at rate.
func DiscountedPayback(flows []float64, rate float64) (int, bool) {
	cumulative := 0.0
	for i, cf := range flows {
		cumulative += cf / math.Pow(1+rate, float64(i))
		if cumulative >= 0 {
			return i, true
		}
	}
	return 0, false
}

// Summarize evaluates every viability metric for a cash-flow series under the
// given rate assumptions.
func Summarize(flows []float64, rates Rates) Result {
	result := Result{NPV: NPV(flows, rates.Discount)}

	if irr, ok := IRR(flows); ok {
		result.IRR = &irr
	}
	if mirr, ok := MIRR(flows, rates.Finance, rates.Reinvest); ok {
		result.MIRR = &mirr
	}
	if payback, ok := PaybackPeriod(flows); ok {
		result.Payback = &payback
	}
	if discounted, ok := DiscountedPayback(flows, rates.Discount); ok {
		result.DiscountedPayback = &discounted
	}
	return result
}
