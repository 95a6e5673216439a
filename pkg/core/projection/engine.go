package projection

import (
	"financial_viability/pkg/core/series"
	"financial_viability/pkg/core/tax"
	"financial_viability/pkg/models"
)

// Compute builds the annual accrual projection for a plan under a quantity
// variation factor (1.0 = base case, 1.10 = +10%). It returns one Year per
// period from 0 (initial investment/financing) through the horizon, the
// matching cash-flow series for viability analysis, and the investment total.
func Compute(plan *models.Plan, variation float64) ([]Year, []float64, float64) {
	horizon := plan.Horizon()

	// -------------------------------------------------------------------------
	// Per-product aggregation: revenue and quantity per year off the
	// normalized series, plus the per-unit cost bases.
	// -------------------------------------------------------------------------
	revenuePerYear := make([]float64, horizon)
	qtyPerProductYear := make([][]float64, 0, len(plan.Revenue))
	costBases := make([]float64, 0, len(plan.Revenue))

	for _, product := range plan.Revenue {
		monthly := series.Normalize(product, horizon)
		monthsPerYear := len(monthly) / horizon
		if monthsPerYear == 0 {
			monthsPerYear = 12
		}

		qtyYear := make([]float64, horizon)
		for m, entry := range monthly {
			yearIdx := m / monthsPerYear
			if yearIdx > horizon-1 {
				yearIdx = horizon - 1
			}
			qtyYear[yearIdx] += entry.Qty
			revenuePerYear[yearIdx] += entry.Price * entry.Qty
		}
		qtyPerProductYear = append(qtyPerProductYear, qtyYear)

		// Cost items are entered as qty*unitValue period totals; they are used
		// as the per-sold-unit basis directly, never divided by sold quantity.
		costBases = append(costBases, product.DirectCostBasis()+product.VariableExpenseBasis())
	}

	fixedAnnual := plan.FixedMonthly() * 12
	investmentTotal := plan.InvestmentTotal()
	annuity := plan.Financing.AnnualPayment()

	years := make([]Year, 0, horizon+1)
	cashflows := make([]float64, 0, horizon+1)

	for t := 0; t <= horizon; t++ {
		if t == 0 {
			initial := Year{Year: 0, CashFlow: plan.Financing.Amount - investmentTotal}
			years = append(years, initial)
			cashflows = append(cashflows, initial.CashFlow)
			continue
		}

		y := t - 1
		revenue := revenuePerYear[y] * variation

		cost := 0.0
		for idx, qtyYear := range qtyPerProductYear {
			cost += costBases[idx] * qtyYear[y] * variation
		}

		loanPayment := 0.0
		if t <= plan.Financing.TermYears {
			loanPayment = annuity
		}

		taxAmount := 0.0
		if plan.Settings.CalculateTax {
			_, taxAmount = tax.Compute(revenue, plan.Settings.TaxAnnex)
		}

		operating := revenue - cost - fixedAnnual - taxAmount
		profit := operating
		if plan.Settings.IncludeFinancingInProfit {
			profit -= loanPayment
		}
		cashFlow := operating - loanPayment

		years = append(years, Year{
			Year:         t,
			Revenue:      revenue,
			VariableCost: cost,
			FixedCost:    fixedAnnual,
			LoanPayment:  loanPayment,
			Tax:          taxAmount,
			Profit:       profit,
			CashFlow:     cashFlow,
		})
		cashflows = append(cashflows, cashFlow)
	}

	return years, cashflows, investmentTotal
}

// ComputeSummary returns the base-case first-year aggregates.
func ComputeSummary(plan *models.Plan) Summary {
	years, _, investmentTotal := Compute(plan, 1.0)
	if len(years) < 2 {
		return Summary{InvestmentTotal: investmentTotal}
	}
	year1 := years[1]
	return Summary{
		Revenue:         year1.Revenue,
		VariableCost:    year1.VariableCost,
		FixedCost:       year1.FixedCost,
		Tax:             year1.Tax,
		Profit:          year1.Profit,
		InvestmentTotal: investmentTotal,
	}
}
