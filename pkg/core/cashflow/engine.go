package cashflow

import (
	"financial_viability/pkg/core/schedule"
	"financial_viability/pkg/core/series"
	"financial_viability/pkg/core/tax"
	"financial_viability/pkg/models"
)

// payable pairs a recurring amount source with its own installment queue and
// payment terms.
type payable struct {
	basis         float64 // per-sold-unit basis for variable items, monthly value for fixed
	creditPercent float64
	installments  int
	queue         *schedule.Queue
}

// ComputeMonthly builds the month-by-month accrual and cash detail for a plan
// under a quantity variation factor, plus its annual aggregation.
//
// Cash timing: each receivable/payable bucket schedules the month's new
// accrual and then pops the amount due now, so a credit installment scheduled
// at offset 1 is received exactly one month later. Tax is paid in the
// accrual month. The loan draws in at month 0 and amortizes monthly over the
// term; investments leave at their acquisition month, lump-sum or spread over
// installments.
func ComputeMonthly(plan *models.Plan, variation float64) ([]MonthlyRow, []AnnualRow) {
	horizon := plan.Horizon()
	monthsTotal := horizon * 12

	normalized := make([][]models.MonthlyEntry, len(plan.Revenue))
	for i, product := range plan.Revenue {
		normalized[i] = series.Normalize(product, horizon)
	}

	// One receivable queue per product, one payable queue per cost/expense
	// item (each carries its own terms), one per fixed item.
	receivables := make([]*schedule.Queue, len(plan.Revenue))
	variablePayables := make([][]payable, len(plan.Revenue))
	for i, product := range plan.Revenue {
		receivables[i] = schedule.NewQueue(monthsTotal)
		for _, c := range append(append([]models.CostItem{}, product.Costs...), product.VariableExpenses...) {
			variablePayables[i] = append(variablePayables[i], payable{
				basis:         c.Basis(),
				creditPercent: c.CreditPercent,
				installments:  c.Installments,
				queue:         schedule.NewQueue(monthsTotal),
			})
		}
	}
	fixedPayables := make([]payable, len(plan.Fixed))
	for i, item := range plan.Fixed {
		fixedPayables[i] = payable{
			basis:         item.MonthlyValue,
			creditPercent: item.CreditPercent,
			installments:  item.Installments,
			queue:         schedule.NewQueue(monthsTotal),
		}
	}

	effectiveRates := effectiveRatesPerYear(plan, normalized, variation, horizon)
	investmentOut := investmentOutflows(plan, monthsTotal)

	monthlyPayment := plan.Financing.AnnualPayment() / 12
	loanMonths := plan.Financing.TermYears * 12

	fixedMonthly := plan.FixedMonthly()

	rows := make([]MonthlyRow, 0, monthsTotal)
	for m := 0; m < monthsTotal; m++ {
		revenueM := 0.0
		varCostM := 0.0
		cashReceived := 0.0
		cashPaidVariable := 0.0

		for i, product := range plan.Revenue {
			entry := normalized[i][m]
			qty := entry.Qty * variation
			rev := entry.Price * qty
			revenueM += rev

			cashReceived += receivables[i].Schedule(rev, product.CreditPercent, product.Installments)
			cashReceived += receivables[i].Pop()

			for _, p := range variablePayables[i] {
				amount := p.basis * qty
				varCostM += amount
				cashPaidVariable += p.queue.Schedule(amount, p.creditPercent, p.installments)
				cashPaidVariable += p.queue.Pop()
			}
		}

		cashPaidFixed := 0.0
		for _, p := range fixedPayables {
			cashPaidFixed += p.queue.Schedule(p.basis, p.creditPercent, p.installments)
			cashPaidFixed += p.queue.Pop()
		}

		taxM := 0.0
		if plan.Settings.CalculateTax {
			taxM = revenueM * effectiveRates[m/12]
		}

		loanOut := 0.0
		if m < loanMonths {
			loanOut = monthlyPayment
		}
		financingCF := -loanOut
		if m == 0 {
			financingCF += plan.Financing.Amount
		}

		operationalCF := cashReceived - cashPaidVariable - cashPaidFixed - taxM
		investmentCF := -investmentOut[m]

		profitM := revenueM - varCostM - fixedMonthly - taxM
		if plan.Settings.IncludeFinancingInProfit {
			profitM -= loanOut
		}

		rows = append(rows, MonthlyRow{
			Month:        m + 1,
			Revenue:      revenueM,
			CashRevenue:  cashReceived,
			VariableCost: varCostM,
			FixedCost:    fixedMonthly,
			Tax:          taxM,
			Profit:       profitM,
			Operational:  operationalCF,
			Financing:    financingCF,
			Investment:   investmentCF,
			Total:        operationalCF + financingCF + investmentCF,
		})
	}

	return rows, aggregateAnnual(rows, horizon)
}

// effectiveRatesPerYear derives one effective tax rate per operating year from
// that year's accrual revenue under the active variation.
func effectiveRatesPerYear(plan *models.Plan, normalized [][]models.MonthlyEntry, variation float64, horizon int) []float64 {
	rates := make([]float64, horizon)
	if !plan.Settings.CalculateTax {
		return rates
	}
	revenueYears := make([]float64, horizon)
	for _, monthly := range normalized {
		for m, entry := range monthly {
			year := m / 12
			if year > horizon-1 {
				year = horizon - 1
			}
			revenueYears[year] += entry.Price * entry.Qty * variation
		}
	}
	for y, revenue := range revenueYears {
		rates[y], _ = tax.Compute(revenue, plan.Settings.TaxAnnex)
	}
	return rates
}

// investmentOutflows lays each investment's cash exits onto the month grid.
// Lump-sum hits the acquisition month; installment mode spreads the value
// evenly over N months starting there. Amounts past the horizon are dropped.
func investmentOutflows(plan *models.Plan, monthsTotal int) []float64 {
	out := make([]float64, monthsTotal)
	for _, item := range plan.Investments {
		if item.Month < 0 || item.Month >= monthsTotal {
			continue
		}
		if item.PaymentMode == models.PaymentInstallment && item.Installments > 1 {
			piece := item.Value / float64(item.Installments)
			for k := 0; k < item.Installments; k++ {
				m := item.Month + k
				if m >= monthsTotal {
					break
				}
				out[m] += piece
			}
			continue
		}
		out[item.Month] += item.Value
	}
	return out
}

func aggregateAnnual(rows []MonthlyRow, horizon int) []AnnualRow {
	annual := make([]AnnualRow, 0, horizon)
	for y := 0; y < horizon; y++ {
		row := AnnualRow{Year: y + 1}
		for m := y * 12; m < (y+1)*12 && m < len(rows); m++ {
			row.Revenue += rows[m].Revenue
			row.CashRevenue += rows[m].CashRevenue
			row.VariableCost += rows[m].VariableCost
			row.FixedCost += rows[m].FixedCost
			row.Tax += rows[m].Tax
			row.Profit += rows[m].Profit
			row.Operational += rows[m].Operational
			row.Financing += rows[m].Financing
			row.Investment += rows[m].Investment
			row.Total += rows[m].Total
		}
		annual = append(annual, row)
	}
	return annual
}
