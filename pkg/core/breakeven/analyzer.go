// Package breakeven decomposes a plan's first operating year into
// contribution-margin and break-even figures, consolidated and per product.
package breakeven

import (
	"financial_viability/pkg/core/projection"
	"financial_viability/pkg/core/series"
	"financial_viability/pkg/models"
)

// Result is the consolidated contribution-margin view. BreakEvenRevenue is
// absent when the margin percentage is not positive (break-even unreachable).
type Result struct {
	ContributionMargin        float64            `json:"contribution_margin"`
	ContributionMarginPercent float64            `json:"contribution_margin_percent"`
	FixedCosts                float64            `json:"fixed_costs"`
	BreakEvenRevenue          *float64           `json:"break_even_revenue,omitempty"`
	Products                  []ProductBreakdown `json:"products"`
}

// ProductBreakdown allocates the consolidated break-even to one product by its
// revenue share.
type ProductBreakdown struct {
	Name              string  `json:"name"`
	Share             float64 `json:"share"`
	BreakEvenRevenue  float64 `json:"break_even_revenue"`
	BreakEvenQuantity float64 `json:"break_even_quantity"`
	Price             float64 `json:"price"`
	CostPerUnit       float64 `json:"cost_per_unit"`
	VariablePerUnit   float64 `json:"variable_per_unit"`
	MarginPerUnit     float64 `json:"margin_per_unit"`
	MarginTotal       float64 `json:"margin_total"`
}

// Compute derives the break-even decomposition from the year-1 projection
// under the given variation factor. Returns nil when the plan has no
// operating year.
func Compute(plan *models.Plan, variation float64) *Result {
	years, _, _ := projection.Compute(plan, variation)
	if len(years) < 2 {
		return nil
	}
	year1 := years[1]

	mc := year1.Revenue - year1.VariableCost - year1.Tax
	mcPercent := 0.0
	if year1.Revenue > 0 {
		mcPercent = mc / year1.Revenue
	}

	result := &Result{
		ContributionMargin:        mc,
		ContributionMarginPercent: mcPercent,
		FixedCosts:                year1.FixedCost,
	}

	breakEven := 0.0
	if mcPercent > 0 {
		breakEven = year1.FixedCost / mcPercent
		result.BreakEvenRevenue = &breakEven
	}

	horizon := plan.Horizon()
	for _, product := range plan.Revenue {
		monthly := series.Normalize(product, horizon)

		// First operating year only.
		revenue := 0.0
		quantity := 0.0
		for m := 0; m < 12 && m < len(monthly); m++ {
			revenue += monthly[m].Price * monthly[m].Qty * variation
			quantity += monthly[m].Qty * variation
		}

		share := 0.0
		if year1.Revenue > 0 {
			share = revenue / year1.Revenue
		}
		avgPrice := 0.0
		if quantity > 0 {
			avgPrice = revenue / quantity
		}

		productBE := share * breakEven
		beQty := 0.0
		if avgPrice > 0 {
			beQty = productBE / avgPrice
		}

		costPerUnit := product.DirectCostBasis()
		varPerUnit := product.VariableExpenseBasis()
		marginPerUnit := avgPrice - (costPerUnit + varPerUnit)

		result.Products = append(result.Products, ProductBreakdown{
			Name:              product.Name,
			Share:             share,
			BreakEvenRevenue:  productBE,
			BreakEvenQuantity: beQty,
			Price:             avgPrice,
			CostPerUnit:       costPerUnit,
			VariablePerUnit:   varPerUnit,
			MarginPerUnit:     marginPerUnit,
			MarginTotal:       marginPerUnit * quantity,
		})
	}

	return result
}
