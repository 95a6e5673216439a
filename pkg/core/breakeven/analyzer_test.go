package breakeven_test

import (
	"testing"

	"financial_viability/pkg/core/breakeven"
	"financial_viability/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marginPlan() *models.Plan {
	return &models.Plan{
		Name:         "margin",
		HorizonYears: 1,
		Revenue: []models.RevenueItem{
			{
				Name:        "Produto A",
				UnitPrice:   10,
				BaselineQty: 100,
				Costs:       []models.CostItem{{Qty: 1, UnitValue: 4}},
			},
		},
		Fixed: []models.FixedItem{
			{Description: "aluguel", MonthlyValue: 300, Category: models.FixedAdministrative},
		},
	}
}

func TestCompute_ConsolidatedMargin(t *testing.T) {
	result := breakeven.Compute(marginPlan(), 1.0)
	require.NotNil(t, result)

	// Revenue 12000, variable 4800, no tax: mc = 7200, 60%.
	assert.InDelta(t, 7200, result.ContributionMargin, 1e-9)
	assert.InDelta(t, 0.60, result.ContributionMarginPercent, 1e-9)
	assert.InDelta(t, 3600, result.FixedCosts, 1e-9)

	require.NotNil(t, result.BreakEvenRevenue)
	assert.InDelta(t, 3600/0.60, *result.BreakEvenRevenue, 1e-6)
}

func TestCompute_BreakEvenIdentity(t *testing.T) {
	// breakEvenRevenue * mcPercent recovers the fixed costs.
	result := breakeven.Compute(marginPlan(), 1.10)
	require.NotNil(t, result)
	require.NotNil(t, result.BreakEvenRevenue)
	assert.InDelta(t, result.FixedCosts, *result.BreakEvenRevenue*result.ContributionMarginPercent, 1e-6)
}

func TestCompute_PerProductAllocation(t *testing.T) {
	plan := marginPlan()
	plan.Revenue = append(plan.Revenue, models.RevenueItem{
		Name:        "Produto B",
		UnitPrice:   20,
		BaselineQty: 150,
	})

	result := breakeven.Compute(plan, 1.0)
	require.NotNil(t, result)
	require.Len(t, result.Products, 2)

	a, b := result.Products[0], result.Products[1]

	// Revenue 12000 vs 36000 of 48000 total.
	assert.InDelta(t, 0.25, a.Share, 1e-9)
	assert.InDelta(t, 0.75, b.Share, 1e-9)
	assert.InDelta(t, 1.0, a.Share+b.Share, 1e-9)

	require.NotNil(t, result.BreakEvenRevenue)
	assert.InDelta(t, *result.BreakEvenRevenue*0.25, a.BreakEvenRevenue, 1e-6)
	assert.InDelta(t, a.BreakEvenRevenue/10, a.BreakEvenQuantity, 1e-6)

	assert.InDelta(t, 10, a.Price, 1e-9)
	assert.InDelta(t, 4, a.CostPerUnit, 1e-9)
	assert.InDelta(t, 6, a.MarginPerUnit, 1e-9)
	assert.InDelta(t, 6*1200, a.MarginTotal, 1e-9)

	assert.Zero(t, b.CostPerUnit)
	assert.InDelta(t, 20, b.MarginPerUnit, 1e-9)
}

func TestCompute_VariableExpensesReduceUnitMargin(t *testing.T) {
	plan := marginPlan()
	plan.Revenue[0].VariableExpenses = []models.CostItem{{Qty: 1, UnitValue: 1.5}}

	result := breakeven.Compute(plan, 1.0)
	require.NotNil(t, result)
	assert.InDelta(t, 1.5, result.Products[0].VariablePerUnit, 1e-9)
	assert.InDelta(t, 10-(4+1.5), result.Products[0].MarginPerUnit, 1e-9)
}

func TestCompute_TaxReducesContributionMargin(t *testing.T) {
	plan := marginPlan()
	plan.Revenue[0].UnitPrice = 100 // 120k/year, annex I first bracket
	plan.Settings.CalculateTax = true
	plan.Settings.TaxAnnex = models.AnnexI

	result := breakeven.Compute(plan, 1.0)
	require.NotNil(t, result)
	// mc = 120000 - 4800 - 4800
	assert.InDelta(t, 110400, result.ContributionMargin, 1e-6)
}

func TestCompute_NoMarginMeansNoBreakEven(t *testing.T) {
	plan := marginPlan()
	plan.Revenue[0].Costs = []models.CostItem{{Qty: 1, UnitValue: 12}} // margin -2/unit

	result := breakeven.Compute(plan, 1.0)
	require.NotNil(t, result)
	assert.Negative(t, result.ContributionMargin)
	assert.Nil(t, result.BreakEvenRevenue)
	assert.Zero(t, result.Products[0].BreakEvenRevenue)
}

func TestCompute_ZeroRevenuePlan(t *testing.T) {
	plan := &models.Plan{Name: "empty", HorizonYears: 1, Fixed: []models.FixedItem{{MonthlyValue: 100}}}
	result := breakeven.Compute(plan, 1.0)
	require.NotNil(t, result)
	assert.Zero(t, result.ContributionMarginPercent)
	assert.Nil(t, result.BreakEvenRevenue)
}
