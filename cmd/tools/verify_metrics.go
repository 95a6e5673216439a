package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"financial_viability/pkg/core/breakeven"
	"financial_viability/pkg/core/cashflow"
	"financial_viability/pkg/core/projection"
	"financial_viability/pkg/core/viability"
	"financial_viability/pkg/models"

	"github.com/hjson/hjson-go/v4"
)

// Sanity harness for the engine math: loads the example plan, runs every
// engine stage and checks the known-good figures. Run from the repo root.
func main() {
	planPath := filepath.Join("config", "example_plan.hjson")
	plan, err := loadPlan(planPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("--- Plan: %s (%d year horizon) ---\n", plan.Name, plan.Horizon())

	years, cashflows, investmentTotal := projection.Compute(plan, 1.0)
	fmt.Println("--- Annual Projection ---")
	for _, y := range years {
		fmt.Printf("  year %d: revenue=%.2f cost=%.2f fixed=%.2f tax=%.2f profit=%.2f cf=%.2f\n",
			y.Year, y.Revenue, y.VariableCost, y.FixedCost, y.Tax, y.Profit, y.CashFlow)
	}
	fmt.Printf("  investment total: %.2f\n", investmentTotal)

	monthly, annual := cashflow.ComputeMonthly(plan, 1.0)
	fmt.Println("--- Monthly/Annual Consistency ---")
	allOK := true
	for y := range annual {
		sum := 0.0
		for m := y * 12; m < (y+1)*12; m++ {
			sum += monthly[m].Revenue
		}
		ok := math.Abs(sum-years[y+1].Revenue) < 1e-6
		allOK = allOK && ok
		fmt.Printf("  year %d: sum(monthly)=%.2f annual=%.2f %s\n", y+1, sum, years[y+1].Revenue, mark(ok))
	}

	fmt.Println("--- Viability ---")
	result := viability.Summarize(cashflows, viability.Rates{Discount: 0.10, Finance: 0.10, Reinvest: 0.10})
	fmt.Printf("  NPV@10%%: %.2f\n", result.NPV)
	if result.IRR != nil {
		fmt.Printf("  IRR: %.4f\n", *result.IRR)
	} else {
		fmt.Println("  IRR: n/a (no sign change)")
	}

	// Known seed: flows [-1000, 300 x4] -> IRR ~7.71%.
	seed := []float64{-1000, 300, 300, 300, 300}
	irr, ok := viability.IRR(seed)
	irrOK := ok && math.Abs(irr-0.0771) < 1e-3
	allOK = allOK && irrOK
	fmt.Printf("  seed IRR: %.4f (want ~0.0771) %s\n", irr, mark(irrOK))
	npvAtIRR := viability.NPV(seed, irr)
	rootOK := math.Abs(npvAtIRR) < 1e-3
	allOK = allOK && rootOK
	fmt.Printf("  NPV(seed, irr): %.6f %s\n", npvAtIRR, mark(rootOK))

	fmt.Println("--- Break-Even ---")
	be := breakeven.Compute(plan, 1.0)
	if be != nil && be.BreakEvenRevenue != nil {
		identity := math.Abs(*be.BreakEvenRevenue*be.ContributionMarginPercent - be.FixedCosts)
		idOK := identity < 1e-6
		allOK = allOK && idOK
		fmt.Printf("  mc=%.2f (%.1f%%) break-even revenue=%.2f identity %s\n",
			be.ContributionMargin, be.ContributionMarginPercent*100, *be.BreakEvenRevenue, mark(idOK))
	} else {
		fmt.Println("  break-even unreachable (non-positive margin)")
	}

	if !allOK {
		fmt.Println("RESULT: FAIL")
		os.Exit(1)
	}
	fmt.Println("RESULT: OK")
}

func loadPlan(path string) (*models.Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan: %w", err)
	}

	// hjson decodes into generic maps; round-trip through JSON to land on the
	// typed plan struct.
	var raw any
	if err := hjson.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse hjson: %w", err)
	}
	jsonData, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}

	var plan models.Plan
	if err := json.Unmarshal(jsonData, &plan); err != nil {
		return nil, fmt.Errorf("failed to decode plan: %w", err)
	}
	return &plan, nil
}

func mark(ok bool) string {
	if ok {
		return "OK"
	}
	return "FAIL"
}
