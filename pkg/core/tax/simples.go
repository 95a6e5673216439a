package tax

import (
	"financial_viability/pkg/models"
)

// Simples Nacional bracket thresholds (RBT12, BRL). Shared by all annexes;
// only the rate/deduction pairs differ per annex.
var thresholds = [6]float64{180000, 360000, 720000, 1800000, 3600000, 4800000}

type bracketTable struct {
	rates      [6]float64
	deductions [6]float64
}

var tables = map[models.TaxAnnex]bracketTable{
	models.AnnexI: {
		rates:      [6]float64{0.04, 0.073, 0.095, 0.107, 0.143, 0.19},
		deductions: [6]float64{0, 5940, 13860, 22500, 87300, 378000},
	},
	models.AnnexII: {
		rates:      [6]float64{0.045, 0.078, 0.10, 0.112, 0.147, 0.30},
		deductions: [6]float64{0, 5940, 13860, 22500, 85500, 720000},
	},
	models.AnnexIII: {
		rates:      [6]float64{0.06, 0.112, 0.135, 0.16, 0.21, 0.33},
		deductions: [6]float64{0, 9360, 17640, 35640, 125640, 648000},
	},
	models.AnnexIV: {
		rates:      [6]float64{0.045, 0.09, 0.102, 0.14, 0.22, 0.33},
		deductions: [6]float64{0, 8100, 12420, 39780, 183780, 828000},
	},
	models.AnnexV: {
		rates:      [6]float64{0.155, 0.18, 0.195, 0.205, 0.23, 0.305},
		deductions: [6]float64{0, 4500, 9900, 17100, 62100, 540000},
	},
}

// Compute evaluates the Simples Nacional table for an annual revenue (RBT12
// proxy) under the given annex. It returns the effective rate and the tax
// amount. Revenue at or below zero, or an unknown annex, yields (0, 0).
//
// Effective rate = (revenue*nominalRate - deduction) / revenue, floored at 0.
// Revenue above the last threshold uses the last bracket.
func Compute(annualRevenue float64, annex models.TaxAnnex) (float64, float64) {
	if annualRevenue <= 0 {
		return 0, 0
	}
	table, ok := tables[annex]
	if !ok {
		return 0, 0
	}

	idx := len(thresholds) - 1
	for j, limit := range thresholds {
		if annualRevenue <= limit {
			idx = j
			break
		}
	}

	effectiveRate := (annualRevenue*table.rates[idx] - table.deductions[idx]) / annualRevenue
	if effectiveRate < 0 {
		effectiveRate = 0
	}
	return effectiveRate, annualRevenue * effectiveRate
}
