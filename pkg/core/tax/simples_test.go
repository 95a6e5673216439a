package tax_test

import (
	"testing"

	"financial_viability/pkg/core/tax"
	"financial_viability/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_FirstBracketBoundary(t *testing.T) {
	// Annex I at exactly 180k: bracket 0, nominal 4%, no deduction.
	rate, amount := tax.Compute(180000, models.AnnexI)
	assert.InDelta(t, 0.04, rate, 1e-9)
	assert.InDelta(t, 7200, amount, 1e-6)
}

func TestCompute_DeductionLowersEffectiveRate(t *testing.T) {
	// Annex I at 360k: bracket 1, nominal 7.3%, deduction 5940.
	rate, amount := tax.Compute(360000, models.AnnexI)
	expected := (360000*0.073 - 5940) / 360000
	assert.InDelta(t, expected, rate, 1e-9)
	assert.InDelta(t, 360000*expected, amount, 1e-6)
	assert.Less(t, rate, 0.073)
}

func TestCompute_AboveLastThresholdUsesLastBracket(t *testing.T) {
	rate, _ := tax.Compute(10_000_000, models.AnnexI)
	expected := (10_000_000*0.19 - 378000) / 10_000_000
	assert.InDelta(t, expected, rate, 1e-9)
}

func TestCompute_DegenerateInputs(t *testing.T) {
	for _, revenue := range []float64{0, -1, -50000} {
		rate, amount := tax.Compute(revenue, models.AnnexI)
		assert.Zero(t, rate)
		assert.Zero(t, amount)
	}

	rate, amount := tax.Compute(100000, models.TaxAnnex("IX"))
	assert.Zero(t, rate)
	assert.Zero(t, amount)
}

func TestCompute_EffectiveRateNeverNegative(t *testing.T) {
	// Small revenues in upper brackets of annex V would go negative without
	// the floor; probe the low end of every annex.
	for _, annex := range []models.TaxAnnex{models.AnnexI, models.AnnexII, models.AnnexIII, models.AnnexIV, models.AnnexV} {
		for _, revenue := range []float64{1, 100, 10000, 200000, 500000} {
			rate, _ := tax.Compute(revenue, annex)
			assert.GreaterOrEqual(t, rate, 0.0, "annex %s revenue %v", annex, revenue)
		}
	}
}

func TestCompute_MonotonicAcrossThresholds(t *testing.T) {
	// Effective rate should not decrease as revenue steps up through the first
	// five brackets. The official sixth bracket is the one exception: its large
	// deduction makes the effective rate dip right after 3.6M, so stop there.
	probes := []float64{90000, 180000, 270000, 360000, 540000, 720000, 1_200_000, 1_800_000, 2_700_000, 3_600_000}
	for _, annex := range []models.TaxAnnex{models.AnnexI, models.AnnexIII, models.AnnexV} {
		prev := -1.0
		for _, revenue := range probes {
			rate, _ := tax.Compute(revenue, annex)
			require.GreaterOrEqual(t, rate+1e-12, prev, "annex %s revenue %v", annex, revenue)
			prev = rate
		}
	}
}
