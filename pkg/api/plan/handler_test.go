package plan_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"financial_viability/pkg/api/plan"
	"financial_viability/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRequest() plan.ScenarioRequest {
	return plan.ScenarioRequest{
		Plan: models.Plan{
			Name:         "seed",
			HorizonYears: 1,
			Revenue: []models.RevenueItem{
				{Name: "Produto A", UnitPrice: 10, BaselineQty: 100},
			},
		},
		DiscountRatePercent: 10,
	}
}

func post(t *testing.T, handler http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestHandleProjections_SeedScenario(t *testing.T) {
	rec := post(t, plan.HandleProjections, seedRequest())
	require.Equal(t, http.StatusOK, rec.Code)

	var resp plan.ProjectionsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Years, 2)
	assert.InDelta(t, 12000, resp.Years[1].Revenue, 1e-9)
	assert.InDelta(t, 12000, resp.CashFlows[1], 1e-9)
	assert.Zero(t, resp.InvestmentTotal)
}

func TestHandleProjections_VariationPercentIsAMultiplier(t *testing.T) {
	req := seedRequest()
	req.VariationPercent = 10
	rec := post(t, plan.HandleProjections, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp plan.ProjectionsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.InDelta(t, 13200, resp.Years[1].Revenue, 1e-6)
	// The summary stays at the base case so scenarios have a fixed reference.
	assert.InDelta(t, 12000, resp.Summary.Revenue, 1e-6)
}

func TestHandleProjections_BadJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	plan.HandleProjections(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleMonthly_RowCount(t *testing.T) {
	rec := post(t, plan.HandleMonthly, seedRequest())
	require.Equal(t, http.StatusOK, rec.Code)

	var resp plan.MonthlyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Monthly, 12)
	assert.Len(t, resp.Annual, 1)
}

func TestHandleViability_NPVWithoutIRRWhenNoSignChange(t *testing.T) {
	rec := post(t, plan.HandleViability, seedRequest())
	require.Equal(t, http.StatusOK, rec.Code)

	var resp plan.ViabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	// All-positive series: NPV exists, IRR is absent.
	assert.InDelta(t, 10909.09, resp.Result.NPV, 0.01)
	assert.Nil(t, resp.Result.IRR)
}

func TestHandleTax_FirstBracket(t *testing.T) {
	rec := post(t, plan.HandleTax, plan.TaxRequest{AnnualRevenue: 120000, Annex: models.AnnexI})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp plan.TaxResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.InDelta(t, 0.04, resp.EffectiveRate, 1e-9)
	assert.InDelta(t, 4800, resp.TaxAmount, 1e-6)
}

func TestHandleBreakEven_Consolidated(t *testing.T) {
	req := seedRequest()
	req.Plan.Revenue[0].Costs = []models.CostItem{{Qty: 1, UnitValue: 4}}
	req.Plan.Fixed = []models.FixedItem{{Description: "aluguel", MonthlyValue: 300}}

	rec := post(t, plan.HandleBreakEven, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		ContributionMarginPercent float64  `json:"contribution_margin_percent"`
		BreakEvenRevenue          *float64 `json:"break_even_revenue"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.BreakEvenRevenue)
	assert.InDelta(t, 3600/0.60, *resp.BreakEvenRevenue, 1e-6)
}

func TestPreflightOptionsShortCircuits(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	rec := httptest.NewRecorder()
	plan.HandleProjections(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Body.Bytes())
}
