// Package plan exposes the projection engine over HTTP. Handlers are thin
// JSON adapters: decode a plan snapshot plus scenario knobs, call the pure
// engine operations, encode the plain result structures.
package plan

import (
	"encoding/json"
	"net/http"

	"financial_viability/pkg/core/breakeven"
	"financial_viability/pkg/core/cashflow"
	"financial_viability/pkg/core/projection"
	"financial_viability/pkg/core/store"
	"financial_viability/pkg/core/tax"
	"financial_viability/pkg/core/viability"
	"financial_viability/pkg/models"

	"github.com/rs/zerolog/log"
)

// ScenarioRequest is the common request envelope: the plan snapshot plus
// scenario knobs. Percentages come in human form (+10 means +10%); the engine
// works with the multiplier internally.
type ScenarioRequest struct {
	Plan                models.Plan `json:"plan"`
	VariationPercent    float64     `json:"variation_percent"`
	DiscountRatePercent float64     `json:"discount_rate_percent"`
	FinanceRatePercent  float64     `json:"finance_rate_percent"`
	ReinvestRatePercent float64     `json:"reinvest_rate_percent"`
}

func (req *ScenarioRequest) variation() float64 {
	return 1 + req.VariationPercent/100
}

// preflight applies the CORS preamble and reports whether the request was an
// OPTIONS probe already answered.
func preflight(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return true
	}
	return false
}

func decodeScenario(w http.ResponseWriter, r *http.Request) (*ScenarioRequest, bool) {
	var req ScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	return &req, true
}

func respondJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// ProjectionsResponse carries the annual accrual view plus the raw cash-flow
// series the viability metrics run on. Years and CashFlows reflect the
// requested variation; Summary is always the base-case (variation 1.0)
// first-year aggregates, the reference point scenarios are compared against.
type ProjectionsResponse struct {
	Years           []projection.Year  `json:"years"`
	CashFlows       []float64          `json:"cash_flows"`
	InvestmentTotal float64            `json:"investment_total"`
	Summary         projection.Summary `json:"summary"`
}

func HandleProjections(w http.ResponseWriter, r *http.Request) {
	if preflight(w, r) {
		return
	}
	req, ok := decodeScenario(w, r)
	if !ok {
		return
	}

	years, cashflows, investmentTotal := projection.Compute(&req.Plan, req.variation())
	log.Info().Str("plan", req.Plan.Name).Float64("variation", req.variation()).Msg("projections computed")

	respondJSON(w, ProjectionsResponse{
		Years:           years,
		CashFlows:       cashflows,
		InvestmentTotal: investmentTotal,
		Summary:         projection.ComputeSummary(&req.Plan),
	})
}

// MonthlyResponse carries the month-by-month detail and its annual rollup.
type MonthlyResponse struct {
	Monthly []cashflow.MonthlyRow `json:"monthly"`
	Annual  []cashflow.AnnualRow  `json:"annual"`
}

func HandleMonthly(w http.ResponseWriter, r *http.Request) {
	if preflight(w, r) {
		return
	}
	req, ok := decodeScenario(w, r)
	if !ok {
		return
	}

	monthly, annual := cashflow.ComputeMonthly(&req.Plan, req.variation())
	respondJSON(w, MonthlyResponse{Monthly: monthly, Annual: annual})
}

func HandleBreakEven(w http.ResponseWriter, r *http.Request) {
	if preflight(w, r) {
		return
	}
	req, ok := decodeScenario(w, r)
	if !ok {
		return
	}

	result := breakeven.Compute(&req.Plan, req.variation())
	if result == nil {
		http.Error(w, "plan has no operating year", http.StatusUnprocessableEntity)
		return
	}
	respondJSON(w, result)
}

// ViabilityResponse bundles the metrics with the series they were derived
// from, so callers can chart both without a second round trip.
type ViabilityResponse struct {
	Result          viability.Result `json:"result"`
	CashFlows       []float64        `json:"cash_flows"`
	InvestmentTotal float64          `json:"investment_total"`
}

func HandleViability(w http.ResponseWriter, r *http.Request) {
	if preflight(w, r) {
		return
	}
	req, ok := decodeScenario(w, r)
	if !ok {
		return
	}

	_, cashflows, investmentTotal := projection.Compute(&req.Plan, req.variation())
	rates := viability.Rates{
		Discount: req.DiscountRatePercent / 100,
		Finance:  req.FinanceRatePercent / 100,
		Reinvest: req.ReinvestRatePercent / 100,
	}
	result := viability.Summarize(cashflows, rates)

	if store.Enabled() {
		run := &store.ScenarioRun{
			PlanName:     req.Plan.Name,
			Variation:    req.variation(),
			DiscountRate: rates.Discount,
			NPV:          result.NPV,
			IRR:          result.IRR,
		}
		if err := store.NewScenarioRepo().Save(r.Context(), run, result); err != nil {
			log.Warn().Err(err).Str("plan", req.Plan.Name).Msg("failed to persist scenario run")
		}
	}

	respondJSON(w, ViabilityResponse{
		Result:          result,
		CashFlows:       cashflows,
		InvestmentTotal: investmentTotal,
	})
}

// HandleRuns returns the persisted scenario-run history for a plan name.
func HandleRuns(w http.ResponseWriter, r *http.Request) {
	if preflight(w, r) {
		return
	}
	if !store.Enabled() {
		http.Error(w, "run history not available", http.StatusServiceUnavailable)
		return
	}

	planName := r.URL.Query().Get("plan")
	if planName == "" {
		http.Error(w, "missing plan query parameter", http.StatusBadRequest)
		return
	}

	runs, err := store.NewScenarioRepo().ListByPlan(r.Context(), planName, 50)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, runs)
}

// TaxRequest evaluates one Simples Nacional bracket lookup in isolation.
type TaxRequest struct {
	AnnualRevenue float64         `json:"annual_revenue"`
	Annex         models.TaxAnnex `json:"annex"`
}

type TaxResponse struct {
	EffectiveRate float64 `json:"effective_rate"`
	TaxAmount     float64 `json:"tax_amount"`
}

func HandleTax(w http.ResponseWriter, r *http.Request) {
	if preflight(w, r) {
		return
	}
	var req TaxRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rate, amount := tax.Compute(req.AnnualRevenue, req.Annex)
	respondJSON(w, TaxResponse{EffectiveRate: rate, TaxAmount: amount})
}
