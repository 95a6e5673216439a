package cashflow

// MonthlyRow holds one calendar month of accrual and cash figures. Revenue and
// costs are accrual (competência); CashRevenue and the flow components follow
// actual cash timing through the installment queues.
type MonthlyRow struct {
	Month        int     `json:"month"` // 1-based
	Revenue      float64 `json:"revenue"`
	CashRevenue  float64 `json:"cash_revenue"`
	VariableCost float64 `json:"variable_cost"`
	FixedCost    float64 `json:"fixed_cost"`
	Tax          float64 `json:"tax"`
	Profit       float64 `json:"profit"`
	Operational  float64 `json:"cf_operational"`
	Financing    float64 `json:"cf_financing"`
	Investment   float64 `json:"cf_investment"`
	Total        float64 `json:"cf_total"`
}

// AnnualRow is the 12-month summation of MonthlyRow figures for one operating
// year. Values are aggregated, never re-derived.
type AnnualRow struct {
	Year         int     `json:"year"` // 1-based
	Revenue      float64 `json:"revenue"`
	CashRevenue  float64 `json:"cash_revenue"`
	VariableCost float64 `json:"variable_cost"`
	FixedCost    float64 `json:"fixed_cost"`
	Tax          float64 `json:"tax"`
	Profit       float64 `json:"profit"`
	Operational  float64 `json:"cf_operational"`
	Financing    float64 `json:"cf_financing"`
	Investment   float64 `json:"cf_investment"`
	Total        float64 `json:"cf_total"`
}
