package projection

// Year is one row of the annual accrual statement. Year 0 is the initial
// investment/financing period and carries no operating figures.
type Year struct {
	Year         int     `json:"year"`
	Revenue      float64 `json:"revenue"`
	VariableCost float64 `json:"variable_cost"`
	FixedCost    float64 `json:"fixed_cost"`
	LoanPayment  float64 `json:"loan_payment"`
	Tax          float64 `json:"tax"`
	Profit       float64 `json:"profit"`
	CashFlow     float64 `json:"cash_flow"`
}

// Summary collects the first operating year's aggregates plus the investment
// total, for callers that only need headline figures.
type Summary struct {
	Revenue         float64 `json:"revenue"`
	VariableCost    float64 `json:"variable_cost"`
	FixedCost       float64 `json:"fixed_cost"`
	Tax             float64 `json:"tax"`
	Profit          float64 `json:"profit"`
	InvestmentTotal float64 `json:"investment_total"`
}
