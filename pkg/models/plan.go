package models

import "math"

// Plan is an immutable snapshot of a business plan. Engines never mutate it;
// every computation is a pure function of one snapshot plus a variation factor.
type Plan struct {
	Name         string           `json:"name"`
	HorizonYears int              `json:"horizon_years"`
	Revenue      []RevenueItem    `json:"revenue"`
	Fixed        []FixedItem      `json:"fixed"`
	Investments  []InvestmentItem `json:"investments"`
	Financing    FinancingTerms   `json:"financing"`
	Settings     Settings         `json:"settings"`
}

// Settings holds engine policy switches carried on the snapshot.
type Settings struct {
	CalculateTax bool     `json:"calculate_tax"`
	TaxAnnex     TaxAnnex `json:"tax_annex"`

	// IncludeFinancingInProfit controls whether the annuity payment is deducted
	// from accrual profit. Default (false) follows the variable-costing
	// convention: financing is a cash item only.
	IncludeFinancingInProfit bool `json:"include_financing_in_profit"`
}

// TaxAnnex identifies one of the Simples Nacional annex tables.
type TaxAnnex string

const (
	AnnexI   TaxAnnex = "I"
	AnnexII  TaxAnnex = "II"
	AnnexIII TaxAnnex = "III"
	AnnexIV  TaxAnnex = "IV"
	AnnexV   TaxAnnex = "V"
)

// FixedCategory classifies a recurring monthly expense.
type FixedCategory string

const (
	FixedOperational    FixedCategory = "operational"
	FixedAdministrative FixedCategory = "administrative"
	FixedSales          FixedCategory = "sales"
)

// PaymentMode selects how an investment outflow hits the cash flow.
type PaymentMode string

const (
	PaymentLumpSum     PaymentMode = "lump_sum"
	PaymentInstallment PaymentMode = "installment"
)

// MonthlyEntry is one month of a product's price/quantity series.
type MonthlyEntry struct {
	Price float64 `json:"price"`
	Qty   float64 `json:"qty"`
}

// RevenueItem is one product or service sold by the plan. Monthly may be
// shorter than the horizon (or empty); the series normalizer pads it.
type RevenueItem struct {
	Name          string         `json:"name"`
	UnitPrice     float64        `json:"unit_price"`
	BaselineQty   float64        `json:"baseline_qty"`
	CreditPercent float64        `json:"credit_percent"`
	Installments  int            `json:"installments"`
	Monthly       []MonthlyEntry `json:"monthly,omitempty"`

	Costs            []CostItem `json:"costs,omitempty"`
	VariableExpenses []CostItem `json:"variable_expenses,omitempty"`
}

// CostItem is a direct cost or variable expense attached to a product.
// Qty*UnitValue is a per-sold-unit basis already expressed as a total:
// it is never divided by the sold quantity.
type CostItem struct {
	Name          string  `json:"name"`
	Qty           float64 `json:"qty"`
	UnitValue     float64 `json:"unit_value"`
	CreditPercent float64 `json:"credit_percent"`
	Installments  int     `json:"installments"`
}

// Basis returns the item's contribution to the product's per-unit cost basis.
func (c CostItem) Basis() float64 {
	return c.Qty * c.UnitValue
}

// DirectCostBasis sums Qty*UnitValue over the product's cost items.
func (r RevenueItem) DirectCostBasis() float64 {
	total := 0.0
	for _, c := range r.Costs {
		total += c.Basis()
	}
	return total
}

// VariableExpenseBasis sums Qty*UnitValue over the product's variable expenses.
func (r RevenueItem) VariableExpenseBasis() float64 {
	total := 0.0
	for _, v := range r.VariableExpenses {
		total += v.Basis()
	}
	return total
}

// FixedItem is a recurring monthly expense (opex).
type FixedItem struct {
	Description   string        `json:"description"`
	MonthlyValue  float64       `json:"monthly_value"`
	CreditPercent float64       `json:"credit_percent"`
	Installments  int           `json:"installments"`
	Category      FixedCategory `json:"category"`
}

// InvestmentItem is a one-time acquisition. Month is 0-based from the start
// of the projection.
type InvestmentItem struct {
	Description  string      `json:"description"`
	Value        float64     `json:"value"`
	Month        int         `json:"month"`
	PaymentMode  PaymentMode `json:"payment_mode"`
	Installments int         `json:"installments"`
}

// FinancingTerms describes a single loan drawn at month 0.
type FinancingTerms struct {
	Amount            float64 `json:"amount"`
	AnnualRatePercent float64 `json:"annual_rate_percent"`
	TermYears         int     `json:"term_years"`
}

// AnnualPayment returns the constant annuity payment for the loan.
// A zero rate degenerates to straight-line repayment.
func (f FinancingTerms) AnnualPayment() float64 {
	if f.Amount <= 0 || f.TermYears <= 0 {
		return 0
	}
	rate := f.AnnualRatePercent / 100.0
	if rate == 0 {
		return f.Amount / float64(f.TermYears)
	}
	return f.Amount * rate / (1 - math.Pow(1+rate, -float64(f.TermYears)))
}

// Horizon returns the planning horizon in years, floored at 1.
func (p *Plan) Horizon() int {
	if p.HorizonYears < 1 {
		return 1
	}
	return p.HorizonYears
}

// InvestmentTotal sums all investment values.
func (p *Plan) InvestmentTotal() float64 {
	total := 0.0
	for _, item := range p.Investments {
		total += item.Value
	}
	return total
}

// FixedMonthly sums the monthly value of all fixed items across categories.
func (p *Plan) FixedMonthly() float64 {
	total := 0.0
	for _, item := range p.Fixed {
		total += item.MonthlyValue
	}
	return total
}
