package schedule

import (
	"github.com/shopspring/decimal"
)

// Queue is a per-entity buffer of pending cash amounts indexed by
// months-ahead-of-now. Index 0 is the amount due this period. Amounts are held
// as decimals so that splitting an accrual into installments conserves it
// exactly; callers see float64 at the boundary.
//
// A queue is local to a single engine run and discarded afterward.
type Queue struct {
	pending []decimal.Decimal
}

// NewQueue returns a queue pre-sized for the given number of periods ahead.
func NewQueue(periods int) *Queue {
	if periods < 0 {
		periods = 0
	}
	return &Queue{pending: make([]decimal.Decimal, periods)}
}

// Schedule splits amount into an immediate cash portion and N future
// installments. creditPercent is the share sold/bought on term, clamped to
// [0,100]; installments is floored at 1. The term portion is divided into
// installments pieces added at offsets 1..N, with the last piece absorbing the
// division remainder so that immediate + sum(installments) == amount exactly.
//
// The immediate portion is returned as the cash moving this period.
func (q *Queue) Schedule(amount, creditPercent float64, installments int) float64 {
	if creditPercent < 0 {
		creditPercent = 0
	} else if creditPercent > 100 {
		creditPercent = 100
	}
	if installments < 1 {
		installments = 1
	}

	amt := decimal.NewFromFloat(amount)
	term := amt.Mul(decimal.NewFromFloat(creditPercent)).Div(decimal.NewFromInt(100))
	immediate := amt.Sub(term)

	q.grow(installments)
	n := decimal.NewFromInt(int64(installments))
	piece := term.Div(n)
	for offset := 1; offset < installments; offset++ {
		q.pending[offset] = q.pending[offset].Add(piece)
	}
	// Last piece keeps conservation exact regardless of division precision.
	last := term.Sub(piece.Mul(decimal.NewFromInt(int64(installments - 1))))
	q.pending[installments] = q.pending[installments].Add(last)

	f, _ := immediate.Float64()
	return f
}

// Pop returns and removes the amount due this period, advancing the buffer and
// appending a trailing zero so the queue never shrinks below its capacity.
func (q *Queue) Pop() float64 {
	if len(q.pending) == 0 {
		return 0
	}
	head := q.pending[0]
	copy(q.pending, q.pending[1:])
	q.pending[len(q.pending)-1] = decimal.Decimal{}

	f, _ := head.Float64()
	return f
}

// Outstanding returns the total amount still scheduled, as a float.
func (q *Queue) Outstanding() float64 {
	total := decimal.Decimal{}
	for _, p := range q.pending {
		total = total.Add(p)
	}
	f, _ := total.Float64()
	return f
}

// grow ensures the buffer can hold offsets up to n.
func (q *Queue) grow(n int) {
	for len(q.pending) <= n {
		q.pending = append(q.pending, decimal.Decimal{})
	}
}
