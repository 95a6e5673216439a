package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ScenarioRun is one persisted engine evaluation: which plan, which scenario
// knobs, and the headline results. The full result payload lives in a JSONB
// blob so the schema survives result-shape changes.
type ScenarioRun struct {
	ID           uuid.UUID `json:"id"`
	PlanName     string    `json:"plan_name"`
	Variation    float64   `json:"variation"`
	DiscountRate float64   `json:"discount_rate"`
	NPV          float64   `json:"npv"`
	IRR          *float64  `json:"irr,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ScenarioRepo handles persistence of scenario runs.
type ScenarioRepo struct{}

// NewScenarioRepo creates a new repository instance.
func NewScenarioRepo() *ScenarioRepo {
	return &ScenarioRepo{}
}

// Save records one evaluation together with its full result payload.
//
// Schema assumption (managed elsewhere, migrations):
//
//	CREATE TABLE IF NOT EXISTS scenario_runs (
//	  id UUID PRIMARY KEY,
//	  plan_name TEXT NOT NULL,
//	  variation DOUBLE PRECISION NOT NULL,
//	  discount_rate DOUBLE PRECISION NOT NULL,
//	  npv DOUBLE PRECISION NOT NULL,
//	  irr DOUBLE PRECISION,
//	  result_json JSONB,
//	  created_at TIMESTAMPTZ NOT NULL
//	);
func (r *ScenarioRepo) Save(ctx context.Context, run *ScenarioRun, result any) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	query := `
		INSERT INTO scenario_runs (id, plan_name, variation, discount_rate, npv, irr, result_json, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`

	_, err = pool.Exec(ctx, query,
		run.ID, run.PlanName, run.Variation, run.DiscountRate, run.NPV, run.IRR, resultJSON, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save scenario run: %w", err)
	}

	return nil
}

// ListByPlan returns the most recent runs for a plan name, newest first.
func (r *ScenarioRepo) ListByPlan(ctx context.Context, planName string, limit int) ([]ScenarioRun, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, plan_name, variation, discount_rate, npv, irr, created_at
		FROM scenario_runs
		WHERE plan_name = $1
		ORDER BY created_at DESC
		LIMIT $2;
	`

	rows, err := pool.Query(ctx, query, planName, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenario runs: %w", err)
	}
	defer rows.Close()

	var runs []ScenarioRun
	for rows.Next() {
		var run ScenarioRun
		if err := rows.Scan(&run.ID, &run.PlanName, &run.Variation, &run.DiscountRate, &run.NPV, &run.IRR, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan scenario run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
