// Package planstore persists validated plans and their metabolic profiles as
// JSON, keyed by plan ID. The planner core defines only the hand-off shape;
// this repository is the storage side of that boundary.
package planstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"macroplan/internal/metabolic"
	"macroplan/internal/plan"
)

// StoredPlan is one persisted plan row, with the plan and profile decoded.
type StoredPlan struct {
	ID        string
	Plan      *plan.ValidatedPlan
	Profile   *metabolic.Profile
	CreatedAt time.Time
}

// Repository handles persistence of validated plans.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new plan repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Save inserts a validated plan and its profile.
func (r *Repository) Save(ctx context.Context, p *plan.ValidatedPlan, profile *metabolic.Profile) error {
	planJSON, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO meal_plans (id, client_name, qa_status, qa_score, plan_data, profile_data, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.ClientName, string(p.QA.Status), p.QA.Score,
		string(planJSON), string(profileJSON), p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert plan %s: %w", p.ID, err)
	}
	return nil
}

// Get retrieves a stored plan by ID. Returns nil if no plan exists.
func (r *Repository) Get(ctx context.Context, id string) (*StoredPlan, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, plan_data, profile_data, created_at
		FROM meal_plans WHERE id = ?`, id)
	return scanStoredPlan(row)
}

// GetLatestByClient retrieves the most recent plan for a client name.
// Returns nil if the client has no stored plans.
func (r *Repository) GetLatestByClient(ctx context.Context, clientName string) (*StoredPlan, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, plan_data, profile_data, created_at
		FROM meal_plans WHERE client_name = ?
		ORDER BY created_at DESC LIMIT 1`, clientName)
	return scanStoredPlan(row)
}

// ListRecent retrieves the N most recent plans across all clients.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]StoredPlan, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, plan_data, profile_data, created_at
		FROM meal_plans ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent plans: %w", err)
	}
	defer rows.Close()

	var plans []StoredPlan
	for rows.Next() {
		stored, err := scanStoredPlanRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *stored)
	}
	return plans, rows.Err()
}

// Cleanup removes plans older than the given number of days and reports how
// many rows were deleted.
func (r *Repository) Cleanup(ctx context.Context, olderThanDays int) (int64, error) {
	threshold := time.Now().UTC().AddDate(0, 0, -olderThanDays)
	res, err := r.db.ExecContext(ctx, `DELETE FROM meal_plans WHERE created_at < ?`, threshold)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old plans: %w", err)
	}
	return res.RowsAffected()
}

func scanStoredPlan(row *sql.Row) (*StoredPlan, error) {
	stored, err := scanStoredPlanRow(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil // No plan found
	}
	return stored, err
}

func scanStoredPlanRow(scan func(...any) error) (*StoredPlan, error) {
	var (
		stored      StoredPlan
		planJSON    string
		profileJSON string
	)
	if err := scan(&stored.ID, &planJSON, &profileJSON, &stored.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan plan row: %w", err)
	}

	stored.Plan = &plan.ValidatedPlan{}
	if err := json.Unmarshal([]byte(planJSON), stored.Plan); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan %s: %w", stored.ID, err)
	}
	stored.Profile = &metabolic.Profile{}
	if err := json.Unmarshal([]byte(profileJSON), stored.Profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile for plan %s: %w", stored.ID, err)
	}
	return &stored, nil
}
