package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"travel-cost-service/internal/domain"
	"travel-cost-service/internal/platform/obs"
)

// Postgres-backed implementation of the SettingsStore port.
//
// Save replaces both child collections wholesale (delete-then-reinsert, not
// diffed): the collections are small and saves are infrequent admin actions,
// so the simple auditable strategy wins over diff-based updates. An explicit
// sort_order keeps read-back ordering deterministic.
type PostgresSettingsStore struct{ DB *sql.DB }

func NewPostgresSettingsStore(db *sql.DB) *PostgresSettingsStore {
	return &PostgresSettingsStore{DB: db}
}

// Load returns (nil, nil) when the professional has never saved settings.
func (s *PostgresSettingsStore) Load(ctx context.Context, professionalID int64) (_ *domain.TravelCostSettings, err error) {
	defer obs.Time(ctx, "settings.Load")(&err)

	if s.DB == nil {
		return nil, errors.New("settings store: DB is nil")
	}

	return loadSettings(ctx, s.DB, professionalID)
}

// querier covers both *sql.DB and *sql.Tx so Save can re-read inside its
// transaction with the same code path.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func loadSettings(ctx context.Context, q querier, professionalID int64) (*domain.TravelCostSettings, error) {
	settingsQuery := `
	SELECT professional_id, base_cost, free_distance_km, is_active
	FROM travel_cost_settings
	WHERE professional_id = $1;
	`

	var out domain.TravelCostSettings
	err := q.QueryRowContext(ctx, settingsQuery, professionalID).Scan(
		&out.ProfessionalID, &out.BaseCost, &out.FreeDistanceKm, &out.Active,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load settings: query travel_cost_settings table: %w", err)
	}

	rangesQuery := `
	SELECT from_km, to_km, cost_per_km
	FROM travel_cost_ranges
	WHERE professional_id = $1
	ORDER BY sort_order;
	`

	rows, err := q.QueryContext(ctx, rangesQuery, professionalID)
	if err != nil {
		return nil, fmt.Errorf("load settings: query travel_cost_ranges table: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r domain.CostRange
		var toKm sql.NullInt64
		if err := rows.Scan(&r.FromKm, &toKm, &r.CostPerKm); err != nil {
			return nil, fmt.Errorf("load settings: scan range row: %w", err)
		}
		if toKm.Valid {
			to := int(toKm.Int64)
			r.ToKm = &to
		}
		out.CostRanges = append(out.CostRanges, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load settings: range row iteration: %w", err)
	}

	supplementsQuery := `
	SELECT kind, percentage, fixed_amount, is_active
	FROM travel_cost_supplements
	WHERE professional_id = $1
	ORDER BY sort_order;
	`

	supRows, err := q.QueryContext(ctx, supplementsQuery, professionalID)
	if err != nil {
		return nil, fmt.Errorf("load settings: query travel_cost_supplements table: %w", err)
	}
	defer supRows.Close()

	for supRows.Next() {
		var sup domain.Supplement
		if err := supRows.Scan(&sup.Kind, &sup.Percentage, &sup.FixedAmount, &sup.Active); err != nil {
			return nil, fmt.Errorf("load settings: scan supplement row: %w", err)
		}
		out.Supplements = append(out.Supplements, sup)
	}
	if err := supRows.Err(); err != nil {
		return nil, fmt.Errorf("load settings: supplement row iteration: %w", err)
	}

	return &out, nil
}

// Save upserts the settings row, replaces both child collections, and
// re-reads the persisted result inside one transaction.
func (s *PostgresSettingsStore) Save(ctx context.Context, in *domain.TravelCostSettings) (_ *domain.TravelCostSettings, err error) {
	defer obs.Time(ctx, "settings.Save")(&err)

	if s.DB == nil {
		return nil, errors.New("settings store: DB is nil")
	}
	if in == nil {
		return nil, errors.New("save settings: settings must be non-nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("save settings: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	upsertQuery := `
	INSERT INTO travel_cost_settings (professional_id, base_cost, free_distance_km, is_active)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (professional_id) DO UPDATE
	SET base_cost = EXCLUDED.base_cost,
		free_distance_km = EXCLUDED.free_distance_km,
		is_active = EXCLUDED.is_active;
	`
	if _, err := tx.ExecContext(ctx, upsertQuery, in.ProfessionalID, in.BaseCost, in.FreeDistanceKm, in.Active); err != nil {
		return nil, fmt.Errorf("save settings: upsert travel_cost_settings: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM travel_cost_ranges WHERE professional_id = $1;`, in.ProfessionalID); err != nil {
		return nil, fmt.Errorf("save settings: delete ranges: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM travel_cost_supplements WHERE professional_id = $1;`, in.ProfessionalID); err != nil {
		return nil, fmt.Errorf("save settings: delete supplements: %w", err)
	}

	rangeStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO travel_cost_ranges (professional_id, sort_order, from_km, to_km, cost_per_km)
	VALUES ($1, $2, $3, $4, $5);
	`)
	if err != nil {
		return nil, fmt.Errorf("save settings: prepare range insert: %w", err)
	}
	defer rangeStmt.Close()

	for i, r := range in.CostRanges {
		var toKm sql.NullInt64
		if r.ToKm != nil {
			toKm = sql.NullInt64{Int64: int64(*r.ToKm), Valid: true}
		}
		if _, err := rangeStmt.ExecContext(ctx, in.ProfessionalID, i, r.FromKm, toKm, r.CostPerKm); err != nil {
			return nil, fmt.Errorf("save settings: insert range #%d: %w", i+1, err)
		}
	}

	supStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO travel_cost_supplements (professional_id, sort_order, kind, percentage, fixed_amount, is_active)
	VALUES ($1, $2, $3, $4, $5, $6);
	`)
	if err != nil {
		return nil, fmt.Errorf("save settings: prepare supplement insert: %w", err)
	}
	defer supStmt.Close()

	for i, sup := range in.Supplements {
		if _, err := supStmt.ExecContext(ctx, in.ProfessionalID, i, string(sup.Kind), sup.Percentage, sup.FixedAmount, sup.Active); err != nil {
			return nil, fmt.Errorf("save settings: insert supplement #%d: %w", i+1, err)
		}
	}

	saved, err := loadSettings(ctx, tx, in.ProfessionalID)
	if err != nil {
		return nil, fmt.Errorf("save settings: read back: %w", err)
	}
	if saved == nil {
		return nil, errors.New("save settings: read back returned no row")
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("save settings: commit: %w", err)
	}

	return saved, nil
}
