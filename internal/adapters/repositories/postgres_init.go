package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the Postgres database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createProfessionalsQuery := `
	CREATE TABLE IF NOT EXISTS professionals (
		professional_id BIGINT PRIMARY KEY,
		residence_line TEXT NOT NULL,
		residence_city TEXT NOT NULL,
		residence_province TEXT NOT NULL,
		residence_postal_code TEXT NOT NULL,
		residence_lat DOUBLE PRECISION,
		residence_lon DOUBLE PRECISION,
		work_line TEXT,
		work_city TEXT,
		work_province TEXT,
		work_postal_code TEXT,
		work_lat DOUBLE PRECISION,
		work_lon DOUBLE PRECISION,
		use_residence_as_origin BOOLEAN NOT NULL DEFAULT TRUE,
		rate_per_km BIGINT NOT NULL DEFAULT 0
	);
	`

	createRequestsQuery := `
	CREATE TABLE IF NOT EXISTS service_requests (
		request_id BIGINT PRIMARY KEY,
		line TEXT NOT NULL,
		city TEXT NOT NULL,
		province TEXT NOT NULL,
		postal_code TEXT NOT NULL,
		lat DOUBLE PRECISION,
		lon DOUBLE PRECISION
	);
	`

	createSettingsQuery := `
	CREATE TABLE IF NOT EXISTS travel_cost_settings (
		professional_id BIGINT PRIMARY KEY,
		base_cost BIGINT NOT NULL,
		free_distance_km INTEGER NOT NULL,
		is_active BOOLEAN NOT NULL
	);
	`

	createRangesQuery := `
	CREATE TABLE IF NOT EXISTS travel_cost_ranges (
		professional_id BIGINT NOT NULL REFERENCES travel_cost_settings(professional_id) ON DELETE CASCADE,
		sort_order INTEGER NOT NULL,
		from_km INTEGER NOT NULL,
		to_km INTEGER,
		cost_per_km BIGINT NOT NULL,
		PRIMARY KEY (professional_id, sort_order)
	);
	`

	createSupplementsQuery := `
	CREATE TABLE IF NOT EXISTS travel_cost_supplements (
		professional_id BIGINT NOT NULL REFERENCES travel_cost_settings(professional_id) ON DELETE CASCADE,
		sort_order INTEGER NOT NULL,
		kind TEXT NOT NULL,
		percentage INTEGER NOT NULL,
		fixed_amount BIGINT NOT NULL,
		is_active BOOLEAN NOT NULL,
		PRIMARY KEY (professional_id, sort_order)
	);
	`

	statements := []string{
		createProfessionalsQuery,
		createRequestsQuery,
		createSettingsQuery,
		createRangesQuery,
		createSupplementsQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type AddressSeed struct {
	Line       string `json:"line"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postal_code"`
}

type ProfessionalSeed struct {
	ProfessionalID       int64        `json:"professional_id"`
	Residence            AddressSeed  `json:"residence"`
	Work                 *AddressSeed `json:"work"`
	UseResidenceAsOrigin bool         `json:"use_residence_as_origin"`
	RatePerKm            int64        `json:"rate_per_km"`
}

type RequestSeed struct {
	RequestID int64       `json:"request_id"`
	Address   AddressSeed `json:"address"`
}

type Seed struct {
	Professionals []ProfessionalSeed `json:"professionals"`
	Requests      []RequestSeed      `json:"requests"`
}

// Populate the database with professional and request data from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed: read %q: %w", jsonPath, err)
	}

	var data Seed
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("seed: parse json: %w", err)
	}

	for i, p := range data.Professionals {
		if p.ProfessionalID <= 0 {
			return fmt.Errorf("seed: invalid professional_id at index %d: %d", i+1, p.ProfessionalID)
		}
		if strings.TrimSpace(p.Residence.City) == "" {
			return fmt.Errorf("seed: professional %d: residence city cannot be empty", p.ProfessionalID)
		}
	}
	for i, r := range data.Requests {
		if r.RequestID <= 0 {
			return fmt.Errorf("seed: invalid request_id at index %d: %d", i+1, r.RequestID)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	proStmt, err := tx.Prepare(`
	INSERT INTO professionals (
		professional_id,
		residence_line, residence_city, residence_province, residence_postal_code,
		work_line, work_city, work_province, work_postal_code,
		use_residence_as_origin, rate_per_km
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT (professional_id) DO UPDATE
	SET residence_line = EXCLUDED.residence_line,
		residence_city = EXCLUDED.residence_city,
		residence_province = EXCLUDED.residence_province,
		residence_postal_code = EXCLUDED.residence_postal_code,
		work_line = EXCLUDED.work_line,
		work_city = EXCLUDED.work_city,
		work_province = EXCLUDED.work_province,
		work_postal_code = EXCLUDED.work_postal_code,
		use_residence_as_origin = EXCLUDED.use_residence_as_origin,
		rate_per_km = EXCLUDED.rate_per_km;
	`)
	if err != nil {
		return fmt.Errorf("seed: prepare professional insert: %w", err)
	}
	defer proStmt.Close()

	for _, p := range data.Professionals {
		var workLine, workCity, workProvince, workPostal sql.NullString
		if p.Work != nil {
			workLine = sql.NullString{String: p.Work.Line, Valid: true}
			workCity = sql.NullString{String: p.Work.City, Valid: true}
			workProvince = sql.NullString{String: p.Work.Province, Valid: true}
			workPostal = sql.NullString{String: p.Work.PostalCode, Valid: true}
		}

		if _, err := proStmt.Exec(
			p.ProfessionalID,
			p.Residence.Line, p.Residence.City, p.Residence.Province, p.Residence.PostalCode,
			workLine, workCity, workProvince, workPostal,
			p.UseResidenceAsOrigin, p.RatePerKm,
		); err != nil {
			return fmt.Errorf("seed: insert professional_id=%d: %w", p.ProfessionalID, err)
		}
	}

	reqStmt, err := tx.Prepare(`
	INSERT INTO service_requests (request_id, line, city, province, postal_code)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (request_id) DO UPDATE
	SET line = EXCLUDED.line,
		city = EXCLUDED.city,
		province = EXCLUDED.province,
		postal_code = EXCLUDED.postal_code;
	`)
	if err != nil {
		return fmt.Errorf("seed: prepare request insert: %w", err)
	}
	defer reqStmt.Close()

	for _, r := range data.Requests {
		if _, err := reqStmt.Exec(r.RequestID, r.Address.Line, r.Address.City, r.Address.Province, r.Address.PostalCode); err != nil {
			return fmt.Errorf("seed: insert request_id=%d: %w", r.RequestID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit tx: %w", err)
	}

	return nil
}
