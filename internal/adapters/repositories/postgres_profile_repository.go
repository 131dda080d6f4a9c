package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"travel-cost-service/internal/domain"
	"travel-cost-service/internal/platform/obs"
)

// Postgres-backed implementation of the ProfileRepository and
// CoordinateStore ports. Coordinates live on the professional and request
// rows themselves, which is what makes them a permanent write-through cache.
type PostgresProfileRepository struct{ DB *sql.DB }

func NewPostgresProfileRepository(db *sql.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{DB: db}
}

// Return the travel profile for one professional.
func (r *PostgresProfileRepository) GetWorkProfile(ctx context.Context, professionalID int64) (_ *domain.WorkProfile, err error) {
	defer obs.Time(ctx, "profiles.GetWorkProfile")(&err)

	if r.DB == nil {
		return nil, errors.New("profile repository: DB is nil")
	}

	query := `
	SELECT
		professional_id,
		residence_line, residence_city, residence_province, residence_postal_code,
		residence_lat, residence_lon,
		work_line, work_city, work_province, work_postal_code,
		work_lat, work_lon,
		use_residence_as_origin, rate_per_km
	FROM professionals
	WHERE professional_id = $1;
	`

	var (
		p                                          domain.WorkProfile
		resLat, resLon, workLat, workLon           sql.NullFloat64
		workLine, workCity, workProvince, workPost sql.NullString
	)
	err = r.DB.QueryRowContext(ctx, query, professionalID).Scan(
		&p.ProfessionalID,
		&p.ResidenceAddress.Line, &p.ResidenceAddress.City, &p.ResidenceAddress.Province, &p.ResidenceAddress.PostalCode,
		&resLat, &resLon,
		&workLine, &workCity, &workProvince, &workPost,
		&workLat, &workLon,
		&p.UseResidenceAsOrigin, &p.RatePerKm,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get work profile: professional %d not found", professionalID)
	}
	if err != nil {
		return nil, fmt.Errorf("get work profile: query professionals table: %w", err)
	}

	if resLat.Valid && resLon.Valid {
		p.ResidenceCoords = &domain.Coordinates{Lat: resLat.Float64, Lon: resLon.Float64}
	}
	if workLine.Valid || workCity.Valid || workProvince.Valid || workPost.Valid {
		p.WorkAddress = &domain.Address{
			Line:       workLine.String,
			City:       workCity.String,
			Province:   workProvince.String,
			PostalCode: workPost.String,
		}
	}
	if workLat.Valid && workLon.Valid {
		p.WorkCoords = &domain.Coordinates{Lat: workLat.Float64, Lon: workLon.Float64}
	}

	return &p, nil
}

// Return the location of one service request.
func (r *PostgresProfileRepository) GetRequestLocation(ctx context.Context, requestID int64) (_ *domain.ServiceRequestLocation, err error) {
	defer obs.Time(ctx, "profiles.GetRequestLocation")(&err)

	if r.DB == nil {
		return nil, errors.New("profile repository: DB is nil")
	}

	query := `
	SELECT request_id, line, city, province, postal_code, lat, lon
	FROM service_requests
	WHERE request_id = $1;
	`

	var (
		loc      domain.ServiceRequestLocation
		lat, lon sql.NullFloat64
	)
	err = r.DB.QueryRowContext(ctx, query, requestID).Scan(
		&loc.RequestID,
		&loc.Address.Line, &loc.Address.City, &loc.Address.Province, &loc.Address.PostalCode,
		&lat, &lon,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get request location: request %d not found", requestID)
	}
	if err != nil {
		return nil, fmt.Errorf("get request location: query service_requests table: %w", err)
	}

	if lat.Valid && lon.Valid {
		loc.Coords = &domain.Coordinates{Lat: lat.Float64, Lon: lon.Float64}
	}

	return &loc, nil
}

// Persist resolved coordinates on the selected profile slot.
func (r *PostgresProfileRepository) SaveProfileCoordinates(ctx context.Context, professionalID int64, residence bool, c domain.Coordinates) error {
	if r.DB == nil {
		return errors.New("profile repository: DB is nil")
	}

	query := `
	UPDATE professionals
	SET work_lat = $2, work_lon = $3
	WHERE professional_id = $1;
	`
	if residence {
		query = `
	UPDATE professionals
	SET residence_lat = $2, residence_lon = $3
	WHERE professional_id = $1;
	`
	}

	res, err := r.DB.ExecContext(ctx, query, professionalID, c.Lat, c.Lon)
	if err != nil {
		return fmt.Errorf("save profile coordinates: professional %d: %w", professionalID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("save profile coordinates: professional %d not found", professionalID)
	}

	return nil
}

// Persist resolved coordinates on a service request row.
func (r *PostgresProfileRepository) SaveRequestCoordinates(ctx context.Context, requestID int64, c domain.Coordinates) error {
	if r.DB == nil {
		return errors.New("profile repository: DB is nil")
	}

	query := `
	UPDATE service_requests
	SET lat = $2, lon = $3
	WHERE request_id = $1;
	`

	res, err := r.DB.ExecContext(ctx, query, requestID, c.Lat, c.Lon)
	if err != nil {
		return fmt.Errorf("save request coordinates: request %d: %w", requestID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("save request coordinates: request %d not found", requestID)
	}

	return nil
}
