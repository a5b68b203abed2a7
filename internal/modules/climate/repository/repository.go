package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"

	"climate-server/internal/modules/climate/types"
)

//go:embed sql/get-stations.sql
var getStationsSQL string

//go:embed sql/get-latest-date.sql
var getLatestDateSQL string

//go:embed sql/get-observations-since.sql
var getObservationsSinceSQL string

//go:embed sql/get-temperature-summary.sql
var getTemperatureSummarySQL string

// ErrNoObservations is returned by LatestObservationDate on an empty
// measurement table.
var ErrNoObservations = errors.New("no observations stored")

// ClimateRepository is the read-only query layer over the station and
// measurement tables. Dates are YYYY-MM-DD strings compared as plain text.
type ClimateRepository interface {
	LatestObservationDate(ctx context.Context) (string, error)
	TemperatureSummary(ctx context.Context, startDate, endDate string) (types.TemperatureSummary, error)
	AllStations(ctx context.Context) ([]types.Station, error)
	ObservationsSince(ctx context.Context, cutoffDate string) ([]types.Observation, error)
}

type repositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) ClimateRepository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) LatestObservationDate(ctx context.Context) (string, error) {
	var latest sql.NullString
	if err := r.db.QueryRowContext(ctx, getLatestDateSQL).Scan(&latest); err != nil {
		return "", fmt.Errorf("latest observation date: %w", err)
	}
	if !latest.Valid {
		return "", ErrNoObservations
	}
	return latest.String, nil
}

func (r *repositoryImpl) TemperatureSummary(ctx context.Context, startDate, endDate string) (types.TemperatureSummary, error) {
	var tmin, tavg, tmax sql.NullFloat64
	err := r.db.QueryRowContext(ctx, getTemperatureSummarySQL, startDate, endDate).Scan(&tmin, &tavg, &tmax)
	if err != nil {
		return types.TemperatureSummary{}, fmt.Errorf("temperature summary %s..%s: %w", startDate, endDate, err)
	}
	return types.TemperatureSummary{
		Min: nullableFloat(tmin),
		Avg: nullableFloat(tavg),
		Max: nullableFloat(tmax),
	}, nil
}

func (r *repositoryImpl) AllStations(ctx context.Context) ([]types.Station, error) {
	rows, err := r.db.QueryContext(ctx, getStationsSQL)
	if err != nil {
		return nil, fmt.Errorf("query stations: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close stations rows", "error", err)
		}
	}()

	out := []types.Station{}
	for rows.Next() {
		var s types.Station
		if err := rows.Scan(&s.ID, &s.Station, &s.Name, &s.Latitude, &s.Longitude, &s.Elevation); err != nil {
			return nil, fmt.Errorf("scan station: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *repositoryImpl) ObservationsSince(ctx context.Context, cutoffDate string) ([]types.Observation, error) {
	rows, err := r.db.QueryContext(ctx, getObservationsSinceSQL, cutoffDate)
	if err != nil {
		return nil, fmt.Errorf("query observations since %s: %w", cutoffDate, err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close observation rows", "error", err)
		}
	}()

	out := []types.Observation{}
	for rows.Next() {
		var (
			o    types.Observation
			prcp sql.NullFloat64
		)
		if err := rows.Scan(&o.Station, &o.Date, &prcp, &o.Temperature); err != nil {
			return nil, fmt.Errorf("scan observation: %w", err)
		}
		o.Precipitation = nullableFloat(prcp)
		out = append(out, o)
	}
	return out, rows.Err()
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
