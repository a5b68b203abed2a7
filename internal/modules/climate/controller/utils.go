package controller

import (
	"fmt"
	"time"

	"climate-server/internal/modules/climate/types"
	"climate-server/internal/modules/climate/views"
)

const (
	dateLayout = "2006-01-02"
	windowDays = 365
)

var indexRoutes = []views.RouteLink{
	{Path: apiPrefix + "/precipitation", Description: "precipitation by date for the last year of data"},
	{Path: apiPrefix + "/stations", Description: "all weather stations"},
	{Path: apiPrefix + "/tobs", Description: "temperature observations for the last year of data"},
	{Path: apiPrefix + "/<start>", Description: "TMIN, TAVG and TMAX from start to the latest date"},
	{Path: apiPrefix + "/<start>/<end>", Description: "TMIN, TAVG and TMAX between start and end"},
}

// windowStart returns the date windowDays before latest, in the stored
// YYYY-MM-DD form so it compares correctly against the date column.
func windowStart(latest string) (string, error) {
	t, err := time.Parse(dateLayout, latest)
	if err != nil {
		return "", fmt.Errorf("parse latest observation date %q: %w", latest, err)
	}
	return t.AddDate(0, 0, -windowDays).Format(dateLayout), nil
}

// precipitationByDate collapses rows by date; a later row overwrites an
// earlier one with the same date.
func precipitationByDate(observations []types.Observation) map[string]*float64 {
	out := make(map[string]*float64, len(observations))
	for _, o := range observations {
		out[o.Date] = o.Precipitation
	}
	return out
}

type tobsEntry struct {
	Date    string  `json:"date"`
	Station string  `json:"station"`
	Tobs    float64 `json:"tobs"`
}

func tobsEntries(observations []types.Observation) []tobsEntry {
	out := make([]tobsEntry, 0, len(observations))
	for _, o := range observations {
		out = append(out, tobsEntry{Date: o.Date, Station: o.Station, Tobs: o.Temperature})
	}
	return out
}

type dateRange struct {
	StartDate string  `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

type temperatureEntry struct {
	Observation string   `json:"Observation"`
	Temperature *float64 `json:"Temperature"`
}

// temperatureResponse is the [range, TMIN, TAVG, TMAX] array served by the
// date routes. An empty end is encoded as null.
func temperatureResponse(start, end string, summary types.TemperatureSummary) []any {
	r := dateRange{StartDate: start}
	if end != "" {
		r.EndDate = &end
	}
	return []any{
		r,
		temperatureEntry{Observation: "TMIN", Temperature: summary.Min},
		temperatureEntry{Observation: "TAVG", Temperature: summary.Avg},
		temperatureEntry{Observation: "TMAX", Temperature: summary.Max},
	}
}
