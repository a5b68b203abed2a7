package types

// Station is one row of the station reference table.
type Station struct {
	ID        int     `json:"id"`
	Station   string  `json:"station"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Elevation float64 `json:"elevation"`
}

// Observation is one daily measurement row. Date is the stored
// zero-padded YYYY-MM-DD string; Precipitation is nil when not recorded.
type Observation struct {
	Station       string   `json:"station"`
	Date          string   `json:"date"`
	Precipitation *float64 `json:"prcp"`
	Temperature   float64  `json:"tobs"`
}

// TemperatureSummary holds the aggregates over a date range. All three are
// nil when no observation fell inside the range.
type TemperatureSummary struct {
	Min *float64
	Avg *float64
	Max *float64
}
