package controller

import (
	"encoding/json"
	"testing"

	"climate-server/internal/modules/climate/types"
)

func ptr(f float64) *float64 { return &f }

func TestWindowStart(t *testing.T) {
	tests := []struct {
		name   string
		latest string
		want   string
	}{
		{name: "dataset end", latest: "2017-08-23", want: "2016-08-23"},
		{name: "crosses leap day", latest: "2016-03-01", want: "2015-03-02"},
		{name: "lands on leap day", latest: "2017-02-28", want: "2016-02-29"},
		{name: "year start", latest: "2017-01-01", want: "2016-01-02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := windowStart(tt.latest)
			if err != nil {
				t.Fatalf("windowStart(%q) error = %v", tt.latest, err)
			}
			if got != tt.want {
				t.Errorf("windowStart(%q) = %q; want %q", tt.latest, got, tt.want)
			}
		})
	}
}

func TestWindowStart_invalid(t *testing.T) {
	for _, in := range []string{"", "2017-8-23", "23/08/2017", "2017-08-23T00:00:00"} {
		if _, err := windowStart(in); err == nil {
			t.Errorf("windowStart(%q) error = nil; want error", in)
		}
	}
}

func TestPrecipitationByDate_lastWriteWins(t *testing.T) {
	got := precipitationByDate([]types.Observation{
		{Station: "A", Date: "2017-01-01", Precipitation: ptr(1.0), Temperature: 70},
		{Station: "B", Date: "2017-01-01", Precipitation: ptr(2.0), Temperature: 75},
		{Station: "A", Date: "2017-01-02", Precipitation: nil, Temperature: 71},
	})

	if len(got) != 2 {
		t.Fatalf("len = %d; want 2", len(got))
	}
	if v := got["2017-01-01"]; v == nil || *v != 2.0 {
		t.Errorf("2017-01-01 = %v; want 2.0 from the later row", v)
	}
	if v, ok := got["2017-01-02"]; !ok || v != nil {
		t.Errorf("2017-01-02 = %v (present=%v); want present nil", v, ok)
	}
}

func TestPrecipitationByDate_nullOverwritesValue(t *testing.T) {
	got := precipitationByDate([]types.Observation{
		{Station: "A", Date: "2017-01-01", Precipitation: ptr(1.0)},
		{Station: "B", Date: "2017-01-01", Precipitation: nil},
	})
	if v := got["2017-01-01"]; v != nil {
		t.Errorf("2017-01-01 = %v; want nil from the later row", *v)
	}
}

func TestTobsEntries_keepsEveryRow(t *testing.T) {
	got := tobsEntries([]types.Observation{
		{Station: "A", Date: "2017-01-01", Precipitation: ptr(1.0), Temperature: 70},
		{Station: "B", Date: "2017-01-01", Precipitation: ptr(2.0), Temperature: 75},
	})
	want := []tobsEntry{
		{Date: "2017-01-01", Station: "A", Tobs: 70},
		{Date: "2017-01-01", Station: "B", Tobs: 75},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d; want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v; want %+v", i, got[i], want[i])
		}
	}

	if empty := tobsEntries(nil); empty == nil || len(empty) != 0 {
		t.Errorf("tobsEntries(nil) = %#v; want empty non-nil slice", empty)
	}
}

func TestTemperatureResponse_shape(t *testing.T) {
	summary := types.TemperatureSummary{Min: ptr(56), Avg: ptr(74.5), Max: ptr(87)}
	b, err := json.Marshal(temperatureResponse("2017-01-01", "2017-12-31", summary))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `[{"start_date":"2017-01-01","end_date":"2017-12-31"},` +
		`{"Observation":"TMIN","Temperature":56},` +
		`{"Observation":"TAVG","Temperature":74.5},` +
		`{"Observation":"TMAX","Temperature":87}]`
	if string(b) != want {
		t.Errorf("json = %s\nwant   %s", b, want)
	}
}

func TestTemperatureResponse_nulls(t *testing.T) {
	b, err := json.Marshal(temperatureResponse("2030-01-01", "", types.TemperatureSummary{}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `[{"start_date":"2030-01-01","end_date":null},` +
		`{"Observation":"TMIN","Temperature":null},` +
		`{"Observation":"TAVG","Temperature":null},` +
		`{"Observation":"TMAX","Temperature":null}]`
	if string(b) != want {
		t.Errorf("json = %s\nwant   %s", b, want)
	}
}
