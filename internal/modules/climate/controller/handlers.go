package controller

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"climate-server/internal/modules/climate/repository"
	"climate-server/internal/modules/climate/types"
	"climate-server/internal/modules/climate/views"
	"climate-server/internal/utils"
)

func (c *climateControllerImpl) handleIndex(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	data := &views.IndexData{Title: "Hawaii Climate API", Routes: indexRoutes}
	if err := views.RenderIndex(&buf, data); err != nil {
		slog.ErrorContext(r.Context(), "index template render failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to render page")
		return
	}
	utils.WriteHTML(w, http.StatusOK, buf.Bytes())
}

func (c *climateControllerImpl) handlePrecipitation(w http.ResponseWriter, r *http.Request) {
	observations, ok := c.lastYear(w, r)
	if !ok {
		return
	}
	utils.WriteJSON(w, http.StatusOK, precipitationByDate(observations))
}

func (c *climateControllerImpl) handleStations(w http.ResponseWriter, r *http.Request) {
	stations, err := c.repository.AllStations(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "stations: query failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load stations")
		return
	}
	utils.WriteJSON(w, http.StatusOK, stations)
}

func (c *climateControllerImpl) handleTobs(w http.ResponseWriter, r *http.Request) {
	observations, ok := c.lastYear(w, r)
	if !ok {
		return
	}
	utils.WriteJSON(w, http.StatusOK, tobsEntries(observations))
}

func (c *climateControllerImpl) handleTemperatureFrom(w http.ResponseWriter, r *http.Request) {
	start := r.PathValue("start")

	latest, err := c.repository.LatestObservationDate(r.Context())
	if errors.Is(err, repository.ErrNoObservations) {
		utils.WriteJSON(w, http.StatusOK, temperatureResponse(start, "", types.TemperatureSummary{}))
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "temperature: latest date lookup failed", "start", start, "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load observations")
		return
	}

	c.writeTemperatureSummary(w, r, start, latest)
}

func (c *climateControllerImpl) handleTemperatureRange(w http.ResponseWriter, r *http.Request) {
	c.writeTemperatureSummary(w, r, r.PathValue("start"), r.PathValue("end"))
}

func (c *climateControllerImpl) writeTemperatureSummary(w http.ResponseWriter, r *http.Request, start, end string) {
	summary, err := c.repository.TemperatureSummary(r.Context(), start, end)
	if err != nil {
		slog.ErrorContext(r.Context(), "temperature: summary query failed", "start", start, "end", end, "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load observations")
		return
	}
	utils.WriteJSON(w, http.StatusOK, temperatureResponse(start, end, summary))
}

// lastYear loads the observations within windowDays of the latest stored
// date. On failure the error response has already been written.
func (c *climateControllerImpl) lastYear(w http.ResponseWriter, r *http.Request) ([]types.Observation, bool) {
	latest, err := c.repository.LatestObservationDate(r.Context())
	if errors.Is(err, repository.ErrNoObservations) {
		return nil, true
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "last year: latest date lookup failed", "path", r.URL.Path, "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load observations")
		return nil, false
	}

	cutoff, err := windowStart(latest)
	if err != nil {
		slog.ErrorContext(r.Context(), "last year: bad stored date", "latest", latest, "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load observations")
		return nil, false
	}

	observations, err := c.repository.ObservationsSince(r.Context(), cutoff)
	if err != nil {
		slog.ErrorContext(r.Context(), "last year: observations query failed", "cutoff", cutoff, "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load observations")
		return nil, false
	}
	return observations, true
}
