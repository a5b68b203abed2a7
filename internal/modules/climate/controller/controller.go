package controller

import (
	"net/http"

	"climate-server/internal/modules/climate/repository"
)

const apiPrefix = "/api/v1.0"

type ClimateController interface {
	RegisterRoutes(mux *http.ServeMux)
}

type climateControllerImpl struct {
	repository repository.ClimateRepository
}

func NewClimateController(repository repository.ClimateRepository) ClimateController {
	return &climateControllerImpl{repository: repository}
}

// RegisterRoutes wires the API onto mux. Literal segments take precedence
// over the {start} wildcard, so /precipitation, /stations and /tobs never
// reach the date handlers.
func (c *climateControllerImpl) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", c.handleIndex)
	mux.HandleFunc("GET "+apiPrefix+"/precipitation", c.handlePrecipitation)
	mux.HandleFunc("GET "+apiPrefix+"/stations", c.handleStations)
	mux.HandleFunc("GET "+apiPrefix+"/tobs", c.handleTobs)
	mux.HandleFunc("GET "+apiPrefix+"/{start}", c.handleTemperatureFrom)
	mux.HandleFunc("GET "+apiPrefix+"/{start}/{end}", c.handleTemperatureRange)
}
