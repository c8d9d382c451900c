package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"pes-mcp/internal/config"
	"pes-mcp/internal/simulation"
	"pes-mcp/internal/validation"
)

type datasetResponse struct {
	Source    string   `json:"source"`
	Records   int      `json:"records"`
	StartDate string   `json:"start_date,omitempty"`
	EndDate   string   `json:"end_date,omitempty"`
	Shifts    []string `json:"shifts"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	JSON(w, r, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleDataset(w http.ResponseWriter, r *http.Request) {
	store := s.engine.Store()
	res := datasetResponse{
		Source:  store.Source(),
		Records: store.Len(),
		Shifts:  store.Shifts(),
	}
	if res.Shifts == nil {
		res.Shifts = []string{}
	}
	if minDate, maxDate, ok := store.DateBounds(); ok {
		res.StartDate = minDate.Format(simulation.DateLayout)
		res.EndDate = maxDate.Format(simulation.DateLayout)
	}
	JSON(w, r, http.StatusOK, APIResponse{Data: res})
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	JSON(w, r, http.StatusOK, APIResponse{Data: s.presets})
}

func (s *Server) handleRunScenario(w http.ResponseWriter, r *http.Request) {
	var in simulation.Input
	if err := DecodeJSON(w, r, &in); err != nil {
		Error(w, r, err)
		return
	}
	s.run(w, r, in)
}

// handleRunPreset runs a named preset over the whole dataset.
func (s *Server) handleRunPreset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "preset")
	if _, ok := config.FindPreset(s.presets, name); !ok {
		Error(w, r, newError(http.StatusNotFound, "preset_not_found", "unknown preset "+name))
		return
	}
	s.run(w, r, simulation.Input{Preset: name})
}

func (s *Server) run(w http.ResponseWriter, r *http.Request, in simulation.Input) {
	req, err := in.Request(s.presets)
	if err != nil {
		Error(w, r, asBadRequest(err))
		return
	}

	start := time.Now()
	report := s.engine.Run(req)
	elapsed := time.Since(start)
	s.metrics.ObserveRun(report, elapsed)

	log.Info().
		Str("run_id", report.RunID).
		Int("records", report.Scope.Records).
		Str("bottleneck", string(report.Bottleneck.Label)).
		Int("anomalies", report.Anomalies.Count).
		Dur("elapsed", elapsed).
		Msg("Scenario run completed")

	JSON(w, r, http.StatusOK, APIResponse{Data: report, Warnings: report.Warnings})
}

// asBadRequest keeps field validation errors and turns any other input failure into a 400.
func asBadRequest(err error) error {
	var verr *validation.Error
	if errors.As(err, &verr) {
		return err
	}
	return newError(http.StatusBadRequest, "invalid_request", err.Error())
}
