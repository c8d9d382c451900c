package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"pes-mcp/internal/config"
	"pes-mcp/internal/production"
	"pes-mcp/internal/simulation"
)

// loadEngine reads the dataset and presets named by the configuration.
func loadEngine(cfg *config.AppConfig) (*simulation.Engine, []config.Preset, error) {
	store, err := production.LoadCSV(cfg.DatasetPath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	presets, err := config.LoadPresets(cfg.PresetsPath())
	if err != nil {
		return nil, nil, err
	}

	minDate, maxDate, _ := store.DateBounds()
	log.Info().
		Str("source", store.Source()).
		Int("records", store.Len()).
		Time("from", minDate).
		Time("to", maxDate).
		Int("presets", len(presets)).
		Msg("Dataset loaded")

	engine := simulation.NewEngine(store, simulation.Options{
		AnomalyThreshold: cfg.AnomalyThreshold,
		ForecastHorizon:  cfg.ForecastHorizon,
	})
	return engine, presets, nil
}
