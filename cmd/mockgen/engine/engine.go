package engine

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"pes-mcp/internal/production"
)

// Scenarios understood by Generate.
const (
	ScenarioMild     = "mild"
	ScenarioVolatile = "volatile"
	ScenarioDecline  = "decline"
)

// DefaultShifts are the shifts of the reference dataset.
var DefaultShifts = []string{"Morning", "Evening", "Night"}

type GeneratorConfig struct {
	Scenario string
	Days     int
	Shifts   []string
	Seed     int64
	Now      time.Time
}

// Generate produces one record per shift per day, ending on the day of cfg.Now.
func Generate(cfg GeneratorConfig) ([]production.Record, error) {
	switch cfg.Scenario {
	case ScenarioMild, ScenarioVolatile, ScenarioDecline:
	default:
		return nil, fmt.Errorf("unknown scenario %q (want mild, volatile or decline)", cfg.Scenario)
	}
	if cfg.Days < 1 {
		return nil, fmt.Errorf("days must be at least 1, got %d", cfg.Days)
	}
	if cfg.Now.IsZero() {
		cfg.Now = time.Now()
	}
	if len(cfg.Shifts) == 0 {
		cfg.Shifts = DefaultShifts
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	last := production.Day(cfg.Now)
	first := last.AddDate(0, 0, -(cfg.Days - 1))

	records := make([]production.Record, 0, cfg.Days*len(cfg.Shifts))
	for d := 0; d < cfg.Days; d++ {
		date := first.AddDate(0, 0, d)
		progress := 0.0
		if cfg.Days > 1 {
			progress = float64(d) / float64(cfg.Days-1)
		}

		for _, shift := range cfg.Shifts {
			// Mild: planned 450-550, defects 1-4%, downtime 0-45 min.
			planned := 450 + rng.Intn(101)
			defect := 1 + rng.Float64()*3
			downtime := rng.Float64() * 45

			switch cfg.Scenario {
			case ScenarioVolatile:
				defect = 0.5 + rng.Float64()*7.5
				downtime = rng.ExpFloat64() * 30
				if rng.Float64() < 0.1 {
					downtime += 60 + rng.Float64()*90 // Line stops
				}
				if rng.Float64() < 0.03 {
					planned = 0 // Idle shift
				}
			case ScenarioDecline:
				// Planned volume erodes by up to a third while quality and uptime degrade.
				planned = int(float64(planned) * (1 - progress/3))
				defect += progress * 4
				downtime += progress * 60
			}

			records = append(records, production.Record{
				Date:            date,
				Shift:           shift,
				PlannedUnits:    planned,
				DefectRatePct:   round2(defect),
				DowntimeMinutes: math.Min(math.Round(downtime), 240),
			})
		}
	}
	return records, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Save writes records as a dataset CSV at outDir/name.
func Save(outDir, name string, records []production.Record) (string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(outDir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := production.WriteCSV(f, records); err != nil {
		return "", err
	}
	return path, f.Close()
}
