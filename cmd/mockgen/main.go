package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"pes-mcp/cmd/mockgen/engine"
	"pes-mcp/internal/config"
)

func main() {
	scenario := flag.String("scenario", engine.ScenarioMild, "Scenario to generate: mild, volatile, decline")
	days := flag.Int("days", 60, "Number of production days to generate")
	shifts := flag.String("shifts", strings.Join(engine.DefaultShifts, ","), "Comma-separated shift names")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	outDir := flag.String("out", "./.cache", "Output directory for the dataset")
	name := flag.String("name", config.DefaultDatasetFile, "Dataset file name")
	flag.Parse()

	cfg := engine.GeneratorConfig{
		Scenario: *scenario,
		Days:     *days,
		Shifts:   strings.Split(*shifts, ","),
		Seed:     *seed,
		Now:      time.Now(),
	}

	fmt.Printf("Generating scenario '%s' (Days: %d, Shifts: %v, Seed: %d) to %s...\n", cfg.Scenario, cfg.Days, cfg.Shifts, cfg.Seed, *outDir)

	records, err := engine.Generate(cfg)
	if err != nil {
		fmt.Printf("Failed to generate mock data: %v\n", err)
		os.Exit(1)
	}

	path, err := engine.Save(*outDir, *name, records)
	if err != nil {
		fmt.Printf("Failed to save mock data: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Done. %d records written to %s\n", len(records), path)
}
