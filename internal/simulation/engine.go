package simulation

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"pes-mcp/internal/production"
	"pes-mcp/internal/stats"
)

// Request describes one what-if run. A nil Start/End defaults to the dataset bounds and a nil
// Shifts slice selects every shift; a non-nil empty Shifts selects none.
type Request struct {
	Start            *time.Time                 `json:"start,omitempty"`
	End              *time.Time                 `json:"end,omitempty"`
	Shifts           []string                   `json:"shifts,omitempty"`
	Params           stats.SimulationParameters `json:"parameters"`
	AnomalyThreshold *float64                   `json:"anomaly_threshold,omitempty"`
	IncludeRecords   bool                       `json:"include_records,omitempty"`
}

// Scope is the resolved filter a report was computed over.
type Scope struct {
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Shifts  []string  `json:"shifts"`
	Records int       `json:"records"`
}

// Report is every derived view of one run. Nothing in it is cached between runs.
type Report struct {
	RunID            string                     `json:"run_id"`
	GeneratedAt      time.Time                  `json:"generated_at"`
	Source           string                     `json:"source"`
	Scope            Scope                      `json:"scope"`
	Parameters       stats.SimulationParameters `json:"parameters"`
	KPIs             stats.KPISummary           `json:"kpis"`
	DefectSeverity   stats.DefectSeverity       `json:"defect_severity"`
	ShiftPerformance []stats.ShiftEfficiency    `json:"shift_performance"`
	EfficiencyTrend  []stats.EfficiencyPoint    `json:"efficiency_trend"`
	Stability        stats.XmRResult            `json:"efficiency_stability"`
	OutputTrend      []stats.OutputPoint        `json:"output_trend"`
	DowntimeImpact   stats.DowntimeImpactResult `json:"downtime_impact"`
	DefectDensity    stats.DensityResult        `json:"defect_density"`
	Anomalies        stats.AnomalyReport        `json:"anomalies"`
	Bottleneck       stats.BottleneckReport     `json:"bottleneck"`
	Forecast         stats.ForecastResult       `json:"forecast"`
	Records          []stats.SimulatedRecord    `json:"records,omitempty"`
	Warnings         []string                   `json:"warnings,omitempty"`
}

// Options tunes an Engine.
type Options struct {
	AnomalyThreshold float64
	ForecastHorizon  int
	DensityGridSize  int
}

// DefaultOptions returns the dashboard defaults.
func DefaultOptions() Options {
	return Options{
		AnomalyThreshold: stats.DefaultAnomalyThreshold,
		ForecastHorizon:  stats.DefaultForecastHorizon,
		DensityGridSize:  stats.DefaultDensityGridSize,
	}
}

// Engine runs the scenario pipeline against a read-only record store.
type Engine struct {
	store *production.Store
	opts  Options
	now   func() time.Time
}

// NewEngine creates an engine. Unset or non-positive option fields fall back to DefaultOptions;
// a threshold of 0 can still be requested per run through Request.AnomalyThreshold.
func NewEngine(store *production.Store, opts Options) *Engine {
	def := DefaultOptions()
	if opts.AnomalyThreshold <= 0 {
		opts.AnomalyThreshold = def.AnomalyThreshold
	}
	if opts.ForecastHorizon <= 0 {
		opts.ForecastHorizon = def.ForecastHorizon
	}
	if opts.DensityGridSize < 2 {
		opts.DensityGridSize = def.DensityGridSize
	}
	if store == nil {
		store = production.NewStore("", nil)
	}
	return &Engine{store: store, opts: opts, now: time.Now}
}

// Store returns the engine's record store.
func (e *Engine) Store() *production.Store {
	return e.store
}

// Options returns the effective engine options.
func (e *Engine) Options() Options {
	return e.opts
}

// Resolve fills request defaults from the dataset.
func (e *Engine) Resolve(req Request) Scope {
	minDate, maxDate, _ := e.store.DateBounds()

	scope := Scope{Start: minDate, End: maxDate, Shifts: req.Shifts}
	if req.Start != nil {
		scope.Start = production.Day(*req.Start)
	}
	if req.End != nil {
		scope.End = production.Day(*req.End)
	}
	if scope.Shifts == nil {
		scope.Shifts = e.store.Shifts()
	}
	if scope.Shifts == nil {
		scope.Shifts = []string{}
	}
	return scope
}

// Run filters, simulates and derives every view for one request.
func (e *Engine) Run(req Request) Report {
	scope := e.Resolve(req)
	params := req.Params.Clamp()

	threshold := e.opts.AnomalyThreshold
	if req.AnomalyThreshold != nil {
		threshold = *req.AnomalyThreshold
	}

	filtered := stats.Filter(e.store.Records(), scope.Start, scope.End, scope.Shifts)
	scope.Records = len(filtered)
	simulated := stats.Simulate(filtered, params)

	report := Report{
		RunID:            uuid.NewString(),
		GeneratedAt:      e.now().UTC(),
		Source:           e.store.Source(),
		Scope:            scope,
		Parameters:       params,
		KPIs:             stats.CalculateKPIs(simulated, params),
		DefectSeverity:   stats.AssessDefectSeverity(filtered),
		ShiftPerformance: stats.ShiftPerformance(simulated),
		EfficiencyTrend:  stats.EfficiencyTrend(simulated),
		OutputTrend:      stats.OutputTrend(simulated),
		DowntimeImpact:   stats.DowntimeImpact(simulated),
		DefectDensity:    stats.DefectDensity(simulated, e.opts.DensityGridSize),
		Anomalies:        stats.DetectAnomalies(simulated, threshold),
		Bottleneck:       stats.AnalyzeBottleneck(params, len(simulated)),
	}
	report.Stability = stats.EfficiencyStability(report.EfficiencyTrend)
	report.Forecast = stats.ForecastOutput(report.OutputTrend, e.opts.ForecastHorizon)
	if req.IncludeRecords {
		report.Records = simulated
	}
	report.Warnings = qualityWarnings(req, params, scope, simulated)

	return report
}

func qualityWarnings(req Request, params stats.SimulationParameters, scope Scope, simulated []stats.SimulatedRecord) []string {
	var warnings []string

	if params != req.Params {
		warnings = append(warnings, fmt.Sprintf("PARAMETER WARNING: scenario parameters were clamped to the supported ranges (defect %.2f%%, downtime %d min, shortage %.2f%%).",
			params.DefectPct, params.DowntimeMinutes, params.MaterialShortagePct))
	}
	if scope.Start.After(scope.End) {
		warnings = append(warnings, "FILTER WARNING: the start date is after the end date, so no records are in scope.")
	}
	if len(scope.Shifts) == 0 {
		warnings = append(warnings, "FILTER WARNING: no shifts are selected, so no records are in scope.")
	}

	undefined := 0
	for _, r := range simulated {
		if !r.EfficiencyPct.Valid() {
			undefined++
		}
	}
	if undefined > 0 {
		warnings = append(warnings, fmt.Sprintf("DATA INTEGRITY WARNING: %d record(s) have zero planned units. Their efficiency is undefined and excluded from averages.", undefined))
	}

	return warnings
}
