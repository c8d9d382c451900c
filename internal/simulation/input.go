package simulation

import (
	"fmt"
	"time"

	"pes-mcp/internal/config"
	"pes-mcp/internal/validation"
)

// DateLayout is the calendar date format accepted on every input surface.
const DateLayout = "2006-01-02"

// Input is the wire form of a scenario request. Unset parameters come from the preset, or the
// baseline when no preset is named.
type Input struct {
	Preset              string   `json:"preset,omitempty" jsonschema:"Optional named scenario preset supplying the parameters (default: baseline)"`
	StartDate           string   `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02" jsonschema:"Optional first production date to include (YYYY-MM-DD). Default: earliest date in the dataset."`
	EndDate             string   `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02" jsonschema:"Optional last production date to include (YYYY-MM-DD). Default: latest date in the dataset."`
	Shifts              []string `json:"shifts,omitempty" jsonschema:"Optional shifts to include. Omit for all shifts; an empty list selects none."`
	DefectPct           *float64 `json:"defect_pct,omitempty" validate:"omitempty,gte=0,lte=20" jsonschema:"Simulated defect rate in percent (0-20)"`
	DowntimeMinutes     *int     `json:"downtime_minutes,omitempty" validate:"omitempty,gte=0,lte=180" jsonschema:"Simulated downtime per record in minutes (0-180)"`
	MaterialShortagePct *float64 `json:"material_shortage_pct,omitempty" validate:"omitempty,gte=0,lte=15" jsonschema:"Simulated material shortage in percent (0-15)"`
	AnomalyThreshold    *float64 `json:"anomaly_threshold,omitempty" validate:"omitempty,gte=0,lte=100" jsonschema:"Efficiency percentage below which a record is flagged (default: 60)"`
	IncludeRecords      bool     `json:"include_records,omitempty" jsonschema:"If true, the per-record simulation table is included in the report"`
}

// Request validates the input and resolves it into an engine request.
func (in Input) Request(presets []config.Preset) (Request, error) {
	if err := validation.Struct(in); err != nil {
		return Request{}, err
	}

	preset := config.Baseline()
	if in.Preset != "" {
		p, ok := config.FindPreset(presets, in.Preset)
		if !ok {
			return Request{}, fmt.Errorf("unknown preset %q", in.Preset)
		}
		preset = p
	}

	params := preset.Parameters
	if in.DefectPct != nil {
		params.DefectPct = *in.DefectPct
	}
	if in.DowntimeMinutes != nil {
		params.DowntimeMinutes = *in.DowntimeMinutes
	}
	if in.MaterialShortagePct != nil {
		params.MaterialShortagePct = *in.MaterialShortagePct
	}

	req := Request{
		Shifts:           in.Shifts,
		Params:           params,
		AnomalyThreshold: in.AnomalyThreshold,
		IncludeRecords:   in.IncludeRecords,
	}

	var err error
	if req.Start, err = parseDate(in.StartDate); err != nil {
		return Request{}, fmt.Errorf("invalid start_date: %w", err)
	}
	if req.End, err = parseDate(in.EndDate); err != nil {
		return Request{}, fmt.Errorf("invalid end_date: %w", err)
	}
	return req, nil
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

