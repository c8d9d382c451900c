package production

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Column names of the production efficiency dataset.
const (
	ColDate       = "Production_Date"
	ColShift      = "Shift"
	ColPlanned    = "Planned_Units"
	ColDefectRate = "Defect_Rate_%"
	ColDowntime   = "Downtime_Minutes"
)

var requiredColumns = []string{ColDate, ColShift, ColPlanned, ColDefectRate, ColDowntime}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
}

// ErrMissingColumn is returned when the header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// LoadCSV reads a dataset file into a Store.
func LoadCSV(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	records, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}
	return NewStore(path, records), nil
}

// ReadCSV parses records from r. Columns are matched by header name; unknown columns are ignored.
func ReadCSV(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	var records []Record
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		rec, err := parseRow(row, index)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func parseRow(row []string, index map[string]int) (Record, error) {
	field := func(col string) string {
		return strings.TrimSpace(row[index[col]])
	}

	date, err := parseDate(field(ColDate))
	if err != nil {
		return Record{}, err
	}

	planned, err := strconv.Atoi(field(ColPlanned))
	if err != nil {
		// Some exports write integer columns as floats ("120.0").
		f, ferr := strconv.ParseFloat(field(ColPlanned), 64)
		if ferr != nil {
			return Record{}, fmt.Errorf("invalid %s %q", ColPlanned, field(ColPlanned))
		}
		planned = int(f)
	}
	if planned < 0 {
		return Record{}, fmt.Errorf("negative %s %d", ColPlanned, planned)
	}

	defect, err := strconv.ParseFloat(field(ColDefectRate), 64)
	if err != nil || defect < 0 {
		return Record{}, fmt.Errorf("invalid %s %q", ColDefectRate, field(ColDefectRate))
	}

	downtime, err := strconv.ParseFloat(field(ColDowntime), 64)
	if err != nil || downtime < 0 {
		return Record{}, fmt.Errorf("invalid %s %q", ColDowntime, field(ColDowntime))
	}

	return Record{
		Date:            Day(date),
		Shift:           field(ColShift),
		PlannedUnits:    planned,
		DefectRatePct:   defect,
		DowntimeMinutes: downtime,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid %s %q", ColDate, s)
}

// WriteCSV writes records in the dataset layout.
func WriteCSV(w io.Writer, records []Record) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(requiredColumns); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.Date.Format("2006-01-02"),
			r.Shift,
			strconv.Itoa(r.PlannedUnits),
			strconv.FormatFloat(r.DefectRatePct, 'f', 2, 64),
			strconv.FormatFloat(r.DowntimeMinutes, 'f', -1, 64),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
