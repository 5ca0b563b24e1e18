package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"hours-stats/domain/hours"
)

// Snapshot file names inside the data directory.
const (
	PlanFile       = "plan.csv"
	TimeEntryFile  = "time_entry.csv"
	CauseFile      = "cause.csv"
	CauseTableFile = "cause_table.csv"
)

var (
	planHeaders       = []string{"project", "activity", "sold_hours", "planned_hours", "executed_hours", "balance_hours"}
	timeEntryHeaders  = []string{"project", "activity", "activity_type", "date", "hours"}
	causeHeaders      = []string{"project", "stage", "cause", "value"}
	causeTableHeaders = []string{"project", "stage", "cause", "description", "hours"}
)

// WriteDataset writes the four snapshot CSVs into dir.
func WriteDataset(dir string, ds hours.Dataset) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := writeRows(filepath.Join(dir, PlanFile), planHeaders, ds.Plan, func(r hours.PlanRow) []string {
		return []string{r.Project, r.Activity, formatFloat(r.Sold), formatFloat(r.Planned), formatFloat(r.Executed), formatFloat(r.Balance)}
	}); err != nil {
		return err
	}
	if err := writeRows(filepath.Join(dir, TimeEntryFile), timeEntryHeaders, ds.TimeEntry, func(r hours.TimeEntryRow) []string {
		return []string{r.Project, r.Activity, r.Type, r.Date, formatFloat(r.Hours)}
	}); err != nil {
		return err
	}
	if err := writeRows(filepath.Join(dir, CauseFile), causeHeaders, ds.Causes, func(r hours.CauseRow) []string {
		return []string{r.Project, r.Stage, r.Cause, formatFloat(r.Value)}
	}); err != nil {
		return err
	}
	return writeRows(filepath.Join(dir, CauseTableFile), causeTableHeaders, ds.CauseTable, func(r hours.CauseTableRow) []string {
		return []string{r.Project, r.Stage, r.Cause, r.Description, formatFloat(r.Hours)}
	})
}

// ReadDataset loads the snapshot written by WriteDataset. The cause files are
// optional: a missing one yields an empty slice.
func ReadDataset(dir string) (hours.Dataset, error) {
	var ds hours.Dataset
	var err error
	if ds.Plan, err = readRows(filepath.Join(dir, PlanFile), planHeaders, func(r row) hours.PlanRow {
		return hours.PlanRow{
			Project:  r.text("project"),
			Activity: r.text("activity"),
			Sold:     r.number("sold_hours"),
			Planned:  r.number("planned_hours"),
			Executed: r.number("executed_hours"),
			Balance:  r.number("balance_hours"),
		}
	}); err != nil {
		return ds, err
	}
	if ds.TimeEntry, err = readRows(filepath.Join(dir, TimeEntryFile), timeEntryHeaders, func(r row) hours.TimeEntryRow {
		return hours.TimeEntryRow{
			Project:  r.text("project"),
			Activity: r.text("activity"),
			Type:     r.text("activity_type"),
			Date:     r.text("date"),
			Hours:    r.number("hours"),
		}
	}); err != nil {
		return ds, err
	}
	if ds.Causes, err = readRows(filepath.Join(dir, CauseFile), causeHeaders, func(r row) hours.CauseRow {
		return hours.CauseRow{Project: r.text("project"), Stage: r.text("stage"), Cause: r.text("cause"), Value: r.number("value")}
	}); err != nil && !errors.Is(err, os.ErrNotExist) {
		return ds, err
	}
	if ds.CauseTable, err = readRows(filepath.Join(dir, CauseTableFile), causeTableHeaders, func(r row) hours.CauseTableRow {
		return hours.CauseTableRow{
			Project:     r.text("project"),
			Stage:       r.text("stage"),
			Cause:       r.text("cause"),
			Description: r.text("description"),
			Hours:       r.number("hours"),
		}
	}); err != nil && !errors.Is(err, os.ErrNotExist) {
		return ds, err
	}
	if ds.Causes == nil {
		ds.Causes = []hours.CauseRow{}
	}
	if ds.CauseTable == nil {
		ds.CauseTable = []hours.CauseTableRow{}
	}
	return ds, nil
}

// ReadRecords loads a CSV file and returns a slice of objects keyed by headers.
// Values are kept as strings to avoid lossy or incorrect type coercion.
func ReadRecords(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	// Read all rows; CSVs are expected to be small.
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return []map[string]string{}, nil
	}

	headers := records[0]
	res := make([]map[string]string, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		rec := records[i]
		if len(rec) == 0 {
			continue
		}
		obj := make(map[string]string, len(headers))
		for j := 0; j < len(headers) && j < len(rec); j++ {
			obj[headers[j]] = rec[j]
		}
		res = append(res, obj)
	}
	return res, nil
}

type row struct {
	rec []string
	idx map[string]int
}

func (r row) text(col string) string {
	i, ok := r.idx[col]
	if !ok || i >= len(r.rec) {
		return ""
	}
	return strings.TrimSpace(r.rec[i])
}

func (r row) number(col string) float64 { return hours.ParseNumber(r.text(col)) }

func readRows[T any](path string, required []string, decode func(row) T) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	head, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []T{}, nil
		}
		return nil, err
	}
	idx := indexMap(head)
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%s missing column %s", filepath.Base(path), col)
		}
	}
	res := []T{}
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		res = append(res, decode(row{rec: rec, idx: idx}))
	}
	return res, nil
}

func writeRows[T any](path string, headers []string, rows []T, encode func(T) []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write(headers); err != nil {
		return err
	}
	for _, r := range rows {
		if err := w.Write(encode(r)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func indexMap(headers []string) map[string]int {
	m := map[string]int{}
	for i, h := range headers {
		m[strings.TrimSpace(strings.ToLower(h))] = i
	}
	return m
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
