package cmdimport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	ccsv "hours-stats/connectors/csv"
	"hours-stats/connectors/remote"
	dconfig "hours-stats/domain/config"
	"hours-stats/domain/hours"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, path, sheet string, rows [][]any) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if sheet != "Sheet1" {
		require.NoError(t, f.SetSheetName("Sheet1", sheet))
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}
	require.NoError(t, f.SaveAs(path))
}

func fixtures(t *testing.T) (string, dconfig.Sources) {
	dir := t.TempDir()
	plan := filepath.Join(dir, "plan.xlsx")
	entries := filepath.Join(dir, "horas.xlsx")
	writeWorkbook(t, plan, "Extração de Dados", [][]any{
		{hours.ColPlanProject, hours.ColPlanActivity, hours.ColPlanSold, hours.ColPlanPlanned, hours.ColPlanExecuted, hours.ColPlanBalance},
		{"P1", "Config A", 10, 8, 6, 2},
		{"P1", "Field Visit", 5, 5, 5, 0},
	})
	writeWorkbook(t, entries, "Sheet1", [][]any{
		{hours.ColEntryProject, hours.ColEntryActivity, hours.ColEntryType, hours.ColEntryDate, hours.ColEntryHours},
		{"P1", "Config A", "Improdutivas", 45366, 1.5},
	})
	return dir, dconfig.Sources{
		Plan:        dconfig.Source{Path: plan, Sheet: "Extração de Dados"},
		TimeEntries: dconfig.Source{Path: entries},
		Causes:      dconfig.Source{Path: filepath.Join(dir, "missing.xlsx"), Sheet: "Causas"},
	}
}

func TestLoad(t *testing.T) {
	_, src := fixtures(t)

	ds, err := Load(context.Background(), remote.New(context.Background(), nil, ""), src)
	require.NoError(t, err)

	require.Len(t, ds.Plan, 2)
	require.Len(t, ds.TimeEntry, 1)
	assert.Equal(t, "45366", ds.TimeEntry[0].Date)
	assert.Empty(t, ds.Causes, "missing optional source")
	assert.Empty(t, ds.CauseTable, "unset optional source")

	m := hours.ComputeHeadlineMetrics(ds.Plan, ds.TimeEntry, hours.DefaultFilterState().Apply(hours.FieldProject, "P1"))
	assert.Equal(t, hours.AggregatedMetrics{Sold: 15, Planned: 13, Consumed: 11, Unproductive: 1.5, Balance: 2}, m)
}

func TestLoad_RequiredSourceMissing(t *testing.T) {
	_, src := fixtures(t)
	src.TimeEntries.Path = ""
	_, err := Load(context.Background(), remote.New(context.Background(), nil, ""), src)
	assert.ErrorContains(t, err, "missing time_entries source path")

	src.TimeEntries.Path = "/does/not/exist.xlsx"
	_, err = Load(context.Background(), remote.New(context.Background(), nil, ""), src)
	assert.Error(t, err)
}

func TestLoad_FromURL(t *testing.T) {
	dir, src := fixtures(t)
	srv := httptest.NewServer(http.FileServer(http.Dir(dir)))
	defer srv.Close()
	src.Plan.Path = srv.URL + "/plan.xlsx"

	ds, err := Load(context.Background(), remote.New(context.Background(), srv.Client(), "token"), src)
	require.NoError(t, err)
	assert.Len(t, ds.Plan, 2)
}

func TestRun_WritesSnapshot(t *testing.T) {
	dir, src := fixtures(t)
	out := filepath.Join(dir, "data")
	t.Setenv("CONFIG_PATH", filepath.Join(dir, "none.yml"))

	err := Run([]string{
		"-plan", src.Plan.Path, "-plan-sheet", src.Plan.Sheet,
		"-hours", src.TimeEntries.Path,
		"-causes", "", "-cause-table", "",
		"-out", out,
	})
	require.NoError(t, err)

	ds, err := ccsv.ReadDataset(out)
	require.NoError(t, err)
	assert.Len(t, ds.Plan, 2)
	assert.Len(t, ds.TimeEntry, 1)
}
