package hours

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDashboard(t *testing.T) {
	ds := scenarioDataset()
	f := DefaultFilterState().Apply(FieldProject, "P1").Apply(FieldCause, "Parametrização")

	d := BuildDashboard(ds, f)

	assert.Equal(t, f, d.Filters)
	assert.Equal(t, AggregatedMetrics{Sold: 15, Planned: 13, Consumed: 11, Unproductive: 1.5, Balance: 2}, d.Metrics)
	require.Len(t, d.Stages, 2)
	assert.Equal(t, StageParametrization, d.Stages[0].Stage)
	assert.Equal(t, 75.0, d.Stages[0].ConsumptionRatio)
	assert.Equal(t, StageFieldTechnician, d.Stages[1].Stage)
	assert.Equal(t, CauseMetrics{Stage: "Parametrização", Planned: 8, Consumed: 6, Unproductive: 1.5, ConsumptionRatio: 75}, d.CauseMetrics)
	assert.Len(t, d.CauseChart, 2)
	assert.Len(t, d.CauseTable, 1)
	assert.Equal(t, []string{"Config A", "Field Visit"}, d.Options.Activities)
	assert.Equal(t, []string{"P1", "P2"}, d.Options.Projects)
	assert.Equal(t, []string{"Parametrização", "Técnico Campo"}, d.Options.CauseStages)
	assert.Equal(t, TypeOptions, d.Options.Types)
	assert.Equal(t, "2024-02", d.Options.DateMin)
	assert.Equal(t, "2024-03", d.Options.DateMax)
}

func TestBuildDashboard_NoProject(t *testing.T) {
	d := BuildDashboard(scenarioDataset(), DefaultFilterState())

	assert.Equal(t, AggregatedMetrics{}, d.Metrics)
	assert.Empty(t, d.Activities)
	assert.NotNil(t, d.Activities)
	assert.Empty(t, d.Stages)
	assert.Empty(t, d.CauseChart)
	assert.Empty(t, d.CauseTable)
	assert.Equal(t, CauseMetrics{}, d.CauseMetrics)
	assert.Empty(t, d.Options.Activities)
	assert.Empty(t, d.Options.CauseStages)
	assert.Equal(t, []string{"P1", "P2"}, d.Options.Projects)
}

func TestProjectOptions(t *testing.T) {
	plan := []PlanRow{{Project: "B"}, {Project: " A "}, {Project: ""}, {Project: "B"}}
	assert.Equal(t, []string{"A", "B"}, ProjectOptions(plan))
}

func TestRecordCoercion(t *testing.T) {
	plan := PlanRowFromRecord(Record{
		ColPlanProject:  " P1 ",
		ColPlanActivity: "Config A",
		ColPlanSold:     "10",
		ColPlanPlanned:  "8,5",
		ColPlanExecuted: "n/a",
	})
	assert.Equal(t, PlanRow{Project: "P1", Activity: "Config A", Sold: 10, Planned: 8.5}, plan)

	entry := TimeEntryRowFromRecord(Record{
		ColEntryProject: "P1",
		ColEntryType:    " Improdutivas ",
		ColEntryDate:    "45366",
		ColEntryHours:   "1.5",
	})
	assert.Equal(t, TimeEntryRow{Project: "P1", Type: "Improdutivas", Date: "45366", Hours: 1.5}, entry)

	cause := CauseRowFromRecord(Record{ColCauseProject: "P1", ColCauseStage: "TAF", ColCauseCause: "Peças", ColCauseHours: "2"})
	assert.Equal(t, CauseRow{Project: "P1", Stage: "TAF", Cause: "Peças", Value: 2}, cause)

	detail := CauseTableRowFromRecord(Record{ColCauseProject: "P1", ColCauseDescription: " x "})
	assert.Equal(t, CauseTableRow{Project: "P1", Description: "x"}, detail)

	assert.Equal(t, PlanRow{}, PlanRowFromRecord(nil))
}

func TestParseNumber(t *testing.T) {
	tests := map[string]float64{
		"":        0,
		"12":      12,
		" 12.5 ":  12.5,
		"12,5":    12.5,
		"1.234,5": 1234.5,
		"1,234.5": 1234.5,
		"-3":      -3,
		"abc":     0,
		"NaN":     0,
		"+Inf":    0,
		"1,2,3":   0,
	}
	for raw, want := range tests {
		assert.Equal(t, want, ParseNumber(raw), raw)
	}
}
