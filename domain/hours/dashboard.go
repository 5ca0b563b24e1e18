package hours

// Dashboard is everything the rendering layer needs for one filter state.
type Dashboard struct {
	Filters      FilterState       `json:"filters"`
	Options      Options           `json:"options"`
	Metrics      AggregatedMetrics `json:"metrics"`
	Activities   []ActivityMetrics `json:"activities"`
	Stages       []StageGroup      `json:"stages"`
	CauseChart   []CauseChartPoint `json:"cause_chart"`
	CauseTable   []CauseTableEntry `json:"cause_table"`
	CauseMetrics CauseMetrics      `json:"cause_metrics"`
}

// BuildDashboard runs the whole pipeline for f. It is pure: same inputs, same
// output, and ds is left untouched.
func BuildDashboard(ds Dataset, f FilterState) Dashboard {
	activities := ComputeActivityMetrics(ds.Plan, ds.TimeEntry, f)
	if activities == nil {
		activities = []ActivityMetrics{}
	}
	stages := ComputeStageGroups(activities)
	return Dashboard{
		Filters:      f,
		Options:      DeriveOptions(ds, f.Project),
		Metrics:      ComputeHeadlineMetrics(ds.Plan, ds.TimeEntry, f),
		Activities:   activities,
		Stages:       stages,
		CauseChart:   CauseChartData(ds.Causes, f.Project, f.Cause),
		CauseTable:   CauseTableData(ds.Causes, ds.CauseTable, f.Project, f.Cause),
		CauseMetrics: CalculateCauseMetrics(stages, f.Cause),
	}
}
