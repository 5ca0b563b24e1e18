package hours

// Row models as they come out of the ingestion boundary. Every field is already
// coerced: numbers default to 0 and strings are trimmed.

// PlanRow is one budgeted/executed-hours record per project work-item.
type PlanRow struct {
	Project  string  `json:"project"`
	Activity string  `json:"activity"`
	Sold     float64 `json:"sold_hours"`
	Planned  float64 `json:"planned_hours"`
	Executed float64 `json:"executed_hours"`
	Balance  float64 `json:"balance_hours"`
}

// TimeEntryRow is one reported-hours record. Date keeps the raw cell value
// (spreadsheet serial or text); it is parsed on demand by InRange.
type TimeEntryRow struct {
	Project  string  `json:"project"`
	Activity string  `json:"activity"`
	Type     string  `json:"activity_type"`
	Date     string  `json:"date"`
	Hours    float64 `json:"hours"`
}

// CauseRow is one root-cause classification of unproductive time.
type CauseRow struct {
	Project string  `json:"project"`
	Stage   string  `json:"stage"`
	Cause   string  `json:"cause"`
	Value   float64 `json:"value"`
}

// CauseTableRow carries the descriptive detail shown next to the cause chart.
type CauseTableRow struct {
	Project     string  `json:"project"`
	Stage       string  `json:"stage"`
	Cause       string  `json:"cause"`
	Description string  `json:"description"`
	Hours       float64 `json:"hours"`
}

// Dataset groups the loaded row arrays. The core never mutates them.
type Dataset struct {
	Plan       []PlanRow       `json:"plan"`
	TimeEntry  []TimeEntryRow  `json:"time_entries"`
	Causes     []CauseRow      `json:"causes"`
	CauseTable []CauseTableRow `json:"cause_table"`
}

// AggregatedMetrics are the headline totals for the current filter state.
type AggregatedMetrics struct {
	Sold         float64 `json:"sold"`
	Planned      float64 `json:"planned"`
	Consumed     float64 `json:"consumed"`
	Unproductive float64 `json:"unproductive"`
	Balance      float64 `json:"balance"`
}

// ActivityMetrics is AggregatedMetrics scoped to a single activity description.
type ActivityMetrics struct {
	Name  string `json:"name"`
	Stage Stage  `json:"stage"`
	AggregatedMetrics
}

// StageGroup sums activity metrics per canonical stage.
type StageGroup struct {
	Stage            Stage   `json:"stage"`
	Sold             float64 `json:"sold"`
	Planned          float64 `json:"planned"`
	Consumed         float64 `json:"consumed"`
	Unproductive     float64 `json:"unproductive"`
	ConsumptionRatio float64 `json:"consumption_ratio"`
}

// CauseChartPoint is one bar of the cause chart.
type CauseChartPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// CauseTableEntry is a cause table row joined with its stage's classified total.
type CauseTableEntry struct {
	Project     string  `json:"project"`
	Stage       string  `json:"stage"`
	Cause       string  `json:"cause"`
	Description string  `json:"description"`
	Hours       float64 `json:"hours"`
	StageTotal  float64 `json:"stage_total"`
}

// CauseMetrics republishes the figures of the stage selected in the cause filter.
type CauseMetrics struct {
	Stage            string  `json:"stage"`
	Planned          float64 `json:"planned"`
	Consumed         float64 `json:"consumed"`
	Unproductive     float64 `json:"unproductive"`
	ConsumptionRatio float64 `json:"consumption_ratio"`
}
