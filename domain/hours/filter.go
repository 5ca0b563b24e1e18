package hours

import (
	"strings"

	lo "github.com/samber/lo"
)

// Wildcard selectors.
const (
	AllActivities = "todas"
	AllTypes      = "Todos os Tipos"
	AllCauses     = ""
)

// TypeOptions is the fixed list offered by the activity-type filter.
var TypeOptions = []string{
	AllTypes,
	string(CategoryProductive),
	string(CategoryUnproductive),
	string(CategoryOutOfScope),
	string(CategoryTransfer),
}

// FilterState is what is currently selected. Treat it as a value: Apply returns
// a new state and never touches the receiver's slices.
type FilterState struct {
	Project     string   `json:"project"`
	Stage       Stage    `json:"stage"`
	Activities  []string `json:"activities"`
	Types       []string `json:"types"`
	PeriodStart string   `json:"period_start"`
	PeriodEnd   string   `json:"period_end"`
	Cause       string   `json:"cause"`
}

// DefaultFilterState selects nothing but the wildcards.
func DefaultFilterState() FilterState {
	return FilterState{Stage: StageAll, Activities: []string{}, Types: []string{}}
}

// Selection is a flat description of a filter state, as it arrives from a
// command line or a query string.
type Selection struct {
	Project     string
	Stage       string
	Activities  []string
	Types       []string
	PeriodStart string
	PeriodEnd   string
	Cause       string
}

// State builds the FilterState through Apply. Project and stage go first
// since changing them resets the dependent selections.
func (s Selection) State() FilterState {
	f := DefaultFilterState().
		Apply(FieldProject, s.Project).
		Apply(FieldStage, s.Stage).
		Apply(FieldCause, s.Cause).
		Apply(FieldPeriodStart, s.PeriodStart).
		Apply(FieldPeriodEnd, s.PeriodEnd)
	if len(s.Activities) > 0 {
		f = f.Apply(FieldActivities, s.Activities...)
	}
	if len(s.Types) > 0 {
		f = f.Apply(FieldTypes, s.Types...)
	}
	return f
}

// Field names a FilterState dimension for Apply.
type Field string

const (
	FieldProject     Field = "project"
	FieldStage       Field = "stage"
	FieldActivities  Field = "activities"
	FieldTypes       Field = "types"
	FieldPeriodStart Field = "period_start"
	FieldPeriodEnd   Field = "period_end"
	FieldCause       Field = "cause"
)

// Apply sets field to values and returns the resulting state. Scalar fields
// take the first value (none clears them). A stage outside Stages selects
// StageAll. Changing the project resets the
// activity list and cause selector; changing the stage resets the activity
// list. Unknown fields leave the state unchanged.
func (f FilterState) Apply(field Field, values ...string) FilterState {
	next := f.clone()
	first := ""
	if len(values) > 0 {
		first = strings.TrimSpace(values[0])
	}
	switch field {
	case FieldProject:
		next.Project = first
		next.Activities = []string{AllActivities}
		next.Cause = AllCauses
	case FieldStage:
		next.Stage = Stage(first)
		if !next.Stage.IsCanonical() {
			next.Stage = StageAll
		}
		next.Activities = []string{AllActivities}
	case FieldActivities:
		next.Activities = trimAll(values)
	case FieldTypes:
		next.Types = trimAll(values)
	case FieldPeriodStart:
		next.PeriodStart = first
	case FieldPeriodEnd:
		next.PeriodEnd = first
	case FieldCause:
		next.Cause = first
	}
	return next
}

func (f FilterState) clone() FilterState {
	c := f
	c.Activities = append([]string{}, f.Activities...)
	c.Types = append([]string{}, f.Types...)
	return c
}

func trimAll(values []string) []string {
	return lo.Map(values, func(v string, _ int) string { return strings.TrimSpace(v) })
}

func (f FilterState) project() string { return strings.TrimSpace(f.Project) }

// StageActive is false for the wildcard (or unset) stage.
func (f FilterState) StageActive() bool { return f.Stage != "" && f.Stage != StageAll }

// ActivityActive is false when the list is empty or holds the wildcard.
func (f FilterState) ActivityActive() bool {
	return len(f.Activities) > 0 && !lo.Contains(f.Activities, AllActivities)
}

// TypeActive is false when the list is empty or holds the wildcard.
func (f FilterState) TypeActive() bool {
	return len(f.Types) > 0 && !lo.Contains(f.Types, AllTypes)
}

// DateActive reports whether either period bound is set.
func (f FilterState) DateActive() bool {
	return strings.TrimSpace(f.PeriodStart) != "" || strings.TrimSpace(f.PeriodEnd) != ""
}

// CauseActive is false for the wildcard cause selector.
func (f FilterState) CauseActive() bool { return stageSelected(f.Cause) }

// UsesTimeEntries reports whether consumed hours must come from the time log
// because the plan carries no type or date dimension.
func (f FilterState) UsesTimeEntries() bool { return f.TypeActive() || f.DateActive() }

// MatchPlanRow applies project, stage and activity checks.
func MatchPlanRow(r PlanRow, f FilterState) bool {
	p := f.project()
	if p == "" || strings.TrimSpace(r.Project) != p {
		return false
	}
	act := strings.TrimSpace(r.Activity)
	if f.StageActive() && !IsActivityInStage(act, f.Stage) {
		return false
	}
	if f.ActivityActive() && !lo.Contains(f.Activities, act) {
		return false
	}
	return true
}

// MatchTimeEntryRow applies the plan checks plus the date range and the
// activity-type category. The plan has neither dimension, so the two
// predicates differ on purpose.
func MatchTimeEntryRow(r TimeEntryRow, f FilterState) bool {
	p := f.project()
	if p == "" || strings.TrimSpace(r.Project) != p {
		return false
	}
	act := strings.TrimSpace(r.Activity)
	if f.StageActive() && !IsActivityInStage(act, f.Stage) {
		return false
	}
	if f.ActivityActive() && !lo.Contains(f.Activities, act) {
		return false
	}
	if f.DateActive() && !InRange(r.Date, f.PeriodStart, f.PeriodEnd) {
		return false
	}
	if f.TypeActive() && !lo.Contains(f.Types, string(ClassifyActivityType(r.Type))) {
		return false
	}
	return true
}

// FilterPlan returns the matching plan rows in input order.
func FilterPlan(rows []PlanRow, f FilterState) []PlanRow {
	return lo.Filter(rows, func(r PlanRow, _ int) bool { return MatchPlanRow(r, f) })
}

// FilterTimeEntries returns the matching time entries in input order.
func FilterTimeEntries(rows []TimeEntryRow, f FilterState) []TimeEntryRow {
	return lo.Filter(rows, func(r TimeEntryRow, _ int) bool { return MatchTimeEntryRow(r, f) })
}
