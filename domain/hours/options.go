package hours

import (
	"sort"
	"strings"

	lo "github.com/samber/lo"
)

// Options are the filter choices currently on offer.
type Options struct {
	Projects    []string `json:"projects"`
	Activities  []string `json:"activities"`
	Types       []string `json:"types"`
	CauseStages []string `json:"cause_stages"`
	DateMin     string   `json:"date_min"`
	DateMax     string   `json:"date_max"`
}

// ProjectOptions lists the distinct project codes of the plan, sorted.
func ProjectOptions(plan []PlanRow) []string {
	return sortedDistinct(lo.Map(plan, func(r PlanRow, _ int) string { return r.Project }))
}

// AvailableActivities lists the distinct activity descriptions the project has
// in the plan, sorted.
func AvailableActivities(plan []PlanRow, project string) []string {
	project = strings.TrimSpace(project)
	if project == "" {
		return []string{}
	}
	return sortedDistinct(lo.FilterMap(plan, func(r PlanRow, _ int) (string, bool) {
		return r.Activity, strings.TrimSpace(r.Project) == project
	}))
}

// DeriveOptions recomputes every option set for the selected project. Project
// scoped sets are empty while no project is selected.
func DeriveOptions(ds Dataset, project string) Options {
	first, last := DateBounds(ds.TimeEntry)
	return Options{
		Projects:    ProjectOptions(ds.Plan),
		Activities:  AvailableActivities(ds.Plan, project),
		Types:       append([]string{}, TypeOptions...),
		CauseStages: AvailableCauseStages(ds.Causes, project),
		DateMin:     first,
		DateMax:     last,
	}
}

func sortedDistinct(values []string) []string {
	out := lo.Uniq(lo.FilterMap(values, func(v string, _ int) (string, bool) {
		v = strings.TrimSpace(v)
		return v, v != ""
	}))
	sort.Strings(out)
	return out
}
