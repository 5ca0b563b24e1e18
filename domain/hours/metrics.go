package hours

import (
	"strings"

	lo "github.com/samber/lo"
)

// ComputeHeadlineMetrics returns the headline totals for f.
//
// Sold, planned and balance always come from the plan. Consumed comes from the
// plan's executed hours unless a type or date filter is active; then it is
// summed from the time log, the only dataset carrying those dimensions. The two
// sources are not reconciled. Unproductive hours are a whole-project figure and
// ignore every filter but the project.
func ComputeHeadlineMetrics(plan []PlanRow, entries []TimeEntryRow, f FilterState) AggregatedMetrics {
	if f.project() == "" {
		return AggregatedMetrics{}
	}
	m := aggregate(plan, entries, f)
	m.Unproductive = UnproductiveHours(entries, f.project(), "")
	return m
}

// ComputeActivityMetrics returns one record per activity the selected project
// has in the plan, each aggregated like the headline metrics but scoped to that
// activity. Stage and activity selections are not applied; stage grouping is
// done downstream by ComputeStageGroups.
func ComputeActivityMetrics(plan []PlanRow, entries []TimeEntryRow, f FilterState) []ActivityMetrics {
	project := f.project()
	if project == "" {
		return nil
	}
	return lo.Map(AvailableActivities(plan, project), func(activity string, _ int) ActivityMetrics {
		scoped := FilterState{
			Project:     project,
			Stage:       StageAll,
			Activities:  []string{activity},
			Types:       f.Types,
			PeriodStart: f.PeriodStart,
			PeriodEnd:   f.PeriodEnd,
		}
		m := aggregate(plan, entries, scoped)
		m.Unproductive = UnproductiveHours(entries, project, activity)
		return ActivityMetrics{Name: activity, Stage: MapActivityToStage(activity), AggregatedMetrics: m}
	})
}

// ComputeStageGroups sums activity metrics per stage, in canonical stage order.
// Non-canonical stages and stages without activities are left out.
func ComputeStageGroups(activities []ActivityMetrics) []StageGroup {
	byStage := lo.GroupBy(activities, func(a ActivityMetrics) Stage {
		if a.Stage != "" {
			return a.Stage
		}
		return MapActivityToStage(a.Name)
	})
	groups := make([]StageGroup, 0, len(Stages))
	for _, stage := range Stages {
		members, ok := byStage[stage]
		if !ok || len(members) == 0 {
			continue
		}
		g := StageGroup{Stage: stage}
		for _, a := range members {
			g.Sold += a.Sold
			g.Planned += a.Planned
			g.Consumed += a.Consumed
			g.Unproductive += a.Unproductive
		}
		g.ConsumptionRatio = ConsumptionRatio(g.Consumed, g.Planned)
		groups = append(groups, g)
	}
	return groups
}

// ConsumptionRatio is consumed/planned as a percentage, 0 when nothing is planned.
func ConsumptionRatio(consumed, planned float64) float64 {
	if planned == 0 {
		return 0
	}
	return consumed / planned * 100
}

// UnproductiveHours sums the hours of the project's time entries whose type
// classifies as unproductive, optionally restricted to one activity. Entries
// without a type label are skipped.
func UnproductiveHours(entries []TimeEntryRow, project, activity string) float64 {
	project = strings.TrimSpace(project)
	activity = strings.TrimSpace(activity)
	if project == "" {
		return 0
	}
	return lo.SumBy(entries, func(r TimeEntryRow) float64 {
		label := strings.TrimSpace(r.Type)
		if label == "" || strings.TrimSpace(r.Project) != project {
			return 0
		}
		if activity != "" && strings.TrimSpace(r.Activity) != activity {
			return 0
		}
		if !IsUnproductive(ClassifyActivityType(label)) {
			return 0
		}
		return r.Hours
	})
}

// aggregate sums plan fields and picks the consumed-hours source. It leaves
// Unproductive at zero.
func aggregate(plan []PlanRow, entries []TimeEntryRow, f FilterState) AggregatedMetrics {
	var m AggregatedMetrics
	for _, r := range FilterPlan(plan, f) {
		m.Sold += r.Sold
		m.Planned += r.Planned
		m.Consumed += r.Executed
		m.Balance += r.Balance
	}
	if f.UsesTimeEntries() {
		m.Consumed = lo.SumBy(FilterTimeEntries(entries, f), func(r TimeEntryRow) float64 { return r.Hours })
	}
	return m
}
