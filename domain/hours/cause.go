package hours

import (
	"sort"
	"strings"

	lo "github.com/samber/lo"
)

// AvailableCauseStages lists the distinct stage labels classified for project,
// sorted. An empty project yields an empty list.
func AvailableCauseStages(causes []CauseRow, project string) []string {
	project = strings.TrimSpace(project)
	if project == "" {
		return []string{}
	}
	stages := lo.Uniq(lo.FilterMap(causes, func(r CauseRow, _ int) (string, bool) {
		stage := strings.TrimSpace(r.Stage)
		return stage, stage != "" && strings.TrimSpace(r.Project) == project
	}))
	sort.Strings(stages)
	return stages
}

// CauseChartData returns one point per stage for the project or, once a stage
// is selected, one point per cause within it. Points keep first-seen order.
func CauseChartData(causes []CauseRow, project, stage string) []CauseChartPoint {
	rows := causesFor(causes, project, stage)
	key := func(r CauseRow) string { return strings.TrimSpace(r.Stage) }
	if stageSelected(stage) {
		key = func(r CauseRow) string {
			if c := strings.TrimSpace(r.Cause); c != "" {
				return c
			}
			return strings.TrimSpace(r.Stage)
		}
	}
	points := []CauseChartPoint{}
	index := map[string]int{}
	for _, r := range rows {
		name := key(r)
		i, ok := index[name]
		if !ok {
			i = len(points)
			index[name] = i
			points = append(points, CauseChartPoint{Name: name})
		}
		points[i].Value += r.Value
	}
	return points
}

// CauseTableData joins the detail rows with the classification rows on
// (project, stage). Detail rows whose stage has no classification are dropped.
func CauseTableData(causes []CauseRow, table []CauseTableRow, project, stage string) []CauseTableEntry {
	totals := map[string]float64{}
	for _, r := range causesFor(causes, project, stage) {
		totals[normalize(r.Stage)] += r.Value
	}
	out := []CauseTableEntry{}
	for _, r := range table {
		if !causeMatches(r.Project, r.Stage, project, stage) {
			continue
		}
		total, ok := totals[normalize(r.Stage)]
		if !ok {
			continue
		}
		out = append(out, CauseTableEntry{
			Project:     strings.TrimSpace(r.Project),
			Stage:       strings.TrimSpace(r.Stage),
			Cause:       strings.TrimSpace(r.Cause),
			Description: strings.TrimSpace(r.Description),
			Hours:       r.Hours,
			StageTotal:  total,
		})
	}
	return out
}

// CalculateCauseMetrics republishes the stage group selected by the cause
// filter. The wildcard or a stage without a group gives a zeroed summary.
func CalculateCauseMetrics(groups []StageGroup, stage string) CauseMetrics {
	if !stageSelected(stage) {
		return CauseMetrics{}
	}
	want := normalize(stage)
	g, ok := lo.Find(groups, func(g StageGroup) bool { return normalize(string(g.Stage)) == want })
	if !ok {
		return CauseMetrics{Stage: strings.TrimSpace(stage)}
	}
	return CauseMetrics{
		Stage:            string(g.Stage),
		Planned:          g.Planned,
		Consumed:         g.Consumed,
		Unproductive:     g.Unproductive,
		ConsumptionRatio: g.ConsumptionRatio,
	}
}

func causesFor(causes []CauseRow, project, stage string) []CauseRow {
	return lo.Filter(causes, func(r CauseRow, _ int) bool {
		return causeMatches(r.Project, r.Stage, project, stage)
	})
}

func causeMatches(rowProject, rowStage, project, stage string) bool {
	project = strings.TrimSpace(project)
	if project == "" || strings.TrimSpace(rowProject) != project {
		return false
	}
	return !stageSelected(stage) || normalize(rowStage) == normalize(stage)
}

func stageSelected(stage string) bool {
	s := strings.TrimSpace(stage)
	return s != AllCauses && s != string(StageAll)
}
