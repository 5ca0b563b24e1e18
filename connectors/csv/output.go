package csv

import (
	"os"
	"path/filepath"

	"hours-stats/domain/hours"
)

// Calculated output file names.
const (
	MetricsFile          = "metrics.csv"
	StageGroupsFile      = "stage_groups.csv"
	ActivityMetricsFile  = "activity_metrics.csv"
	CauseChartFile       = "cause_chart.csv"
	CauseTableOutputFile = "cause_table_calculated.csv"
	CauseMetricsFile     = "cause_metrics.csv"
)

// WriteDashboard writes every calculated series of d into dir.
func WriteDashboard(dir string, d hours.Dashboard) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	m := d.Metrics
	if err := writeRows(filepath.Join(dir, MetricsFile),
		[]string{"project", "sold", "planned", "consumed", "unproductive", "balance"},
		[]hours.AggregatedMetrics{m}, func(m hours.AggregatedMetrics) []string {
			return []string{d.Filters.Project, formatFloat(m.Sold), formatFloat(m.Planned), formatFloat(m.Consumed), formatFloat(m.Unproductive), formatFloat(m.Balance)}
		}); err != nil {
		return err
	}
	if err := writeRows(filepath.Join(dir, StageGroupsFile),
		[]string{"stage", "sold", "planned", "consumed", "unproductive", "consumption_ratio"},
		d.Stages, func(g hours.StageGroup) []string {
			return []string{string(g.Stage), formatFloat(g.Sold), formatFloat(g.Planned), formatFloat(g.Consumed), formatFloat(g.Unproductive), formatFloat(g.ConsumptionRatio)}
		}); err != nil {
		return err
	}
	if err := writeRows(filepath.Join(dir, ActivityMetricsFile),
		[]string{"activity", "stage", "sold", "planned", "consumed", "unproductive", "balance"},
		d.Activities, func(a hours.ActivityMetrics) []string {
			return []string{a.Name, string(a.Stage), formatFloat(a.Sold), formatFloat(a.Planned), formatFloat(a.Consumed), formatFloat(a.Unproductive), formatFloat(a.Balance)}
		}); err != nil {
		return err
	}
	if err := writeRows(filepath.Join(dir, CauseChartFile),
		[]string{"name", "value"},
		d.CauseChart, func(p hours.CauseChartPoint) []string {
			return []string{p.Name, formatFloat(p.Value)}
		}); err != nil {
		return err
	}
	if err := writeRows(filepath.Join(dir, CauseTableOutputFile),
		[]string{"project", "stage", "cause", "description", "hours", "stage_total"},
		d.CauseTable, func(e hours.CauseTableEntry) []string {
			return []string{e.Project, e.Stage, e.Cause, e.Description, formatFloat(e.Hours), formatFloat(e.StageTotal)}
		}); err != nil {
		return err
	}
	return writeRows(filepath.Join(dir, CauseMetricsFile),
		[]string{"stage", "planned", "consumed", "unproductive", "consumption_ratio"},
		[]hours.CauseMetrics{d.CauseMetrics}, func(c hours.CauseMetrics) []string {
			return []string{c.Stage, formatFloat(c.Planned), formatFloat(c.Consumed), formatFloat(c.Unproductive), formatFloat(c.ConsumptionRatio)}
		})
}
