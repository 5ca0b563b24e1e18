package calculate

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"hours-stats/connectors/config"
	ccsv "hours-stats/connectors/csv"
	"hours-stats/domain/hours"

	lo "github.com/samber/lo"
)

// Run executes the calculate command: it reads the CSV snapshot produced by
// import, applies the filter flags and writes the calculated series next to it.
func Run(args []string) error {
	cfg, err := config.LoadOrDefault(config.Path())
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("calculate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	dataDir := fs.String("data", cfg.DataDir, "directory containing the CSV snapshot")
	outDir := fs.String("out", "", "output directory (default: -data)")
	project := fs.String("project", "", "project code (required for non-zero metrics)")
	stage := fs.String("stage", string(hours.StageAll), "stage: "+strings.Join(lo.Map(hours.Stages, func(s hours.Stage, _ int) string { return string(s) }), ", ")+" or todas")
	activities := fs.String("activity", "", "comma-separated activity descriptions (empty = all)")
	types := fs.String("type", "", "comma-separated activity-type categories (empty = all)")
	start := fs.String("start", "", "period start month, YYYY-MM")
	end := fs.String("end", "", "period end month, YYYY-MM")
	cause := fs.String("cause", "", "cause stage (empty = all)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		return fmt.Errorf("calculate: unexpected arguments %v", fs.Args())
	}
	if *outDir == "" {
		*outDir = *dataDir
	}

	ds, err := ccsv.ReadDataset(*dataDir)
	if err != nil {
		slog.Error("calculate.read.error", "data", *dataDir, "error", err)
		return err
	}

	f := hours.Selection{
		Project:     *project,
		Stage:       *stage,
		Activities:  splitList(*activities),
		Types:       splitList(*types),
		PeriodStart: *start,
		PeriodEnd:   *end,
		Cause:       *cause,
	}.State()
	d := hours.BuildDashboard(ds, f)
	if err := ccsv.WriteDashboard(*outDir, d); err != nil {
		slog.Error("calculate.write.error", "out", *outDir, "error", err)
		return err
	}

	slog.Info("calculate.done", "project", f.Project, "stages", len(d.Stages), "activities", len(d.Activities), "consumed", d.Metrics.Consumed, "unproductive", d.Metrics.Unproductive)
	fmt.Fprintf(os.Stderr, "calculate.done project=%s sold=%g planned=%g consumed=%g unproductive=%g balance=%g\n",
		f.Project, d.Metrics.Sold, d.Metrics.Planned, d.Metrics.Consumed, d.Metrics.Unproductive, d.Metrics.Balance)
	return nil
}

func splitList(s string) []string {
	return lo.Compact(lo.Map(strings.Split(s, ","), func(v string, _ int) string { return strings.TrimSpace(v) }))
}
