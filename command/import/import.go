package cmdimport

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"hours-stats/connectors/config"
	ccsv "hours-stats/connectors/csv"
	"hours-stats/connectors/remote"
	"hours-stats/connectors/xlsx"
	dconfig "hours-stats/domain/config"
	"hours-stats/domain/hours"

	lo "github.com/samber/lo"
)

// Run executes the import subcommand: it reads the source workbooks (local
// paths or URLs), coerces every row and writes the CSV snapshot into the data
// directory. Flags override config.yml.
func Run(args []string) error {
	cfg, err := config.LoadOrDefault(config.Path())
	if err != nil {
		slog.Error("import.config.error", "error", err)
		return err
	}

	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	src := &cfg.Sources
	fs.StringVar(&src.Plan.Path, "plan", src.Plan.Path, "project plan workbook (path or URL)")
	fs.StringVar(&src.Plan.Sheet, "plan-sheet", src.Plan.Sheet, "plan sheet name (empty = first sheet)")
	fs.StringVar(&src.TimeEntries.Path, "hours", src.TimeEntries.Path, "detailed hours workbook (path or URL)")
	fs.StringVar(&src.TimeEntries.Sheet, "hours-sheet", src.TimeEntries.Sheet, "detailed hours sheet name (empty = first sheet)")
	fs.StringVar(&src.Causes.Path, "causes", src.Causes.Path, "cause classification workbook (optional)")
	fs.StringVar(&src.Causes.Sheet, "causes-sheet", src.Causes.Sheet, "cause classification sheet name")
	fs.StringVar(&src.CauseTable.Path, "cause-table", src.CauseTable.Path, "cause detail workbook (optional)")
	fs.StringVar(&src.CauseTable.Sheet, "cause-table-sheet", src.CauseTable.Sheet, "cause detail sheet name")
	out := fs.String("out", cfg.DataDir, "output directory for the CSV snapshot")
	if err := fs.Parse(args); err != nil {
		return err
	}

	slog.Info("import.start", "plan", src.Plan.Path, "hours", src.TimeEntries.Path, "causes", src.Causes.Path, "causeTable", src.CauseTable.Path, "out", *out)

	ctx := context.Background()
	rc := remote.New(ctx, nil, os.Getenv("SOURCES_TOKEN"))

	ds, err := Load(ctx, rc, *src)
	if err != nil {
		return err
	}
	if err := ccsv.WriteDataset(*out, ds); err != nil {
		slog.Error("phase.csv.write.error", "error", err)
		return fmt.Errorf("write snapshot: %w", err)
	}
	slog.Info("import.done", "plan", len(ds.Plan), "timeEntries", len(ds.TimeEntry), "causes", len(ds.Causes), "causeTable", len(ds.CauseTable))
	return nil
}

// Load reads and coerces the four sources. The plan and the detailed hours are
// required; a cause source that is unset or missing on disk yields no rows.
func Load(ctx context.Context, rc *remote.Client, src dconfig.Sources) (hours.Dataset, error) {
	var ds hours.Dataset
	var err error
	if ds.Plan, err = loadSheet(ctx, rc, "plan", src.Plan, hours.PlanRowFromRecord); err != nil {
		return ds, err
	}
	if ds.TimeEntry, err = loadSheet(ctx, rc, "time_entries", src.TimeEntries, hours.TimeEntryRowFromRecord); err != nil {
		return ds, err
	}
	if ds.Causes, err = loadOptional(ctx, rc, "causes", src.Causes, hours.CauseRowFromRecord); err != nil {
		return ds, err
	}
	if ds.CauseTable, err = loadOptional(ctx, rc, "cause_table", src.CauseTable, hours.CauseTableRowFromRecord); err != nil {
		return ds, err
	}
	return ds, nil
}

func loadSheet[T any](ctx context.Context, rc *remote.Client, name string, src dconfig.Source, coerce func(hours.Record) T) ([]T, error) {
	if src.Path == "" {
		return nil, fmt.Errorf("missing %s source path", name)
	}
	r, err := rc.Open(ctx, src.Path)
	if err != nil {
		slog.Error("phase."+name+".open.error", "path", src.Path, "error", err)
		return nil, fmt.Errorf("open %s source: %w", name, err)
	}
	defer r.Close()
	recs, err := xlsx.Read(r, src.Sheet)
	if err != nil {
		slog.Error("phase."+name+".read.error", "path", src.Path, "sheet", src.Sheet, "error", err)
		return nil, fmt.Errorf("read %s source: %w", name, err)
	}
	rows := lo.Map(recs, func(rec hours.Record, _ int) T { return coerce(rec) })
	slog.Info("phase."+name+".read.done", "path", src.Path, "sheet", src.Sheet, "count", len(rows))
	return rows, nil
}

func loadOptional[T any](ctx context.Context, rc *remote.Client, name string, src dconfig.Source, coerce func(hours.Record) T) ([]T, error) {
	if src.Path == "" {
		return []T{}, nil
	}
	rows, err := loadSheet(ctx, rc, name, src, coerce)
	if errors.Is(err, os.ErrNotExist) {
		slog.Warn("phase."+name+".missing", "path", src.Path)
		return []T{}, nil
	}
	return rows, err
}
