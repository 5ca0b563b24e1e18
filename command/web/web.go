package web

import (
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"hours-stats/connectors/config"
	ccsv "hours-stats/connectors/csv"
	"hours-stats/domain/hours"

	"github.com/labstack/echo/v4"
	lo "github.com/samber/lo"
)

// Run starts a small Echo web server exposing the hours dashboard as JSON and an optional SPA.
//
// Usage:
//
//	hours-stats web [-addr :8080] [-data ./data] [-ui ./ui/dist]
//
// Endpoints:
//
//	GET  /api/options             -> filter choices (?project=)
//	GET  /api/dashboard           -> metrics, stage groups and cause series for the query filters
//	POST /api/filters             -> applies one filter change and returns the resulting dashboard
//	GET  /api/calculated/metrics  -> <data>/metrics.csv written by calculate (404 if missing)
//
// The CSV snapshot in -data is loaded once at startup.
func Run(args []string) error {
	cfg, err := config.LoadOrDefault(config.Path())
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	addr := fs.String("addr", cfg.Web.Addr, "http listen address (host:port)")
	dataDir := fs.String("data", cfg.DataDir, "directory containing the CSV snapshot")
	uiDir := fs.String("ui", cfg.Web.UI, "directory containing built UI (Vite dist)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ds, err := ccsv.ReadDataset(*dataDir)
	if err != nil {
		slog.Error("web.dataset.read.error", "data", *dataDir, "error", err)
		return err
	}
	slog.Info("web.start", "addr", *addr, "plan", len(ds.Plan), "timeEntries", len(ds.TimeEntry), "causes", len(ds.Causes))

	return New(ds, *dataDir, *uiDir).Start(*addr)
}

// dashboardQuery is the query-string form of a filter selection. Lists repeat
// the key: ?activity=A&activity=B.
type dashboardQuery struct {
	Project    string   `query:"project"`
	Stage      string   `query:"stage"`
	Activities []string `query:"activity"`
	Types      []string `query:"type"`
	Start      string   `query:"start"`
	End        string   `query:"end"`
	Cause      string   `query:"cause"`
}

// filterChange is the body of POST /api/filters.
type filterChange struct {
	Filters *hours.FilterState `json:"filters"`
	Field   hours.Field        `json:"field"`
	Values  []string           `json:"values"`
}

var fields = []hours.Field{
	hours.FieldProject, hours.FieldStage, hours.FieldActivities, hours.FieldTypes,
	hours.FieldPeriodStart, hours.FieldPeriodEnd, hours.FieldCause,
}

// New builds the Echo instance serving ds. dataDir holds the calculated CSVs;
// uiDir is optional.
func New(ds hours.Dataset, dataDir, uiDir string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.GET("/api/options", func(c echo.Context) error {
		return c.JSON(http.StatusOK, hours.DeriveOptions(ds, c.QueryParam("project")))
	})

	e.GET("/api/dashboard", func(c echo.Context) error {
		var q dashboardQuery
		if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
			return badRequest(c, err.Error())
		}
		f := hours.Selection{
			Project:     q.Project,
			Stage:       q.Stage,
			Activities:  q.Activities,
			Types:       q.Types,
			PeriodStart: q.Start,
			PeriodEnd:   q.End,
			Cause:       q.Cause,
		}.State()
		slog.Debug("web.dashboard.request", "project", f.Project, "stage", f.Stage)
		return c.JSON(http.StatusOK, hours.BuildDashboard(ds, f))
	})

	e.POST("/api/filters", func(c echo.Context) error {
		var req filterChange
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "invalid JSON body")
		}
		if !lo.Contains(fields, req.Field) {
			return badRequest(c, "unknown field "+string(req.Field))
		}
		state := hours.DefaultFilterState()
		if req.Filters != nil {
			state = *req.Filters
		}
		next := state.Apply(req.Field, req.Values...)
		slog.Debug("web.filters.change", "field", req.Field, "project", next.Project)
		return c.JSON(http.StatusOK, hours.BuildDashboard(ds, next))
	})

	// Helper to register a GET endpoint serving a specific CSV file
	serveCSV := func(route string, filename string) {
		e.GET(route, func(c echo.Context) error {
			path := filepath.Join(dataDir, filename)
			rows, err := ccsv.ReadRecords(path)
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					return c.JSON(http.StatusNotFound, map[string]any{
						"error":   "file not found",
						"path":    path,
						"message": "CSV file is missing",
					})
				}
				return c.JSON(http.StatusInternalServerError, map[string]any{
					"error":   err.Error(),
					"path":    path,
					"message": "failed to read CSV",
				})
			}
			return c.JSON(http.StatusOK, rows)
		})
	}

	serveCSV("/api/calculated/metrics", ccsv.MetricsFile)
	serveCSV("/api/calculated/stages", ccsv.StageGroupsFile)
	serveCSV("/api/calculated/activities", ccsv.ActivityMetricsFile)
	serveCSV("/api/calculated/causes/chart", ccsv.CauseChartFile)
	serveCSV("/api/calculated/causes/table", ccsv.CauseTableOutputFile)
	serveCSV("/api/calculated/causes/metrics", ccsv.CauseMetricsFile)

	// Static UI (optional)
	indexPath := filepath.Join(uiDir, "index.html")
	if fi, err := os.Stat(indexPath); err == nil && !fi.IsDir() {
		e.Static("/", uiDir)
		e.GET("/", func(c echo.Context) error { return c.File(indexPath) })

		// Fallback to index.html for non-API 404s (SPA routing) while keeping static assets working
		e.HTTPErrorHandler = func(err error, c echo.Context) {
			if he, ok := err.(*echo.HTTPError); ok && he.Code == http.StatusNotFound {
				if !strings.HasPrefix(c.Request().URL.Path, "/api") {
					_ = c.File(indexPath)
					return
				}
			}
			e.DefaultHTTPErrorHandler(err, c)
		}
	}

	return e
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, map[string]any{
		"error":   "bad request",
		"message": msg,
	})
}
