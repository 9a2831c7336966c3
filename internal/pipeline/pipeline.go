// Package pipeline runs the full EDA and export flow over one source
// spreadsheet: load, normalize, aggregate, summarize coordinates, render.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/soromap/soro-cli/internal/aggregate"
	"github.com/soromap/soro-cli/internal/config"
	"github.com/soromap/soro-cli/internal/export"
	"github.com/soromap/soro-cli/internal/geo"
	"github.com/soromap/soro-cli/internal/loader"
	"github.com/soromap/soro-cli/internal/model"
	"github.com/soromap/soro-cli/internal/normalize"
	"github.com/soromap/soro-cli/internal/report"
)

// Options configures a single run.
type Options struct {
	Source     string
	SheetName  string
	SheetIndex int
	SchemaPath string

	// TopMunicipalities and SampleSize keep every entry when <= 0.
	TopMunicipalities       int
	TopStatesInReport       int
	TopMunicipalitiesReport int
	IncludeTimestamp        bool

	SampleSize    int
	MockFormat    string
	ExportFormats []string

	// Now overrides the clock used for the optional timestamp.
	Now func() time.Time
}

// OptionsFromConfig builds run options from the loaded configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Source:                  cfg.Source.Path,
		SheetName:               cfg.Source.SheetName,
		SheetIndex:              cfg.Source.SheetIndex,
		SchemaPath:              cfg.Normalize.SchemaPath,
		TopMunicipalities:       cfg.Report.TopMunicipalities,
		TopStatesInReport:       cfg.Report.TopStatesInReport,
		TopMunicipalitiesReport: cfg.Report.TopMunicipalitiesReport,
		IncludeTimestamp:        cfg.Report.IncludeTimestamp,
		SampleSize:              cfg.Export.SampleSize,
		MockFormat:              cfg.Export.MockFormat,
		ExportFormats:           cfg.Export.Formats,
	}
}

// Result holds every computed artifact of a run. Nothing is written to disk
// until WriteEDA or WriteExports is called.
type Result struct {
	RunID string
	Table *model.Table

	Summary        model.Summary
	Regions        []model.RegionStat
	States         []model.StateStat
	Municipalities []model.MunicipalityStat
	Coordinates    *model.CoordinateStats
	Report         string

	MockFormat string
	Mock       []byte
	Exports    []export.Artifact
	Shapefile  bool
}

// Run executes every stage in memory. Any error aborts the run before an
// artifact is written.
func Run(ctx context.Context, opts Options) (*Result, error) {
	runID := uuid.New().String()
	restore := zap.ReplaceGlobals(zap.L().With(zap.String("run_id", runID)))
	defer restore()

	log := zap.L().With(zap.String("source", opts.Source))
	log.Info("pipeline: starting run")
	start := time.Now()

	schema := normalize.DefaultSchema()
	if opts.SchemaPath != "" {
		s, err := normalize.LoadSchema(opts.SchemaPath)
		if err != nil {
			return nil, eris.Wrap(err, "pipeline: load schema")
		}
		schema = s
	}

	raw, err := loader.Load(opts.Source, loader.Options{
		SheetName:  opts.SheetName,
		SheetIndex: opts.SheetIndex,
	})
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: load source")
	}
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "pipeline: cancelled after load")
	}

	table, err := normalize.Normalize(raw, schema)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: normalize")
	}
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "pipeline: cancelled after normalize")
	}

	res := &Result{RunID: runID, Table: table}

	res.Summary = aggregate.Summarize(table)
	if res.Regions, err = aggregate.ByRegion(table); err != nil {
		return nil, eris.Wrap(err, "pipeline: aggregate by region")
	}
	if res.States, err = aggregate.ByState(table); err != nil {
		return nil, eris.Wrap(err, "pipeline: aggregate by state")
	}
	res.Municipalities = aggregate.TopMunicipalities(table, opts.TopMunicipalities)

	if res.Coordinates, err = geo.Summarize(table); err != nil {
		return nil, eris.Wrap(err, "pipeline: summarize coordinates")
	}
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "pipeline: cancelled after aggregate")
	}

	if opts.IncludeTimestamp {
		now := time.Now
		if opts.Now != nil {
			now = opts.Now
		}
		ts := now().UTC()
		res.Summary.GeneratedAt = &ts
	}

	res.Report = report.Markdown(report.Input{
		Summary:           res.Summary,
		Regions:           res.Regions,
		States:            res.States,
		Municipalities:    res.Municipalities,
		Coordinates:       res.Coordinates,
		TopStates:         opts.TopStatesInReport,
		TopMunicipalities: opts.TopMunicipalitiesReport,
		GeneratedAt:       res.Summary.GeneratedAt,
	})

	res.MockFormat = opts.MockFormat
	if res.MockFormat == "" {
		res.MockFormat = export.MockTS
	}
	if res.Mock, err = export.MockModule(export.Sample(table, opts.SampleSize), res.MockFormat); err != nil {
		return nil, eris.Wrap(err, "pipeline: render mock module")
	}
	if res.Exports, err = export.Render(table.Centers, opts.ExportFormats); err != nil {
		return nil, eris.Wrap(err, "pipeline: render exports")
	}
	res.Shapefile = export.HasFormat(opts.ExportFormats, export.FormatShapefile)

	log.Info("pipeline: run complete",
		zap.Int("centers", table.Len()),
		zap.Int("regions", len(res.Regions)),
		zap.Int("states", len(res.States)),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return res, nil
}
