package pipeline

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/soromap/soro-cli/internal/export"
	"github.com/soromap/soro-cli/internal/report"
)

// EDA artifact file names.
const (
	SummaryFile        = "summary.json"
	ByRegionFile       = "by_region.json"
	ByStateFile        = "by_state.json"
	ByMunicipalityFile = "by_municipality.json"
	CoordinatesFile    = "coordinates_stats.json"
	ReportFile         = "eda_report.md"
)

// WriteEDA writes the JSON datasets and the Markdown report into dir.
func (r *Result) WriteEDA(dir string) error {
	datasets := []struct {
		name string
		v    any
	}{
		{SummaryFile, r.Summary},
		{ByRegionFile, r.Regions},
		{ByStateFile, r.States},
		{ByMunicipalityFile, r.Municipalities},
		{CoordinatesFile, r.Coordinates},
	}
	for _, d := range datasets {
		if err := report.WriteJSON(dir, d.name, d.v); err != nil {
			return eris.Wrapf(err, "pipeline: write %s", d.name)
		}
	}
	if err := report.WriteFile(dir, ReportFile, []byte(r.Report)); err != nil {
		return eris.Wrap(err, "pipeline: write report")
	}

	zap.L().Info("pipeline: eda artifacts written", zap.String("dir", dir), zap.String("run_id", r.RunID))
	return nil
}

// WriteExports writes the mock module as mockFile (its extension follows the
// mock format) and every full export into dir.
func (r *Result) WriteExports(dir, mockFile string) error {
	name := export.MockFileName(mockFile, r.MockFormat)
	if err := report.WriteFile(dir, name, r.Mock); err != nil {
		return eris.Wrap(err, "pipeline: write mock module")
	}
	if err := export.WriteArtifacts(dir, r.Exports); err != nil {
		return eris.Wrap(err, "pipeline: write exports")
	}
	if r.Shapefile {
		if err := export.WriteShapefile(dir, r.Table.Centers); err != nil {
			return eris.Wrap(err, "pipeline: write shapefile")
		}
	}

	zap.L().Info("pipeline: exports written",
		zap.String("dir", dir),
		zap.String("mock", name),
		zap.Int("exports", len(r.Exports)),
		zap.String("run_id", r.RunID),
	)
	return nil
}
