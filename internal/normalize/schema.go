// Package normalize maps raw spreadsheet columns onto typed centers and
// cleans their values.
package normalize

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/soromap/soro-cli/internal/model"
)

// Schema describes how source headers map onto canonical columns.
type Schema struct {
	// Columns maps a source header to a canonical column name.
	Columns map[string]string `yaml:"columns"`
	// Drop lists source headers discarded entirely.
	Drop []string `yaml:"drop"`
	// Required lists canonical columns that must be present after mapping.
	Required []string `yaml:"required"`
	// SerumPalette is the synthetic serum-type palette. See SerumTypes.
	SerumPalette [][]string `yaml:"serum_palette"`
}

// DefaultSchema returns the mapping for the antivenom spreadsheet export.
func DefaultSchema() Schema {
	return Schema{
		Columns: map[string]string{
			"Region":     model.ColRegion,
			"Federal_Un": model.ColFederalUnit,
			"FU":         model.ColUF,
			"Municipio":  model.ColMunicipality,
			"Unidade de": model.ColName,
			"Endereço":   model.ColAddress,
			"Telefone":   model.ColPhone,
			"CNES":       model.ColCNES,
			"Atendiment": model.ColServiceType,
			"Atendime_1": model.ColServiceInfo,
			"Lat (Y)":    model.ColLatitude,
			"Lon (X)":    model.ColLongitude,
		},
		Drop: []string{"unknown", "layer", "path"},
		Required: []string{
			model.ColRegion,
			model.ColUF,
			model.ColMunicipality,
			model.ColLatitude,
			model.ColLongitude,
		},
		SerumPalette: DefaultSerumPalette(),
	}
}

// LoadSchema reads a schema override file. Sections left empty in the file
// keep their defaults.
func LoadSchema(path string) (Schema, error) {
	s := DefaultSchema()

	data, err := os.ReadFile(path)
	if err != nil {
		return s, eris.Wrapf(err, "normalize: read schema %s", path)
	}

	var override Schema
	if err := yaml.Unmarshal(data, &override); err != nil {
		return s, eris.Wrap(err, "normalize: parse schema")
	}

	if len(override.Columns) > 0 {
		s.Columns = override.Columns
	}
	if override.Drop != nil {
		s.Drop = override.Drop
	}
	if len(override.Required) > 0 {
		s.Required = override.Required
	}
	if len(override.SerumPalette) > 0 {
		s.SerumPalette = override.SerumPalette
	}

	return s, nil
}

// canonicalHeader normalizes a header for lookup: trimmed, Unicode NFC.
func canonicalHeader(h string) string {
	return norm.NFC.String(strings.TrimSpace(h))
}

// lookup returns normalized-header indexes of the mapping and drop list.
func (s Schema) lookup() (map[string]string, map[string]bool) {
	cols := make(map[string]string, len(s.Columns))
	for src, dst := range s.Columns {
		cols[canonicalHeader(src)] = dst
	}
	drop := make(map[string]bool, len(s.Drop))
	for _, d := range s.Drop {
		drop[canonicalHeader(d)] = true
	}
	return cols, drop
}
