package normalize

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/soromap/soro-cli/internal/model"
)

// column is one retained source column after mapping.
type column struct {
	name      string // canonical name, or the source header for extras
	index     int    // position in the raw row
	canonical bool
}

// Normalize maps raw columns onto canonical fields and cleans every value.
// It fails with a *model.SchemaError when a required column is absent.
func Normalize(raw *model.RawTable, schema Schema) (*model.Table, error) {
	mapping, drop := schema.lookup()

	var columns []column
	byName := make(map[string]int) // canonical name -> raw index
	dropped := 0
	for i, h := range raw.Header {
		key := canonicalHeader(h)
		if dst, ok := mapping[key]; ok {
			if _, dup := byName[dst]; !dup {
				byName[dst] = i
				columns = append(columns, column{name: dst, index: i, canonical: true})
				continue
			}
		}
		if drop[key] {
			dropped++
			continue
		}
		columns = append(columns, column{name: key, index: i})
	}

	var missingCols []string
	for _, req := range schema.Required {
		if _, ok := byName[req]; !ok {
			missingCols = append(missingCols, req)
		}
	}
	if len(missingCols) > 0 {
		return nil, &model.SchemaError{Missing: missingCols}
	}

	get := func(row []string, name string) string {
		idx, ok := byName[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	centers := make([]model.Center, 0, len(raw.Rows))
	for i, row := range raw.Rows {
		id := strconv.Itoa(i + 1)

		c := model.Center{
			ID:           id,
			Name:         valueOr(CleanString(get(row, model.ColName)), "Centro "+id),
			Municipality: valueOr(CleanString(get(row, model.ColMunicipality)), ""),
			State:        valueOr(CleanString(get(row, model.ColUF)), ""),
			FederalUnit:  CleanString(get(row, model.ColFederalUnit)),
			Region:       valueOr(CleanString(get(row, model.ColRegion)), ""),
			SerumTypes:   SerumTypes(i, schema.SerumPalette),
			Address:      CleanString(get(row, model.ColAddress)),
			Phone:        CleanString(get(row, model.ColPhone)),
			CNES:         CleanCNES(get(row, model.ColCNES)),
			ServiceType:  CleanString(get(row, model.ColServiceType)),
			ServiceInfo:  CleanString(get(row, model.ColServiceInfo)),
		}

		lat := CleanNumber(get(row, model.ColLatitude))
		lng := CleanNumber(get(row, model.ColLongitude))
		if lat != nil && lng != nil {
			c.Latitude, c.Longitude = lat, lng
		} else if lat != nil || lng != nil {
			zap.L().Debug("normalize: dropping partial coordinate pair", zap.String("id", id))
		}

		for _, col := range columns {
			if col.canonical {
				continue
			}
			c.Extra = append(c.Extra, model.ExtraField{Column: col.name, Value: CleanString(raw.Cell(i, col.index))})
		}

		centers = append(centers, c)
	}

	table := &model.Table{
		Source:  raw.Source,
		Centers: centers,
	}
	for _, col := range columns {
		table.Columns = append(table.Columns, col.name)
		table.Missing = append(table.Missing, model.ColumnMissing{
			Column:  col.name,
			Missing: countMissing(centers, raw, col),
		})
	}

	zap.L().Info("normalize: normalized centers",
		zap.Int("centers", len(centers)),
		zap.Int("columns", len(table.Columns)),
		zap.Int("dropped_columns", dropped),
	)

	return table, nil
}

// countMissing counts absent values in one column. Identity fields are
// counted before their defaults are applied; coordinates after pairing.
func countMissing(centers []model.Center, raw *model.RawTable, col column) int {
	n := 0
	for i := range centers {
		c := &centers[i]
		var absent bool
		switch {
		case !col.canonical:
			absent = CleanString(raw.Cell(i, col.index)) == nil
		case col.name == model.ColLatitude || col.name == model.ColLongitude:
			absent = !c.HasCoordinates()
		case col.name == model.ColCNES:
			absent = c.CNES == nil
		case col.name == model.ColFederalUnit:
			absent = c.FederalUnit == nil
		case col.name == model.ColAddress:
			absent = c.Address == nil
		case col.name == model.ColPhone:
			absent = c.Phone == nil
		case col.name == model.ColServiceType:
			absent = c.ServiceType == nil
		case col.name == model.ColServiceInfo:
			absent = c.ServiceInfo == nil
		default:
			absent = CleanString(raw.Cell(i, col.index)) == nil
		}
		if absent {
			n++
		}
	}
	return n
}

func valueOr(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}
