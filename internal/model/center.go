package model

// Canonical column names produced by the normalizer.
const (
	ColRegion       = "region"
	ColFederalUnit  = "federal_unit"
	ColUF           = "uf"
	ColMunicipality = "municipio"
	ColName         = "unidade"
	ColAddress      = "endereco"
	ColPhone        = "telefone"
	ColCNES         = "cnes"
	ColServiceType  = "atendimento_tipo"
	ColServiceInfo  = "atendimento_info"
	ColLatitude     = "latitude"
	ColLongitude    = "longitude"
)

// CanonicalColumns lists the canonical columns in report order.
var CanonicalColumns = []string{
	ColRegion,
	ColFederalUnit,
	ColUF,
	ColMunicipality,
	ColName,
	ColAddress,
	ColPhone,
	ColCNES,
	ColServiceType,
	ColServiceInfo,
	ColLatitude,
	ColLongitude,
}

// RawTable is a spreadsheet as read from disk: one header row and string cells.
type RawTable struct {
	Source string     `json:"source"`
	Header []string   `json:"header"`
	Rows   [][]string `json:"-"`
}

// Cell returns the cell at row r, column c, or "" when the row is short.
func (t *RawTable) Cell(r, c int) string {
	if r < 0 || r >= len(t.Rows) || c < 0 || c >= len(t.Rows[r]) {
		return ""
	}
	return t.Rows[r][c]
}

// ExtraField is an unmapped source column kept for diagnostics.
type ExtraField struct {
	Column string  `json:"column"`
	Value  *string `json:"value"`
}

// Center is one antivenom distribution center after normalization.
//
// Latitude and Longitude are either both set or both nil. SerumTypes is
// synthetic placeholder data until the source carries the attribute.
type Center struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Municipality string       `json:"municipality"`
	State        string       `json:"uf"`
	FederalUnit  *string      `json:"federal_unit,omitempty"`
	Region       string       `json:"region"`
	Latitude     *float64     `json:"latitude,omitempty"`
	Longitude    *float64     `json:"longitude,omitempty"`
	SerumTypes   []string     `json:"serum_types"`
	Address      *string      `json:"address,omitempty"`
	Phone        *string      `json:"phone,omitempty"`
	CNES         *string      `json:"cnes,omitempty"`
	ServiceType  *string      `json:"service_type,omitempty"`
	ServiceInfo  *string      `json:"service_info,omitempty"`
	Extra        []ExtraField `json:"extra,omitempty"`
}

// HasCoordinates reports whether both coordinates are present.
func (c *Center) HasCoordinates() bool {
	return c.Latitude != nil && c.Longitude != nil
}

// ColumnMissing is the number of absent values in one column.
type ColumnMissing struct {
	Column  string `json:"column"`
	Missing int    `json:"missing"`
}

// Table is the normalized, ordered set of centers from one source load.
type Table struct {
	Source  string          `json:"source"`
	Columns []string        `json:"columns"`
	Centers []Center        `json:"centers"`
	Missing []ColumnMissing `json:"missing"`
}

// Len returns the number of centers.
func (t *Table) Len() int {
	return len(t.Centers)
}

// MissingByColumn returns only the columns with at least one absent value,
// preserving column order.
func (t *Table) MissingByColumn() []ColumnMissing {
	var out []ColumnMissing
	for _, m := range t.Missing {
		if m.Missing > 0 {
			out = append(out, m)
		}
	}
	return out
}
