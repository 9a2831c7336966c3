package model

import (
	"bytes"
	"encoding/json"
	"time"
)

// Summary holds the global counts for one table.
type Summary struct {
	TotalCenters           int             `json:"total_centers"`
	TotalStates            int             `json:"total_states"`
	TotalRegions           int             `json:"total_regions"`
	TotalMunicipalities    int             `json:"total_municipalities"`
	CentersWithCNES        int             `json:"centers_with_cnes"`
	CentersWithPhone       int             `json:"centers_with_phone"`
	CentersWithCoordinates int             `json:"centers_with_coordinates"`
	Columns                []string        `json:"columns"`
	MissingData            []ColumnMissing `json:"-"`
	GeneratedAt            *time.Time      `json:"generated_at,omitempty"`
}

// MarshalJSON renders MissingData as a column -> count object in column order.
func (s Summary) MarshalJSON() ([]byte, error) {
	type alias Summary
	base, err := json.Marshal(alias(s))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range s.MissingData {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m.Column)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, _ := json.Marshal(m.Missing)
		buf.Write(val)
	}
	buf.WriteByte('}')

	// Splice "missing_data" in before the closing brace of the base object.
	out := make([]byte, 0, len(base)+buf.Len()+16)
	out = append(out, base[:len(base)-1]...)
	out = append(out, `,"missing_data":`...)
	out = append(out, buf.Bytes()...)
	out = append(out, '}')
	return out, nil
}

// RegionStat aggregates centers by region.
type RegionStat struct {
	Region         string   `json:"region"`
	TotalCenters   int      `json:"total_centers"`
	Percentage     float64  `json:"percentage"`
	States         int      `json:"states"`
	Municipalities int      `json:"municipalities"`
	StatesList     []string `json:"states_list"`
}

// StateStat aggregates centers by state (UF).
type StateStat struct {
	UF                     string  `json:"uf"`
	FederalUnit            string  `json:"federal_unit"`
	Region                 string  `json:"region"`
	TotalCenters           int     `json:"total_centers"`
	Percentage             float64 `json:"percentage"`
	Municipalities         int     `json:"municipalities"`
	CentersPerMunicipality float64 `json:"centers_per_municipality"`
}

// MunicipalityStat counts centers per (municipality, state, region).
type MunicipalityStat struct {
	Municipality string `json:"municipio"`
	UF           string `json:"uf"`
	Region       string `json:"region"`
	TotalCenters int    `json:"total_centers"`
}

// Bounds is a latitude/longitude bounding box.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLng float64 `json:"max_lng"`
}

// LatLng is a single coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CoordinateStats summarizes the geographic extent of a table.
type CoordinateStats struct {
	TotalWithCoordinates    int    `json:"total_with_coordinates"`
	TotalMissingCoordinates int    `json:"total_missing_coordinates"`
	Bounds                  Bounds `json:"bounds"`
	Center                  LatLng `json:"center"`
}
