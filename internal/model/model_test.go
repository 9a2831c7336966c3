package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestCenter_HasCoordinates(t *testing.T) {
	assert.True(t, (&Center{Latitude: ptr(-8.05), Longitude: ptr(-34.9)}).HasCoordinates())
	assert.False(t, (&Center{Latitude: ptr(-8.05)}).HasCoordinates())
	assert.False(t, (&Center{}).HasCoordinates())
}

func TestRawTable_Cell(t *testing.T) {
	raw := &RawTable{
		Header: []string{"a", "b"},
		Rows:   [][]string{{"1", "2"}, {"3"}},
	}
	assert.Equal(t, "2", raw.Cell(0, 1))
	assert.Equal(t, "", raw.Cell(1, 1))
	assert.Equal(t, "", raw.Cell(5, 0))
	assert.Equal(t, "", raw.Cell(0, -1))
}

func TestTable_MissingByColumn(t *testing.T) {
	tbl := &Table{Missing: []ColumnMissing{
		{Column: "region", Missing: 0},
		{Column: "telefone", Missing: 3},
		{Column: "cnes", Missing: 1},
	}}
	got := tbl.MissingByColumn()
	require.Len(t, got, 2)
	assert.Equal(t, "telefone", got[0].Column)
	assert.Equal(t, "cnes", got[1].Column)
}

func TestSummary_MarshalJSON(t *testing.T) {
	s := Summary{
		TotalCenters: 3,
		Columns:      []string{"region", "uf"},
		MissingData: []ColumnMissing{
			{Column: "telefone", Missing: 2},
			{Column: "cnes", Missing: 1},
		},
	}
	data, err := json.Marshal(s)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.EqualValues(t, 3, decoded["total_centers"])
	assert.Equal(t, map[string]any{"telefone": float64(2), "cnes": float64(1)}, decoded["missing_data"])
	assert.NotContains(t, decoded, "generated_at")

	// Column order is preserved in the encoded object.
	assert.Contains(t, string(data), `"missing_data":{"telefone":2,"cnes":1}`)
}

func TestSummary_MarshalJSON_NoMissingData(t *testing.T) {
	ts := time.Date(2026, 2, 5, 12, 0, 0, 0, time.UTC)
	data, err := json.Marshal(Summary{GeneratedAt: &ts})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"missing_data":{}`)
	assert.Contains(t, string(data), `"generated_at":"2026-02-05T12:00:00Z"`)
}

func TestErrorTaxonomy(t *testing.T) {
	nf := &NotFoundError{Path: "db.xlsx", Err: os.ErrNotExist}
	wrapped := eris.Wrap(nf, "loader: open")
	assert.True(t, IsNotFound(wrapped))
	assert.True(t, errors.Is(wrapped, os.ErrNotExist))
	assert.False(t, IsParse(wrapped))

	pe := &ParseError{Path: "db.xlsx", Reason: "no header row"}
	assert.True(t, IsParse(fmt.Errorf("load: %w", pe)))
	assert.Equal(t, "parse db.xlsx: no header row", pe.Error())

	se := &SchemaError{Missing: []string{"uf", "latitude"}}
	assert.True(t, IsSchema(se))
	assert.Contains(t, se.Error(), "uf, latitude")

	ee := &EmptyInputError{Aggregate: "coordinates", Reason: "no centers with valid coordinates"}
	assert.True(t, IsEmptyInput(eris.Wrap(ee, "geo: summarize")))
	assert.False(t, IsEmptyInput(nil))
}
