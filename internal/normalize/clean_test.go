package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanString(t *testing.T) {
	tests := []struct {
		input string
		want  *string
	}{
		{"  Recife ", strPtr("Recife")},
		{"Recife", strPtr("Recife")},
		{"", nil},
		{"  ", nil},
		{"\t\n", nil},
		{"NaN", nil},
		{"nan", nil},
		{"None", nil},
		{"NULL", nil},
		{"Nanuque", strPtr("Nanuque")},
		{"0", strPtr("0")},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanString(tt.input))
		})
	}
}

func TestCleanString_NFC(t *testing.T) {
	// "Endereço" with a combining cedilla normalizes to the precomposed form.
	got := CleanString("Enderec\u0327o")
	require.NotNil(t, got)
	assert.Equal(t, "Endereço", *got)
}

func TestCleanNumber(t *testing.T) {
	tests := []struct {
		input string
		want  *float64
	}{
		{"-8.047562", floatPtr(-8.047562)},
		{" 12 ", floatPtr(12)},
		{"-34,8770", floatPtr(-34.877)},
		{"0", floatPtr(0)},
		{"1.234,5", nil},
		{"abc", nil},
		{"", nil},
		{"NaN", nil},
		{"Inf", nil},
		{"-Infinity", nil},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := CleanNumber(tt.input)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-9)
		})
	}
}

func TestCleanCNES(t *testing.T) {
	tests := []struct {
		input string
		want  *string
	}{
		{"123456.0", strPtr("123456")},
		{"2427419", strPtr("2427419")},
		{" 2427419 ", strPtr("2427419")},
		{"123456.9", strPtr("123456")},
		{"abc", nil},
		{"", nil},
		{"None", nil},
		{"1e30", nil},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanCNES(tt.input))
		})
	}
}

func TestSerumTypes_Cycles(t *testing.T) {
	palette := DefaultSerumPalette()
	require.Len(t, palette, 5)

	assert.Equal(t, []string{"Antibotrópico", "Anticrotálico"}, SerumTypes(0, palette))
	assert.Equal(t, []string{"Antibotrópico"}, SerumTypes(1, palette))
	assert.Equal(t, SerumTypes(2, palette), SerumTypes(7, palette))
	assert.Equal(t, SerumTypes(0, palette), SerumTypes(5, palette))
}

func TestSerumTypes_ReturnsCopy(t *testing.T) {
	palette := [][]string{{"A", "B"}}
	got := SerumTypes(0, palette)
	got[0] = "mutated"
	assert.Equal(t, "A", palette[0][0])
}

func TestSerumTypes_EmptyPalette(t *testing.T) {
	assert.Empty(t, SerumTypes(3, nil))
	assert.NotNil(t, SerumTypes(3, nil))
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }
