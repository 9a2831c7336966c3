package normalize

// DefaultSerumPalette is the placeholder set of serum-type combinations.
//
// The source spreadsheet does not record which antivenoms a center stocks.
// Until it does, every center is assigned an entry from this palette by row
// position. The values are synthetic and carry no information about the
// center itself.
func DefaultSerumPalette() [][]string {
	return [][]string{
		{"Antibotrópico", "Anticrotálico"},
		{"Antibotrópico"},
		{"Antibotrópico", "Anticrotálico", "Antilaquético"},
		{"Antibotrópico", "Antielapídico"},
		{"Antibotrópico", "Anticrotálico", "Antilaquético", "Antielapídico"},
	}
}

// SerumTypes returns the synthetic serum types for the row at the 0-based
// index by cycling through palette. It returns a fresh slice so callers can
// not alias palette entries. An empty palette yields an empty list.
func SerumTypes(index int, palette [][]string) []string {
	if len(palette) == 0 || index < 0 {
		return []string{}
	}
	entry := palette[index%len(palette)]
	out := make([]string, len(entry))
	copy(out, entry)
	return out
}
