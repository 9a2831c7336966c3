package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/soromap/soro-cli/internal/model"
)

// DefaultTopRows is how many states and municipalities the report lists.
const DefaultTopRows = 10

// MissingLabel stands in for an empty grouping key in report tables.
const MissingLabel = "(missing)"

// Input is everything the Markdown report displays.
type Input struct {
	Summary        model.Summary
	Regions        []model.RegionStat
	States         []model.StateStat
	Municipalities []model.MunicipalityStat
	Coordinates    *model.CoordinateStats

	// TopStates and TopMunicipalities cap the ranking tables.
	// Zero means DefaultTopRows.
	TopStates         int
	TopMunicipalities int

	// GeneratedAt adds a footer line when set.
	GeneratedAt *time.Time
}

var printer = message.NewPrinter(language.English)

// Markdown renders the EDA report. Sections always appear in the same order:
// Summary, Distribution by Region, Top States, Top Municipalities,
// Geographic Bounds, Data Quality.
func Markdown(in Input) string {
	var b strings.Builder

	b.WriteString("# Antivenom Database - Exploratory Data Analysis\n\n")

	s := in.Summary
	section(&b, "Summary")
	writeTable(&b, []string{"Metric", "Value"}, [][]string{
		{"Total Centers", bold(count(s.TotalCenters))},
		{"States (UFs)", bold(count(s.TotalStates))},
		{"Regions", bold(count(s.TotalRegions))},
		{"Municipalities", bold(count(s.TotalMunicipalities))},
		{"Centers with CNES", count(s.CentersWithCNES)},
		{"Centers with Phone", count(s.CentersWithPhone)},
		{"Centers with Coordinates", count(s.CentersWithCoordinates)},
	})
	rule(&b)

	section(&b, "Distribution by Region")
	rows := make([][]string, 0, len(in.Regions))
	for _, r := range in.Regions {
		rows = append(rows, []string{
			label(r.Region), count(r.TotalCenters), pct(r.Percentage),
			count(r.States), count(r.Municipalities),
		})
	}
	writeTable(&b, []string{"Region", "Centers", "%", "States", "Municipalities"}, rows)
	rule(&b)

	topStates := head(in.States, limitOr(in.TopStates))
	section(&b, fmt.Sprintf("Top %d States", len(topStates)))
	rows = rows[:0]
	for _, st := range topStates {
		rows = append(rows, []string{
			label(st.UF), label(st.Region), count(st.TotalCenters),
			pct(st.Percentage), count(st.Municipalities),
		})
	}
	writeTable(&b, []string{"UF", "Region", "Centers", "%", "Municipalities"}, rows)
	rule(&b)

	topMunicipalities := head(in.Municipalities, limitOr(in.TopMunicipalities))
	section(&b, fmt.Sprintf("Top %d Municipalities", len(topMunicipalities)))
	rows = rows[:0]
	for _, m := range topMunicipalities {
		rows = append(rows, []string{
			label(m.Municipality), label(m.UF), label(m.Region), count(m.TotalCenters),
		})
	}
	writeTable(&b, []string{"Municipality", "UF", "Region", "Centers"}, rows)
	rule(&b)

	section(&b, "Geographic Bounds")
	if c := in.Coordinates; c != nil {
		writeTable(&b, []string{"Metric", "Value"}, [][]string{
			{"Min Latitude", coord(c.Bounds.MinLat)},
			{"Max Latitude", coord(c.Bounds.MaxLat)},
			{"Min Longitude", coord(c.Bounds.MinLng)},
			{"Max Longitude", coord(c.Bounds.MaxLng)},
			{"Center (Lat)", coord(c.Center.Lat)},
			{"Center (Lng)", coord(c.Center.Lng)},
		})
	} else {
		writeTable(&b, []string{"Metric", "Value"}, [][]string{{"-", "No coordinates"}})
	}
	rule(&b)

	section(&b, "Data Quality")
	b.WriteString("### Missing Data\n\n")
	rows = rows[:0]
	for _, m := range s.MissingData {
		if m.Missing > 0 {
			rows = append(rows, []string{label(m.Column), count(m.Missing)})
		}
	}
	if len(rows) == 0 {
		rows = append(rows, []string{"-", "No missing data"})
	}
	writeTable(&b, []string{"Column", "Missing Count"}, rows)
	rule(&b)

	b.WriteString("*Report generated automatically by soro-cli*\n")
	if in.GeneratedAt != nil {
		fmt.Fprintf(&b, "\n*Generated at %s*\n", in.GeneratedAt.UTC().Format(time.RFC3339))
	}
	return b.String()
}

func section(b *strings.Builder, title string) {
	fmt.Fprintf(b, "## %s\n\n", title)
}

func rule(b *strings.Builder) {
	b.WriteString("\n---\n\n")
}

// writeTable writes a Markdown table with every column padded to its widest
// cell, measured in display width. Columns are at least 3 wide.
func writeTable(b *strings.Builder, header []string, rows [][]string) {
	widths := make([]int, len(header))
	measure := func(cells []string) {
		for i := 0; i < len(cells) && i < len(widths); i++ {
			if w := runewidth.StringWidth(cells[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(header)
	for _, r := range rows {
		measure(r)
	}
	for i := range widths {
		if widths[i] < 3 {
			widths[i] = 3
		}
	}

	writeRow := func(cells []string) {
		b.WriteString("|")
		for i, w := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			b.WriteString(" ")
			b.WriteString(runewidth.FillRight(cell, w))
			b.WriteString(" |")
		}
		b.WriteString("\n")
	}

	writeRow(header)
	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	writeRow(sep)
	for _, r := range rows {
		writeRow(r)
	}
}

func head[T any](items []T, n int) []T {
	if n < len(items) {
		return items[:n]
	}
	return items
}

func limitOr(n int) int {
	if n <= 0 {
		return DefaultTopRows
	}
	return n
}

func count(n int) string { return printer.Sprintf("%d", n) }

func pct(v float64) string { return fmt.Sprintf("%.2f%%", v) }

func coord(v float64) string { return fmt.Sprintf("%.6f", v) }

func bold(s string) string { return "**" + s + "**" }

// label escapes pipes and substitutes MissingLabel for an empty key.
func label(s string) string {
	if s == "" {
		return MissingLabel
	}
	return strings.ReplaceAll(s, "|", `\|`)
}
