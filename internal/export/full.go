package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/jonas-p/go-shp"
	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/soromap/soro-cli/internal/geo"
	"github.com/soromap/soro-cli/internal/model"
	"github.com/soromap/soro-cli/internal/report"
)

// Full export formats.
const (
	FormatJSON       = "json"
	FormatCSV        = "csv"
	FormatGeoJSON    = "geojson"
	FormatShapefile  = "shp"
	baseName         = "centros"
	tiposSeparator   = ";"
	dbfMaxFieldWidth = 254
)

// Formats lists every supported full export format.
var Formats = []string{FormatJSON, FormatCSV, FormatGeoJSON, FormatShapefile}

// Artifact is a rendered export file.
type Artifact struct {
	Name string
	Data []byte
}

// Render encodes the full centers dataset in every requested byte format.
// The shapefile is not rendered here; see WriteShapefile.
func Render(centers []model.Center, formats []string) ([]Artifact, error) {
	centros := FromCenters(centers)

	var out []Artifact
	for _, f := range formats {
		var (
			data []byte
			err  error
		)
		switch f {
		case FormatJSON:
			data, err = report.EncodeJSON(centros)
		case FormatCSV:
			data, err = encodeCSV(centros)
		case FormatGeoJSON:
			data, err = encodeGeoJSON(centers)
		case FormatShapefile:
			continue
		default:
			return nil, eris.Errorf("export: unknown format %q", f)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, Artifact{Name: baseName + "." + f, Data: data})
	}
	return out, nil
}

// WriteArtifacts writes each artifact into dir.
func WriteArtifacts(dir string, artifacts []Artifact) error {
	for _, a := range artifacts {
		if err := report.WriteFile(dir, a.Name, a.Data); err != nil {
			return err
		}
	}
	return nil
}

// HasFormat reports whether formats contains f.
func HasFormat(formats []string, f string) bool {
	for _, v := range formats {
		if v == f {
			return true
		}
	}
	return false
}

type csvRow struct {
	ID              string   `csv:"id"`
	Nome            string   `csv:"nome"`
	Municipio       string   `csv:"municipio"`
	UF              string   `csv:"uf"`
	Regiao          string   `csv:"regiao"`
	Latitude        *float64 `csv:"latitude"`
	Longitude       *float64 `csv:"longitude"`
	TiposSoro       string   `csv:"tiposSoro"`
	Endereco        *string  `csv:"endereco"`
	Telefone        *string  `csv:"telefone"`
	CNES            *string  `csv:"cnes"`
	AtendimentoTipo *string  `csv:"atendimentoTipo"`
	AtendimentoInfo *string  `csv:"atendimentoInfo"`
}

// encodeCSV writes one row per center. Serum types are joined with ";".
func encodeCSV(centros []Centro) ([]byte, error) {
	rows := make([]csvRow, len(centros))
	for i, c := range centros {
		rows[i] = csvRow{
			ID:              c.ID,
			Nome:            c.Nome,
			Municipio:       c.Municipio,
			UF:              c.UF,
			Regiao:          c.Regiao,
			Latitude:        c.Latitude,
			Longitude:       c.Longitude,
			TiposSoro:       strings.Join(c.TiposSoro, tiposSeparator),
			Endereco:        c.Endereco,
			Telefone:        c.Telefone,
			CNES:            c.CNES,
			AtendimentoTipo: c.AtendimentoTipo,
			AtendimentoInfo: c.AtendimentoInfo,
		}
	}
	data, err := csvutil.Marshal(rows)
	if err != nil {
		return nil, eris.Wrap(err, "export: encode csv")
	}
	return data, nil
}

func encodeGeoJSON(centers []model.Center) ([]byte, error) {
	fc := geo.FeatureCollection(centers, func(c *model.Center) map[string]any {
		return properties(FromCenter(c))
	})
	data, err := json.Marshal(fc)
	if err != nil {
		return nil, eris.Wrap(err, "export: encode geojson")
	}
	return append(data, '\n'), nil
}

// properties holds every non-coordinate field; nil pointers become null.
func properties(c Centro) map[string]any {
	return map[string]any{
		"id":              c.ID,
		"nome":            c.Nome,
		"municipio":       c.Municipio,
		"uf":              c.UF,
		"regiao":          c.Regiao,
		"tiposSoro":       c.TiposSoro,
		"endereco":        c.Endereco,
		"telefone":        c.Telefone,
		"cnes":            c.CNES,
		"atendimentoTipo": c.AtendimentoTipo,
		"atendimentoInfo": c.AtendimentoInfo,
	}
}

// shpFields are the DBF columns of the shapefile. DBF names are limited to
// 10 characters.
var shpFields = []shp.Field{
	shp.StringField("ID", 10),
	shp.StringField("NOME", dbfMaxFieldWidth),
	shp.StringField("MUNICIPIO", 100),
	shp.StringField("UF", 2),
	shp.StringField("REGIAO", 20),
	shp.StringField("CNES", 20),
	shp.StringField("TELEFONE", 60),
	shp.StringField("TIPOSSORO", dbfMaxFieldWidth),
	shp.StringField("ENDERECO", dbfMaxFieldWidth),
}

// WriteShapefile writes a point shapefile (.shp, .shx, .dbf) of the centers
// with coordinates to dir/centros.shp. Centers without coordinates are
// skipped.
func WriteShapefile(dir string, centers []model.Center) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrapf(err, "export: create dir %s", dir)
	}
	base := filepath.Join(dir, baseName)
	path := base + "." + FormatShapefile

	w, err := shp.Create(path, shp.POINT)
	if err != nil {
		return eris.Wrapf(err, "export: create shapefile %s", path)
	}
	closed := false
	defer func() {
		if !closed {
			w.Close()
		}
	}()

	if err := w.SetFields(shpFields); err != nil {
		return eris.Wrapf(err, "export: set shapefile fields %s", path)
	}

	written := 0
	for i := range centers {
		c := &centers[i]
		if !c.HasCoordinates() {
			continue
		}
		n := int(w.Write(&shp.Point{X: *c.Longitude, Y: *c.Latitude}))

		values := []string{
			c.ID, c.Name, c.Municipality, c.State, c.Region,
			deref(c.CNES), deref(c.Phone),
			strings.Join(c.SerumTypes, tiposSeparator), deref(c.Address),
		}
		for j, v := range values {
			size := int(shpFields[j].Size)
			if err := w.WriteAttribute(n, j, truncateBytes(v, size)); err != nil {
				return eris.Wrapf(err, "export: write shapefile attribute %s of center %s", strings.TrimRight(shpFields[j].String(), "\x00"), c.ID)
			}
		}
		written++
	}
	w.Close()
	closed = true

	// The writer names the attribute table "<base>dbf" without the dot.
	if err := os.Rename(base+"dbf", base+".dbf"); err != nil {
		return eris.Wrapf(err, "export: rename shapefile attributes %s", base+".dbf")
	}

	zap.L().Info("export: saved shapefile", zap.String("path", path), zap.Int("points", written))
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// truncateBytes cuts s to at most n bytes without splitting a rune.
func truncateBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
