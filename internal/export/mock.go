package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/soromap/soro-cli/internal/report"
)

// Mock module formats.
const (
	MockTS   = "ts"
	MockJSON = "json"
)

// mockCentro mirrors Centro but drops absent fields from JSON.
type mockCentro struct {
	ID              string   `json:"id"`
	Nome            string   `json:"nome"`
	Municipio       string   `json:"municipio"`
	UF              string   `json:"uf"`
	Regiao          string   `json:"regiao"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
	TiposSoro       []string `json:"tiposSoro"`
	Endereco        *string  `json:"endereco,omitempty"`
	Telefone        *string  `json:"telefone,omitempty"`
	CNES            *string  `json:"cnes,omitempty"`
	AtendimentoTipo *string  `json:"atendimentoTipo,omitempty"`
	AtendimentoInfo *string  `json:"atendimentoInfo,omitempty"`
}

// MockModule renders centros as a TypeScript module or a JSON array.
func MockModule(centros []Centro, format string) ([]byte, error) {
	switch format {
	case MockTS:
		return typeScriptModule(centros)
	case MockJSON:
		out := make([]mockCentro, len(centros))
		for i, c := range centros {
			out[i] = mockCentro(c)
		}
		return report.EncodeJSON(out)
	default:
		return nil, eris.Errorf("export: unknown mock format %q", format)
	}
}

// MockFileName returns name with its extension replaced to match format.
func MockFileName(name, format string) string {
	if name == "" {
		name = "centros.mock"
	}
	ext := filepath.Ext(name)
	if ext == "."+format {
		return name
	}
	if ext == ".ts" || ext == ".json" {
		name = strings.TrimSuffix(name, ext)
	}
	return name + "." + format
}

const tsHeader = `import type { Centro } from '../../domain/models/Centro';

export const centrosMock: Centro[] = [
`

const tsFooter = `];

// Unique UFs for the state filter
export const ufsDisponiveis = [...new Set(centrosMock.map((c) => c.uf))].sort();

// Unique serum types for the serum filter
export const tiposSoroDisponiveis = [
  ...new Set(centrosMock.flatMap((c) => c.tiposSoro)),
].sort();
`

// typeScriptModule emits every string through a JSON encoder, which yields a
// valid JavaScript string literal for any input.
func typeScriptModule(centros []Centro) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString(tsHeader)

	for _, c := range centros {
		tipos, err := literal(c.TiposSoro)
		if err != nil {
			return nil, err
		}
		fields := []struct {
			key   string
			value string
		}{
			{"id", mustString(c.ID)},
			{"nome", mustString(c.Nome)},
			{"municipio", mustString(c.Municipio)},
			{"uf", mustString(c.UF)},
			{"regiao", mustString(c.Regiao)},
			{"latitude", number(c.Latitude)},
			{"longitude", number(c.Longitude)},
			{"tiposSoro", tipos},
			{"endereco", optString(c.Endereco)},
			{"telefone", optString(c.Telefone)},
			{"cnes", optString(c.CNES)},
			{"atendimentoTipo", optString(c.AtendimentoTipo)},
			{"atendimentoInfo", optString(c.AtendimentoInfo)},
		}

		b.WriteString("  {\n")
		for _, f := range fields {
			fmt.Fprintf(&b, "    %s: %s,\n", f.key, f.value)
		}
		b.WriteString("  },\n")
	}

	b.WriteString(tsFooter)
	return b.Bytes(), nil
}

func literal(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", eris.Wrap(err, "export: encode literal")
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// mustString encodes a string literal. Encoding a string cannot fail.
func mustString(s string) string {
	out, _ := literal(s)
	return out
}

func optString(s *string) string {
	if s == nil {
		return "undefined"
	}
	return mustString(*s)
}

func number(v *float64) string {
	if v == nil {
		return "undefined"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
