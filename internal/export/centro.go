// Package export turns normalized centers into the records consumed by the
// map application: a sampled mock module and the full centers dataset.
package export

import (
	"github.com/soromap/soro-cli/internal/model"
)

// DefaultSampleSize is how many centers the mock module holds.
const DefaultSampleSize = 50

// Centro is one center in the client application's schema. Absent optional
// values are nil.
type Centro struct {
	ID              string   `json:"id"`
	Nome            string   `json:"nome"`
	Municipio       string   `json:"municipio"`
	UF              string   `json:"uf"`
	Regiao          string   `json:"regiao"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	TiposSoro       []string `json:"tiposSoro"`
	Endereco        *string  `json:"endereco"`
	Telefone        *string  `json:"telefone"`
	CNES            *string  `json:"cnes"`
	AtendimentoTipo *string  `json:"atendimentoTipo"`
	AtendimentoInfo *string  `json:"atendimentoInfo"`
}

// FromCenter maps a normalized center onto the client schema.
func FromCenter(c *model.Center) Centro {
	out := Centro{
		ID:              c.ID,
		Nome:            c.Name,
		Municipio:       c.Municipality,
		UF:              c.State,
		Regiao:          c.Region,
		TiposSoro:       append([]string{}, c.SerumTypes...),
		Endereco:        c.Address,
		Telefone:        c.Phone,
		CNES:            c.CNES,
		AtendimentoTipo: c.ServiceType,
		AtendimentoInfo: c.ServiceInfo,
	}
	if c.HasCoordinates() {
		out.Latitude, out.Longitude = c.Latitude, c.Longitude
	}
	return out
}

// FromCenters maps every center, keeping order.
func FromCenters(centers []model.Center) []Centro {
	out := make([]Centro, len(centers))
	for i := range centers {
		out[i] = FromCenter(&centers[i])
	}
	return out
}

// Sample returns the first n centers of t in the client schema. n <= 0 or
// n larger than the table returns every center.
func Sample(t *model.Table, n int) []Centro {
	centers := t.Centers
	if n > 0 && n < len(centers) {
		centers = centers[:n]
	}
	return FromCenters(centers)
}
