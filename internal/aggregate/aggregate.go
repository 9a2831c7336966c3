// Package aggregate computes grouped statistics over a normalized table.
package aggregate

import (
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/soromap/soro-cli/internal/model"
)

// DefaultTopMunicipalities is the default length of the municipality ranking.
const DefaultTopMunicipalities = 20

// Summarize computes the global counts. Distinct counts ignore empty values.
func Summarize(t *model.Table) model.Summary {
	states := distinct{}
	regions := distinct{}
	municipalities := distinct{}

	s := model.Summary{
		TotalCenters: t.Len(),
		Columns:      append([]string(nil), t.Columns...),
		MissingData:  t.MissingByColumn(),
	}
	for i := range t.Centers {
		c := &t.Centers[i]
		states.add(c.State)
		regions.add(c.Region)
		municipalities.add(c.Municipality)
		if c.CNES != nil {
			s.CentersWithCNES++
		}
		if c.Phone != nil {
			s.CentersWithPhone++
		}
		if c.HasCoordinates() {
			s.CentersWithCoordinates++
		}
	}
	s.TotalStates = len(states)
	s.TotalRegions = len(regions)
	s.TotalMunicipalities = len(municipalities)

	zap.L().Info("aggregate: summary",
		zap.Int("centers", s.TotalCenters),
		zap.Int("states", s.TotalStates),
		zap.Int("regions", s.TotalRegions),
	)
	return s
}

// ByRegion groups centers by region, ordered by count descending. Ties keep
// first-seen order.
func ByRegion(t *model.Table) ([]model.RegionStat, error) {
	total := t.Len()
	if total == 0 {
		return nil, &model.EmptyInputError{Aggregate: "by_region", Reason: "table has no centers"}
	}

	type group struct {
		count          int
		states         distinct
		municipalities distinct
	}
	var order []string
	groups := map[string]*group{}
	for i := range t.Centers {
		c := &t.Centers[i]
		g, ok := groups[c.Region]
		if !ok {
			g = &group{states: distinct{}, municipalities: distinct{}}
			groups[c.Region] = g
			order = append(order, c.Region)
		}
		g.count++
		g.states.add(c.State)
		g.municipalities.add(c.Municipality)
	}

	out := make([]model.RegionStat, 0, len(order))
	for _, region := range order {
		g := groups[region]
		pct, err := percentage(g.count, total)
		if err != nil {
			return nil, err
		}
		out = append(out, model.RegionStat{
			Region:         region,
			TotalCenters:   g.count,
			Percentage:     pct,
			States:         len(g.states),
			Municipalities: len(g.municipalities),
			StatesList:     g.states.sorted(),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalCenters > out[j].TotalCenters
	})

	zap.L().Info("aggregate: analyzed regions", zap.Int("regions", len(out)))
	return out, nil
}

// ByState groups centers by state (UF), ordered by count descending. The
// federal unit name and region come from the first center seen for the state.
func ByState(t *model.Table) ([]model.StateStat, error) {
	total := t.Len()
	if total == 0 {
		return nil, &model.EmptyInputError{Aggregate: "by_state", Reason: "table has no centers"}
	}

	type group struct {
		count          int
		federalUnit    string
		region         string
		municipalities distinct
	}
	var order []string
	groups := map[string]*group{}
	for i := range t.Centers {
		c := &t.Centers[i]
		g, ok := groups[c.State]
		if !ok {
			fu := c.State
			if c.FederalUnit != nil {
				fu = *c.FederalUnit
			}
			g = &group{federalUnit: fu, region: c.Region, municipalities: distinct{}}
			groups[c.State] = g
			order = append(order, c.State)
		}
		g.count++
		g.municipalities.add(c.Municipality)
	}

	out := make([]model.StateStat, 0, len(order))
	for _, uf := range order {
		g := groups[uf]
		pct, err := percentage(g.count, total)
		if err != nil {
			return nil, err
		}
		if len(g.municipalities) == 0 {
			return nil, &model.EmptyInputError{
				Aggregate: "by_state",
				Reason:    fmt.Sprintf("state %q has no municipalities; centers per municipality is undefined", uf),
			}
		}
		out = append(out, model.StateStat{
			UF:                     uf,
			FederalUnit:            g.federalUnit,
			Region:                 g.region,
			TotalCenters:           g.count,
			Percentage:             pct,
			Municipalities:         len(g.municipalities),
			CentersPerMunicipality: round2(float64(g.count) / float64(len(g.municipalities))),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalCenters > out[j].TotalCenters
	})

	zap.L().Info("aggregate: analyzed states", zap.Int("states", len(out)))
	return out, nil
}

// TopMunicipalities counts centers per (municipality, state, region), sorts by
// count descending (stable) and keeps at most limit entries. A limit <= 0
// keeps every group. Centers without a municipality are not ranked.
func TopMunicipalities(t *model.Table, limit int) []model.MunicipalityStat {
	type key struct{ municipality, uf, region string }

	var order []key
	counts := map[key]int{}
	for i := range t.Centers {
		c := &t.Centers[i]
		if c.Municipality == "" {
			continue
		}
		k := key{c.Municipality, c.State, c.Region}
		if _, ok := counts[k]; !ok {
			order = append(order, k)
		}
		counts[k]++
	}

	out := make([]model.MunicipalityStat, 0, len(order))
	for _, k := range order {
		out = append(out, model.MunicipalityStat{
			Municipality: k.municipality,
			UF:           k.uf,
			Region:       k.region,
			TotalCenters: counts[k],
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalCenters > out[j].TotalCenters
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	if len(out) > 0 {
		zap.L().Info("aggregate: top municipality",
			zap.String("municipio", out[0].Municipality),
			zap.Int("centers", out[0].TotalCenters),
		)
	}
	return out
}

// percentage returns count/total*100 rounded to 2 decimals.
func percentage(count, total int) (float64, error) {
	if total <= 0 {
		return 0, &model.EmptyInputError{Aggregate: "percentage", Reason: "total is zero"}
	}
	return round2(float64(count) / float64(total) * 100), nil
}

// round2 rounds half away from zero to 2 decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// distinct is a set of non-empty strings.
type distinct map[string]struct{}

func (d distinct) add(v string) {
	if v != "" {
		d[v] = struct{}{}
	}
}

func (d distinct) sorted() []string {
	out := make([]string, 0, len(d))
	for v := range d {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
