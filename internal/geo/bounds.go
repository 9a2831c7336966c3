// Package geo computes the geographic extent of the distribution centers.
package geo

import (
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/soromap/soro-cli/internal/model"
)

// SRID is the spatial reference of every coordinate in the dataset (WGS 84).
const SRID = 4326

// Points returns the centers that have both coordinates as a MultiPoint
// with X = longitude and Y = latitude.
func Points(centers []model.Center) *geom.MultiPoint {
	flat := make([]float64, 0, 2*len(centers))
	for i := range centers {
		c := &centers[i]
		if !c.HasCoordinates() {
			continue
		}
		flat = append(flat, *c.Longitude, *c.Latitude)
	}
	return geom.NewMultiPointFlat(geom.XY, flat).SetSRID(SRID)
}

// Summarize computes the bounding box and arithmetic-mean centroid of the
// centers with valid coordinates. It fails with a *model.EmptyInputError
// when no center has coordinates.
func Summarize(t *model.Table) (*model.CoordinateStats, error) {
	mp := Points(t.Centers)
	n := mp.NumPoints()
	if n == 0 {
		return nil, &model.EmptyInputError{
			Aggregate: "coordinates",
			Reason:    "no centers with valid coordinates",
		}
	}

	b := mp.Bounds()

	var sumLat, sumLng float64
	flat := mp.FlatCoords()
	for i := 0; i < len(flat); i += 2 {
		sumLng += flat[i]
		sumLat += flat[i+1]
	}

	stats := &model.CoordinateStats{
		TotalWithCoordinates:    n,
		TotalMissingCoordinates: t.Len() - n,
		Bounds: model.Bounds{
			MinLat: b.Min(1),
			MaxLat: b.Max(1),
			MinLng: b.Min(0),
			MaxLng: b.Max(0),
		},
		Center: model.LatLng{
			Lat: sumLat / float64(n),
			Lng: sumLng / float64(n),
		},
	}

	zap.L().Info("geo: geographic center",
		zap.Float64("lat", stats.Center.Lat),
		zap.Float64("lng", stats.Center.Lng),
		zap.Int("with_coordinates", n),
		zap.Int("missing_coordinates", stats.TotalMissingCoordinates),
	)

	return stats, nil
}
