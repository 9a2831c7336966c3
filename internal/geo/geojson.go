package geo

import (
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/soromap/soro-cli/internal/model"
)

// PropertiesFunc returns the GeoJSON properties for one center.
type PropertiesFunc func(c *model.Center) map[string]any

// FeatureCollection builds one Point feature per center with coordinates.
// Centers without coordinates are skipped.
func FeatureCollection(centers []model.Center, props PropertiesFunc) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(centers))}
	for i := range centers {
		c := &centers[i]
		if !c.HasCoordinates() {
			continue
		}
		f := &geojson.Feature{
			ID:       c.ID,
			Geometry: geom.NewPointFlat(geom.XY, []float64{*c.Longitude, *c.Latitude}),
		}
		if props != nil {
			f.Properties = props(c)
		}
		fc.Features = append(fc.Features, f)
	}
	return fc
}
