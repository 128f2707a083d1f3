package overpass

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Normalize flattens raw Overpass elements into a GeoJSON
// FeatureCollection of named points. Ways, relations and untagged or
// nameless nodes are dropped on purpose: downstream display only
// understands point+title features. Input order is preserved; no
// deduplication, no sorting.
func Normalize(elements []Element) *geojson.FeatureCollection {
	collection := geojson.NewFeatureCollection()

	for _, element := range elements {
		if element.Type != "node" {
			continue
		}
		name, ok := element.Tags["name"]
		if !ok || name == "" {
			continue
		}

		feature := geojson.NewFeature(orb.Point{element.Lon, element.Lat})
		feature.Properties = geojson.Properties{"title": name}
		collection.Append(feature)
	}

	return collection
}
