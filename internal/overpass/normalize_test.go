package overpass

import (
	"testing"
)

func sampleElements() []Element {
	return []Element{
		{Type: "node", ID: 1, Lat: 34.81, Lon: 135.76, Tags: map[string]string{"name": "一休寺", "amenity": "place_of_worship"}},
		{Type: "way", ID: 2, Tags: map[string]string{"name": "国道307号"}},
		{Type: "node", ID: 3, Lat: 34.82, Lon: 135.77},
		{Type: "node", ID: 4, Lat: 34.83, Lon: 135.78, Tags: map[string]string{"amenity": "bench"}},
		{Type: "node", ID: 5, Lat: 34.84, Lon: 135.79, Tags: map[string]string{"name": ""}},
		{Type: "relation", ID: 6, Tags: map[string]string{"name": "京田辺市"}},
		{Type: "node", ID: 7, Lat: 34.85, Lon: 135.80, Tags: map[string]string{"name": "近鉄新田辺駅"}},
	}
}

func TestNormalizeFiltersToNamedNodes(t *testing.T) {
	collection := Normalize(sampleElements())

	if len(collection.Features) != 2 {
		t.Fatalf("expected 2 features, got %d", len(collection.Features))
	}
	for _, feature := range collection.Features {
		title, ok := feature.Properties["title"].(string)
		if !ok || title == "" {
			t.Fatalf("every feature must carry a non-empty title: %+v", feature.Properties)
		}
	}
}

func TestNormalizePreservesInputOrder(t *testing.T) {
	collection := Normalize(sampleElements())

	if collection.Features[0].Properties["title"] != "一休寺" {
		t.Fatalf("unexpected first feature: %+v", collection.Features[0].Properties)
	}
	if collection.Features[1].Properties["title"] != "近鉄新田辺駅" {
		t.Fatalf("unexpected second feature: %+v", collection.Features[1].Properties)
	}

	point := collection.Features[1].Point()
	if point[0] != 135.80 || point[1] != 34.85 {
		t.Fatalf("coordinates must be (lon, lat): %+v", point)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	// Re-applying the filter to elements that already passed it must yield
	// an identical collection.
	kept := make([]Element, 0)
	for _, element := range sampleElements() {
		if element.Type == "node" && element.Tags["name"] != "" {
			kept = append(kept, element)
		}
	}

	first := Normalize(kept)
	second := Normalize(kept)

	if len(first.Features) != len(kept) || len(second.Features) != len(first.Features) {
		t.Fatalf("unexpected feature counts: %d %d %d", len(kept), len(first.Features), len(second.Features))
	}
	for i := range first.Features {
		if first.Features[i].Properties["title"] != second.Features[i].Properties["title"] {
			t.Fatal("re-normalization changed the collection")
		}
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	collection := Normalize(nil)
	if collection == nil {
		t.Fatal("expected an empty collection, not nil")
	}
	if len(collection.Features) != 0 {
		t.Fatalf("expected no features, got %d", len(collection.Features))
	}
}
