package area

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"placefinder_backend/platform/logger"
)

// BoundaryClient fetches administrative boundary geometry documents.
// Documents are keyed by a deterministic URL built from the normalized
// prefecture and city names.
type BoundaryClient struct {
	baseURL string
	client  *http.Client
	log     *logger.Logger
}

func NewBoundaryClient(baseURL string, log *logger.Logger) *BoundaryClient {
	return &BoundaryClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
}

// FetchBound retrieves the boundary document for the given pair and
// returns the union bound of all geometries it contains.
func (b *BoundaryClient) FetchBound(ctx context.Context, prefecture, city string) (orb.Bound, error) {
	reqURL := fmt.Sprintf("%s/%s/%s.json", b.baseURL, url.PathEscape(prefecture), url.PathEscape(city))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return orb.Bound{}, err
	}

	resp, err := b.client.Do(req)
	if err != nil {
		b.log.UpstreamError("boundary-data", err)
		return orb.Bound{}, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("upstream api error: %d", resp.StatusCode)
		b.log.UpstreamError("boundary-data", err)
		return orb.Bound{}, err
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		b.log.UpstreamError("boundary-data", err)
		return orb.Bound{}, err
	}

	geometries, err := documentGeometries(raw)
	if err != nil {
		b.log.UpstreamError("boundary-data", err)
		return orb.Bound{}, err
	}

	bound := geometries[0].Bound()
	for _, geometry := range geometries[1:] {
		bound = bound.Union(geometry.Bound())
	}

	return bound, nil
}

// documentGeometries extracts the geometries from a GeoJSON document.
// Boundary hosts serve a mix of FeatureCollections, bare Features and bare
// geometries, so all three shapes are accepted.
func documentGeometries(raw []byte) ([]orb.Geometry, error) {
	if fc, err := geojson.UnmarshalFeatureCollection(raw); err == nil {
		geometries := make([]orb.Geometry, 0, len(fc.Features))
		for _, feature := range fc.Features {
			if feature != nil && feature.Geometry != nil {
				geometries = append(geometries, feature.Geometry)
			}
		}
		if len(geometries) == 0 {
			return nil, fmt.Errorf("boundary document contains no geometry")
		}
		return geometries, nil
	}

	if feature, err := geojson.UnmarshalFeature(raw); err == nil && feature.Geometry != nil {
		return []orb.Geometry{feature.Geometry}, nil
	}

	if geometry, err := geojson.UnmarshalGeometry(raw); err == nil && geometry.Geometry() != nil {
		return []orb.Geometry{geometry.Geometry()}, nil
	}

	return nil, fmt.Errorf("boundary document is not valid GeoJSON")
}
