// Package transport defines the request/response DTOs for the places API.
package transport

import "github.com/paulmach/orb/geojson"

// ResolveRequest carries the user's free-text place/activity query.
type ResolveRequest struct {
	Text string `json:"text" binding:"required,min=1"`
}

// ResolveResponse pairs the normalized geometry collection with the
// synthesized query so the frontend can render and audit both.
type ResolveResponse struct {
	GeoJSON *geojson.FeatureCollection `json:"geojson"`
	Query   string                     `json:"query"`
}
