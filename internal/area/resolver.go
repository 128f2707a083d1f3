// Package area resolves free text into a normalized administrative area
// and its bounding box. It sequences a completion call, the address
// normalization collaborator and the boundary-data collaborator.
package area

import (
	"context"

	"github.com/paulmach/orb"

	"placefinder_backend/platform/apperr"
	"placefinder_backend/platform/logger"
	"placefinder_backend/platform/sanitize"
)

// Completer issues a deterministic completion request.
type Completer interface {
	Complete(ctx context.Context, systemInstruction, userText string) (string, error)
}

// AddressNormalizer splits a place-name candidate into prefecture and city.
type AddressNormalizer interface {
	Normalize(ctx context.Context, text string) (NormalizedAddress, error)
}

// BoundaryFetcher returns the bound of an administrative boundary.
type BoundaryFetcher interface {
	FetchBound(ctx context.Context, prefecture, city string) (orb.Bound, error)
}

// Resolver extracts the municipality named in a query and derives its
// bounding box. Ambiguous inputs spanning multiple municipalities (ward
// names, regional names) are not disambiguated; the caller must supply the
// sub-municipality name in the input text.
type Resolver struct {
	completer  Completer
	normalizer AddressNormalizer
	boundary   BoundaryFetcher
	log        *logger.Logger
}

func NewResolver(completer Completer, normalizer AddressNormalizer, boundary BoundaryFetcher, log *logger.Logger) *Resolver {
	return &Resolver{
		completer:  completer,
		normalizer: normalizer,
		boundary:   boundary,
		log:        log,
	}
}

// Resolve extracts a normalized prefecture+city pair from the raw query
// text and computes the bounding box of its administrative boundary.
func (r *Resolver) Resolve(ctx context.Context, rawText string) (Area, BoundingBox, error) {
	extracted, err := r.completer.Complete(ctx, extractCityInstruction, extractCityUserPrefix+rawText)
	if err != nil {
		return Area{}, BoundingBox{}, err
	}

	// The completion service occasionally prepends disclaimers; keep only
	// the permitted script ranges.
	candidate := sanitize.CompletionLine(extracted)
	if candidate == "" {
		return Area{}, BoundingBox{}, apperr.AreaNotFound("入力文から市区町村名を抽出できませんでした")
	}

	normalized, err := r.normalizer.Normalize(ctx, candidate)
	if err != nil {
		return Area{}, BoundingBox{}, apperr.Upstream("住所の正規化に失敗しました", err)
	}

	// A prefecture-only or region-wide answer is insufficient: the boundary
	// lookup is keyed by the (prefecture, city) pair.
	if normalized.Prefecture == "" {
		return Area{}, BoundingBox{}, apperr.AreaNotFound("都道府県名が分かりませんでした")
	}
	if normalized.City == "" {
		return Area{}, BoundingBox{}, apperr.AreaNotFound("市区町村名が分かりませんでした")
	}

	resolved := Area{Prefecture: normalized.Prefecture, City: normalized.City}
	r.log.Debug("administrative area resolved", "prefecture", resolved.Prefecture, "city", resolved.City)

	bound, err := r.boundary.FetchBound(ctx, resolved.Prefecture, resolved.City)
	if err != nil {
		return Area{}, BoundingBox{}, apperr.BoundaryLookup("市区町村名が正しくありません", err)
	}

	bbox := BoundingBox{
		MinLon: bound.Min[0],
		MinLat: bound.Min[1],
		MaxLon: bound.Max[0],
		MaxLat: bound.Max[1],
	}
	if !bbox.Valid() {
		return Area{}, BoundingBox{}, apperr.DegenerateBoundary("行政界からバウンディングボックスを計算できませんでした")
	}

	return resolved, bbox, nil
}
