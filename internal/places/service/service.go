// Package service sequences the text-to-geodata resolution pipeline:
// area resolution, query synthesis, query execution and result
// normalization. Stages run strictly sequentially because each stage's
// output is the literal input to the next.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/paulmach/orb/geojson"

	"placefinder_backend/internal/area"
	"placefinder_backend/internal/overpass"
	"placefinder_backend/platform/apperr"
	"placefinder_backend/platform/logger"
	"placefinder_backend/platform/validator"
)

// stage labels the pipeline state machine. Every run walks the stages in
// order and terminates either at stageNormalized or at the first failure.
type stage string

const (
	stageStart            stage = "start"
	stageAreaResolved     stage = "area_resolved"
	stageQuerySynthesized stage = "query_synthesized"
	stageQueryExecuted    stage = "query_executed"
	stageNormalized       stage = "normalized"
)

// AreaResolver resolves free text into an administrative area and bbox.
type AreaResolver interface {
	Resolve(ctx context.Context, rawText string) (area.Area, area.BoundingBox, error)
}

// QuerySynthesizer produces an Overpass query scoped to a bounding box.
type QuerySynthesizer interface {
	Synthesize(ctx context.Context, rawText string, bbox area.BoundingBox) (string, error)
}

// QueryExecutor runs a query against the spatial-data API.
type QueryExecutor interface {
	Execute(ctx context.Context, query string) ([]overpass.Element, error)
}

// Result pairs the normalized geometry collection with the query that
// produced it, so a caller can audit and display both.
type Result struct {
	GeoJSON *geojson.FeatureCollection `json:"geojson"`
	Query   string                     `json:"query"`
}

type resolveInput struct {
	Text string `validate:"required,min=1"`
}

// Pipeline is the request/response resolution flow. It holds no state
// across invocations; concurrent calls are independent.
type Pipeline struct {
	resolver    AreaResolver
	synthesizer QuerySynthesizer
	executor    QueryExecutor
	val         *validator.Validator
	log         *logger.Logger
}

func NewPipeline(resolver AreaResolver, synthesizer QuerySynthesizer, executor QueryExecutor, val *validator.Validator, log *logger.Logger) *Pipeline {
	return &Pipeline{
		resolver:    resolver,
		synthesizer: synthesizer,
		executor:    executor,
		val:         val,
		log:         log,
	}
}

// Resolve runs the full pipeline for one query text. It fails with the
// first error any stage raises; there are no partial results and no
// automatic retries across stage boundaries. A caller wanting resilience
// re-invokes the whole pipeline.
func (p *Pipeline) Resolve(ctx context.Context, rawText string) (Result, error) {
	text := strings.TrimSpace(rawText)
	if err := p.val.Struct(resolveInput{Text: text}); err != nil {
		return Result{}, apperr.Validation("検索したい内容を入力して下さい")
	}

	current := stageStart

	start := time.Now()
	resolvedArea, bbox, err := p.resolver.Resolve(ctx, text)
	if err != nil {
		return Result{}, p.fail(current, err)
	}
	current = p.advance(stageAreaResolved, start)

	start = time.Now()
	query, err := p.synthesizer.Synthesize(ctx, text, bbox)
	if err != nil {
		return Result{}, p.fail(current, err)
	}
	current = p.advance(stageQuerySynthesized, start)

	start = time.Now()
	elements, err := p.executor.Execute(ctx, query)
	if err != nil {
		return Result{}, p.fail(current, err)
	}
	current = p.advance(stageQueryExecuted, start)

	start = time.Now()
	collection := overpass.Normalize(elements)
	current = p.advance(stageNormalized, start)

	p.log.Info("pipeline resolved",
		"stage", string(current),
		"prefecture", resolvedArea.Prefecture,
		"city", resolvedArea.City,
		"features", len(collection.Features),
	)

	return Result{GeoJSON: collection, Query: query}, nil
}

// advance records the completed transition and returns the new state.
func (p *Pipeline) advance(next stage, start time.Time) stage {
	p.log.PipelineStage(string(next), float64(time.Since(start).Milliseconds()))
	return next
}

// fail logs the terminal failure with the last completed stage. Untyped
// errors are wrapped as internal so the HTTP layer maps them to a 500.
func (p *Pipeline) fail(completed stage, err error) error {
	p.log.Error("pipeline failed", "completedStage", string(completed), "error", err)
	if _, ok := err.(*apperr.Error); ok {
		return err
	}
	return apperr.Wrap(apperr.KindInternal, "検索処理に失敗しました", err)
}
