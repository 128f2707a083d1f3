// Package places wires the text-to-geodata resolution pipeline behind the
// HTTP surface.
package places

import (
	"context"

	"placefinder_backend/internal/area"
	apphttp "placefinder_backend/internal/http"
	"placefinder_backend/internal/overpass"
	"placefinder_backend/internal/places/handler"
	"placefinder_backend/internal/places/service"
	"placefinder_backend/platform/config"
	"placefinder_backend/platform/logger"
	"placefinder_backend/platform/validator"
)

// Completer issues a deterministic completion request. Satisfied by the
// gemini client.
type Completer interface {
	Complete(ctx context.Context, systemInstruction, userText string) (string, error)
}

// ModuleConfig combines the config interfaces the module needs.
type ModuleConfig interface {
	config.GeoConfig
	config.OverpassConfig
}

// Module wires the places resolution HTTP routes.
type Module struct {
	handler  *handler.Handler
	pipeline *service.Pipeline
}

func NewModule(cfg ModuleConfig, completer Completer, val *validator.Validator, log *logger.Logger) *Module {
	normalizer := area.NewNormalizerClient(cfg.GetNormalizerURL(), log)
	boundary := area.NewBoundaryClient(cfg.GetBoundaryBaseURL(), log)
	resolver := area.NewResolver(completer, normalizer, boundary, log)

	synthesizer := overpass.NewSynthesizer(completer, log)
	executor := overpass.NewExecutor(cfg.GetOverpassURL(), cfg.GetOverpassRPS(), log)

	pipeline := service.NewPipeline(resolver, synthesizer, executor, val, log)
	h := handler.NewHandler(pipeline)

	return &Module{handler: h, pipeline: pipeline}
}

// Pipeline returns the resolution pipeline for non-HTTP callers (CLI).
func (m *Module) Pipeline() *service.Pipeline {
	return m.pipeline
}

func (m *Module) Name() string {
	return "places"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/places")
	group.POST("/resolve", ctx.ResolveRateLimiter.RateLimit(), m.handler.Resolve)
}

var _ apphttp.Module = (*Module)(nil)
