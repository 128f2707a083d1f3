package handler

import (
	"net/http"

	"placefinder_backend/internal/places/service"
	"placefinder_backend/internal/places/transport"
	"placefinder_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler exposes the place resolution endpoint.
type Handler struct {
	svc *service.Pipeline
}

func NewHandler(svc *service.Pipeline) *Handler {
	return &Handler{svc: svc}
}

// Resolve handles POST /api/v1/places/resolve.
func (h *Handler) Resolve(c *gin.Context) {
	var req transport.ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "body field 'text' is required")
		return
	}

	result, err := h.svc.Resolve(c.Request.Context(), req.Text)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ResolveResponse{
		GeoJSON: result.GeoJSON,
		Query:   result.Query,
	})
}
