// Package handler exposes the search service over HTTP.
package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Onlynfk/podground-backend-sub001/internal/domain"
	"github.com/Onlynfk/podground-backend-sub001/internal/service"
	"github.com/Onlynfk/podground-backend-sub001/pkg/log"
	"github.com/Onlynfk/podground-backend-sub001/pkg/middleware"
	"github.com/Onlynfk/podground-backend-sub001/pkg/response"
)

// Handler handles HTTP requests for the search service.
type Handler struct {
	searchService service.SearchService
}

// NewHandler creates a new HTTP handler.
func NewHandler(searchService service.SearchService) *Handler {
	return &Handler{
		searchService: searchService,
	}
}

// RegisterRoutes registers all routes. Search requires a verified token:
// the requesting user scopes message and people results.
func (h *Handler) RegisterRoutes(r *gin.Engine, auth *middleware.AuthMiddleware) {
	api := r.Group("/api/v1")
	{
		api.GET("/search", auth.RequireAuth(), h.Search)
	}
}

// Search handles global search across all content categories. An empty
// q is not an error; it yields the canonical empty response.
func (h *Handler) Search(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	var req domain.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		l.Warn().Err(err).Msg("invalid search request")
		response.BadRequest(c, err.Error())
		return
	}
	req.UserID = middleware.GetUserID(c)

	result, err := h.searchService.SearchAll(ctx, &req)
	if err != nil {
		l.Error().Err(err).Str(log.FieldQuery, req.Query).Msg("search failed")
		response.InternalError(c, "search failed")
		return
	}

	response.Success(c, result)
}
