// Package handler exposes the discovery search over HTTP.
package handler

import (
	"agencyhunter_backend/internal/discovery/feed"
	"agencyhunter_backend/internal/discovery/transport"
	"agencyhunter_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *feed.Service
}

func New(svc *feed.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/search", h.Search)
}

// Search accepts keyword+city, or a single combined q term.
func (h *Handler) Search(c *gin.Context) {
	keyword := c.Query("keyword")
	if keyword == "" {
		keyword = c.Query("q")
	}

	candidates, err := h.svc.Search(c.Request.Context(), keyword, c.Query("city"))
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToCandidateResponses(candidates))
}
