// Package handler exposes the leads module over HTTP.
package handler

import (
	"net/http"

	"agencyhunter_backend/internal/leads/domain"
	"agencyhunter_backend/internal/leads/store"
	"agencyhunter_backend/internal/leads/transport"
	pipelinedomain "agencyhunter_backend/internal/pipeline/domain"
	"agencyhunter_backend/platform/httpkit"
	"agencyhunter_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

type Handler struct {
	svc *store.Service
	val *validator.Validator
}

func New(svc *store.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Promote)
	rg.POST("/manual", h.CreateManual)
	rg.PATCH("/:id/status", h.UpdateStatus)
	rg.PATCH("/:id/notes", h.UpdateNotes)
	rg.GET("/:id/delete-request", h.RequestDelete)
	rg.DELETE("/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	httpkit.OK(c, transport.ToLeadResponses(h.svc.List()))
}

func (h *Handler) Promote(c *gin.Context) {
	var req transport.PromoteLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	opportunity, ok := domain.ParseOpportunityStatus(req.OpportunityStatus)
	if !ok {
		httpkit.Error(c, http.StatusBadRequest, "unknown opportunity status", nil)
		return
	}

	saved, err := h.svc.Create(c.Request.Context(), domain.Lead{
		ID:                req.ID,
		DisplayName:       req.DisplayName,
		Address:           req.Address,
		PhoneNumber:       req.PhoneNumber,
		WebsiteURL:        req.WebsiteURL,
		OpportunityStatus: opportunity,
		DiscoveryMethod:   req.DiscoveryMethod,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, transport.ToLeadResponse(saved))
}

func (h *Handler) CreateManual(c *gin.Context) {
	var req transport.ManualLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	entry := domain.Lead{
		DisplayName: req.DisplayName,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		WebsiteURL:  req.WebsiteURL,
	}
	if req.OpportunityStatus != "" {
		opportunity, ok := domain.ParseOpportunityStatus(req.OpportunityStatus)
		if !ok {
			httpkit.Error(c, http.StatusBadRequest, "unknown opportunity status", nil)
			return
		}
		entry.OpportunityStatus = opportunity
	}

	saved, err := h.svc.CreateManual(c.Request.Context(), entry)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, transport.ToLeadResponse(saved))
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req transport.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	stage, ok := pipelinedomain.ParseStage(req.Status)
	if !ok {
		httpkit.Error(c, http.StatusBadRequest, "unknown pipeline status", nil)
		return
	}

	updated, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), stage)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToLeadResponse(updated))
}

func (h *Handler) UpdateNotes(c *gin.Context) {
	var req transport.UpdateNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	updated, err := h.svc.UpdateNotes(c.Request.Context(), c.Param("id"), req.Notes)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToLeadResponse(updated))
}

// RequestDelete is the pure half of the two-step deletion: it reports the
// entry that would be removed so the UI can ask the user. The mutation only
// happens in Delete, which the UI calls after the user approves.
func (h *Handler) RequestDelete(c *gin.Context) {
	entry, err := h.svc.RequestDelete(c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.DeleteRequestResponse{
		Lead:                 transport.ToLeadResponse(entry),
		ConfirmationRequired: true,
	})
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); httpkit.HandleError(c, err) {
		return
	}

	c.Status(http.StatusNoContent)
}
