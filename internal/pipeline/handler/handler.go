// Package handler exposes the pipeline board over HTTP.
package handler

import (
	"net/http"

	leadtransport "agencyhunter_backend/internal/leads/transport"
	"agencyhunter_backend/internal/pipeline/domain"
	"agencyhunter_backend/internal/pipeline/engine"
	"agencyhunter_backend/internal/pipeline/transport"
	"agencyhunter_backend/platform/httpkit"
	"agencyhunter_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	mover engine.Mover
	val   *validator.Validator
}

func New(mover engine.Mover, val *validator.Validator) *Handler {
	return &Handler{mover: mover, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/board", h.Board)
	rg.POST("/leads/:id/move", h.Move)
}

// Board returns every stage column in board order, empty columns included.
func (h *Handler) Board(c *gin.Context) {
	leads, err := h.mover.List(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	columns := make([]transport.BoardColumn, 0, len(domain.Stages()))
	for _, stage := range domain.Stages() {
		column := transport.BoardColumn{
			Stage: string(stage),
			Leads: []leadtransport.LeadResponse{},
		}
		for _, entry := range leads {
			if entry.PipelineStatus == stage {
				column.Leads = append(column.Leads, leadtransport.ToLeadResponse(entry))
			}
		}
		columns = append(columns, column)
	}

	httpkit.OK(c, transport.BoardResponse{Columns: columns})
}

func (h *Handler) Move(c *gin.Context) {
	var req transport.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	stage, ok := domain.ParseStage(req.Status)
	if !ok {
		httpkit.Error(c, http.StatusBadRequest, "unknown pipeline status", nil)
		return
	}

	moved, err := h.mover.Move(c.Request.Context(), c.Param("id"), stage)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, leadtransport.ToLeadResponse(moved))
}
