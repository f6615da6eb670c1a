// Package transport defines request and response DTOs for the pipeline API.
package transport

import (
	leadtransport "agencyhunter_backend/internal/leads/transport"
)

// MoveRequest carries the target stage for a board move.
type MoveRequest struct {
	Status string `json:"status" validate:"required"`
}

// BoardColumn is one stage column with its leads in store order.
type BoardColumn struct {
	Stage string                       `json:"stage"`
	Leads []leadtransport.LeadResponse `json:"leads"`
}

// BoardResponse is the full board, one column per stage in board order.
type BoardResponse struct {
	Columns []BoardColumn `json:"columns"`
}
