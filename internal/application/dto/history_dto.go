package dto

import "time"

// CreateHistoryRequest registro manual en el histórico (POST /api/history, history:add).
type CreateHistoryRequest struct {
	ProductID        int64  `json:"productId" validate:"required,gt=0"`
	Type             string `json:"type" validate:"required,oneof=entry exit adjustment"`
	Quantity         *int   `json:"quantity" validate:"required"`
	PreviousQuantity *int   `json:"previousQuantity"`
	NewQuantity      *int   `json:"newQuantity"`
	Observation      string `json:"observation" validate:"max=1000"`
}

// HistoryQuery filtros de GET /api/history. Start/End son fechas inclusivas AAAA-MM-DD.
type HistoryQuery struct {
	Type  string `query:"type" json:"type" validate:"omitempty,oneof=entry exit adjustment"`
	Start string `query:"start" json:"start"`
	End   string `query:"end" json:"end"`
}

// HistoryResponse salida de un movimiento.
type HistoryResponse struct {
	ID               int64     `json:"id"`
	ProductID        int64     `json:"productId"`
	ProductName      string    `json:"productName"`
	Type             string    `json:"type"`
	TypeLabel        string    `json:"typeLabel"`
	Quantity         int       `json:"quantity"`
	PreviousQuantity *int      `json:"previousQuantity"`
	NewQuantity      *int      `json:"newQuantity"`
	Observation      string    `json:"observation,omitempty"`
	UserID           string    `json:"userId,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}
