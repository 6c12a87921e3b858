package dto

// AdjustStockRequest body para POST /api/products/:id/adjust.
// En adjustment, Quantity es la cantidad final (puede ser 0); en entry/exit debe ser > 0.
type AdjustStockRequest struct {
	Type        string `json:"type" validate:"required,oneof=entry exit adjustment"`
	Quantity    *int   `json:"quantity" validate:"required,min=0"`
	Observation string `json:"observation" validate:"max=1000"`
}

// StockMovementResponse resultado de un movimiento de estoque.
type StockMovementResponse struct {
	ProductID        int64           `json:"productId"`
	Type             string          `json:"type"`
	Quantity         int             `json:"quantity"`
	PreviousQuantity int             `json:"previousQuantity"`
	NewQuantity      int             `json:"newQuantity"`
	HistoryID        int64           `json:"historyId"`
	Product          ProductResponse `json:"product"`
}
