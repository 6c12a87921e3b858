package dto

import "github.com/jhoicas/estoque-api/internal/domain/entity"

// FromProduct convierte la entidad en su representación de salida.
func FromProduct(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:         p.ID,
		Name:       p.Name,
		Category:   p.Category,
		Supplier:   p.Supplier,
		Expiry:     p.Expiry.Format(DateLayout),
		Quantity:   p.Quantity,
		Value:      p.Value.Round(2),
		StockValue: p.StockValue().Round(2),
		Status:     p.Status,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// FromProducts convierte una lista (nunca devuelve nil).
func FromProducts(list []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, FromProduct(p))
	}
	return out
}

// FromHistory convierte un registro del histórico.
func FromHistory(e *entity.HistoryEntry) HistoryResponse {
	return HistoryResponse{
		ID:               e.ID,
		ProductID:        e.ProductID,
		ProductName:      e.ProductName,
		Type:             e.Type,
		TypeLabel:        entity.HistoryTypeLabel(e.Type),
		Quantity:         e.Quantity,
		PreviousQuantity: e.PreviousQuantity,
		NewQuantity:      e.NewQuantity,
		Observation:      e.Observation,
		UserID:           e.UserID,
		CreatedAt:        e.CreatedAt,
	}
}

// FromHistoryList convierte una lista (nunca devuelve nil).
func FromHistoryList(list []*entity.HistoryEntry) []HistoryResponse {
	out := make([]HistoryResponse, 0, len(list))
	for _, e := range list {
		out = append(out, FromHistory(e))
	}
	return out
}
