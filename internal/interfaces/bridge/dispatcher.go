// Package bridge expone las operaciones del estoque como llamadas con nombre fijo
// (product:create, history:getAll, ...) y argumentos posicionales JSON, para el
// cliente de escritorio. Cada llamada devuelve el envelope {success, message?, data?}.
package bridge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/estoque-api/internal/application/analytics"
	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/application/usecase"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/interfaces/apperr"
)

// Call contexto de una invocación.
type Call struct {
	Args   []json.RawMessage
	UserID string
}

type handlerFunc func(ctx context.Context, call Call) (data any, message string, err error)

// Deps casos de uso usados por el dispatcher.
type Deps struct {
	Products  *usecase.ProductUseCase
	History   *usecase.HistoryUseCase
	Stock     *inventory.AdjustStockUseCase
	Dashboard *analytics.DashboardUseCase
	Log       zerolog.Logger
}

// Dispatcher resuelve el canal y ejecuta el caso de uso correspondiente.
type Dispatcher struct {
	deps     Deps
	handlers map[string]handlerFunc
}

// NewDispatcher registra todos los canales.
func NewDispatcher(deps Deps) *Dispatcher {
	d := &Dispatcher{deps: deps}
	d.handlers = map[string]handlerFunc{
		"product:create":         d.productCreate,
		"product:getAll":         d.productGetAll,
		"product:getById":        d.productGetByID,
		"product:update":         d.productUpdate,
		"product:delete":         d.productDelete,
		"product:updateQuantity": d.productUpdateQuantity,
		"product:getExpiring":    d.productGetExpiring,
		"history:add":            d.historyAdd,
		"history:getAll":         d.historyGetAll,
		"history:getByProduct":   d.historyGetByProduct,
		"history:getByDateRange": d.historyGetByDateRange,
		"history:getByType":      d.historyGetByType,
		"stock:adjust":           d.stockAdjust,
		"dashboard:summary":      d.dashboardSummary,
	}
	return d
}

// Channels lista los canales registrados.
func (d *Dispatcher) Channels() []string {
	out := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		out = append(out, name)
	}
	return out
}

// Dispatch ejecuta el canal. Nunca devuelve error: los fallos van en el envelope.
func (d *Dispatcher) Dispatch(ctx context.Context, channel string, call Call) dto.Envelope {
	h, ok := d.handlers[channel]
	if !ok {
		return dto.Envelope{Success: false, Code: "UNKNOWN_CHANNEL", Message: "Canal desconhecido: " + channel}
	}
	data, message, err := h(ctx, call)
	if err != nil {
		_, env, internal := apperr.Classify(err)
		if internal {
			d.deps.Log.Error().Err(err).Str("channel", channel).Msg("bridge: error interno")
		}
		return env
	}
	return dto.Envelope{Success: true, Message: message, Data: data}
}

// ─── productos ───────────────────────────────────────────────────────────────

func (d *Dispatcher) productCreate(ctx context.Context, call Call) (any, string, error) {
	var in dto.CreateProductRequest
	if err := arg(call, 0, "data", &in); err != nil {
		return nil, "", err
	}
	out, err := d.deps.Products.Create(ctx, in, call.UserID)
	return out, "Produto cadastrado com sucesso", err
}

func (d *Dispatcher) productGetAll(ctx context.Context, _ Call) (any, string, error) {
	out, err := d.deps.Products.List(ctx)
	return out, "", err
}

func (d *Dispatcher) productGetByID(ctx context.Context, call Call) (any, string, error) {
	var id int64
	if err := arg(call, 0, "id", &id); err != nil {
		return nil, "", err
	}
	out, err := d.deps.Products.GetByID(ctx, id)
	return out, "", err
}

func (d *Dispatcher) productUpdate(ctx context.Context, call Call) (any, string, error) {
	var (
		id int64
		in dto.UpdateProductRequest
	)
	if err := arg(call, 0, "id", &id); err != nil {
		return nil, "", err
	}
	if err := arg(call, 1, "data", &in); err != nil {
		return nil, "", err
	}
	out, err := d.deps.Products.Update(ctx, id, in, call.UserID)
	return out, "Produto atualizado com sucesso", err
}

func (d *Dispatcher) productDelete(ctx context.Context, call Call) (any, string, error) {
	var id int64
	if err := arg(call, 0, "id", &id); err != nil {
		return nil, "", err
	}
	if err := d.deps.Products.Delete(ctx, id, call.UserID); err != nil {
		return nil, "", err
	}
	return nil, "Produto excluído com sucesso", nil
}

// productUpdateQuantity fija la cantidad absoluta como un ajuste registrado.
func (d *Dispatcher) productUpdateQuantity(ctx context.Context, call Call) (any, string, error) {
	var (
		id       int64
		quantity int
	)
	if err := arg(call, 0, "id", &id); err != nil {
		return nil, "", err
	}
	if err := arg(call, 1, "quantity", &quantity); err != nil {
		return nil, "", err
	}
	out, err := d.deps.Stock.Adjust(ctx, inventory.AdjustStockInput{
		ProductID: id,
		Type:      entity.HistoryTypeAdjustment,
		Quantity:  quantity,
		UserID:    call.UserID,
	})
	return out, "Quantidade atualizada com sucesso", err
}

func (d *Dispatcher) productGetExpiring(ctx context.Context, call Call) (any, string, error) {
	var days int
	if err := optionalArg(call, 0, "days", &days); err != nil {
		return nil, "", err
	}
	out, err := d.deps.Products.Expiring(ctx, days)
	return out, "", err
}

// ─── histórico ───────────────────────────────────────────────────────────────

func (d *Dispatcher) historyAdd(ctx context.Context, call Call) (any, string, error) {
	var in dto.CreateHistoryRequest
	if err := arg(call, 0, "entry", &in); err != nil {
		return nil, "", err
	}
	out, err := d.deps.History.Append(ctx, in, call.UserID)
	return out, "Movimentação registrada com sucesso", err
}

func (d *Dispatcher) historyGetAll(ctx context.Context, _ Call) (any, string, error) {
	out, err := d.deps.History.List(ctx)
	return out, "", err
}

func (d *Dispatcher) historyGetByProduct(ctx context.Context, call Call) (any, string, error) {
	var id int64
	if err := arg(call, 0, "productId", &id); err != nil {
		return nil, "", err
	}
	out, err := d.deps.History.ByProduct(ctx, id)
	return out, "", err
}

func (d *Dispatcher) historyGetByDateRange(ctx context.Context, call Call) (any, string, error) {
	var start, end string
	if err := arg(call, 0, "start", &start); err != nil {
		return nil, "", err
	}
	if err := arg(call, 1, "end", &end); err != nil {
		return nil, "", err
	}
	out, err := d.deps.History.ByDateRange(ctx, start, end)
	return out, "", err
}

func (d *Dispatcher) historyGetByType(ctx context.Context, call Call) (any, string, error) {
	var t string
	if err := arg(call, 0, "type", &t); err != nil {
		return nil, "", err
	}
	out, err := d.deps.History.ByType(ctx, t)
	return out, "", err
}

// ─── estoque y painel ────────────────────────────────────────────────────────

func (d *Dispatcher) stockAdjust(ctx context.Context, call Call) (any, string, error) {
	var (
		id int64
		in dto.AdjustStockRequest
	)
	if err := arg(call, 0, "id", &id); err != nil {
		return nil, "", err
	}
	if err := arg(call, 1, "data", &in); err != nil {
		return nil, "", err
	}
	if in.Quantity == nil {
		return nil, "", domain.NewValidationError("quantity", "Quantidade é obrigatória")
	}
	out, err := d.deps.Stock.Adjust(ctx, inventory.AdjustStockInput{
		ProductID:   id,
		Type:        in.Type,
		Quantity:    *in.Quantity,
		Observation: in.Observation,
		UserID:      call.UserID,
	})
	return out, "Estoque atualizado com sucesso", err
}

func (d *Dispatcher) dashboardSummary(ctx context.Context, call Call) (any, string, error) {
	var days int
	if err := optionalArg(call, 0, "days", &days); err != nil {
		return nil, "", err
	}
	out, err := d.deps.Dashboard.GetSummary(ctx, days)
	return out, "", err
}

// ─── argumentos ──────────────────────────────────────────────────────────────

func arg(call Call, i int, name string, dst any) error {
	if i >= len(call.Args) || isNull(call.Args[i]) {
		return domain.NewValidationError(name, fmt.Sprintf("Argumento %d (%s) é obrigatório", i+1, name))
	}
	if err := json.Unmarshal(call.Args[i], dst); err != nil {
		return domain.NewValidationError(name, "Argumento com formato inválido")
	}
	return nil
}

func optionalArg(call Call, i int, name string, dst any) error {
	if i >= len(call.Args) || isNull(call.Args[i]) {
		return nil
	}
	return arg(call, i, name, dst)
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
