// Package apperr traduce los errores de dominio al envelope común de HTTP y bridge.
package apperr

import (
	"errors"
	"net/http"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
)

// MsgInternal mensaje genérico de errores no clasificados; el detalle va solo al log.
const MsgInternal = "Erro interno do servidor"

// Classify devuelve el status HTTP y el envelope de error. internal=true si el error
// no es de dominio (debe loguearse).
func Classify(err error) (status int, env dto.Envelope, internal bool) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, dto.Envelope{Code: "VALIDATION_ERROR", Message: "Dados inválidos", Errors: verr.Fields}, false
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, dto.Envelope{Code: "VALIDATION_ERROR", Message: err.Error()}, false
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, dto.Envelope{Code: "UNAUTHORIZED", Message: "Credenciais inválidas"}, false
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, dto.Envelope{Code: "FORBIDDEN", Message: domain.ErrForbidden.Error()}, false
	case errors.Is(err, domain.ErrEmptyReport):
		return http.StatusNotFound, dto.Envelope{Code: "EMPTY_REPORT", Message: "Não há movimentações registradas neste mês"}, false
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, dto.Envelope{Code: "NOT_FOUND", Message: "Produto não encontrado"}, false
	case errors.Is(err, domain.ErrInsufficientStock):
		return http.StatusConflict, dto.Envelope{Code: "INSUFFICIENT_STOCK", Message: "Não é possível remover mais itens do que o estoque atual"}, false
	case errors.Is(err, domain.ErrBusy):
		return http.StatusConflict, dto.Envelope{Code: "PRODUCT_BUSY", Message: "Produto em uso por outra operação, tente novamente"}, false
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, dto.Envelope{Code: "PRODUCT_INACTIVE", Message: "Produto inativo não pode ser movimentado"}, false
	case errors.Is(err, domain.ErrDuplicate):
		return http.StatusConflict, dto.Envelope{Code: "DUPLICATE", Message: domain.ErrDuplicate.Error()}, false
	}
	return http.StatusInternalServerError, dto.Envelope{Code: "INTERNAL", Message: MsgInternal}, true
}
