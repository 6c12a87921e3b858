// Package validation evalúa las etiquetas validate: de los DTO con go-playground/validator
// y traduce los fallos a domain.ValidationError (nombres de campo JSON, mensajes pt-BR).
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/estoque-api/internal/domain"
)

var (
	once sync.Once
	v    *validator.Validate
)

// mensajes específicos por campo.etiqueta; el resto usa el genérico de la etiqueta.
var fieldMessages = map[string]string{
	"name.required":     "Nome do produto é obrigatório",
	"name.min":          "Nome deve ter pelo menos 2 caracteres",
	"name.max":          "Nome não pode ter mais de 255 caracteres",
	"supplier.required": "Fornecedor é obrigatório",
	"supplier.min":      "Fornecedor deve ter pelo menos 2 caracteres",
	"supplier.max":      "Fornecedor não pode ter mais de 255 caracteres",
	"category.oneof":    "Categoria deve ser: Bebida, Doce ou Salgadinho",
	"quantity.min":      "Quantidade não pode ser negativa",
	"type.oneof":        "Tipo deve ser: entry, exit ou adjustment",
	"observation.max":   "Observação não pode ter mais de 1000 caracteres",
}

func instance() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "query"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})
	})
	return v
}

// Struct valida s y devuelve *domain.ValidationError (o nil).
func Struct(s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validation: %w", err)
	}
	out := &domain.ValidationError{}
	for _, fe := range verrs {
		out.Add(fe.Field(), message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	isText := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return "Campo obrigatório"
	case "min":
		if isText {
			return "Deve ter pelo menos " + fe.Param() + " caracteres"
		}
		return "Deve ser maior ou igual a " + fe.Param()
	case "max":
		if isText {
			return "Não pode ter mais de " + fe.Param() + " caracteres"
		}
		return "Deve ser menor ou igual a " + fe.Param()
	case "gt":
		return "Deve ser maior que " + fe.Param()
	case "oneof":
		return "Deve ser um de: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "email":
		return "E-mail inválido"
	case "datetime":
		return "Data inválida (use AAAA-MM-DD)"
	}
	return "Valor inválido"
}
