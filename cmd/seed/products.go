package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/usecase"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

const seedObservation = "Entrada inicial - produto cadastrado"

// sampleProducts catálogo de ejemplo; las validades son relativas a now para que nunca nazcan vencidas.
func sampleProducts(now time.Time) []dto.CreateProductRequest {
	day := func(n int) string { return now.AddDate(0, 0, n).Format(dto.DateLayout) }
	return []dto.CreateProductRequest{
		newRequest("Coca-Cola 2L", entity.CategoryBebida, "Coca-Cola Brasil", day(90), 50, "8.50"),
		newRequest("Cerveja Skol 350ml", entity.CategoryBebida, "Ambev", day(5), 60, "3.50"),
		newRequest("Chocolate Lacta 90g", entity.CategoryDoce, "Mondelez", day(120), 30, "6.99"),
		newRequest("Paçoca Amor 50un", entity.CategoryDoce, "Santa Helena", day(3), 12, "18.90"),
		newRequest("Batata Ruffles 96g", entity.CategorySalgadinho, "PepsiCo", day(45), 25, "9.49"),
		newRequest("Amendoim Japonês Dori 150g", entity.CategorySalgadinho, "Dori", day(200), 40, "5.25"),
	}
}

func newRequest(name, category, supplier, expiry string, qty int, value string) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Name: name, Category: category, Supplier: supplier, Expiry: expiry,
		Quantity: &qty, Value: decimal.RequireFromString(value), Observation: seedObservation,
	}
}

// createProducts crea cada producto con su entrada inicial; los que ya existen (mismo nombre, activos) se omiten.
func createProducts(ctx context.Context, uc *usecase.ProductUseCase, rows []dto.CreateProductRequest) (created, skipped int, err error) {
	for _, in := range rows {
		exists, err := productExists(ctx, uc, in.Name)
		if err != nil {
			return created, skipped, err
		}
		if exists {
			skipped++
			continue
		}
		if in.Observation == "" {
			in.Observation = seedObservation
		}
		if _, err := uc.Create(ctx, in, ""); err != nil {
			return created, skipped, fmt.Errorf("%s: %w", in.Name, err)
		}
		created++
	}
	return created, skipped, nil
}

func productExists(ctx context.Context, uc *usecase.ProductUseCase, name string) (bool, error) {
	q := dto.ProductQuery{Search: name}
	q.Limit = 100
	page, err := uc.Search(ctx, q)
	if err != nil {
		return false, err
	}
	for _, p := range page.Items {
		if strings.EqualFold(p.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

// readProductsCSV lee una planilha Nome;Categoria;Fornecedor;Validade;Quantidade;Valor con cabecera.
// Validade en DD/MM/AAAA o AAAA-MM-DD; Valor admite coma decimal ("1.234,56").
func readProductsCSV(r io.Reader, enc string) ([]dto.CreateProductRequest, error) {
	switch strings.ToLower(enc) {
	case "", dto.EncodingUTF8:
	case dto.EncodingWindows1252, "cp1252":
		r = transform.NewReader(r, charmap.Windows1252.NewDecoder())
	case "iso-8859-1", "latin1":
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	default:
		return nil, fmt.Errorf("codificación no soportada: %s", enc)
	}

	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = 6
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	out := make([]dto.CreateProductRequest, 0, len(records)-1)
	for i, rec := range records[1:] {
		line := i + 2
		expiry, err := parseSheetDate(rec[3])
		if err != nil {
			return nil, fmt.Errorf("línea %d: validade %q inválida", line, rec[3])
		}
		qty, err := strconv.Atoi(strings.TrimSpace(rec[4]))
		if err != nil {
			return nil, fmt.Errorf("línea %d: quantidade %q inválida", line, rec[4])
		}
		value, err := parseSheetValue(rec[5])
		if err != nil {
			return nil, fmt.Errorf("línea %d: valor %q inválido", line, rec[5])
		}
		out = append(out, dto.CreateProductRequest{
			Name:     strings.TrimSpace(rec[0]),
			Category: strings.TrimSpace(rec[1]),
			Supplier: strings.TrimSpace(rec[2]),
			Expiry:   expiry,
			Quantity: &qty,
			Value:    value,
		})
	}
	return out, nil
}

func parseSheetDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("02/01/2006", s); err == nil {
		return t.Format(dto.DateLayout), nil
	}
	t, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		return "", err
	}
	return t.Format(dto.DateLayout), nil
}

func parseSheetValue(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return decimal.NewFromString(s)
}

func isDuplicate(err error) bool {
	return errors.Is(err, domain.ErrDuplicate)
}
