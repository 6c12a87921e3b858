package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/usecase"
	"github.com/jhoicas/estoque-api/internal/infrastructure/memory"
)

const sheet = "Nome;Categoria;Fornecedor;Validade;Quantidade;Valor\n" +
	"Paçoca Rolha;Doce;Santa Helena;31/12/2030;10;R$ 1.234,50\n" +
	"Guaraná 2L;Bebida;Antarctica;2030-06-01;4;7.90\n"

func TestReadProductsCSV_Windows1252(t *testing.T) {
	raw, err := charmap.Windows1252.NewEncoder().String(sheet)
	require.NoError(t, err)

	rows, err := readProductsCSV(bytes.NewBufferString(raw), dto.EncodingWindows1252)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Paçoca Rolha", rows[0].Name)
	assert.Equal(t, "2030-12-31", rows[0].Expiry)
	assert.Equal(t, 10, *rows[0].Quantity)
	assert.Equal(t, "1234.5", rows[0].Value.String())

	assert.Equal(t, "Guaraná 2L", rows[1].Name)
	assert.Equal(t, "2030-06-01", rows[1].Expiry)
	assert.Equal(t, "7.9", rows[1].Value.String())
}

func TestReadProductsCSV_Errores(t *testing.T) {
	_, err := readProductsCSV(strings.NewReader(sheet), "ebcdic")
	assert.Error(t, err)

	bad := "Nome;Categoria;Fornecedor;Validade;Quantidade;Valor\nX;Doce;Y;32/13/2030;1;1,00\n"
	_, err = readProductsCSV(strings.NewReader(bad), "")
	assert.ErrorContains(t, err, "línea 2")

	short := "Nome;Categoria\nX;Doce\n"
	_, err = readProductsCSV(strings.NewReader(short), "")
	assert.Error(t, err)
}

func TestCreateProducts_OmiteExistentes(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(store.Products(), store, nil, nil, time.UTC)
	ctx := context.Background()
	rows := sampleProducts(time.Now())

	created, skipped, err := createProducts(ctx, uc, rows)
	require.NoError(t, err)
	assert.Equal(t, len(rows), created)
	assert.Zero(t, skipped)

	created, skipped, err = createProducts(ctx, uc, rows)
	require.NoError(t, err)
	assert.Zero(t, created)
	assert.Equal(t, len(rows), skipped)

	hist, err := store.History().GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, hist, len(rows), "una entrada inicial por producto creado")
	assert.Equal(t, seedObservation, hist[0].Observation)
}
