// Package report serializa el relatório mensal de movimentações en CSV y XML.
package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/reports"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// DateTimeLayout formato pt-BR de la columna Data/Hora.
const DateTimeLayout = "02/01/2006 15:04:05"

var csvHeader = []string{"ID", "Data/Hora", "Produto", "Tipo", "Quantidade", "Observação"}

var _ reports.Renderer = CSVRenderer{}

// CSVRenderer separador ';', texto siempre entre comillas, una fila por movimiento.
type CSVRenderer struct{}

func (CSVRenderer) Extension() string { return "csv" }

func (CSVRenderer) ContentType(r reports.MonthlyReport) string {
	if r.Encoding == dto.EncodingWindows1252 {
		return "text/csv; charset=windows-1252"
	}
	return "text/csv; charset=utf-8"
}

// Render escribe el CSV; con Encoding windows-1252 los caracteres sin equivalente se sustituyen.
func (CSVRenderer) Render(_ context.Context, r reports.MonthlyReport) ([]byte, error) {
	var buf bytes.Buffer
	var w io.Writer = &buf
	var tw *transform.Writer
	if r.Encoding == dto.EncodingWindows1252 {
		tw = transform.NewWriter(&buf, encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()))
		w = tw
	}
	if err := WriteCSV(w, r); err != nil {
		return nil, err
	}
	if tw != nil {
		if err := tw.Close(); err != nil {
			return nil, fmt.Errorf("csv: codificar windows-1252: %w", err)
		}
	}
	return buf.Bytes(), nil
}

// WriteCSV escribe el relatório en UTF-8.
// encoding/csv solo entrecomilla cuando hace falta; aquí el texto va siempre entre comillas.
func WriteCSV(w io.Writer, r reports.MonthlyReport) error {
	loc := r.Location
	if loc == nil {
		loc = r.GeneratedAt.Location()
	}
	var sb strings.Builder
	sb.WriteString(strings.Join(csvHeader, ";"))
	sb.WriteByte('\n')
	for _, e := range r.Entries {
		fields := []string{
			strconv.FormatInt(e.ID, 10),
			quote(e.CreatedAt.In(loc).Format(DateTimeLayout)),
			quote(e.ProductName),
			quote(entity.HistoryTypeLabel(e.Type)),
			strconv.Itoa(e.Quantity),
			quote(e.Observation),
		}
		sb.WriteString(strings.Join(fields, ";"))
		sb.WriteByte('\n')
	}
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("csv: escribir: %w", err)
	}
	return nil
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
