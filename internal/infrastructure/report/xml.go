package report

import (
	"context"
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"github.com/jhoicas/estoque-api/internal/application/reports"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

var _ reports.Renderer = XMLRenderer{}

// XMLRenderer documento <relatorio> con un <movimentacao> por registro y los totales por tipo.
type XMLRenderer struct{}

func (XMLRenderer) Extension() string                        { return "xml" }
func (XMLRenderer) ContentType(reports.MonthlyReport) string { return "application/xml; charset=utf-8" }

// Render construye el documento con etree.
func (XMLRenderer) Render(_ context.Context, r reports.MonthlyReport) ([]byte, error) {
	loc := r.Location
	if loc == nil {
		loc = r.GeneratedAt.Location()
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("relatorio")
	root.CreateAttr("ano", strconv.Itoa(r.Year))
	root.CreateAttr("mes", fmt.Sprintf("%02d", int(r.Month)))
	root.CreateAttr("geradoEm", r.GeneratedAt.In(loc).Format("2006-01-02T15:04:05-07:00"))

	movs := root.CreateElement("movimentacoes")
	movs.CreateAttr("total", strconv.Itoa(len(r.Entries)))
	for _, e := range r.Entries {
		m := movs.CreateElement("movimentacao")
		m.CreateAttr("id", strconv.FormatInt(e.ID, 10))
		m.CreateAttr("tipo", e.Type)
		m.CreateElement("dataHora").SetText(e.CreatedAt.In(loc).Format(DateTimeLayout))
		p := m.CreateElement("produto")
		p.CreateAttr("id", strconv.FormatInt(e.ProductID, 10))
		p.SetText(e.ProductName)
		m.CreateElement("tipoDescricao").SetText(entity.HistoryTypeLabel(e.Type))
		m.CreateElement("quantidade").SetText(strconv.Itoa(e.Quantity))
		if e.PreviousQuantity != nil {
			m.CreateElement("quantidadeAnterior").SetText(strconv.Itoa(*e.PreviousQuantity))
		}
		if e.NewQuantity != nil {
			m.CreateElement("quantidadeNova").SetText(strconv.Itoa(*e.NewQuantity))
		}
		if e.Observation != "" {
			m.CreateElement("observacao").SetText(e.Observation)
		}
	}

	t := root.CreateElement("totais")
	addTotal(t, entity.HistoryTypeEntry, r.Totals.EntryCount, r.Totals.EntryUnits)
	addTotal(t, entity.HistoryTypeExit, r.Totals.ExitCount, r.Totals.ExitUnits)
	addTotal(t, entity.HistoryTypeAdjustment, r.Totals.AdjustmentCount, r.Totals.AdjustmentUnits)

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xml: serializar relatório: %w", err)
	}
	return out, nil
}

func addTotal(parent *etree.Element, historyType string, count, units int) {
	el := parent.CreateElement("total")
	el.CreateAttr("tipo", historyType)
	el.CreateAttr("movimentacoes", strconv.Itoa(count))
	el.CreateAttr("quantidade", strconv.Itoa(units))
}
