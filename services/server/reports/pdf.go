// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package reports

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/AleutianAI/MoneyGuy/services/server/datatypes"
	"github.com/AleutianAI/MoneyGuy/services/server/engine"
)

// renderPDF lays out the report with the core Helvetica font. The
// translator maps the payload's accented Spanish text into the cp1252
// range that font covers.
func renderPDF(p datatypes.ReportPayload) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(engine.ReportTypeName(p.Metadata.ReportType)), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr(engine.ReportTypeName(p.Metadata.ReportType)), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	period := fmt.Sprintf("%s - %s | %s",
		p.Metadata.Period.Start.Format("02/01/2006"),
		p.Metadata.Period.End.Format("02/01/2006"),
		p.Metadata.UserName)
	pdf.CellFormat(0, 8, tr(period), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, tr("Métricas Financieras"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	metricRow(pdf, tr, "Ingresos Totales", euro(p.Metrics.Financial.TotalIncome))
	metricRow(pdf, tr, "Gastos Totales", euro(p.Metrics.Financial.TotalExpenses))
	metricRow(pdf, tr, "Flujo de Caja Neto", euro(p.Metrics.Financial.NetCashFlow))
	metricRow(pdf, tr, "Tasa de Ahorro", fmt.Sprintf("%.2f%%", p.Metrics.Financial.SavingsRate))
	metricRow(pdf, tr, "Transacciones", fmt.Sprintf("%d", p.Metrics.Financial.TransactionCount))
	pdf.Ln(4)

	if len(p.Metrics.Budgets) > 0 {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(0, 8, tr("Presupuestos"), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		for _, b := range p.Metrics.Budgets {
			line := fmt.Sprintf("%s: %s de %s (%.1f%%)",
				b.Category, euro(b.Spent), euro(b.Budgeted), b.Utilization)
			pdf.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
		}
		pdf.Ln(4)
	}

	if len(p.Metrics.Goals) > 0 {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(0, 8, tr("Metas"), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		for _, g := range p.Metrics.Goals {
			state := "Activa"
			if g.IsCompleted {
				state = "Completada"
			}
			line := fmt.Sprintf("%s: %s de %s (%.1f%%, %s)",
				g.Title, euro(g.Current), euro(g.Target), g.Progress, state)
			pdf.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
		}
		pdf.Ln(4)
	}

	if len(p.Analysis) > 0 {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(0, 8, tr("Análisis"), "", 1, "L", false, 0, "")
		for _, ins := range p.Analysis {
			pdf.SetFont("Helvetica", "B", 11)
			pdf.CellFormat(0, 6, tr(ins.Title), "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr(ins.Description), "", "L", false)
			pdf.Ln(1)
		}
		pdf.Ln(2)
	}

	if len(p.Recommendations) > 0 {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(0, 8, tr("Recomendaciones"), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, rec := range p.Recommendations {
			pdf.MultiCell(0, 5, tr("- "+rec), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func metricRow(pdf *fpdf.Fpdf, tr func(string) string, label, value string) {
	pdf.CellFormat(90, 6, tr(label), "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(value), "", 1, "L", false, 0, "")
}

func euro(v float64) string {
	return fmt.Sprintf("%.2f€", v)
}
