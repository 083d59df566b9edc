// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package reports

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/AleutianAI/MoneyGuy/services/server/datatypes"
	"github.com/AleutianAI/MoneyGuy/services/server/engine"
)

// renderExcel builds a workbook with a summary sheet plus one sheet per
// metric family. Budget and goal sheets are omitted when the user has
// none, the category sheet always exists.
func renderExcel(p datatypes.ReportPayload) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	summary := [][]any{
		{"Reporte Financiero - " + engine.ReportTypeName(p.Metadata.ReportType)},
		{"Generado:", p.Metadata.GeneratedAt.Format("02/01/2006")},
		{"Usuario:", p.Metadata.UserName},
		{},
		{"Métricas Financieras"},
		{"Ingresos Totales", p.Metrics.Financial.TotalIncome},
		{"Gastos Totales", p.Metrics.Financial.TotalExpenses},
		{"Flujo de Caja Neto", p.Metrics.Financial.NetCashFlow},
		{"Tasa de Ahorro (%)", fmt.Sprintf("%.2f", p.Metrics.Financial.SavingsRate)},
		{"Número de Transacciones", p.Metrics.Financial.TransactionCount},
	}
	if err := f.SetSheetName("Sheet1", "Resumen"); err != nil {
		return nil, fmt.Errorf("rename summary sheet: %w", err)
	}
	if err := writeSheet(f, "Resumen", summary); err != nil {
		return nil, err
	}

	if len(p.Metrics.Budgets) > 0 {
		rows := [][]any{{"Categoría", "Presupuestado", "Gastado", "Restante", "Utilización (%)"}}
		for _, b := range p.Metrics.Budgets {
			rows = append(rows, []any{b.Category, b.Budgeted, b.Spent, b.Remaining,
				fmt.Sprintf("%.2f", b.Utilization)})
		}
		if err := addSheet(f, "Presupuestos", rows); err != nil {
			return nil, err
		}
	}

	if len(p.Metrics.Goals) > 0 {
		rows := [][]any{{"Meta", "Objetivo", "Actual", "Progreso (%)", "Estado"}}
		for _, g := range p.Metrics.Goals {
			state := "Activa"
			if g.IsCompleted {
				state = "Completada"
			}
			rows = append(rows, []any{g.Title, g.Target, g.Current,
				fmt.Sprintf("%.2f", g.Progress), state})
		}
		if err := addSheet(f, "Metas", rows); err != nil {
			return nil, err
		}
	}

	catRows := [][]any{{"Categoría", "Monto"}}
	for _, c := range p.Metrics.Categories {
		catRows = append(catRows, []any{c.Category, c.Amount})
	}
	if err := addSheet(f, "Categorías", catRows); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func addSheet(f *excelize.File, name string, rows [][]any) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("add sheet %s: %w", name, err)
	}
	return writeSheet(f, name, rows)
}

func writeSheet(f *excelize.File, name string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("sheet %s row %d: %w", name, i+1, err)
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("sheet %s row %d: %w", name, i+1, err)
		}
	}
	return nil
}
