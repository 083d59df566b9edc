// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package reports

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/AleutianAI/MoneyGuy/pkg/logging"
	"github.com/AleutianAI/MoneyGuy/services/server/datatypes"
)

// =============================================================================
// Test Helpers
// =============================================================================

func testPayload() datatypes.ReportPayload {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	return datatypes.ReportPayload{
		Metadata: datatypes.ReportMetadata{
			ReportType:  datatypes.ReportMonthlySummary,
			GeneratedAt: now,
			Period: datatypes.ReportPeriod{
				Start: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
				End:   now,
			},
			UserName: "Ana García",
		},
		Summary: "Mes positivo con ahorro del 25%.",
		Metrics: datatypes.ReportMetrics{
			Financial: datatypes.FinancialMetrics{
				TotalIncome:      2000,
				TotalExpenses:    1500,
				NetCashFlow:      500,
				SavingsRate:      25,
				TransactionCount: 12,
			},
			Budgets: []datatypes.BudgetMetric{
				{Category: "Comida", Budgeted: 400, Spent: 380, Remaining: 20, Utilization: 95},
			},
			Goals: []datatypes.GoalMetric{
				{Title: "Vacaciones", Target: 1000, Current: 1000, Progress: 100, IsCompleted: true},
			},
			Categories: []datatypes.CategoryTotal{
				{Category: "Comida", Amount: 380},
				{Category: "Transporte", Amount: 120},
			},
		},
		Analysis: []datatypes.Insight{
			{Type: "success", Title: "Buen ritmo de ahorro", Description: "Tu tasa de ahorro supera el 20%."},
		},
		Recommendations: []string{"Mantén tu presupuesto de Comida bajo control."},
	}
}

func quietLogger(t *testing.T) *logging.Logger {
	t.Helper()
	return logging.New(logging.Config{
		Level:   logging.LevelError,
		LogDir:  t.TempDir(),
		Service: "reports-test",
		Quiet:   true,
	})
}

// =============================================================================
// Renderer Tests
// =============================================================================

func TestRender_JSONRoundTrips(t *testing.T) {
	data, err := Render(testPayload(), datatypes.FormatJSON)
	require.NoError(t, err)

	var decoded datatypes.ReportPayload
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Ana García", decoded.Metadata.UserName)
	assert.Equal(t, float64(500), decoded.Metrics.Financial.NetCashFlow)
	assert.Len(t, decoded.Metrics.Categories, 2)
}

func TestRender_ExcelHasExpectedSheets(t *testing.T) {
	data, err := Render(testPayload(), datatypes.FormatExcel)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Resumen", "Presupuestos", "Metas", "Categorías"}, f.GetSheetList())

	title, err := f.GetCellValue("Resumen", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Reporte Financiero - Resumen Mensual", title)

	cat, err := f.GetCellValue("Presupuestos", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Comida", cat)

	state, err := f.GetCellValue("Metas", "E2")
	require.NoError(t, err)
	assert.Equal(t, "Completada", state)
}

func TestRender_ExcelOmitsEmptySections(t *testing.T) {
	p := testPayload()
	p.Metrics.Budgets = nil
	p.Metrics.Goals = nil

	data, err := Render(p, datatypes.FormatExcel)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Resumen", "Categorías"}, f.GetSheetList())
}

func TestRender_PDFProducesDocument(t *testing.T) {
	data, err := Render(testPayload(), datatypes.FormatPDF)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestRender_UnsupportedFormat(t *testing.T) {
	_, err := Render(testPayload(), datatypes.ReportFormat("CSV"))
	assert.ErrorContains(t, err, "unsupported report format")
}

func TestMimeTypeAndFileName(t *testing.T) {
	assert.Equal(t, "application/pdf", MimeType(datatypes.FormatPDF))
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		MimeType(datatypes.FormatExcel))
	assert.Equal(t, "application/json", MimeType(datatypes.FormatJSON))

	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	name := FileName(datatypes.ReportMonthlySummary, datatypes.FormatExcel, now)
	assert.Contains(t, name, "monthly_summary_")
	assert.Contains(t, name, ".xlsx")
}

// =============================================================================
// Artifact Store Tests
// =============================================================================

func TestArtifacts_PutGetRoundTrip(t *testing.T) {
	store, err := OpenArtifacts("", quietLogger(t))
	require.NoError(t, err)
	defer store.Close()

	id := uuid.New()
	require.NoError(t, store.Put(id, []byte("blob-v1")))
	require.NoError(t, store.Put(id, []byte("blob-v2")))

	got, err := store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, []byte("blob-v2"), got)
}

func TestArtifacts_MissingReport(t *testing.T) {
	store, err := OpenArtifacts("", quietLogger(t))
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Get(uuid.New())
	assert.ErrorIs(t, err, ErrArtifactNotFound)
}

func TestArtifacts_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	log := quietLogger(t)

	store, err := OpenArtifacts(dir, log)
	require.NoError(t, err)
	id := uuid.New()
	require.NoError(t, store.Put(id, []byte("durable")))
	require.NoError(t, store.Close())

	reopened, err := OpenArtifacts(dir, log)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(id)
	require.NoError(t, err)
	assert.Equal(t, []byte("durable"), got)
}
