// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers_test

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/MoneyGuy/services/server/datatypes"
)

func reportBody(format string) gin.H {
	now := time.Now().UTC()
	return gin.H{
		"type":   "monthly_summary",
		"format": format,
		"start":  now.AddDate(0, 0, -30).Format("2006-01-02"),
		"end":    now.Format("2006-01-02"),
	}
}

func TestCreateReport_JSON(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.signup(t, "ana@example.com")
	seedTxn(t, ts, token, "2000", "INCOME", "Nómina", "Sueldo")
	seedTxn(t, ts, token, "500", "EXPENSE", "Comida", "Mercado")

	w := ts.do(t, "POST", "/api/reports", token, reportBody("JSON"))
	require.Equal(t, 201, w.Code, w.Body.String())

	var resp struct {
		Report  datatypes.Report        `json:"report"`
		Payload datatypes.ReportPayload `json:"payload"`
	}
	data(t, w, &resp)
	assert.Equal(t, datatypes.ReportMonthlySummary, resp.Report.Type)
	assert.Equal(t, datatypes.FormatJSON, resp.Report.Format)
	assert.Equal(t, "Ana García", resp.Payload.Metadata.UserName)
	assert.Equal(t, float64(2000), resp.Payload.Metrics.Financial.TotalIncome)
	assert.Equal(t, float64(500), resp.Payload.Metrics.Financial.TotalExpenses)
}

func TestCreateReport_RejectsUnknownType(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.signup(t, "ana@example.com")

	body := reportBody("JSON")
	body["type"] = "tax_evasion"
	w := ts.do(t, "POST", "/api/reports", token, body)
	assert.Equal(t, 400, w.Code)
}

func TestDownloadReport_RoundTrip(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.signup(t, "ana@example.com")
	seedTxn(t, ts, token, "100", "EXPENSE", "Comida", "Mercado")

	w := ts.do(t, "POST", "/api/reports", token, reportBody("EXCEL"))
	require.Equal(t, 201, w.Code, w.Body.String())

	var resp struct {
		Report datatypes.Report `json:"report"`
	}
	data(t, w, &resp)

	dl := ts.do(t, "GET", "/api/reports/"+resp.Report.ID.String()+"/download", token, nil)
	require.Equal(t, 200, dl.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		dl.Header().Get("Content-Type"))
	assert.Contains(t, dl.Header().Get("Content-Disposition"), ".xlsx")
	assert.NotEmpty(t, dl.Body.Bytes())
}

func TestDownloadReport_ForeignUserIsNotFound(t *testing.T) {
	ts := newTestServer(t)
	anaToken, _ := ts.signup(t, "ana@example.com")
	benToken, _ := ts.signup(t, "ben@example.com")

	w := ts.do(t, "POST", "/api/reports", anaToken, reportBody("PDF"))
	require.Equal(t, 201, w.Code)
	var resp struct {
		Report datatypes.Report `json:"report"`
	}
	data(t, w, &resp)

	dl := ts.do(t, "GET", "/api/reports/"+resp.Report.ID.String()+"/download", benToken, nil)
	assert.Equal(t, 404, dl.Code)
}

func TestListReports_History(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.signup(t, "ana@example.com")

	for _, format := range []string{"JSON", "PDF"} {
		w := ts.do(t, "POST", "/api/reports", token, reportBody(format))
		require.Equal(t, 201, w.Code)
	}

	w := ts.do(t, "GET", "/api/reports", token, nil)
	require.Equal(t, 200, w.Code)

	var history []datatypes.Report
	data(t, w, &history)
	require.Len(t, history, 2)
}

func TestReminders_CreateListComplete(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.signup(t, "ana@example.com")

	w := ts.do(t, "POST", "/api/reminders", token, gin.H{
		"title":    "Revisar presupuesto",
		"remindAt": time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02"),
	})
	require.Equal(t, 201, w.Code, w.Body.String())
	var reminder datatypes.Reminder
	data(t, w, &reminder)

	w = ts.do(t, "GET", "/api/reminders", token, nil)
	require.Equal(t, 200, w.Code)
	var pending []datatypes.Reminder
	data(t, w, &pending)
	require.Len(t, pending, 1)

	w = ts.do(t, "POST", "/api/reminders/"+reminder.ID.String()+"/complete", token, nil)
	require.Equal(t, 200, w.Code)

	w = ts.do(t, "GET", "/api/reminders", token, nil)
	data(t, w, &pending)
	assert.Empty(t, pending)
}
