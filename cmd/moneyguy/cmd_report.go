// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/MoneyGuy/services/server/datatypes"
	"github.com/AleutianAI/MoneyGuy/services/server/engine"
	"github.com/AleutianAI/MoneyGuy/services/server/reports"
)

var (
	reportType   string
	reportFormat string
	reportOut    string

	reportCmd = &cobra.Command{
		Use:   "report [email]",
		Short: "Render a report for one account to a local file",
		Long: `Builds the report payload over the current month and writes the
rendered artifact next to you instead of into the server's artifact
store. Useful for checking report output without an API client.`,
		Args: cobra.ExactArgs(1),
		Run:  runReport,
	}
)

func init() {
	reportCmd.Flags().StringVar(&reportType, "type", string(datatypes.ReportMonthlySummary),
		"report type (monthly_summary, budget_analysis, goal_progress, spending_analysis, executive_summary)")
	reportCmd.Flags().StringVar(&reportFormat, "format", string(datatypes.FormatPDF),
		"output format (PDF, EXCEL, JSON)")
	reportCmd.Flags().StringVar(&reportOut, "out", "",
		"output path (defaults to the generated file name)")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) {
	st, err := openStore()
	if err != nil {
		log.Fatalf("Error opening store: %v", err)
	}
	defer st.Close()

	ctx := context.Background()
	user, err := st.UserByEmail(ctx, args[0])
	if err != nil {
		log.Fatalf("Error looking up %s: %v", args[0], err)
	}

	now := time.Now().UTC()
	snap, err := st.LoadSnapshot(ctx, user.ID, now, 0)
	if err != nil {
		log.Fatalf("Error loading snapshot: %v", err)
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	payload := engine.BuildReport(snap, engine.ReportConfig{
		Type: datatypes.ReportType(reportType),
		Period: datatypes.ReportPeriod{
			Start: monthStart,
			End:   monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond),
		},
		UserName: strings.TrimSpace(user.FirstName + " " + user.LastName),
	})

	format := datatypes.ReportFormat(strings.ToUpper(reportFormat))
	data, err := reports.Render(payload, format)
	if err != nil {
		log.Fatalf("Error rendering report: %v", err)
	}

	out := reportOut
	if out == "" {
		out = reports.FileName(datatypes.ReportType(reportType), format, now)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		log.Fatalf("Error writing %s: %v", out, err)
	}
	fmt.Printf("✅ Wrote %s (%d bytes)\n", out, len(data))
}
