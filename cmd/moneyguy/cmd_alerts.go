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
	"time"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/MoneyGuy/services/server/engine"
)

var alertsCmd = &cobra.Command{
	Use:   "alerts [email]",
	Short: "Regenerate smart alerts for one account",
	Long: `Loads the account's financial snapshot, runs the alert rules against
it, and stores the results. The server does this on every dashboard and
alert read; this command is for inspecting rule output without a client.`,
	Args: cobra.ExactArgs(1),
	Run:  runAlerts,
}

func init() {
	rootCmd.AddCommand(alertsCmd)
}

func runAlerts(cmd *cobra.Command, args []string) {
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

	snap, err := st.LoadSnapshot(ctx, user.ID, time.Now().UTC(), 0)
	if err != nil {
		log.Fatalf("Error loading snapshot: %v", err)
	}

	generated := engine.NewAlertGenerator(cfg.AlertPolicy()).Generate(user.ID, snap)
	if err := st.UpsertAlerts(ctx, generated); err != nil {
		log.Fatalf("Error storing alerts: %v", err)
	}

	active, err := st.ActiveAlerts(ctx, user.ID)
	if err != nil {
		log.Fatalf("Error listing alerts: %v", err)
	}
	fmt.Printf("Generated %d alert(s), %d active:\n", len(generated), len(active))
	for _, a := range active {
		fmt.Printf("  [%s/%s] %s\n", a.Type, a.Priority, a.Message)
	}
}
