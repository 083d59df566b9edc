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

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/MoneyGuy/pkg/logging"
	"github.com/AleutianAI/MoneyGuy/services/server/auth"
	"github.com/AleutianAI/MoneyGuy/services/server/datatypes"
	"github.com/AleutianAI/MoneyGuy/services/server/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long: `Opens the configured database and runs the schema migration. The
server migrates on startup as well; this command exists for controlled
rollouts where the schema change lands before the new binary.`,
	Run: runMigrate,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the database with a demo account",
	Long: `Creates the demo@moneyguy.app account (password "demo1234") with two
months of transactions, a monthly food budget, and a vacation savings
goal. Safe to run only against empty or throwaway databases.`,
	Run: runSeed,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

// openStore connects using the loaded config. Callers own the Close.
func openStore() (*store.Store, error) {
	return store.Open(cfg.Database, logging.Default())
}

func runMigrate(cmd *cobra.Command, args []string) {
	st, err := openStore()
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	defer st.Close()
	fmt.Println("✅ Schema is up to date.")
}

func runSeed(cmd *cobra.Command, args []string) {
	st, err := openStore()
	if err != nil {
		log.Fatalf("Error opening store: %v", err)
	}
	defer st.Close()

	user, err := seedDemoData(context.Background(), st, time.Now().UTC())
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	fmt.Printf("✅ Seeded demo account %s (password: demo1234)\n", user.Email)
}

// seedDemoData builds a small but realistic account: income and grocery
// spend across the current and previous month, a food budget sized so
// the spend trips the budget alerts, and a partially funded goal.
func seedDemoData(ctx context.Context, st *store.Store, now time.Time) (*datatypes.User, error) {
	hash, err := auth.HashPassword("demo1234")
	if err != nil {
		return nil, err
	}
	user := &datatypes.User{
		Email:        "demo@moneyguy.app",
		FirstName:    "Ana",
		LastName:     "García",
		PasswordHash: hash,
	}
	if err := st.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	txns := []struct {
		amount   float64
		desc     string
		category string
		txType   datatypes.TransactionType
		date     time.Time
	}{
		{2400, "Nómina", "Salario", datatypes.TransactionIncome, monthStart.AddDate(0, -1, 0)},
		{2400, "Nómina", "Salario", datatypes.TransactionIncome, monthStart},
		{310.40, "Supermercado", "Comida", datatypes.TransactionExpense, monthStart.AddDate(0, -1, 4)},
		{84.90, "Restaurante", "Comida", datatypes.TransactionExpense, monthStart.AddDate(0, 0, 2)},
		{295.75, "Supermercado", "Comida", datatypes.TransactionExpense, monthStart.AddDate(0, 0, 5)},
		{720, "Alquiler", "Vivienda", datatypes.TransactionExpense, monthStart.AddDate(0, 0, 1)},
		{49.99, "Internet", "Servicios", datatypes.TransactionExpense, monthStart.AddDate(0, 0, 3)},
	}
	for _, t := range txns {
		if t.date.After(now) {
			continue
		}
		txn := &datatypes.Transaction{
			UserID:      user.ID,
			Amount:      decimal.NewFromFloat(t.amount),
			Description: t.desc,
			Type:        t.txType,
			Date:        t.date,
			CategoryID:  st.ResolveCategory(ctx, user.ID, t.category, t.txType),
		}
		if err := st.CreateTransaction(ctx, txn); err != nil {
			return nil, err
		}
	}

	budget := &datatypes.Budget{
		UserID:     user.ID,
		CategoryID: st.ResolveCategory(ctx, user.ID, "Comida", datatypes.TransactionExpense),
		Name:       "Comida Budget",
		Amount:     decimal.NewFromInt(400),
		Period:     datatypes.PeriodMonthly,
		StartDate:  monthStart,
		EndDate:    monthStart.AddDate(0, 1, -1),
	}
	if err := st.CreateBudget(ctx, budget); err != nil {
		return nil, err
	}

	deadline := monthStart.AddDate(0, 6, 0)
	goal := &datatypes.Goal{
		UserID:        user.ID,
		Title:         "Vacaciones",
		Description:   "Una semana en la costa",
		TargetAmount:  decimal.NewFromInt(1200),
		CurrentAmount: decimal.Zero,
		TargetDate:    &deadline,
	}
	if err := st.CreateGoal(ctx, goal); err != nil {
		return nil, err
	}
	if _, err := st.AddGoalProgress(ctx, user.ID, goal.ID, &datatypes.GoalProgress{
		Amount: decimal.NewFromInt(300),
	}); err != nil {
		return nil, err
	}

	return user, nil
}
