// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// The moneyguy command is the admin CLI for the MoneyGuy server. It
// operates directly on the database, so it runs on the same host (or
// against the same DSN) as the server itself.
package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/MoneyGuy/services/server/config"
)

var (
	configPath string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "moneyguy",
	Short: "Admin CLI for the MoneyGuy personal finance server",
	Long: `Manage a MoneyGuy deployment from the command line: migrate the
database schema, seed demo data, regenerate smart alerts, and render
reports offline.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error executing command: %v", err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "moneyguy.yaml",
		"path to the server config file")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		loaded, err := config.Load(configPath)
		if err != nil {
			log.Fatalf("Error loading config %s: %v", configPath, err)
		}
		cfg = loaded
	}
}
