// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TripDeck Contributors

package main

import (
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the TripDeck CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tripdeck",
		Short: "TripDeck - travel planner auth backend",
		Long: `TripDeck serves the authentication API for the TripDeck travel
planner: user registration, login, and bearer-token protected routes.`,
	}

	// Global flag for config file path
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	// Add subcommands
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())

	return cmd
}
