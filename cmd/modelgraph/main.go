// Copyright (c) 2026 Asray Gopa. All rights reserved.
// SPDX-License-Identifier: MIT

// Command modelgraph extracts requirements archives, block-diagram model
// trees, and generated-code archives into canonical graph documents, and
// tracks version lineage across runs.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/asrayg/senior-design/pkg/types"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "modelgraph",
		Short: "Engineering model extraction and version tracking",
		Long:  "modelgraph converts Cameo requirements archives, Simulink model trees, and generated-code archives into one canonical graph format, with content-addressed version history.",
	}

	// Global flags.
	rootCmd.PersistentFlags().String("output", "output", "Directory for generated JSON documents")
	rootCmd.PersistentFlags().String("store-dir", "output", "Directory holding version store files")
	rootCmd.PersistentFlags().Int("workers", 0, "Parallel archive workers (0 = one per CPU)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	// Bind flags to viper.
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("store-dir", rootCmd.PersistentFlags().Lookup("store-dir"))
	viper.BindPFlag("workers", rootCmd.PersistentFlags().Lookup("workers"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Env vars: MODELGRAPH_OUTPUT, MODELGRAPH_STORE_DIR, etc.
	viper.SetEnvPrefix("MODELGRAPH")
	viper.AutomaticEnv()

	// Config file.
	viper.SetConfigName(".modelgraph")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.ReadInConfig() // Ignore error; config file is optional.

	// Add commands.
	rootCmd.AddCommand(newExtractCmd())
	rootCmd.AddCommand(newSimulinkCmd())
	rootCmd.AddCommand(newCodegenCmd())
	rootCmd.AddCommand(newTrackCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newHierarchyCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newVersionCmd creates the "version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print modelgraph version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("modelgraph %s\n", version)
		},
	}
}

// newLogger builds the process logger from the verbose flag.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// writeJSON writes v as indented JSON, creating parent directories.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// loadGraphDoc reads a canonical graph document from disk.
func loadGraphDoc(path string) (*types.GraphDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc := types.NewGraphDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}
