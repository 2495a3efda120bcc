// Copyright (c) 2026 Asray Gopa. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/asrayg/senior-design/pkg/pipeline"
)

// newCodegenCmd creates the "codegen" command.
func newCodegenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "codegen <archive.slxc>",
		Short: "Map generated C code back to model blocks",
		Long:  "Codegen extracts C sources from a code generation archive and maps traceability comments back to the model block paths they were generated from.",
		Args:  cobra.ExactArgs(1),
		RunE:  runCodegen,
	}
}

func runCodegen(cmd *cobra.Command, args []string) error {
	p, err := pipeline.New(pipeline.Config{Logger: newLogger()})
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	doc, err := p.MapGeneratedCode(ctx, args[0])
	if err != nil {
		return err
	}

	mappingPath := filepath.Join(viper.GetString("output"), "code_mappings.json")
	if err := writeJSON(mappingPath, doc); err != nil {
		return err
	}

	fmt.Printf("Mapped %d block references across %d C files into %s\n",
		len(doc.Mappings), len(doc.CFiles), mappingPath)
	return nil
}
