// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newRunCmd(e *engine) *cobra.Command {
	return &cobra.Command{
		Use:   "run <plan>",
		Short: "Execute the steps of a yaml or json plan, one response per line",
		Long:  "Execute the steps of a yaml or json plan. Use - to read the plan from stdin.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := readPlan(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			plan, err := unmarshalPlan(b)
			if err != nil {
				return err
			}
			gen, err := plan.Genesis()
			if err != nil {
				return err
			}
			if err := e.open(cmd.Context(), gen); err != nil {
				return err
			}
			return newRunner(e.vm, e.log, cmd.OutOrStdout()).Run(cmd.Context(), plan)
		},
	}
}

func readPlan(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan: %w", err)
	}
	return b, nil
}
