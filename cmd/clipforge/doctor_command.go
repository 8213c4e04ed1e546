package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"clipforge/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check external binaries and filesystem readiness",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			depRows := make([][]string, 0, 2)
			healthy := true
			for _, dep := range preflight.CheckSystemDeps(cmd.Context(), cfg) {
				detail := dep.Detail
				if detail == "" {
					detail = dep.Command
				}
				depRows = append(depRows, []string{dep.Name, yesNo(dep.Available), detail})
				if !dep.Available && !dep.Optional {
					healthy = false
				}
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Dependency", "Available", "Detail"},
				depRows,
			))

			checkRows := make([][]string, 0, 8)
			for _, result := range preflight.RunAll(cmd.Context(), cfg) {
				checkRows = append(checkRows, []string{result.Name, yesNo(result.Passed), result.Detail})
				if !result.Passed {
					healthy = false
				}
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Check", "Passed", "Detail"},
				checkRows,
			))

			if !healthy {
				return fmt.Errorf("environment is not ready")
			}
			fmt.Fprintln(out, "Environment ready")
			return nil
		},
	}
}
