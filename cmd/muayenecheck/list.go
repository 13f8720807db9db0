package main

import (
	"github.com/spf13/cobra"

	"github.com/Kochuseyin65/muayane/internal/harness"
	"github.com/Kochuseyin65/muayane/internal/output"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List pipeline steps without executing them",
		RunE: func(cmd *cobra.Command, args []string) error {
			return output.NewPretty(cmd.OutOrStdout()).RenderList(harness.StepNames())
		},
	}
}
