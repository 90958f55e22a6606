// Package toolscmder provides the tools command for listing available tools.
package toolscmder

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inletlabs/attache/pkg/tools/builtin"
)

const toolsLongDesc string = `List the tools the agent can call, in the order they are offered to the model.`

const toolsShortDesc string = "List the available tools"

func NewToolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: toolsShortDesc,
		Long:  toolsLongDesc,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry := builtin.NewRegistry(zap.NewNop())
			for _, spec := range registry.Specs() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s\n", spec.Name, spec.Description)
			}
			return nil
		},
	}
}
