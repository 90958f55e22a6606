// Package attachecmder
package attachecmder

import (
	"github.com/spf13/cobra"

	servecmder "github.com/inletlabs/attache/cmd/attache/serve"
	toolscmder "github.com/inletlabs/attache/cmd/attache/tools"
	versioncmder "github.com/inletlabs/attache/cmd/attache/version"
)

const attacheLongDesc string = `Attache is a tool-calling chat agent backed by Azure OpenAI.

Run services using:
  attache serve        Run the chat API server
  attache tools        List the available tools
  attache version      Print version information`

const attacheShortDesc string = "Attache - Tool-Calling Chat Agent"

func NewAttacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attache",
		Short: attacheShortDesc,
		Long:  attacheLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")

	// Add subcommands
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(toolscmder.NewToolsCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
