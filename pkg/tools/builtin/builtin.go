package builtin

import (
	"go.uber.org/zap"

	"github.com/inletlabs/attache/pkg/tools"
)

// NewRegistry returns a registry holding the full builtin tool set, in the
// order the system prompt lists them.
func NewRegistry(logger *zap.Logger) *tools.Registry {
	return tools.NewRegistry(
		NewSumTool(),
		NewCurrencyTool(),
		NewDateTool(),
		NewWeatherTool(),
		NewSearchTool(logger),
	)
}
