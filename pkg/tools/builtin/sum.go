package builtin

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// SumTool adds up a list of numbers.
type SumTool struct{}

func NewSumTool() *SumTool { return &SumTool{} }

func (t *SumTool) Name() string { return "calculate_sum" }

func (t *SumTool) Description() string { return "Sum a list of numbers" }

func (t *SumTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"numbers": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "number"},
				"description": "A list of numbers to sum up",
			},
		},
		"required": []string{"numbers"},
	}
}

func (t *SumTool) Execute(_ context.Context, args map[string]any) (string, error) {
	numbers, err := floatSliceArg(args, "numbers")
	if err != nil {
		return fmt.Sprintf("Error calculating sum: %v", err), nil
	}

	var total float64
	parts := make([]string, 0, len(numbers))
	for _, n := range numbers {
		total += n
		parts = append(parts, formatNumber(n))
	}

	return fmt.Sprintf("The sum of [%s] is %s", strings.Join(parts, ", "), formatNumber(total)), nil
}

// formatNumber renders a float without trailing zeros (3 not 3.000000).
func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
