package builtin

import (
	"context"
	"fmt"
	"strings"
)

type currencyPair struct {
	from, to string
}

// Fixed demo exchange rates; reverse pairs are reciprocals.
var exchangeRates = map[currencyPair]float64{
	{"USD", "INR"}: 83.0,
	{"EUR", "INR"}: 90.0,
	{"USD", "EUR"}: 0.92,
	{"INR", "USD"}: 1 / 83.0,
	{"INR", "EUR"}: 1 / 90.0,
	{"EUR", "USD"}: 1 / 0.92,
}

// CurrencyTool converts between USD, EUR, and INR at fixed rates.
type CurrencyTool struct{}

func NewCurrencyTool() *CurrencyTool { return &CurrencyTool{} }

func (t *CurrencyTool) Name() string { return "convert_currency" }

func (t *CurrencyTool) Description() string { return "Convert between USD, EUR, and INR" }

func (t *CurrencyTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"amount": map[string]any{
				"type":        "number",
				"description": "The amount to convert",
			},
			"from_currency": map[string]any{
				"type":        "string",
				"description": "Source currency code (USD, EUR, INR)",
			},
			"to_currency": map[string]any{
				"type":        "string",
				"description": "Target currency code (USD, EUR, INR)",
			},
		},
		"required": []string{"amount", "from_currency", "to_currency"},
	}
}

func (t *CurrencyTool) Execute(_ context.Context, args map[string]any) (string, error) {
	amount, err := floatArg(args, "amount")
	if err != nil {
		return fmt.Sprintf("Error converting currency: %v", err), nil
	}
	from, err := stringArg(args, "from_currency")
	if err != nil {
		return fmt.Sprintf("Error converting currency: %v", err), nil
	}
	to, err := stringArg(args, "to_currency")
	if err != nil {
		return fmt.Sprintf("Error converting currency: %v", err), nil
	}

	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))

	if from == to {
		return fmt.Sprintf("%s %s = %s %s", formatNumber(amount), from, formatNumber(amount), to), nil
	}

	rate, ok := exchangeRates[currencyPair{from, to}]
	if !ok {
		return fmt.Sprintf("Conversion from %s to %s is not supported. Supported: USD, EUR, INR", from, to), nil
	}

	return fmt.Sprintf("%s %s = %.2f %s", formatNumber(amount), from, amount*rate, to), nil
}
