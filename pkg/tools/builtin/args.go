// Package builtin contains the deterministic utility tools exposed to the
// model: list summation, fixed-rate currency conversion, the current date,
// mock weather, and a web search.
package builtin

import "fmt"

// floatArg coerces a JSON-decoded argument to float64.
func floatArg(args map[string]any, key string) (float64, error) {
	raw, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("missing argument %q", key)
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("argument %q is not a number", key)
	}
}

// stringArg coerces a JSON-decoded argument to string.
func stringArg(args map[string]any, key string) (string, error) {
	raw, ok := args[key]
	if !ok {
		return "", fmt.Errorf("missing argument %q", key)
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("argument %q is not a string", key)
	}
	return s, nil
}

// floatSliceArg coerces a JSON-decoded argument to a []float64.
func floatSliceArg(args map[string]any, key string) ([]float64, error) {
	raw, ok := args[key]
	if !ok {
		return nil, fmt.Errorf("missing argument %q", key)
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("argument %q is not a list", key)
	}
	out := make([]float64, 0, len(items))
	for i, item := range items {
		n, ok := item.(float64)
		if !ok {
			return nil, fmt.Errorf("element %d of %q is not a number", i, key)
		}
		out = append(out, n)
	}
	return out, nil
}
