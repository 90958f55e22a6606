package builtin

import (
	"context"
	"fmt"
	"time"
)

// DateTool reports the current date and time.
type DateTool struct {
	now func() time.Time
}

func NewDateTool() *DateTool {
	return &DateTool{now: time.Now}
}

// NewDateToolAt pins the clock, for tests.
func NewDateToolAt(now func() time.Time) *DateTool {
	return &DateTool{now: now}
}

func (t *DateTool) Name() string { return "get_current_date" }

func (t *DateTool) Description() string { return "Get current date and time" }

func (t *DateTool) Parameters() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	}
}

func (t *DateTool) Execute(_ context.Context, _ map[string]any) (string, error) {
	// Weekday, full month, 12-hour clock: "Monday, January 02, 2006 at 03:04 PM".
	return fmt.Sprintf("Current date and time: %s", t.now().Format("Monday, January 02, 2006 at 03:04 PM")), nil
}
