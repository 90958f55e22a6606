package eventstream

import (
	"time"

	"github.com/inletlabs/attache/pkg/llm"
)

const (
	// SchemaVersionV1 is the first version of the event payload schema.
	SchemaVersionV1 = 1

	// EventTypeReplyProcessed is emitted after a chat message is processed.
	EventTypeReplyProcessed = "attache.reply.processed"
)

// ReplyProcessedEvent is a transport-neutral event payload for a processed
// chat reply.
type ReplyProcessedEvent struct {
	SchemaVersion int                `json:"schema_version"`
	EventType     string             `json:"event_type"`
	EventID       string             `json:"event_id"`
	EmittedAt     time.Time          `json:"emitted_at"`
	RequestID     string             `json:"request_id"`
	Message       string             `json:"message"`
	Reply         llm.ProcessedReply `json:"reply"`
	DurationMs    int64              `json:"duration_ms"`
}
