package config

const (
	defaultListen     = ":8000"
	defaultAPIVersion = "2024-02-15-preview"
	defaultHistoryCap = 20
	defaultEventTopic = "attache.replies"
)

// The fixed development origins the frontend dev server uses.
var defaultCORSOrigins = []string{
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Azure: AzureConfig{
			APIVersion: defaultAPIVersion,
		},
		Server: ServerConfig{
			Listen:      defaultListen,
			CORSOrigins: defaultCORSOrigins,
		},
		History: HistoryConfig{
			Cap: defaultHistoryCap,
		},
		Events: EventsConfig{
			Topic: defaultEventTopic,
		},
	}
}
