// Package config provides configuration types and loading for huntdesk.
package config

import "strconv"

// Config is the root configuration struct.
// Top-level groups: Telegram, Admins, Content, Journal, Export, Notify.
type Config struct {
	Telegram TelegramConfig `json:"telegram"`
	Admins   AdminsConfig   `json:"admins"`
	Content  ContentConfig  `json:"content"`
	Journal  JournalConfig  `json:"journal"`
	Export   ExportConfig   `json:"export"`
	Notify   NotifyConfig   `json:"notify"`
}

// TelegramConfig configures the Telegram transport.
type TelegramConfig struct {
	Token       string `json:"token" envconfig:"TOKEN"`
	BotUsername string `json:"botUsername" envconfig:"BOT_USERNAME"`
	PollTimeout int    `json:"pollTimeout" envconfig:"POLL_TIMEOUT"`
	APIBase     string `json:"apiBase,omitempty" envconfig:"API_BASE"`
}

// AdminsConfig defines the ordered admin roster and optional display names.
// Names is keyed by the stringified admin ID (JSON object keys are strings).
type AdminsConfig struct {
	IDs   []int64           `json:"ids" envconfig:"IDS"`
	Names map[string]string `json:"names"`
}

// NameMap converts the string-keyed display name map to an int64-keyed one,
// dropping entries whose key does not parse.
func (a AdminsConfig) NameMap() map[int64]string {
	names := make(map[int64]string, len(a.Names))
	for key, name := range a.Names {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			continue
		}
		names[id] = name
	}
	return names
}

// ContentConfig locates the static content tables.
type ContentConfig struct {
	CodesFile     string `json:"codesFile" envconfig:"CODES_FILE"`
	QuestionsFile string `json:"questionsFile" envconfig:"QUESTIONS_FILE"`
	PageSize      int    `json:"pageSize" envconfig:"PAGE_SIZE"`
}

// JournalConfig configures the SQLite event journal.
type JournalConfig struct {
	Enabled bool   `json:"enabled" envconfig:"ENABLED"`
	Path    string `json:"path" envconfig:"PATH"`
}

// ExportConfig configures the optional Kafka event mirror.
type ExportConfig struct {
	Enabled bool   `json:"enabled" envconfig:"ENABLED"`
	Brokers string `json:"brokers" envconfig:"BROKERS"`
	Topic   string `json:"topic" envconfig:"TOPIC"`
}

// NotifyConfig configures the optional Slack ops notifier.
type NotifyConfig struct {
	Enabled      bool   `json:"enabled" envconfig:"ENABLED"`
	SlackToken   string `json:"slackToken" envconfig:"SLACK_TOKEN"`
	SlackChannel string `json:"slackChannel" envconfig:"SLACK_CHANNEL"`
}

// DefaultConfig returns the baseline configuration.
func DefaultConfig() *Config {
	return &Config{
		Telegram: TelegramConfig{
			PollTimeout: 30,
			APIBase:     "https://api.telegram.org",
		},
		Content: ContentConfig{
			PageSize: 3,
		},
		Journal: JournalConfig{
			Enabled: true,
		},
		Export: ExportConfig{
			Topic: "huntdesk.events",
		},
	}
}
