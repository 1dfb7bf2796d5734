package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/huntdesk/huntdesk/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved configuration",
	Run: func(cmd *cobra.Command, args []string) {
		printHeader("🛠️ huntdesk Config")

		path, err := config.ConfigPath()
		if err == nil {
			fmt.Printf("Path: %s\n\n", path)
		}

		cfg, err := config.Load()
		if err != nil {
			fmt.Printf("Config error: %v\n", err)
			os.Exit(1)
		}

		// Don't print credentials.
		redacted := *cfg
		redacted.Telegram.Token = redact(cfg.Telegram.Token)
		redacted.Notify.SlackToken = redact(cfg.Notify.SlackToken)

		out, err := json.MarshalIndent(&redacted, "", "  ")
		if err != nil {
			fmt.Printf("Encode error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
	},
}

func redact(secret string) string {
	if secret == "" {
		return ""
	}
	return "********"
}
