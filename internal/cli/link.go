package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"

	"github.com/huntdesk/huntdesk/internal/config"
)

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Write a QR code image for the bot's t.me link",
	Run: func(cmd *cobra.Command, args []string) {
		printHeader("🔗 huntdesk Link")

		cfg, err := config.Load()
		if err != nil {
			fmt.Printf("Config error: %v\n", err)
			os.Exit(1)
		}
		if cfg.Telegram.BotUsername == "" {
			fmt.Println("No bot username configured (telegram.botUsername).")
			os.Exit(1)
		}

		url := "https://t.me/" + cfg.Telegram.BotUsername
		home, _ := os.UserHomeDir()
		qrPath := filepath.Join(home, config.ConfigDir, "bot-qr.png")
		if err := os.MkdirAll(filepath.Dir(qrPath), 0o755); err != nil {
			fmt.Printf("QR error: %v\n", err)
			os.Exit(1)
		}
		if err := qrcode.WriteFile(url, qrcode.Medium, 512, qrPath); err != nil {
			fmt.Printf("QR error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Link: %s\nQR:   %s\n", url, qrPath)
	},
}
