package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/huntdesk/huntdesk/internal/config"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		printHeader("🏷️ huntdesk Version")
		fmt.Printf("Version: %s\n", version)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show bot status and recent activity",
	Run: func(cmd *cobra.Command, args []string) {
		printHeader("📊 huntdesk Status")
		fmt.Printf("Version: %s\n", version)

		cfg, err := config.Load()
		if err != nil {
			fmt.Printf("Config:  ✗ %v\n", err)
			return
		}
		if cfg.Telegram.Token != "" {
			fmt.Println("Token:   ✓ Found")
		} else {
			fmt.Println("Token:   ✗ Not set (HUNTDESK_TELEGRAM_TOKEN)")
		}
		fmt.Printf("Admins:  %d configured\n", len(cfg.Admins.IDs))

		if !cfg.Journal.Enabled {
			fmt.Println("Journal: ✗ Disabled")
			return
		}
		jnl, err := openJournal(cfg)
		if err != nil {
			fmt.Printf("Journal: ✗ %v\n", err)
			return
		}
		defer jnl.Close()

		events, err := jnl.RecentEvents(10)
		if err != nil {
			fmt.Printf("Journal: ✗ %v\n", err)
			return
		}
		fmt.Printf("\nRecent events (%d):\n", len(events))
		for _, e := range events {
			fmt.Printf("  %s  %s  sender=%d  %s\n",
				e.CreatedAt.Format("2006-01-02 15:04:05"),
				color.CyanString("%-16s", e.Rule),
				e.SenderID,
				e.Detail,
			)
		}

		deliveries, err := jnl.RecentDeliveries(10)
		if err != nil {
			return
		}
		fmt.Printf("\nRecent deliveries (%d):\n", len(deliveries))
		for _, d := range deliveries {
			status := color.GreenString(d.Status)
			if d.Status == "failed" {
				status = color.RedString("%s (%s)", d.Status, d.ErrorText)
			}
			fmt.Printf("  %s  %-14s  chat=%d  %s\n",
				d.CreatedAt.Format("2006-01-02 15:04:05"),
				d.Op,
				d.ChatID,
				status,
			)
		}
	},
}
