package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/huntdesk/huntdesk/internal/bus"
	"github.com/huntdesk/huntdesk/internal/channels"
	"github.com/huntdesk/huntdesk/internal/config"
	"github.com/huntdesk/huntdesk/internal/content"
	"github.com/huntdesk/huntdesk/internal/export"
	"github.com/huntdesk/huntdesk/internal/forward"
	"github.com/huntdesk/huntdesk/internal/journal"
	"github.com/huntdesk/huntdesk/internal/notify"
	"github.com/huntdesk/huntdesk/internal/roster"
	"github.com/huntdesk/huntdesk/internal/router"
	"github.com/huntdesk/huntdesk/internal/session"
	"github.com/huntdesk/huntdesk/internal/ticket"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the bot (Telegram long polling)",
	Run:   runBot,
}

func runBot(cmd *cobra.Command, args []string) {
	printHeader("🧩 huntdesk")
	fmt.Println("Starting huntdesk...")

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Config error: %v\n", err)
		os.Exit(1)
	}
	if len(cfg.Admins.IDs) == 0 {
		fmt.Println("⚠️ Admin roster is empty: talk-to-admin requests will be turned away.")
	}

	// 2. Journal
	var jnl *journal.Journal
	if cfg.Journal.Enabled {
		jnl, err = openJournal(cfg)
		if err != nil {
			fmt.Printf("⚠️ Journal unavailable: %v\n", err)
		} else {
			defer jnl.Close()
		}
	}

	// 3. Static content
	codes, err := content.LoadTable(cfg.Content.CodesFile)
	if err != nil {
		fmt.Printf("Code table error: %v\n", err)
		os.Exit(1)
	}
	questions, err := content.LoadQuestions(cfg.Content.QuestionsFile)
	if err != nil {
		fmt.Printf("Question list error: %v\n", err)
		os.Exit(1)
	}

	// 4. Bus and routing state
	msgBus := bus.NewMessageBus()
	admins := roster.New(cfg.Admins.IDs, cfg.Admins.NameMap())
	publisher := export.NewPublisher(cfg.Export)
	defer publisher.Close()
	notifier := notify.New(cfg.Notify)

	rt := router.New(router.Options{
		Out:       msgBus,
		Sessions:  session.NewStore(),
		Tickets:   ticket.NewRegistry(admins),
		Admins:    admins,
		Gate:      forward.NewGate(),
		Codes:     codes,
		Questions: questions,
		PageSize:  cfg.Content.PageSize,
		Journal:   jnl,
		Export:    publisher,
		Notify:    notifier,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 5. Telegram channel
	tg := channels.NewTelegramChannel(cfg.Telegram, msgBus, admins, jnl, notifier)
	if err := tg.Start(ctx); err != nil {
		fmt.Printf("Telegram error: %v\n", err)
		os.Exit(1)
	}
	defer tg.Stop()

	go msgBus.DispatchOutbound(ctx)
	go rt.Run(ctx, msgBus)

	fmt.Println("✓ Bot started. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	fmt.Println("\nShutting down...")
	cancel()
	msgBus.Stop()
}

func openJournal(cfg *config.Config) (*journal.Journal, error) {
	path, err := config.JournalPath(cfg)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return journal.Open(path)
}
