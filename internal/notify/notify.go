// Package notify posts operational alerts to Slack: an empty admin roster
// turning users away, and outbound send failures.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/slack-go/slack"

	"github.com/huntdesk/huntdesk/internal/config"
)

// Notifier posts ops alerts to a Slack channel.
type Notifier struct {
	api     *slack.Client
	channel string
}

// New creates a notifier from config. Returns nil when disabled or not fully
// configured.
func New(cfg config.NotifyConfig) *Notifier {
	if !cfg.Enabled || strings.TrimSpace(cfg.SlackToken) == "" || strings.TrimSpace(cfg.SlackChannel) == "" {
		return nil
	}
	return &Notifier{
		api:     slack.New(cfg.SlackToken),
		channel: cfg.SlackChannel,
	}
}

// NoAdminAvailable reports that a user's request could not be assigned.
func (n *Notifier) NoAdminAvailable(ctx context.Context, userID int64) {
	n.post(ctx, fmt.Sprintf(":rotating_light: No admin available for user %d (roster is empty).", userID))
}

// SendFailed reports a failed outbound delivery.
func (n *Notifier) SendFailed(ctx context.Context, op string, chatID int64, err error) {
	n.post(ctx, fmt.Sprintf(":warning: Outbound %s to chat %d failed: %v", op, chatID, err))
}

// post delivers one alert. Safe to call on a nil notifier.
func (n *Notifier) post(ctx context.Context, text string) {
	if n == nil {
		return
	}
	_, _, err := n.api.PostMessageContext(ctx, n.channel, slack.MsgOptionText(text, false))
	if err != nil {
		slog.Warn("Slack notify failed", "error", err)
	}
}
