package channels

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/huntdesk/huntdesk/internal/bus"
	"github.com/huntdesk/huntdesk/internal/config"
	"github.com/huntdesk/huntdesk/internal/journal"
	"github.com/huntdesk/huntdesk/internal/notify"
	"github.com/huntdesk/huntdesk/internal/roster"
)

// TelegramChannel long-polls the Telegram Bot API and translates updates
// into bus messages.
type TelegramChannel struct {
	BaseChannel
	config   config.TelegramConfig
	admins   *roster.Roster
	journal  *journal.Journal
	notifier *notify.Notifier
	client   *http.Client
	offset   int64
	running  atomic.Bool
}

// NewTelegramChannel creates a new Telegram channel.
func NewTelegramChannel(cfg config.TelegramConfig, messageBus *bus.MessageBus, admins *roster.Roster, jnl *journal.Journal, notifier *notify.Notifier) *TelegramChannel {
	timeout := time.Duration(cfg.PollTimeout+10) * time.Second
	return &TelegramChannel{
		BaseChannel: BaseChannel{Bus: messageBus},
		config:      cfg,
		admins:      admins,
		journal:     jnl,
		notifier:    notifier,
		client:      &http.Client{Timeout: timeout},
	}
}

func (c *TelegramChannel) Name() string { return "telegram" }

// Start subscribes for outbound commands and begins long-polling.
func (c *TelegramChannel) Start(ctx context.Context) error {
	if strings.TrimSpace(c.config.Token) == "" {
		return fmt.Errorf("telegram: no token configured")
	}

	c.Bus.Subscribe(c.Name(), func(msg *bus.OutboundMessage) {
		err := c.Send(ctx, msg)
		status := journal.DeliverySent
		errText := ""
		if err != nil {
			// Best-effort delivery: log, alert, no retry.
			slog.Error("Telegram send failed", "op", msg.Op, "chat", msg.ChatID, "error", err)
			c.notifier.SendFailed(ctx, string(msg.Op), msg.ChatID, err)
			status = journal.DeliveryFailed
			errText = err.Error()
		}
		if c.journal != nil {
			if jerr := c.journal.RecordDelivery(msg.TraceID, string(msg.Op), msg.ChatID, status, errText); jerr != nil {
				slog.Warn("Journal write failed", "error", jerr)
			}
		}
	})

	// Long polling and webhooks are mutually exclusive on the Bot API.
	if err := c.call(ctx, "deleteWebhook", map[string]any{}); err != nil {
		slog.Warn("deleteWebhook failed", "error", err)
	}

	c.running.Store(true)
	go c.pollLoop(ctx)
	slog.Info("Telegram channel started")
	return nil
}

// Stop halts the poll loop.
func (c *TelegramChannel) Stop() error {
	c.running.Store(false)
	return nil
}

// Send performs one outbound command against the Bot API.
func (c *TelegramChannel) Send(ctx context.Context, msg *bus.OutboundMessage) error {
	switch msg.Op {
	case bus.OpSendText:
		payload := map[string]any{
			"chat_id": msg.ChatID,
			"text":    msg.Text,
		}
		if markup := inlineKeyboard(msg.Controls); markup != nil {
			payload["reply_markup"] = markup
		}
		return c.call(ctx, "sendMessage", payload)
	case bus.OpSendPhoto:
		return c.call(ctx, "sendPhoto", map[string]any{
			"chat_id": msg.ChatID,
			"photo":   msg.FileRef,
		})
	case bus.OpSendDocument:
		return c.call(ctx, "sendDocument", map[string]any{
			"chat_id":  msg.ChatID,
			"document": msg.FileRef,
		})
	case bus.OpEditMessage:
		messageID, err := strconv.ParseInt(msg.MessageRef, 10, 64)
		if err != nil {
			return fmt.Errorf("telegram: bad message ref %q", msg.MessageRef)
		}
		payload := map[string]any{
			"chat_id":    msg.ChatID,
			"message_id": messageID,
			"text":       msg.Text,
		}
		if markup := inlineKeyboard(msg.Controls); markup != nil {
			payload["reply_markup"] = markup
		}
		return c.call(ctx, "editMessageText", payload)
	default:
		return fmt.Errorf("telegram: unknown op %q", msg.Op)
	}
}

func (c *TelegramChannel) pollLoop(ctx context.Context) {
	for c.running.Load() && ctx.Err() == nil {
		updates, err := c.getUpdates(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			slog.Warn("getUpdates failed", "error", err)
			time.Sleep(3 * time.Second)
			continue
		}
		for _, upd := range updates {
			if upd.UpdateID >= c.offset {
				c.offset = upd.UpdateID + 1
			}
			if msg := c.classify(ctx, &upd); msg != nil {
				c.Bus.PublishInbound(msg)
			}
		}
	}
}

// classify translates one Telegram update into a bus message, or nil for
// update kinds this bot does not consume.
func (c *TelegramChannel) classify(ctx context.Context, upd *update) *bus.InboundMessage {
	if cq := upd.CallbackQuery; cq != nil && cq.From != nil {
		// Ack the button press so the client stops its spinner.
		if err := c.call(ctx, "answerCallbackQuery", map[string]any{"callback_query_id": cq.ID}); err != nil {
			slog.Warn("answerCallbackQuery failed", "error", err)
		}

		msg := &bus.InboundMessage{
			Channel:    c.Name(),
			ChatKind:   bus.ChatPrivate,
			ChatID:     cq.From.ID,
			SenderID:   cq.From.ID,
			SenderName: senderName(cq.From),
			IsAdmin:    c.admins.IsAdmin(cq.From.ID),
			Kind:       bus.KindMenu,
			Selection:  cq.Data,
			TraceID:    uuid.NewString(),
		}
		if cq.Message != nil {
			msg.ChatID = cq.Message.Chat.ID
			msg.ChatKind = chatKind(cq.Message.Chat.Type)
			msg.MessageRef = strconv.FormatInt(cq.Message.MessageID, 10)
		}
		return msg
	}

	m := upd.Message
	if m == nil || m.From == nil {
		return nil
	}

	msg := &bus.InboundMessage{
		Channel:    c.Name(),
		ChatKind:   chatKind(m.Chat.Type),
		ChatID:     m.Chat.ID,
		SenderID:   m.From.ID,
		SenderName: senderName(m.From),
		IsAdmin:    c.admins.IsAdmin(m.From.ID),
		TraceID:    uuid.NewString(),
	}

	switch {
	case len(m.Photo) > 0:
		// Telegram lists photo sizes ascending; the last is the largest.
		best := m.Photo[len(m.Photo)-1]
		msg.Kind = bus.KindAttachment
		msg.Attachment = &bus.Attachment{Kind: bus.AttachmentPhoto, FileRef: best.FileID}
	case m.Document != nil:
		msg.Kind = bus.KindAttachment
		msg.Attachment = &bus.Attachment{
			Kind:     bus.AttachmentDocument,
			FileRef:  m.Document.FileID,
			MIMEType: m.Document.MimeType,
		}
	case m.Text != "":
		msg.Kind = bus.KindText
		msg.Text = m.Text
	default:
		return nil
	}
	return msg
}

func (c *TelegramChannel) getUpdates(ctx context.Context) ([]update, error) {
	var updates []update
	err := c.callResult(ctx, "getUpdates", map[string]any{
		"offset":          c.offset,
		"timeout":         c.config.PollTimeout,
		"allowed_updates": []string{"message", "callback_query"},
	}, &updates)
	return updates, err
}

// call invokes a Bot API method, discarding the result payload.
func (c *TelegramChannel) call(ctx context.Context, method string, payload map[string]any) error {
	return c.callResult(ctx, method, payload, nil)
}

func (c *TelegramChannel) callResult(ctx context.Context, method string, payload map[string]any, result any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%s/bot%s/%s", strings.TrimRight(c.config.APIBase, "/"), c.config.Token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var parsed apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("telegram %s: decode response: %w", method, err)
	}
	if !parsed.OK {
		return fmt.Errorf("telegram %s: %s", method, parsed.Description)
	}
	if result != nil {
		if err := json.Unmarshal(parsed.Result, result); err != nil {
			return fmt.Errorf("telegram %s: decode result: %w", method, err)
		}
	}
	return nil
}

func chatKind(t string) bus.ChatKind {
	if t == "private" {
		return bus.ChatPrivate
	}
	return bus.ChatOther
}

func senderName(u *tgUser) string {
	if u.Username != "" {
		return "@" + u.Username
	}
	return u.FirstName
}

func inlineKeyboard(controls [][]bus.Control) map[string]any {
	if len(controls) == 0 {
		return nil
	}
	rows := make([][]map[string]string, 0, len(controls))
	for _, row := range controls {
		buttons := make([]map[string]string, 0, len(row))
		for _, ctl := range row {
			buttons = append(buttons, map[string]string{
				"text":          ctl.Label,
				"callback_data": ctl.Data,
			})
		}
		rows = append(rows, buttons)
	}
	return map[string]any{"inline_keyboard": rows}
}

// Bot API wire shapes, trimmed to the fields this bot reads.

type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	Description string          `json:"description"`
}

type update struct {
	UpdateID      int64          `json:"update_id"`
	Message       *tgMessage     `json:"message"`
	CallbackQuery *callbackQuery `json:"callback_query"`
}

type tgMessage struct {
	MessageID int64       `json:"message_id"`
	From      *tgUser     `json:"from"`
	Chat      tgChat      `json:"chat"`
	Text      string      `json:"text"`
	Photo     []photoSize `json:"photo"`
	Document  *tgDocument `json:"document"`
}

type tgUser struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
}

type tgChat struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

type photoSize struct {
	FileID string `json:"file_id"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type tgDocument struct {
	FileID   string `json:"file_id"`
	MimeType string `json:"mime_type"`
}

type callbackQuery struct {
	ID      string     `json:"id"`
	From    *tgUser    `json:"from"`
	Message *tgMessage `json:"message"`
	Data    string     `json:"data"`
}
