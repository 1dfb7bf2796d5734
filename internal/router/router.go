// Package router implements the inbound-message dispatch core: a priority-
// ordered rule list over classified events, driving the session state machine,
// ticket registry and attachment gate.
package router

import (
	"context"
	"log/slog"
	"regexp"

	"github.com/huntdesk/huntdesk/internal/bus"
	"github.com/huntdesk/huntdesk/internal/content"
	"github.com/huntdesk/huntdesk/internal/export"
	"github.com/huntdesk/huntdesk/internal/forward"
	"github.com/huntdesk/huntdesk/internal/journal"
	"github.com/huntdesk/huntdesk/internal/notify"
	"github.com/huntdesk/huntdesk/internal/roster"
	"github.com/huntdesk/huntdesk/internal/session"
	"github.com/huntdesk/huntdesk/internal/ticket"
)

// Publisher is the outbound side of the message bus.
type Publisher interface {
	PublishOutbound(msg *bus.OutboundMessage)
}

// Ticket reply patterns. Numeric codes address tickets; alphabetic codes are
// content lookups.
var (
	adminReplyRe  = regexp.MustCompile(`^#(\d+)\s+([\s\S]+)`)
	adminArmRe    = regexp.MustCompile(`^#(\d+)\s*$`)
	contentCodeRe = regexp.MustCompile(`^#[A-Za-z]\w*`)
)

// Options carries the router's collaborators. Journal, Export and Notify may
// be nil.
type Options struct {
	Out       Publisher
	Sessions  *session.Store
	Tickets   *ticket.Registry
	Admins    *roster.Roster
	Gate      *forward.Gate
	Codes     *content.Table
	Questions []content.QA
	PageSize  int
	Journal   *journal.Journal
	Export    *export.Publisher
	Notify    *notify.Notifier
}

// Router classifies inbound events and applies at most one state transition
// plus zero or more outbound sends per event.
type Router struct {
	out       Publisher
	sessions  *session.Store
	tickets   *ticket.Registry
	admins    *roster.Roster
	gate      *forward.Gate
	codes     *content.Table
	questions []content.QA
	pageSize  int
	journal   *journal.Journal
	export    *export.Publisher
	notify    *notify.Notifier
	rules     []rule
}

// rule pairs a match predicate with its handler. Rules are evaluated in
// order; the first match wins.
type rule struct {
	name   string
	match  func(msg *bus.InboundMessage) bool
	handle func(ctx context.Context, msg *bus.InboundMessage)
}

// New creates a router. Exclusive ownership of the session store, ticket
// registry and attachment gate passes to the router: nothing else may mutate
// them once dispatch starts.
func New(opts Options) *Router {
	r := &Router{
		out:       opts.Out,
		sessions:  opts.Sessions,
		tickets:   opts.Tickets,
		admins:    opts.Admins,
		gate:      opts.Gate,
		codes:     opts.Codes,
		questions: opts.Questions,
		pageSize:  opts.PageSize,
		journal:   opts.Journal,
		export:    opts.Export,
		notify:    opts.Notify,
	}
	r.rules = []rule{
		{"admin_reply", r.matchAdminReply, r.handleAdminReply},
		{"admin_arm", r.matchAdminArm, r.handleAdminArm},
		{"admin_attachment", r.matchAdminAttachment, r.handleAdminAttachment},
		{"content_code", r.matchContentCode, r.handleContentCode},
		{"start", r.matchStart, r.handleStart},
		{"menu_enter_code", matchSelection(bus.SelectEnterCode), r.handleMenuEnterCode},
		{"code_entry", r.matchCodeEntry, r.handleCodeEntry},
		{"menu_talk_admin", matchSelection(bus.SelectTalkAdmin), r.handleMenuTalkAdmin},
		{"admin_message", r.matchTalkToAdmin, r.handleTalkToAdmin},
		{"menu_questions", matchSelection(bus.SelectQuestions), r.handleMenuQuestions},
		{"page_nav", matchPage, r.handlePageNav},
		{"answer", matchAnswer, r.handleAnswer},
	}
	return r
}

// Run consumes inbound events until the context is cancelled.
func (r *Router) Run(ctx context.Context, messageBus *bus.MessageBus) error {
	slog.Info("Router started", "admins", r.admins.Size(), "codes", r.codes.Size())

	for {
		msg, err := messageBus.ConsumeInbound(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil // Context cancelled, normal shutdown
			}
			slog.Error("Failed to consume message", "error", err)
			continue
		}
		r.Handle(ctx, msg)
	}
}

// Handle classifies one inbound event and dispatches it. All state mutations
// happen synchronously inside the matched handler before any outbound publish,
// so a later event never observes a partial update.
func (r *Router) Handle(ctx context.Context, msg *bus.InboundMessage) {
	// Group/broadcast chats are an external concern.
	if msg.ChatKind != bus.ChatPrivate {
		return
	}

	for _, rl := range r.rules {
		if !rl.match(msg) {
			continue
		}
		rl.handle(ctx, msg)
		r.record(ctx, msg, rl.name)
		return
	}
	// Unmatched events are a no-op.
}

func (r *Router) record(ctx context.Context, msg *bus.InboundMessage, rule string) {
	detail := msg.Text
	if msg.Kind == bus.KindMenu {
		detail = msg.Selection
	}
	if r.journal != nil {
		if err := r.journal.RecordEvent(msg.TraceID, msg.Channel, msg.SenderID, rule, detail); err != nil {
			slog.Warn("Journal write failed", "error", err)
		}
	}
	r.export.Publish(ctx, export.Record{
		TraceID:   msg.TraceID,
		Channel:   msg.Channel,
		SenderID:  msg.SenderID,
		Rule:      rule,
		Detail:    detail,
		Timestamp: msg.Timestamp,
	})
}

// send publishes an outbound command inheriting channel and trace from the
// inbound event.
func (r *Router) send(msg *bus.InboundMessage, out *bus.OutboundMessage) {
	out.Channel = msg.Channel
	out.TraceID = msg.TraceID
	r.out.PublishOutbound(out)
}

func (r *Router) sendText(msg *bus.InboundMessage, chatID int64, text string) {
	r.send(msg, &bus.OutboundMessage{Op: bus.OpSendText, ChatID: chatID, Text: text})
}

func matchSelection(sel string) func(*bus.InboundMessage) bool {
	return func(msg *bus.InboundMessage) bool {
		return msg.Kind == bus.KindMenu && msg.Selection == sel
	}
}

func matchPage(msg *bus.InboundMessage) bool {
	if msg.Kind != bus.KindMenu {
		return false
	}
	_, ok := bus.ParsePageSelection(msg.Selection)
	return ok
}

func matchAnswer(msg *bus.InboundMessage) bool {
	if msg.Kind != bus.KindMenu {
		return false
	}
	_, ok := bus.ParseAnswerSelection(msg.Selection)
	return ok
}
