package router

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/huntdesk/huntdesk/internal/bus"
	"github.com/huntdesk/huntdesk/internal/content"
	"github.com/huntdesk/huntdesk/internal/session"
)

// ---------------------------------------------------------------------------
// Admin ticket replies and attachment forwarding
// ---------------------------------------------------------------------------

func (r *Router) matchAdminReply(msg *bus.InboundMessage) bool {
	return msg.Kind == bus.KindText && msg.IsAdmin && adminReplyRe.MatchString(msg.Text)
}

// handleAdminReply relays "#<digits> <text>" from an admin into the ticket's
// user chat and arms the attachment gate for a follow-on photo or document.
func (r *Router) handleAdminReply(ctx context.Context, msg *bus.InboundMessage) {
	parts := adminReplyRe.FindStringSubmatch(msg.Text)
	code, reply := parts[1], parts[2]

	t, err := r.tickets.LookupByAdminCode(msg.SenderID, code)
	if err != nil {
		r.sendText(msg, msg.ChatID, invalidTicketText)
		return
	}

	// Arm before publishing so the state is settled when the send suspends.
	r.gate.Arm(msg.SenderID, t.UserID)

	adminName := r.admins.Name(msg.SenderID)
	r.sendText(msg, t.UserID, fmt.Sprintf("From Admin %s\n\n%s", adminName, reply))
	r.sendText(msg, msg.ChatID, sentToUserText)
}

func (r *Router) matchAdminArm(msg *bus.InboundMessage) bool {
	return msg.Kind == bus.KindText && msg.IsAdmin && adminArmRe.MatchString(msg.Text)
}

// handleAdminArm handles a bare "#<digits>" from an admin: no text is
// relayed, only the attachment gate is armed.
func (r *Router) handleAdminArm(ctx context.Context, msg *bus.InboundMessage) {
	code := adminArmRe.FindStringSubmatch(msg.Text)[1]

	t, err := r.tickets.LookupByAdminCode(msg.SenderID, code)
	if err != nil {
		r.sendText(msg, msg.ChatID, invalidTicketText)
		return
	}

	r.gate.Arm(msg.SenderID, t.UserID)
	r.sendText(msg, msg.ChatID, fmt.Sprintf("📎 Ready to forward your next attachment to #%s.", t.Code))
}

func (r *Router) matchAdminAttachment(msg *bus.InboundMessage) bool {
	return msg.Kind == bus.KindAttachment && msg.IsAdmin && msg.Attachment != nil
}

// handleAdminAttachment forwards an admin's attachment to the armed target.
// With no outstanding target the attachment is silently dropped.
func (r *Router) handleAdminAttachment(ctx context.Context, msg *bus.InboundMessage) {
	userID, ok := r.gate.Consume(msg.SenderID)
	if !ok {
		return
	}

	op := bus.OpSendPhoto
	if msg.Attachment.Kind == bus.AttachmentDocument {
		op = bus.OpSendDocument
	}
	r.send(msg, &bus.OutboundMessage{Op: op, ChatID: userID, FileRef: msg.Attachment.FileRef})
	r.sendText(msg, msg.ChatID, sentToUserText)
}

// ---------------------------------------------------------------------------
// Content codes
// ---------------------------------------------------------------------------

func (r *Router) matchContentCode(msg *bus.InboundMessage) bool {
	return msg.Kind == bus.KindText && contentCodeRe.MatchString(msg.Text)
}

// handleContentCode resolves an alphabetic "#..." code from anyone, in any
// state. Deterministic: the same unknown code always gets the same reply.
func (r *Router) handleContentCode(ctx context.Context, msg *bus.InboundMessage) {
	entry, ok := r.codes.Resolve(msg.Text)
	if !ok {
		r.sendText(msg, msg.ChatID, unknownCodeText)
		return
	}
	r.replyWithEntry(msg, entry)
}

func (r *Router) replyWithEntry(msg *bus.InboundMessage, entry content.CodeEntry) {
	r.sendText(msg, msg.ChatID, entry.Text)
	if entry.Image != "" {
		r.send(msg, &bus.OutboundMessage{Op: bus.OpSendPhoto, ChatID: msg.ChatID, FileRef: entry.Image})
	}
}

// ---------------------------------------------------------------------------
// Menu and state-machine flows
// ---------------------------------------------------------------------------

func (r *Router) matchStart(msg *bus.InboundMessage) bool {
	return msg.Kind == bus.KindText && strings.HasPrefix(strings.TrimSpace(msg.Text), "/start")
}

func (r *Router) handleStart(ctx context.Context, msg *bus.InboundMessage) {
	r.send(msg, &bus.OutboundMessage{
		Op:     bus.OpSendText,
		ChatID: msg.ChatID,
		Text:   welcomeText,
		Controls: [][]bus.Control{
			{{Label: "Enter Code", Data: bus.SelectEnterCode}},
			{{Label: "Talk to admin", Data: bus.SelectTalkAdmin}},
			{{Label: "Questions", Data: bus.SelectQuestions}},
		},
	})
}

func (r *Router) handleMenuEnterCode(ctx context.Context, msg *bus.InboundMessage) {
	r.sessions.Set(msg.SenderID, session.StateEnteringCode)
	r.sendText(msg, msg.ChatID, enterCodePrompt)
}

func (r *Router) matchCodeEntry(msg *bus.InboundMessage) bool {
	return msg.Kind == bus.KindText && r.sessions.Get(msg.SenderID) == session.StateEnteringCode
}

// handleCodeEntry is the one-shot code entry: resolve, reply, and always
// clear back to idle, hit or miss.
func (r *Router) handleCodeEntry(ctx context.Context, msg *bus.InboundMessage) {
	r.sessions.Clear(msg.SenderID)

	entry, ok := r.codes.Resolve(msg.Text)
	if !ok {
		r.sendText(msg, msg.ChatID, invalidCodeText)
		return
	}
	r.replyWithEntry(msg, entry)
}

func (r *Router) handleMenuTalkAdmin(ctx context.Context, msg *bus.InboundMessage) {
	r.sessions.Set(msg.SenderID, session.StateTalkingToAdmin)
	r.sendText(msg, msg.ChatID, talkAdminPrompt)
}

func (r *Router) matchTalkToAdmin(msg *bus.InboundMessage) bool {
	return msg.Kind == bus.KindText && r.sessions.Get(msg.SenderID) == session.StateTalkingToAdmin
}

// handleTalkToAdmin relays a user message to their assigned admin. First
// contact creates the ticket; follow-ups route to the same admin no matter
// where the round-robin cursor has moved since. With no admin available the
// state is left untouched so resending retries.
func (r *Router) handleTalkToAdmin(ctx context.Context, msg *bus.InboundMessage) {
	t, existed, err := r.tickets.GetOrCreate(msg.SenderID)
	if err != nil {
		slog.Warn("No admin available", "user", msg.SenderID)
		r.notify.NoAdminAvailable(ctx, msg.SenderID)
		r.sendText(msg, msg.ChatID, noAdminsText)
		return
	}

	header := fmt.Sprintf("🆕 New request #%s from %s:", t.Code, displayName(msg))
	if existed {
		r.tickets.Reaffirm(msg.SenderID)
		header = fmt.Sprintf("🔁 Follow-up #%s from %s:", t.Code, displayName(msg))
	}
	// One-shot: the user re-selects "talk to admin" for each further message.
	r.sessions.Clear(msg.SenderID)

	r.sendText(msg, t.AdminID, header+"\n"+msg.Text)
	r.sendText(msg, msg.ChatID, fmt.Sprintf("📨 Sent to admin as #%s.", t.Code))
	r.sendText(msg, msg.ChatID, restartHintText)
}

// ---------------------------------------------------------------------------
// Question browser (stateless pagination)
// ---------------------------------------------------------------------------

func (r *Router) handleMenuQuestions(ctx context.Context, msg *bus.InboundMessage) {
	text, controls := content.RenderQuestionPage(r.questions, 0, r.pageSize)
	r.send(msg, &bus.OutboundMessage{
		Op:       bus.OpSendText,
		ChatID:   msg.ChatID,
		Text:     text,
		Controls: controls,
	})
}

func (r *Router) handlePageNav(ctx context.Context, msg *bus.InboundMessage) {
	page, _ := bus.ParsePageSelection(msg.Selection)
	text, controls := content.RenderQuestionPage(r.questions, page, r.pageSize)
	r.send(msg, &bus.OutboundMessage{
		Op:         bus.OpEditMessage,
		ChatID:     msg.ChatID,
		MessageRef: msg.MessageRef,
		Text:       text,
		Controls:   controls,
	})
}

func (r *Router) handleAnswer(ctx context.Context, msg *bus.InboundMessage) {
	key, _ := bus.ParseAnswerSelection(msg.Selection)
	answer, ok := content.AnswerFor(r.questions, key)
	if !ok {
		return
	}
	r.sendText(msg, msg.ChatID, fmt.Sprintf("%s. %s", key, answer))
}

// displayName prefers the transport-supplied name, falling back to the
// numeric sender ID.
func displayName(msg *bus.InboundMessage) string {
	if msg.SenderName != "" {
		return msg.SenderName
	}
	return strconv.FormatInt(msg.SenderID, 10)
}
