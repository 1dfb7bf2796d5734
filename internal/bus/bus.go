// Package bus provides the async message bus between transport channels and
// the routing core.
package bus

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ChatKind classifies the chat an inbound message arrived in.
type ChatKind string

const (
	ChatPrivate ChatKind = "private"
	ChatOther   ChatKind = "other"
)

// MessageKind classifies the payload of an inbound message.
type MessageKind string

const (
	KindText       MessageKind = "text"
	KindAttachment MessageKind = "attachment"
	KindMenu       MessageKind = "menu"
)

// AttachmentKind distinguishes photos from documents.
type AttachmentKind string

const (
	AttachmentPhoto    AttachmentKind = "photo"
	AttachmentDocument AttachmentKind = "document"
)

// Menu selection values carried on KindMenu messages. Page and answer
// selections carry an argument after the colon.
const (
	SelectEnterCode = "enter_code"
	SelectTalkAdmin = "talk_admin"
	SelectQuestions = "questions"

	pagePrefix   = "page:"
	answerPrefix = "answer:"
)

// PageSelection builds the selection value for a page navigation control.
func PageSelection(page int) string { return pagePrefix + strconv.Itoa(page) }

// AnswerSelection builds the selection value for a question answer control.
func AnswerSelection(key string) string { return answerPrefix + key }

// ParsePageSelection extracts the page index from a page selection value.
func ParsePageSelection(sel string) (int, bool) {
	if !strings.HasPrefix(sel, pagePrefix) {
		return 0, false
	}
	n, err := strconv.Atoi(sel[len(pagePrefix):])
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseAnswerSelection extracts the question key from an answer selection value.
func ParseAnswerSelection(sel string) (string, bool) {
	if !strings.HasPrefix(sel, answerPrefix) {
		return "", false
	}
	return sel[len(answerPrefix):], true
}

// Attachment describes a forwardable media payload. FileRef is the transport's
// handle for the best-resolution variant.
type Attachment struct {
	Kind     AttachmentKind `json:"kind"`
	FileRef  string         `json:"file_ref"`
	MIMEType string         `json:"mime_type,omitempty"`
}

// InboundMessage represents a classified event from a channel to the router.
type InboundMessage struct {
	Channel    string      `json:"channel"`
	ChatKind   ChatKind    `json:"chat_kind"`
	ChatID     int64       `json:"chat_id"`
	SenderID   int64       `json:"sender_id"`
	SenderName string      `json:"sender_name,omitempty"`
	IsAdmin    bool        `json:"is_admin"`
	Kind       MessageKind `json:"kind"`
	Text       string      `json:"text,omitempty"`
	Selection  string      `json:"selection,omitempty"`
	Attachment *Attachment `json:"attachment,omitempty"`
	MessageRef string      `json:"message_ref,omitempty"`
	TraceID    string      `json:"trace_id"`
	Timestamp  time.Time   `json:"timestamp"`
}

// Op is the outbound operation a channel must perform.
type Op string

const (
	OpSendText     Op = "send_text"
	OpSendPhoto    Op = "send_photo"
	OpSendDocument Op = "send_document"
	OpEditMessage  Op = "edit_message"
)

// Control is one inline keyboard button: a label and the selection value it
// produces when pressed.
type Control struct {
	Label string `json:"label"`
	Data  string `json:"data"`
}

// OutboundMessage represents a command from the router to a channel.
type OutboundMessage struct {
	Channel    string      `json:"channel"`
	Op         Op          `json:"op"`
	ChatID     int64       `json:"chat_id"`
	TraceID    string      `json:"trace_id"`
	Text       string      `json:"text,omitempty"`
	FileRef    string      `json:"file_ref,omitempty"`
	MessageRef string      `json:"message_ref,omitempty"`
	Controls   [][]Control `json:"controls,omitempty"`
}

// MessageBus decouples channels from the routing core.
type MessageBus struct {
	inbound  chan *InboundMessage
	outbound chan *OutboundMessage
	subs     map[string][]func(*OutboundMessage)
	running  bool
	mu       sync.RWMutex
}

// NewMessageBus creates a new message bus.
func NewMessageBus() *MessageBus {
	return &MessageBus{
		inbound:  make(chan *InboundMessage, 100),
		outbound: make(chan *OutboundMessage, 100),
		subs:     make(map[string][]func(*OutboundMessage)),
	}
}

// PublishInbound sends a message from a channel to the router.
func (b *MessageBus) PublishInbound(msg *InboundMessage) {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	b.inbound <- msg
}

// ConsumeInbound blocks until a message is available or context is cancelled.
func (b *MessageBus) ConsumeInbound(ctx context.Context) (*InboundMessage, error) {
	select {
	case msg := <-b.inbound:
		return msg, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// PublishOutbound sends a command from the router to channels.
func (b *MessageBus) PublishOutbound(msg *OutboundMessage) {
	b.outbound <- msg
}

// Subscribe registers a callback for outbound commands to a specific channel.
func (b *MessageBus) Subscribe(channel string, callback func(*OutboundMessage)) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subs[channel] = append(b.subs[channel], callback)
}

// DispatchOutbound runs the outbound command dispatcher.
// This should be run as a goroutine.
func (b *MessageBus) DispatchOutbound(ctx context.Context) error {
	b.mu.Lock()
	b.running = true
	b.mu.Unlock()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-b.outbound:
			b.mu.RLock()
			callbacks := b.subs[msg.Channel]
			b.mu.RUnlock()

			for _, cb := range callbacks {
				cb(msg)
			}
		}
	}
}

// Stop signals the bus to stop.
func (b *MessageBus) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.running = false
}

// InboundSize returns the number of pending inbound messages.
func (b *MessageBus) InboundSize() int {
	return len(b.inbound)
}

// OutboundSize returns the number of pending outbound commands.
func (b *MessageBus) OutboundSize() int {
	return len(b.outbound)
}
