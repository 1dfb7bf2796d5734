package channels

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/huntdesk/huntdesk/internal/bus"
	"github.com/huntdesk/huntdesk/internal/config"
	"github.com/huntdesk/huntdesk/internal/roster"
)

func newTestChannel(t *testing.T, apiBase string, adminIDs ...int64) *TelegramChannel {
	t.Helper()
	return NewTelegramChannel(config.TelegramConfig{
		Token:       "123:abc",
		APIBase:     apiBase,
		PollTimeout: 1,
	}, bus.NewMessageBus(), roster.New(adminIDs, nil), nil, nil)
}

func okServer(t *testing.T, capture *[]map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if capture != nil {
			var payload map[string]any
			json.NewDecoder(r.Body).Decode(&payload)
			payload["_path"] = r.URL.Path
			*capture = append(*capture, payload)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true,"result":true}`))
	}))
}

func TestClassifyTextMessage(t *testing.T) {
	ch := newTestChannel(t, "http://unused", 100)

	msg := ch.classify(t.Context(), &update{
		Message: &tgMessage{
			MessageID: 9,
			From:      &tgUser{ID: 100, Username: "weibin"},
			Chat:      tgChat{ID: 100, Type: "private"},
			Text:      "#42 hello",
		},
	})
	if msg == nil {
		t.Fatal("expected a classified message")
	}
	if msg.Kind != bus.KindText || msg.Text != "#42 hello" {
		t.Errorf("unexpected kind/text: %+v", msg)
	}
	if !msg.IsAdmin {
		t.Error("expected sender flagged as admin")
	}
	if msg.SenderName != "@weibin" {
		t.Errorf("expected @username, got %q", msg.SenderName)
	}
	if msg.ChatKind != bus.ChatPrivate {
		t.Errorf("expected private chat, got %q", msg.ChatKind)
	}
	if msg.TraceID == "" {
		t.Error("expected a trace id")
	}
}

func TestClassifyGroupChat(t *testing.T) {
	ch := newTestChannel(t, "http://unused")

	msg := ch.classify(t.Context(), &update{
		Message: &tgMessage{
			From: &tgUser{ID: 1, FirstName: "Ann"},
			Chat: tgChat{ID: -500, Type: "supergroup"},
			Text: "hi all",
		},
	})
	if msg == nil {
		t.Fatal("expected a classified message")
	}
	if msg.ChatKind != bus.ChatOther {
		t.Errorf("expected non-private chat kind, got %q", msg.ChatKind)
	}
	if msg.SenderName != "Ann" {
		t.Errorf("expected first-name fallback, got %q", msg.SenderName)
	}
}

func TestClassifyPhotoPicksLargest(t *testing.T) {
	ch := newTestChannel(t, "http://unused", 100)

	msg := ch.classify(t.Context(), &update{
		Message: &tgMessage{
			From: &tgUser{ID: 100},
			Chat: tgChat{ID: 100, Type: "private"},
			Photo: []photoSize{
				{FileID: "small", Width: 90},
				{FileID: "medium", Width: 320},
				{FileID: "large", Width: 1280},
			},
		},
	})
	if msg == nil || msg.Kind != bus.KindAttachment {
		t.Fatalf("expected attachment, got %+v", msg)
	}
	if msg.Attachment.Kind != bus.AttachmentPhoto || msg.Attachment.FileRef != "large" {
		t.Errorf("expected largest photo size, got %+v", msg.Attachment)
	}
}

func TestClassifyDocument(t *testing.T) {
	ch := newTestChannel(t, "http://unused", 100)

	msg := ch.classify(t.Context(), &update{
		Message: &tgMessage{
			From:     &tgUser{ID: 100},
			Chat:     tgChat{ID: 100, Type: "private"},
			Document: &tgDocument{FileID: "doc-1", MimeType: "image/png"},
		},
	})
	if msg == nil || msg.Kind != bus.KindAttachment {
		t.Fatalf("expected attachment, got %+v", msg)
	}
	if msg.Attachment.Kind != bus.AttachmentDocument || msg.Attachment.MIMEType != "image/png" {
		t.Errorf("unexpected attachment: %+v", msg.Attachment)
	}
}

func TestClassifyCallbackQuery(t *testing.T) {
	var calls []map[string]any
	srv := okServer(t, &calls)
	defer srv.Close()
	ch := newTestChannel(t, srv.URL)

	msg := ch.classify(t.Context(), &update{
		CallbackQuery: &callbackQuery{
			ID:   "cb-1",
			From: &tgUser{ID: 7, Username: "player"},
			Message: &tgMessage{
				MessageID: 55,
				Chat:      tgChat{ID: 7, Type: "private"},
			},
			Data: bus.SelectEnterCode,
		},
	})
	if msg == nil || msg.Kind != bus.KindMenu {
		t.Fatalf("expected menu message, got %+v", msg)
	}
	if msg.Selection != bus.SelectEnterCode {
		t.Errorf("unexpected selection: %q", msg.Selection)
	}
	if msg.MessageRef != "55" {
		t.Errorf("expected originating message ref, got %q", msg.MessageRef)
	}

	// The button press was acked.
	if len(calls) != 1 || !strings.HasSuffix(calls[0]["_path"].(string), "/answerCallbackQuery") {
		t.Errorf("expected answerCallbackQuery call, got %+v", calls)
	}
}

func TestClassifyIgnoresEmptyUpdate(t *testing.T) {
	ch := newTestChannel(t, "http://unused")
	if msg := ch.classify(t.Context(), &update{}); msg != nil {
		t.Errorf("expected nil for empty update, got %+v", msg)
	}
}

func TestSendTextWithControls(t *testing.T) {
	var calls []map[string]any
	srv := okServer(t, &calls)
	defer srv.Close()
	ch := newTestChannel(t, srv.URL)

	err := ch.Send(t.Context(), &bus.OutboundMessage{
		Op:     bus.OpSendText,
		ChatID: 42,
		Text:   "hello",
		Controls: [][]bus.Control{
			{{Label: "Enter Code", Data: bus.SelectEnterCode}},
		},
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(calls) != 1 {
		t.Fatalf("expected one API call, got %d", len(calls))
	}
	call := calls[0]
	if !strings.HasSuffix(call["_path"].(string), "/bot123:abc/sendMessage") {
		t.Errorf("unexpected path: %v", call["_path"])
	}
	if call["chat_id"].(float64) != 42 || call["text"] != "hello" {
		t.Errorf("unexpected payload: %+v", call)
	}
	if _, ok := call["reply_markup"]; !ok {
		t.Error("expected inline keyboard in payload")
	}
}

func TestSendEditMessage(t *testing.T) {
	var calls []map[string]any
	srv := okServer(t, &calls)
	defer srv.Close()
	ch := newTestChannel(t, srv.URL)

	err := ch.Send(t.Context(), &bus.OutboundMessage{
		Op:         bus.OpEditMessage,
		ChatID:     42,
		MessageRef: "55",
		Text:       "page 2",
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if !strings.HasSuffix(calls[0]["_path"].(string), "/editMessageText") {
		t.Errorf("unexpected path: %v", calls[0]["_path"])
	}
	if calls[0]["message_id"].(float64) != 55 {
		t.Errorf("unexpected message_id: %v", calls[0]["message_id"])
	}
}

func TestSendAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":false,"description":"Bad Request: chat not found"}`))
	}))
	defer srv.Close()
	ch := newTestChannel(t, srv.URL)

	err := ch.Send(t.Context(), &bus.OutboundMessage{Op: bus.OpSendText, ChatID: 42, Text: "x"})
	if err == nil || !strings.Contains(err.Error(), "chat not found") {
		t.Errorf("expected API error surfaced, got %v", err)
	}
}

func TestSendBadMessageRef(t *testing.T) {
	ch := newTestChannel(t, "http://unused")
	err := ch.Send(t.Context(), &bus.OutboundMessage{Op: bus.OpEditMessage, MessageRef: "not-a-number"})
	if err == nil {
		t.Error("expected error for unparseable message ref")
	}
}
