package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTelegramDeliver(t *testing.T) {
	var gotPath string
	var gotPayload sendMessageRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("cannot decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	tg := NewTelegram("bot-token", "chat-42", nil, WithBaseURL(server.URL))

	if err := tg.Deliver(context.Background(), "Daily Summary"); err != nil {
		t.Fatalf("Deliver() unexpected error: %v", err)
	}

	if gotPath != "/botbot-token/sendMessage" {
		t.Errorf("path = %q, want /botbot-token/sendMessage", gotPath)
	}
	if gotPayload.ChatID != "chat-42" {
		t.Errorf("chat_id = %q, want chat-42", gotPayload.ChatID)
	}
	if gotPayload.Text != "Daily Summary" {
		t.Errorf("text = %q, want Daily Summary", gotPayload.Text)
	}
}

func TestTelegramDeliverAPIFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"ok":false,"description":"Unauthorized"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	tg := NewTelegram("bad-token", "chat-42", nil, WithBaseURL(server.URL))

	if err := tg.Deliver(context.Background(), "hello"); err == nil {
		t.Error("Deliver() should fail on non-200 response")
	}
}

func TestTelegramDeliverUnconfigured(t *testing.T) {
	tests := []struct {
		name   string
		token  string
		chatID string
	}{
		{
			name:   "missingToken",
			chatID: "chat-42",
		},
		{
			name:  "missingChatID",
			token: "bot-token",
		},
		{
			name: "missingBoth",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tg := NewTelegram(tt.token, tt.chatID, nil)
			err := tg.Deliver(context.Background(), "hello")
			if !errors.Is(err, ErrNotConfigured) {
				t.Errorf("Deliver() error = %v, want %v", err, ErrNotConfigured)
			}
		})
	}
}

func TestSchedulerRejectsBadSpec(t *testing.T) {
	s := NewScheduler(nil, nil)
	if err := s.Add("not a cron spec", func(context.Context) {}); err == nil {
		t.Error("Add() should reject an invalid cron spec")
	}
	if err := s.Add(DefaultSummarySchedule, func(context.Context) {}); err != nil {
		t.Errorf("Add() rejected the default schedule: %v", err)
	}
}
