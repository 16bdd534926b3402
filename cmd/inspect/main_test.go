package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/openbook/chatseed/contract"
)

func TestResolveChatID(t *testing.T) {
	tests := []struct {
		name     string
		chatID   string
		a, b     string
		expected string
	}{
		{name: "explicit id wins", chatID: "chat_group_Zah_Sumitra_Liam", a: "U1", b: "U2", expected: "chat_group_Zah_Sumitra_Liam"},
		{name: "derived from pair", a: "U2", b: "U1", expected: "chat_U1_U2"},
		{name: "half a pair", a: "U1", expected: ""},
		{name: "nothing", expected: ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := resolveChatID(test.chatID, test.a, test.b); got != test.expected {
				t.Errorf("resolveChatID(%q, %q, %q) = %q; want %q", test.chatID, test.a, test.b, got, test.expected)
			}
		})
	}
}

func TestPrintHistory(t *testing.T) {
	var buf bytes.Buffer
	printHistory(&buf, "chat_U1_U2", []contract.FirestoreMessage{
		{SenderID: "U1", Text: "Hey there!", SentAt: time.Date(2025, 8, 9, 11, 59, 0, 0, time.UTC)},
	})
	expected := "chat_U1_U2 (1 messages)\n" +
		"2025-08-09T11:59:00Z  U1                            Hey there!\n"
	if buf.String() != expected {
		t.Errorf("printHistory() = %q; want %q", buf.String(), expected)
	}
}
