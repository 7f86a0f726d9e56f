package chat

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"
)

type stubCompleter struct {
	response   string
	err        error
	calls      int
	lastPrompt string
}

func (s *stubCompleter) Complete(_ context.Context, prompt string) (string, error) {
	s.calls++
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	if s.response != "" {
		return s.response, nil
	}
	return fmt.Sprintf("reply %d", s.calls), nil
}

func TestChatReturnsResponseVerbatim(t *testing.T) {
	stub := &stubCompleter{response: "  Build three portfolio projects.  "}
	session := NewSession(stub, 0, zap.NewNop())

	got := session.Chat(context.Background(), "How do I start?", "")
	if got != stub.response {
		t.Fatalf("expected verbatim response, got %q", got)
	}
}

func TestChatPromptContainsAllSections(t *testing.T) {
	stub := &stubCompleter{}
	session := NewSession(stub, 0, zap.NewNop())

	session.Chat(context.Background(), "How do I prep for a backend interview?", "")

	prompt := stub.lastPrompt
	if !strings.Contains(prompt, "CAREER KNOWLEDGE BASE:") {
		t.Fatal("expected knowledge base in prompt")
	}
	if !strings.Contains(prompt, "RELEVANT TOPICS FOR THIS QUERY: Focus on: backend, interview") {
		t.Fatalf("expected topics hint in prompt")
	}
	if !strings.Contains(prompt, "No resume provided") {
		t.Fatal("expected resume placeholder for empty context")
	}
	if !strings.Contains(prompt, "No previous conversation") {
		t.Fatal("expected history placeholder for fresh session")
	}
	if !strings.Contains(prompt, "USER QUERY: How do I prep for a backend interview?") {
		t.Fatal("expected raw query in prompt")
	}
}

func TestChatPromptEmbedsResumeContext(t *testing.T) {
	stub := &stubCompleter{}
	session := NewSession(stub, 0, zap.NewNop())

	session.Chat(context.Background(), "Am I ready?", "Five years of Go experience")

	if !strings.Contains(stub.lastPrompt, "Five years of Go experience") {
		t.Fatal("expected resume context in prompt")
	}
	if strings.Contains(stub.lastPrompt, "No resume provided") {
		t.Fatal("resume placeholder must not appear when context is given")
	}
}

func TestChatRendersTrailingHistoryWindow(t *testing.T) {
	stub := &stubCompleter{}
	session := NewSession(stub, 0, zap.NewNop())

	for i := 1; i <= 4; i++ {
		session.Chat(context.Background(), fmt.Sprintf("question %d", i), "")
	}

	// The prompt of the fourth call sees only the last 4 stored messages: the
	// second and third exchanges.
	prompt := stub.lastPrompt
	if strings.Contains(prompt, "USER: question 1") {
		t.Fatal("first exchange should have fallen out of the rendered window")
	}
	if !strings.Contains(prompt, "USER: question 2") {
		t.Fatal("expected second user message in rendered history")
	}
	if !strings.Contains(prompt, "ASSISTANT: reply 3") {
		t.Fatal("expected third assistant message in rendered history")
	}
}

func TestChatHistoryEvictsOldestBeyondLimit(t *testing.T) {
	stub := &stubCompleter{}
	session := NewSession(stub, 0, zap.NewNop())

	for i := 1; i <= 6; i++ {
		session.Chat(context.Background(), fmt.Sprintf("question %d", i), "")
	}

	history := session.History()
	if len(history) != historyLimit {
		t.Fatalf("expected history length %d, got %d", historyLimit, len(history))
	}

	// The first exchange has been evicted; history starts at question 2.
	if history[0].Role != "user" || history[0].Content != "question 2" {
		t.Fatalf("unexpected oldest message: %+v", history[0])
	}
	if history[len(history)-1].Role != "assistant" || history[len(history)-1].Content != "reply 6" {
		t.Fatalf("unexpected newest message: %+v", history[len(history)-1])
	}
}

func TestChatFailureReturnsApologyAndKeepsHistory(t *testing.T) {
	stub := &stubCompleter{}
	session := NewSession(stub, 0, zap.NewNop())

	session.Chat(context.Background(), "first question", "")
	before := session.History()

	stub.err = errors.New("network unreachable")
	got := session.Chat(context.Background(), "second question", "")

	if got != apologyMessage {
		t.Fatalf("expected apology message, got %q", got)
	}

	after := session.History()
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("history mutated on failure:\nbefore %+v\nafter %+v", before, after)
	}
}
