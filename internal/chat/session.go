package chat

import (
	"context"
	"strings"
	"sync"
	"unicode/utf8"

	_ "embed"

	"github.com/careercompass/career-compass/internal/ai"
	"github.com/careercompass/career-compass/internal/logger"
	"go.uber.org/zap"
)

//go:embed prompt.md
var promptTemplate string

const (
	// historyLimit caps stored messages at the 5 most recent exchanges.
	historyLimit = 10
	// historyWindow is how many trailing messages are rendered into the prompt.
	historyWindow = 4

	noHistoryText = "No previous conversation"
	noResumeText  = "No resume provided"

	apologyMessage = "I apologize, but I'm having trouble processing your request. Please try rephrasing your question or check your API key configuration."

	defaultMaxLogLength = 200
)

// Message is a single chat turn. Messages are immutable once appended.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session holds the rolling conversation state for one chat conversation. The
// history is owned exclusively by the session; a mutex serializes Chat calls so
// concurrent use of one session cannot corrupt turn ordering.
type Session struct {
	completer ai.Completer
	logger    *zap.Logger
	maxLogLen int

	mu      sync.Mutex
	history []Message
}

func NewSession(completer ai.Completer, maxLogLength int, log *zap.Logger) *Session {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Session{
		completer: completer,
		logger:    log,
		maxLogLen: maxLogLength,
	}
}

// Chat answers a free-form career question, biased by the knowledge base, the
// topic hint, the caller-supplied resume context and the recent history. It
// never fails: a completion error yields a fixed apology string and leaves the
// history untouched. History is appended and truncated only on success.
func (s *Session) Chat(ctx context.Context, query, resumeContext string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	prompt := s.buildPrompt(query, resumeContext)

	s.logger.Debug("chat request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.Int("history_length", len(s.history)),
	)

	response, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		s.logger.Warn("chat completion failed", zap.Error(err))
		return apologyMessage
	}

	s.logger.Debug("chat response",
		zap.Int("response_length", utf8.RuneCountInString(response)),
		zap.String("response_preview", logger.TruncateForLog(response, s.maxLogLen)),
	)

	s.history = append(s.history,
		Message{Role: "user", Content: query},
		Message{Role: "assistant", Content: response},
	)
	if len(s.history) > historyLimit {
		s.history = s.history[len(s.history)-historyLimit:]
	}

	return response
}

// History returns a copy of the stored messages, oldest first.
func (s *Session) History() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := make([]Message, len(s.history))
	copy(history, s.history)
	return history
}

func (s *Session) buildPrompt(query, resumeContext string) string {
	if strings.TrimSpace(resumeContext) == "" {
		resumeContext = noResumeText
	}

	prompt := strings.ReplaceAll(promptTemplate, "{{KNOWLEDGE_BASE}}", knowledgeBase)
	prompt = strings.ReplaceAll(prompt, "{{RELEVANT_TOPICS}}", RelevantTopics(query))
	prompt = strings.ReplaceAll(prompt, "{{RESUME_CONTEXT}}", resumeContext)
	prompt = strings.ReplaceAll(prompt, "{{HISTORY}}", renderHistory(s.history))
	prompt = strings.ReplaceAll(prompt, "{{QUERY}}", query)
	return prompt
}

// renderHistory formats the trailing window of messages in chronological order,
// one "ROLE: content" paragraph per message.
func renderHistory(history []Message) string {
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}

	if len(history) == 0 {
		return noHistoryText
	}

	var builder strings.Builder
	for _, msg := range history {
		builder.WriteString(strings.ToUpper(msg.Role))
		builder.WriteString(": ")
		builder.WriteString(msg.Content)
		builder.WriteString("\n\n")
	}

	return builder.String()
}
