package chat

import _ "embed"

// knowledgeBase is the static career guidance corpus embedded into the binary.
// It is loaded once and shared read-only by every session.
//
//go:embed knowledge.md
var knowledgeBase string
