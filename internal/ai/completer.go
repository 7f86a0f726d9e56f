package ai

import "context"

// Completer is the external LLM completion capability. Implementations send a
// single prompt and return the model's text response. Errors from the provider
// (network, auth, quota) surface to the caller, which applies its own fallback
// policy.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
