// Package llm wraps the hosted text-generation model behind a narrow
// completion interface so analysis flows stay independent of any
// particular provider.
package llm

import "context"

// Client invokes the hosted model. Complete submits a prompt and
// returns the raw model text, which flows are expected to be a single
// JSON object matching their declared output schema.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
