// Package ai defines the opaque completion capability the pipeline runs on:
// prompt in, text out, ServiceError on any transport, auth, or quota
// failure. No retries — a failed call is immediately fatal to the stage that
// issued it. Providers clean common LLM artifacts from their replies before
// returning them.
package ai

import "context"

// Service is a single AI completion backend.
type Service interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}
