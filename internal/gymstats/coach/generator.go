// Package coach talks to the advice generator (an LLM) on behalf of the user:
// free form questions, post workout advice and food macro estimates.
package coach

import (
	"context"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Prompt is a single request to the generator: a system instruction, prior chat
// turns (oldest first) and the new user message.
type Prompt struct {
	System      string
	History     []Message
	User        string
	Temperature float64
}

//go:generate mockgen -source=$GOFILE -destination=generator_mocks_test.go -package=coach_test

// Generator returns the model's reply as an opaque string.
type Generator interface {
	Generate(ctx context.Context, prompt Prompt) (string, error)
}
