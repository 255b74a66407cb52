// Package ports defines the interfaces between the bot's core logic and its
// collaborators: the chat platform, the external providers, caching, and
// localization. The core depends only on these interfaces; adapters supply
// the implementations.
package ports

import (
	"context"
	"time"
)

// Scope identifies the (channel, author) pair a command invocation belongs
// to. Incoming choice events are filtered against it so a prompt only ever
// resolves for the user who triggered it.
type Scope struct {
	ChannelID string
	UserID    string
}

// PromptHandle references one outstanding interactive prompt.
type PromptHandle struct {
	// ID is the unique identifier assigned to the prompt's component.
	ID string

	// MessageID is the platform message carrying the prompt, kept for
	// best-effort cleanup after resolution.
	MessageID string
}

// ChoiceEvent is one selection made by a user on an interactive prompt.
type ChoiceEvent struct {
	// HandleID matches the PromptHandle.ID the choice was made on.
	HandleID string

	// Token is the raw selected value. User-controlled; callers must treat
	// unparsable or out-of-range tokens as if no choice was made.
	Token string

	// Raw is the platform-specific event payload, needed to acknowledge the
	// event. Opaque to the core.
	Raw any
}

// Conversation is the messaging surface of a single command invocation.
// Implementations are bound to the invocation's scope and reply context.
type Conversation interface {
	// Scope returns the (channel, author) pair of the invocation.
	Scope() Scope

	// Reply sends a direct reply visible to the invoking user.
	Reply(ctx context.Context, text string) error

	// Announce posts a message to the shared channel, mentioning nobody by
	// itself. Used when the result of an interactive exchange should be
	// visible outside the ephemeral context.
	Announce(ctx context.Context, text string) error

	// SendPrompt presents an ordered single-choice menu to the invoking
	// user and returns a handle for awaiting the choice.
	SendPrompt(ctx context.Context, text string, options []string) (PromptHandle, error)

	// AwaitChoice blocks until a matching choice event arrives, the timeout
	// elapses, or the context is cancelled. The second return value is
	// false when no event arrived. After AwaitChoice returns, later events
	// for the same prompt are discarded.
	AwaitChoice(ctx context.Context, handle PromptHandle, timeout time.Duration) (ChoiceEvent, bool)

	// Acknowledge confirms receipt of a choice event. Idempotent and
	// fire-and-forget; failures are ignored.
	Acknowledge(ctx context.Context, event ChoiceEvent)

	// DeletePrompt removes the prompt message after resolution.
	// Best-effort; failures are ignored.
	DeletePrompt(ctx context.Context, handle PromptHandle)
}
