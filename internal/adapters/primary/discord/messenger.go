package discord

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sean-rowe/weather-bot/internal/core/ports"
)

// pendingPrompt is one outstanding select menu waiting for its user's choice.
type pendingPrompt struct {
	scope  ports.Scope
	events chan ports.ChoiceEvent
}

// Messenger owns the registry of outstanding interactive prompts and mints
// per-invocation conversations. One instance serves the whole gateway
// session; component interactions arriving on any goroutine are routed
// through it to whichever command invocation is waiting.
type Messenger struct {
	mu      sync.Mutex
	pending map[string]pendingPrompt
	logger  *zap.Logger
}

// NewMessenger creates an empty prompt registry.
func NewMessenger(logger *zap.Logger) *Messenger {
	return &Messenger{
		pending: make(map[string]pendingPrompt),
		logger:  logger,
	}
}

// Conversation binds a messaging surface to one command interaction. The
// interaction must already have a deferred response, which Reply edits later.
func (m *Messenger) Conversation(session *discordgo.Session, interaction *discordgo.Interaction) ports.Conversation {
	return &conversation{
		session:     session,
		messenger:   m,
		interaction: interaction,
		scope: ports.Scope{
			ChannelID: interaction.ChannelID,
			UserID:    interactionUserID(interaction),
		},
		logger: m.logger,
	}
}

// HandleComponent routes a component interaction to the prompt waiting for
// it. It reports whether the interaction belonged to a known prompt; events
// from users outside the prompt's scope are swallowed without resolving it.
func (m *Messenger) HandleComponent(interaction *discordgo.Interaction) bool {
	data := interaction.MessageComponentData()

	m.mu.Lock()
	prompt, ok := m.pending[data.CustomID]
	m.mu.Unlock()

	if !ok {
		return false
	}

	if interactionUserID(interaction) != prompt.scope.UserID {
		m.logger.Debug("ignoring choice from outside the prompt scope",
			zap.String("custom_id", data.CustomID))

		return true
	}

	var token string
	if len(data.Values) > 0 {
		token = data.Values[0]
	}

	event := ports.ChoiceEvent{
		HandleID: data.CustomID,
		Token:    token,
		Raw:      interaction,
	}

	// Non-blocking: the waiter's buffer holds one event; anything beyond
	// that is a duplicate and gets dropped.
	select {
	case prompt.events <- event:
	default:
	}

	return true
}

func (m *Messenger) register(id string, scope ports.Scope) pendingPrompt {
	prompt := pendingPrompt{
		scope:  scope,
		events: make(chan ports.ChoiceEvent, 1),
	}

	m.mu.Lock()
	m.pending[id] = prompt
	m.mu.Unlock()

	return prompt
}

func (m *Messenger) deregister(id string) {
	m.mu.Lock()
	delete(m.pending, id)
	m.mu.Unlock()
}

// interactionUserID extracts the invoking user's ID. Guild interactions
// carry a member, direct messages carry the user directly.
func interactionUserID(interaction *discordgo.Interaction) string {
	if interaction.Member != nil && interaction.Member.User != nil {
		return interaction.Member.User.ID
	}

	if interaction.User != nil {
		return interaction.User.ID
	}

	return ""
}

// conversation is the ports.Conversation implementation for one slash
// command interaction.
type conversation struct {
	session     *discordgo.Session
	messenger   *Messenger
	interaction *discordgo.Interaction
	scope       ports.Scope
	logger      *zap.Logger
}

func (c *conversation) Scope() ports.Scope {
	return c.scope
}

// Reply fills in the interaction's deferred response.
func (c *conversation) Reply(_ context.Context, text string) error {
	_, err := c.session.InteractionResponseEdit(c.interaction, &discordgo.WebhookEdit{
		Content: &text,
	})

	return err
}

// Announce posts to the invocation's channel and clears the deferred
// response, which would otherwise linger as an unanswered placeholder.
func (c *conversation) Announce(_ context.Context, text string) error {
	if _, err := c.session.ChannelMessageSend(c.scope.ChannelID, text); err != nil {
		return err
	}

	if err := c.session.InteractionResponseDelete(c.interaction); err != nil {
		c.logger.Debug("failed to delete deferred response", zap.Error(err))
	}

	return nil
}

// SendPrompt delivers an ephemeral single-select menu as a followup message.
// Option tokens are the option's list index.
func (c *conversation) SendPrompt(_ context.Context, text string, options []string) (ports.PromptHandle, error) {
	customID := uuid.NewString()

	menuOptions := make([]discordgo.SelectMenuOption, len(options))
	for i, label := range options {
		menuOptions[i] = discordgo.SelectMenuOption{
			Label: label,
			Value: strconv.Itoa(i),
		}
	}

	c.messenger.register(customID, c.scope)

	message, err := c.session.FollowupMessageCreate(c.interaction, true, &discordgo.WebhookParams{
		Content: text,
		Flags:   discordgo.MessageFlagsEphemeral,
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.SelectMenu{
						CustomID: customID,
						Options:  menuOptions,
					},
				},
			},
		},
	})

	if err != nil {
		c.messenger.deregister(customID)

		return ports.PromptHandle{}, err
	}

	return ports.PromptHandle{ID: customID, MessageID: message.ID}, nil
}

// AwaitChoice blocks until the prompt's user picks an option, the timeout
// elapses, or the context is cancelled.
func (c *conversation) AwaitChoice(ctx context.Context, handle ports.PromptHandle, timeout time.Duration) (ports.ChoiceEvent, bool) {
	defer c.messenger.deregister(handle.ID)

	m := c.messenger

	m.mu.Lock()
	prompt, ok := m.pending[handle.ID]
	m.mu.Unlock()

	if !ok {
		return ports.ChoiceEvent{}, false
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case event := <-prompt.events:
		return event, true
	case <-timer.C:
		return ports.ChoiceEvent{}, false
	case <-ctx.Done():
		return ports.ChoiceEvent{}, false
	}
}

// Acknowledge confirms a component interaction without visible output.
func (c *conversation) Acknowledge(_ context.Context, event ports.ChoiceEvent) {
	interaction, ok := event.Raw.(*discordgo.Interaction)
	if !ok {
		return
	}

	err := c.session.InteractionRespond(interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})

	if err != nil {
		c.logger.Debug("failed to acknowledge choice", zap.Error(err))
	}
}

// DeletePrompt removes the prompt's followup message.
func (c *conversation) DeletePrompt(_ context.Context, handle ports.PromptHandle) {
	c.messenger.deregister(handle.ID)

	if err := c.session.FollowupMessageDelete(c.interaction, handle.MessageID); err != nil {
		c.logger.Debug("failed to delete prompt message", zap.Error(err))
	}
}
