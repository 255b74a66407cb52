package discord

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sean-rowe/weather-bot/internal/core/ports"
)

func componentInteraction(customID, userID, value string) *discordgo.Interaction {
	return &discordgo.Interaction{
		Type: discordgo.InteractionMessageComponent,
		Data: discordgo.MessageComponentInteractionData{
			CustomID: customID,
			Values:   []string{value},
		},
		Member: &discordgo.Member{
			User: &discordgo.User{ID: userID},
		},
	}
}

func TestMessenger_RoutesChoiceToPendingPrompt(t *testing.T) {
	m := NewMessenger(zap.NewNop())

	prompt := m.register("prompt-1", ports.Scope{ChannelID: "c1", UserID: "u1"})

	handled := m.HandleComponent(componentInteraction("prompt-1", "u1", "2"))
	require.True(t, handled)

	select {
	case event := <-prompt.events:
		assert.Equal(t, "prompt-1", event.HandleID)
		assert.Equal(t, "2", event.Token)
	default:
		t.Fatal("expected a delivered choice event")
	}
}

func TestMessenger_IgnoresChoiceFromOtherUser(t *testing.T) {
	m := NewMessenger(zap.NewNop())

	prompt := m.register("prompt-1", ports.Scope{ChannelID: "c1", UserID: "u1"})

	handled := m.HandleComponent(componentInteraction("prompt-1", "intruder", "0"))
	assert.True(t, handled, "the interaction still belonged to a known prompt")

	select {
	case <-prompt.events:
		t.Fatal("a foreign user's choice must not resolve the prompt")
	default:
	}
}

func TestMessenger_UnknownPromptNotHandled(t *testing.T) {
	m := NewMessenger(zap.NewNop())

	assert.False(t, m.HandleComponent(componentInteraction("nobody-waits", "u1", "0")))
}

func TestMessenger_DuplicateChoicesDropped(t *testing.T) {
	m := NewMessenger(zap.NewNop())

	prompt := m.register("prompt-1", ports.Scope{UserID: "u1"})

	m.HandleComponent(componentInteraction("prompt-1", "u1", "0"))
	m.HandleComponent(componentInteraction("prompt-1", "u1", "1"))

	event := <-prompt.events
	assert.Equal(t, "0", event.Token, "the first choice wins")

	select {
	case <-prompt.events:
		t.Fatal("the duplicate choice should have been dropped")
	default:
	}
}

func TestConversation_AwaitChoiceDeliversBufferedEvent(t *testing.T) {
	m := NewMessenger(zap.NewNop())

	conv := &conversation{
		messenger: m,
		scope:     ports.Scope{ChannelID: "c1", UserID: "u1"},
		logger:    zap.NewNop(),
	}

	m.register("prompt-1", conv.scope)
	m.HandleComponent(componentInteraction("prompt-1", "u1", "3"))

	event, ok := conv.AwaitChoice(context.Background(),
		ports.PromptHandle{ID: "prompt-1"}, time.Second)

	require.True(t, ok)
	assert.Equal(t, "3", event.Token)

	// Resolution deregisters the prompt; later events fall on the floor.
	assert.False(t, m.HandleComponent(componentInteraction("prompt-1", "u1", "4")))
}

func TestConversation_AwaitChoiceTimesOut(t *testing.T) {
	m := NewMessenger(zap.NewNop())

	conv := &conversation{
		messenger: m,
		scope:     ports.Scope{UserID: "u1"},
		logger:    zap.NewNop(),
	}

	m.register("prompt-1", conv.scope)

	start := time.Now()
	_, ok := conv.AwaitChoice(context.Background(),
		ports.PromptHandle{ID: "prompt-1"}, 20*time.Millisecond)

	assert.False(t, ok)
	assert.Less(t, time.Since(start), time.Second)
}

func TestConversation_AwaitChoiceHonorsContextCancellation(t *testing.T) {
	m := NewMessenger(zap.NewNop())

	conv := &conversation{
		messenger: m,
		scope:     ports.Scope{UserID: "u1"},
		logger:    zap.NewNop(),
	}

	m.register("prompt-1", conv.scope)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok := conv.AwaitChoice(ctx, ports.PromptHandle{ID: "prompt-1"}, time.Minute)
	assert.False(t, ok)
}

func TestInteractionUserID(t *testing.T) {
	guild := &discordgo.Interaction{
		Member: &discordgo.Member{User: &discordgo.User{ID: "member-id"}},
	}
	assert.Equal(t, "member-id", interactionUserID(guild))

	direct := &discordgo.Interaction{
		User: &discordgo.User{ID: "dm-id"},
	}
	assert.Equal(t, "dm-id", interactionUserID(direct))

	assert.Equal(t, "", interactionUserID(&discordgo.Interaction{}))
}
