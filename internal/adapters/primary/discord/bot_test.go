package discord

import (
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commandInteraction(name string, options []*discordgo.ApplicationCommandInteractionDataOption) *discordgo.Interaction {
	return &discordgo.Interaction{
		Type:      discordgo.InteractionApplicationCommand,
		ChannelID: "channel-1",
		Data: discordgo.ApplicationCommandInteractionData{
			Name:    name,
			Options: options,
		},
		Member: &discordgo.Member{
			User: &discordgo.User{ID: "123456789"},
		},
	}
}

func stringOption(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionString,
		Value: value,
	}
}

func TestTemperatureRequest(t *testing.T) {
	interaction := commandInteraction("temperature", []*discordgo.ApplicationCommandInteractionDataOption{
		stringOption("place", "Vienna"),
		stringOption("date", "24.12.2023"),
		stringOption("time", "18:00"),
	})

	req := temperatureRequest(interaction)

	assert.Equal(t, "Vienna", req.PlaceName)
	assert.Equal(t, "24.12.2023", req.Date)
	assert.Equal(t, "18:00", req.TimeOfDay)
	assert.Equal(t, "<@123456789>", req.UserMention)
}

func TestTemperatureRequest_OptionalInputsAbsent(t *testing.T) {
	interaction := commandInteraction("temperature", []*discordgo.ApplicationCommandInteractionDataOption{
		stringOption("place", "Vienna"),
	})

	req := temperatureRequest(interaction)

	assert.Equal(t, "Vienna", req.PlaceName)
	assert.Empty(t, req.Date)
	assert.Empty(t, req.TimeOfDay)
}

func TestAccountAgeRequest_DefaultsToInvoker(t *testing.T) {
	// Snowflake 175928847299117063 encodes 2016-04-30 11:18:25.796 UTC.
	interaction := &discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{Name: "age"},
		Member: &discordgo.Member{
			User: &discordgo.User{ID: "175928847299117063", Username: "someone"},
		},
	}

	req := accountAgeRequest(nil, interaction)

	assert.Equal(t, "someone", req.Username)

	expected, err := discordgo.SnowflakeTimestamp("175928847299117063")
	require.NoError(t, err)
	assert.True(t, req.CreatedAt.Equal(expected))
	assert.Equal(t, 2016, req.CreatedAt.UTC().Year())
}

func TestAccountAgeRequest_PrefersGlobalName(t *testing.T) {
	interaction := &discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{Name: "age"},
		User: &discordgo.User{
			ID:         "175928847299117063",
			Username:   "legacy#1234",
			GlobalName: "Someone",
		},
	}

	req := accountAgeRequest(nil, interaction)

	assert.Equal(t, "Someone", req.Username)
}

func TestCommandDefinitions(t *testing.T) {
	names := make(map[string]*discordgo.ApplicationCommand, len(commandDefinitions))
	for _, cmd := range commandDefinitions {
		names[cmd.Name] = cmd
	}

	temperature := names["temperature"]
	require.NotNil(t, temperature)
	require.Len(t, temperature.Options, 3)
	assert.Equal(t, "place", temperature.Options[0].Name)
	assert.True(t, temperature.Options[0].Required)
	assert.False(t, temperature.Options[1].Required)
	assert.False(t, temperature.Options[2].Required)

	age := names["age"]
	require.NotNil(t, age)
	require.Len(t, age.Options, 1)
	assert.False(t, age.Options[0].Required)
}

func TestSnowflakeEpochSanity(t *testing.T) {
	// Account ages come straight out of the ID snowflake; make sure the
	// decoding stays anchored to the platform epoch.
	createdAt, err := discordgo.SnowflakeTimestamp("4194304") // first possible ID
	require.NoError(t, err)

	epoch := time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.WithinDuration(t, epoch, createdAt, time.Second)
}
