// Package discord is the primary adapter: it connects the bot to the Discord
// gateway, registers the slash commands, and translates interactions into
// service calls.
package discord

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/sean-rowe/weather-bot/internal/core/domain"
	"github.com/sean-rowe/weather-bot/internal/core/ports"
	"github.com/sean-rowe/weather-bot/internal/core/services"
	"github.com/sean-rowe/weather-bot/internal/observability"
)

// Config holds the Discord connection settings.
type Config struct {
	// Token is the bot token, without the "Bot " prefix.
	Token string

	// AppID is the application ID commands are registered under.
	AppID string

	// TestGuildIDs lists guilds that additionally get instant command
	// registration. Global registration can take up to an hour to
	// propagate; guild registration is immediate.
	TestGuildIDs []string
}

// Bot owns the gateway session and dispatches interactions to the command
// services.
type Bot struct {
	cfg         Config
	session     *discordgo.Session
	messenger   *Messenger
	temperature *services.TemperatureService
	accounts    *services.AccountService
	localizer   ports.Localizer
	metrics     *observability.Metrics
	logger      *zap.Logger
}

// NewBot creates the gateway adapter. The session is configured but not yet
// connected; call Start to open it.
func NewBot(
	cfg Config,
	temperature *services.TemperatureService,
	accounts *services.AccountService,
	messenger *Messenger,
	localizer ports.Localizer,
	metrics *observability.Metrics,
	logger *zap.Logger,
) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	bot := &Bot{
		cfg:         cfg,
		session:     session,
		messenger:   messenger,
		temperature: temperature,
		accounts:    accounts,
		localizer:   localizer,
		metrics:     metrics,
		logger:      logger,
	}

	session.AddHandler(bot.onReady)
	session.AddHandler(bot.onInteraction)

	return bot, nil
}

// Start opens the gateway connection and registers the slash commands.
func (b *Bot) Start(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open gateway connection: %w", err)
	}

	if err := b.registerCommands(); err != nil {
		_ = b.session.Close()

		return err
	}

	return nil
}

// Stop closes the gateway connection.
func (b *Bot) Stop() error {
	return b.session.Close()
}

// commandDefinitions are the slash commands this bot serves.
var commandDefinitions = []*discordgo.ApplicationCommand{
	{
		Name:        "temperature",
		Description: "Look up the temperature at a place, now or in the past",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "place",
				Description: "Name of a place",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "date",
				Description: "A specific date in the past",
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "time",
				Description: "A specific time of day",
			},
		},
	},
	{
		Name:        "age",
		Description: "Displays your or another user's account creation date",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "Selected user",
			},
		},
	},
}

// registerCommands overwrites the global command set and mirrors it into the
// configured test guilds. A malformed guild ID skips that guild instead of
// failing registration as a whole.
func (b *Bot) registerCommands() error {
	if _, err := b.session.ApplicationCommandBulkOverwrite(b.cfg.AppID, "", commandDefinitions); err != nil {
		return fmt.Errorf("register global commands: %w", err)
	}

	for _, guildID := range b.cfg.TestGuildIDs {
		if _, err := strconv.ParseUint(guildID, 10, 64); err != nil {
			b.logger.Warn("skipping malformed test guild id", zap.String("guild_id", guildID))
			continue
		}

		if _, err := b.session.ApplicationCommandBulkOverwrite(b.cfg.AppID, guildID, commandDefinitions); err != nil {
			return fmt.Errorf("register commands in guild %s: %w", guildID, err)
		}
	}

	b.logger.Info("slash commands registered",
		zap.Int("commands", len(commandDefinitions)),
		zap.Int("test_guilds", len(b.cfg.TestGuildIDs)))

	return nil
}

func (b *Bot) onReady(_ *discordgo.Session, ready *discordgo.Ready) {
	b.logger.Info("gateway session ready",
		zap.String("username", ready.User.Username),
		zap.Int("guilds", len(ready.Guilds)))
}

// onInteraction is the single gateway entry point for both slash commands
// and component interactions.
func (b *Bot) onInteraction(session *discordgo.Session, interaction *discordgo.InteractionCreate) {
	switch interaction.Type {
	case discordgo.InteractionApplicationCommand:
		b.handleCommand(session, interaction.Interaction)

	case discordgo.InteractionMessageComponent:
		if !b.messenger.HandleComponent(interaction.Interaction) {
			b.logger.Debug("component interaction matched no pending prompt",
				zap.String("custom_id", interaction.MessageComponentData().CustomID))
		}
	}
}

// handleCommand runs one slash command invocation end to end. The response
// is deferred immediately so the services get the full interaction window
// instead of Discord's three second initial deadline.
func (b *Bot) handleCommand(session *discordgo.Session, interaction *discordgo.Interaction) {
	name := interaction.ApplicationCommandData().Name
	start := time.Now()

	b.metrics.RecordInvocation(name)

	err := session.InteractionRespond(interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})

	if err != nil {
		b.logger.Error("failed to defer interaction response",
			zap.String("command", name),
			zap.Error(err))
		b.metrics.RecordOutcome(name, "error")

		return
	}

	ctx := context.Background()
	conv := b.messenger.Conversation(session, interaction)

	switch name {
	case "temperature":
		err = b.temperature.Lookup(ctx, conv, temperatureRequest(interaction))
	case "age":
		err = b.accounts.Age(ctx, conv, accountAgeRequest(session, interaction))
	default:
		err = fmt.Errorf("unknown command %q", name)
	}

	b.metrics.ObserveCommandDuration(name, time.Since(start).Seconds())

	if err != nil {
		b.metrics.RecordOutcome(name, "error")

		var providerErr *domain.ProviderError
		if errors.As(err, &providerErr) {
			b.metrics.RecordProviderError(name, providerErr.Kind.String())
		}

		b.logger.Error("command failed",
			zap.String("command", name),
			zap.String("channel_id", interaction.ChannelID),
			zap.Error(err))

		// Whatever went wrong, the user still deserves an answer.
		if replyErr := conv.Reply(ctx, b.localizer.Lookup("command-failed", nil)); replyErr != nil {
			b.logger.Warn("failed to deliver error notice", zap.Error(replyErr))
		}

		return
	}

	b.metrics.RecordOutcome(name, "ok")
}

// temperatureRequest maps the interaction's options onto the service request.
func temperatureRequest(interaction *discordgo.Interaction) services.TemperatureRequest {
	options := optionMap(interaction)

	req := services.TemperatureRequest{
		UserMention: fmt.Sprintf("<@%s>", interactionUserID(interaction)),
	}

	if opt, ok := options["place"]; ok {
		req.PlaceName = opt.StringValue()
	}

	if opt, ok := options["date"]; ok {
		req.Date = opt.StringValue()
	}

	if opt, ok := options["time"]; ok {
		req.TimeOfDay = opt.StringValue()
	}

	return req
}

// accountAgeRequest resolves the target user, defaulting to the invoker, and
// derives the creation time from the user ID snowflake.
func accountAgeRequest(session *discordgo.Session, interaction *discordgo.Interaction) services.AccountAgeRequest {
	var user *discordgo.User

	if opt, ok := optionMap(interaction)["user"]; ok {
		user = opt.UserValue(session)
	}

	if user == nil {
		if interaction.Member != nil {
			user = interaction.Member.User
		} else {
			user = interaction.User
		}
	}

	createdAt, err := discordgo.SnowflakeTimestamp(user.ID)
	if err != nil {
		createdAt = time.Time{}
	}

	username := user.Username
	if user.GlobalName != "" {
		username = user.GlobalName
	}

	return services.AccountAgeRequest{
		Username:  username,
		CreatedAt: createdAt,
	}
}

func optionMap(interaction *discordgo.Interaction) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	options := interaction.ApplicationCommandData().Options
	mapped := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))

	for _, opt := range options {
		mapped[opt.Name] = opt
	}

	return mapped
}
