// Package localization provides the user-facing message catalog. Messages
// are registered programmatically per language; lookups degrade to the
// message ID itself so a missing translation never breaks a reply.
package localization

import (
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// Catalog resolves message IDs to localized strings.
type Catalog struct {
	localizer *i18n.Localizer
	logger    *zap.Logger
}

// NewCatalog creates a catalog answering in the given BCP 47 language,
// falling back to German for languages without translations.
func NewCatalog(lang string, logger *zap.Logger) *Catalog {
	bundle := i18n.NewBundle(language.German)

	bundle.MustAddMessages(language.German, germanMessages...)
	bundle.MustAddMessages(language.English, englishMessages...)

	return &Catalog{
		localizer: i18n.NewLocalizer(bundle, lang),
		logger:    logger,
	}
}

// Lookup renders the message with the given template arguments. Unknown IDs
// and template failures return the ID itself so callers always get a string.
func (c *Catalog) Lookup(messageID string, args map[string]any) string {
	msg, err := c.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: args,
	})

	if err != nil {
		c.logger.Warn("message lookup failed",
			zap.String("message_id", messageID),
			zap.Error(err))

		return messageID
	}

	return msg
}

// The <t:...:f> and <t:...:R> tokens are chat platform timestamp markup and
// render in the reader's own timezone and locale.
var germanMessages = []*i18n.Message{
	{
		ID:    "place-not-found",
		Other: "Ich habe leider keinen Ort namens \"{{.SearchTerm}}\" gefunden.",
	},
	{
		ID:    "place-selection-which-one",
		Other: "Welchen Ort meinst du?",
	},
	{
		ID:    "place-selection-timeout",
		Other: "Keine Auswahl getroffen, die Anfrage wurde verworfen.",
	},
	{
		ID:    "timestamp-parse-error",
		Other: "Ich konnte \"{{.Date}} {{.Time}}\" nicht als Zeitpunkt verstehen.",
	},
	{
		ID:    "temperature-success",
		Other: "{{.Place}}: <t:{{.UnixTime}}:f> waren es {{.Celsius}} °C.",
	},
	{
		ID:    "temperature-not-found",
		Other: "Für {{.Place}} habe ich zu diesem Zeitpunkt leider keine Messung.",
	},
	{
		ID:    "response-invoked-by",
		Other: "{{.UserMention}} wollte es wissen:\n{{.Message}}",
	},
	{
		ID:    "age-account-created",
		Other: "Das Konto von {{.Username}} wurde <t:{{.UnixTime}}:R> erstellt (<t:{{.UnixTime}}:f>).",
	},
	{
		ID:    "command-failed",
		Other: "Da ist leider etwas schiefgelaufen. Versuch es später noch einmal.",
	},
}

var englishMessages = []*i18n.Message{
	{
		ID:    "place-not-found",
		Other: "Sorry, I could not find any place called \"{{.SearchTerm}}\".",
	},
	{
		ID:    "place-selection-which-one",
		Other: "Which place do you mean?",
	},
	{
		ID:    "place-selection-timeout",
		Other: "No choice was made, the request has been discarded.",
	},
	{
		ID:    "timestamp-parse-error",
		Other: "I could not make sense of \"{{.Date}} {{.Time}}\" as a point in time.",
	},
	{
		ID:    "temperature-success",
		Other: "{{.Place}}: <t:{{.UnixTime}}:f> it was {{.Celsius}} °C.",
	},
	{
		ID:    "temperature-not-found",
		Other: "Sorry, I have no measurement for {{.Place}} at that time.",
	},
	{
		ID:    "response-invoked-by",
		Other: "{{.UserMention}} wanted to know:\n{{.Message}}",
	},
	{
		ID:    "age-account-created",
		Other: "The account of {{.Username}} was created <t:{{.UnixTime}}:R> (<t:{{.UnixTime}}:f>).",
	},
	{
		ID:    "command-failed",
		Other: "Something went wrong, please try again later.",
	},
}
