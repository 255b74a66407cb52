// Package services contain the bot's command orchestration and the place
// selection protocol. Everything here talks to the outside world exclusively
// through the interfaces in the ports package.
package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/sean-rowe/weather-bot/internal/core/domain"
	"github.com/sean-rowe/weather-bot/internal/core/ports"
)

// SelectionKind enumerates the terminal outcomes of the selection protocol.
type SelectionKind int

const (
	// SelectionUnique means exactly one candidate existed, or exactly one
	// candidate's canonical name matched the search term.
	SelectionUnique SelectionKind = iota

	// SelectionOneOfMany means the user explicitly picked one candidate
	// from a presented list.
	SelectionOneOfMany

	// SelectionAborted means no usable choice was made within the time
	// window. Not an error: the caller sends a notice and stops.
	SelectionAborted

	// SelectionFailed means the candidate list was empty or the prompt
	// could not be delivered.
	SelectionFailed
)

// Selection is the resolved outcome of one selection run. Place is non-nil
// exactly for the Unique and OneOfMany kinds; Err is non-nil exactly for
// Failed.
type Selection struct {
	Kind  SelectionKind
	Place *domain.Place
	Err   error
}

// SelectorConfig carries the tunables of the selection protocol.
type SelectorConfig struct {
	// Timeout bounds the wait for a user choice.
	Timeout time.Duration

	// MaxOptionWidth is the maximum rune width of one menu option label.
	MaxOptionWidth int

	// OnOutcome, when set, observes the terminal outcome of every
	// selection run ("unique", "chosen", "aborted", "failed").
	OnOutcome func(outcome string)
}

// Selector resolves a list of geocoding candidates to a single place,
// interactively when the list is ambiguous.
type Selector struct {
	localizer ports.Localizer
	cfg       SelectorConfig
	logger    *zap.Logger
}

// NewSelector creates a selection protocol instance.
func NewSelector(localizer ports.Localizer, cfg SelectorConfig, logger *zap.Logger) *Selector {
	return &Selector{
		localizer: localizer,
		cfg:       cfg,
		logger:    logger,
	}
}

// Resolve decides whether the candidate list resolves on its own or needs an
// interactive exchange, and drives that exchange over the conversation.
//
// A single candidate resolves immediately. With several candidates, the one
// whose canonical name equals the search term verbatim wins, but only when
// no other candidate also matches exactly; any tie falls through to the
// interactive prompt. Callers are expected to special-case empty lists
// before calling; an empty list here fails fast.
func (s *Selector) Resolve(ctx context.Context, conv ports.Conversation, searchTerm string, places []domain.Place) Selection {
	selection := s.resolve(ctx, conv, searchTerm, places)
	s.report(selection.Kind)

	return selection
}

func (s *Selector) resolve(ctx context.Context, conv ports.Conversation, searchTerm string, places []domain.Place) Selection {
	if len(places) == 0 {
		return Selection{Kind: SelectionFailed, Err: errors.New("received an empty set of place candidates")}
	}

	if len(places) == 1 {
		return Selection{Kind: SelectionUnique, Place: &places[0]}
	}

	if idx, ok := exactMatch(searchTerm, places); ok {
		return Selection{Kind: SelectionUnique, Place: &places[idx]}
	}

	return s.promptUser(ctx, conv, places)
}

func (s *Selector) report(kind SelectionKind) {
	if s.cfg.OnOutcome == nil {
		return
	}

	switch kind {
	case SelectionUnique:
		s.cfg.OnOutcome("unique")
	case SelectionOneOfMany:
		s.cfg.OnOutcome("chosen")
	case SelectionAborted:
		s.cfg.OnOutcome("aborted")
	default:
		s.cfg.OnOutcome("failed")
	}
}

// exactMatch returns the index of the single candidate whose canonical name
// equals the search term verbatim. Zero or multiple exact matches report
// false.
func exactMatch(searchTerm string, places []domain.Place) (int, bool) {
	idx, count := -1, 0

	for i := range places {
		if places[i].Name.Local == searchTerm {
			idx = i
			count++
		}
	}

	return idx, count == 1
}

// promptUser presents the candidates as a single-choice menu and waits for
// one matching choice event within the configured timeout.
func (s *Selector) promptUser(ctx context.Context, conv ports.Conversation, places []domain.Place) Selection {
	options := make([]string, len(places))

	for i := range places {
		options[i] = domain.TruncateEllipsis(places[i].Label(), s.cfg.MaxOptionWidth, "...")
	}

	prompt := s.localizer.Lookup("place-selection-which-one", nil)

	handle, err := conv.SendPrompt(ctx, prompt, options)
	if err != nil {
		// The wait can never be satisfied if the prompt never went out.
		return Selection{Kind: SelectionFailed, Err: fmt.Errorf("send selection prompt: %w", err)}
	}

	defer conv.DeletePrompt(ctx, handle)

	event, ok := conv.AwaitChoice(ctx, handle, s.cfg.Timeout)
	if !ok {
		s.logger.Debug("place selection timed out",
			zap.String("channel_id", conv.Scope().ChannelID),
			zap.String("user_id", conv.Scope().UserID))

		return Selection{Kind: SelectionAborted}
	}

	index, err := strconv.Atoi(event.Token)
	if err != nil || index < 0 || index >= len(places) {
		// User-controlled input; a garbage token is treated exactly like
		// no answer at all.
		s.logger.Warn("discarding unusable choice token", zap.String("token", event.Token))

		return Selection{Kind: SelectionAborted}
	}

	conv.Acknowledge(ctx, event)

	return Selection{Kind: SelectionOneOfMany, Place: &places[index]}
}
