package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sean-rowe/weather-bot/internal/core/ports"
)

// AccountAgeRequest carries the inputs of one account-age command invocation.
type AccountAgeRequest struct {
	// Username is the display name of the user being looked up.
	Username string

	// CreatedAt is the account creation time, derived by the platform
	// adapter from the account identifier.
	CreatedAt time.Time
}

// AccountService answers account-age lookups.
type AccountService struct {
	localizer ports.Localizer
	logger    *zap.Logger
}

// NewAccountService creates the account-age command orchestrator.
func NewAccountService(localizer ports.Localizer, logger *zap.Logger) *AccountService {
	return &AccountService{
		localizer: localizer,
		logger:    logger,
	}
}

// Age replies with the localized account creation summary.
func (s *AccountService) Age(ctx context.Context, conv ports.Conversation, req AccountAgeRequest) error {
	return conv.Reply(ctx, s.localizer.Lookup("age-account-created", map[string]any{
		"Username": req.Username,
		"UnixTime": req.CreatedAt.Unix(),
	}))
}
