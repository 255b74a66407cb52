package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/sean-rowe/weather-bot/internal/core/domain"
	"github.com/sean-rowe/weather-bot/internal/core/ports"
)

// stubLocalizer echoes the message ID so tests can assert on stable values.
type stubLocalizer struct{}

func (stubLocalizer) Lookup(messageID string, _ map[string]any) string {
	return messageID
}

// MockConversation is a mock implementation of the Conversation interface.
type MockConversation struct {
	mock.Mock
}

func (m *MockConversation) Scope() ports.Scope {
	args := m.Called()
	return args.Get(0).(ports.Scope)
}

func (m *MockConversation) Reply(ctx context.Context, text string) error {
	args := m.Called(ctx, text)
	return args.Error(0)
}

func (m *MockConversation) Announce(ctx context.Context, text string) error {
	args := m.Called(ctx, text)
	return args.Error(0)
}

func (m *MockConversation) SendPrompt(ctx context.Context, text string, options []string) (ports.PromptHandle, error) {
	args := m.Called(ctx, text, options)
	return args.Get(0).(ports.PromptHandle), args.Error(1)
}

func (m *MockConversation) AwaitChoice(ctx context.Context, handle ports.PromptHandle, timeout time.Duration) (ports.ChoiceEvent, bool) {
	args := m.Called(ctx, handle, timeout)
	return args.Get(0).(ports.ChoiceEvent), args.Bool(1)
}

func (m *MockConversation) Acknowledge(ctx context.Context, event ports.ChoiceEvent) {
	m.Called(ctx, event)
}

func (m *MockConversation) DeletePrompt(ctx context.Context, handle ports.PromptHandle) {
	m.Called(ctx, handle)
}

// MockGeocoder is a mock implementation of the Geocoder interface.
type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Search(ctx context.Context, query string) ([]domain.Place, error) {
	args := m.Called(ctx, query)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Place), args.Error(1)
}

// MockForecastClient is a mock implementation of the ForecastClient interface.
type MockForecastClient struct {
	mock.Mock
}

func (m *MockForecastClient) CurrentTemperature(ctx context.Context, coords domain.Coordinates) (domain.TemperatureReading, error) {
	args := m.Called(ctx, coords)
	return args.Get(0).(domain.TemperatureReading), args.Error(1)
}

// MockHistoryClient is a mock implementation of the HistoryClient interface.
type MockHistoryClient struct {
	mock.Mock
}

func (m *MockHistoryClient) HourlyTemperatures(ctx context.Context, coords domain.Coordinates, start, end time.Time, timezone string) (domain.TemperatureSeries, error) {
	args := m.Called(ctx, coords, start, end, timezone)
	return args.Get(0).(domain.TemperatureSeries), args.Error(1)
}

// stubTimezones resolves every coordinate pair to a fixed zone.
type stubTimezones struct {
	zone string
}

func (s stubTimezones) Resolve(lat, lon float64) string {
	return s.zone
}
