package telegram_test

import (
	"context"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"

	"github.com/KelDakroury/The-Mighty-Todolist-Telegram-Bot/internal/telegram"
)

func TestNewBotMessengerRejectsNilClient(testInstance *testing.T) {
	_, constructionError := telegram.NewBotMessenger(nil)
	require.EqualError(testInstance, constructionError, "bot client is required")
}

func TestBotMessengerHonorsCancelledContext(testInstance *testing.T) {
	// The zero client never reaches the network: cancellation is checked first.
	messenger, constructionError := telegram.NewBotMessenger(&tgbotapi.BotAPI{})
	require.NoError(testInstance, constructionError)

	cancelledContext, cancelFunction := context.WithCancel(context.Background())
	cancelFunction()

	sendError := messenger.Send(cancelledContext, 555, "hello")
	require.ErrorIs(testInstance, sendError, context.Canceled)
}
