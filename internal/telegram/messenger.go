package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	botClientDependencyNameConstant  = "bot client"
	sendMessageErrorTemplateConstant = "unable to send telegram message: %w"
)

// BotMessenger sends messages through the Telegram Bot API client.
type BotMessenger struct {
	client *tgbotapi.BotAPI
}

// NewBotMessenger validates the client and constructs a BotMessenger.
func NewBotMessenger(client *tgbotapi.BotAPI) (*BotMessenger, error) {
	if client == nil {
		return nil, fmt.Errorf(requiredDependencyTemplateConstant, botClientDependencyNameConstant)
	}
	return &BotMessenger{client: client}, nil
}

// Send delivers a plain-text message to the chat. The Bot API client carries
// no context, so cancellation is honored before the network call.
func (messenger *BotMessenger) Send(executionContext context.Context, chatIdentifier int64, messageText string) error {
	if contextError := executionContext.Err(); contextError != nil {
		return contextError
	}

	message := tgbotapi.NewMessage(chatIdentifier, messageText)
	if _, sendError := messenger.client.Send(message); sendError != nil {
		return fmt.Errorf(sendMessageErrorTemplateConstant, sendError)
	}
	return nil
}
