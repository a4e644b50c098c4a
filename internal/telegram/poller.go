package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const (
	defaultPollTimeoutSecondsConstant    = 60
	initialUpdateOffsetConstant          = 0
	updateProviderDependencyNameConstant = "update provider"
	dispatcherDependencyNameConstant     = "command dispatcher"
	commandHandlingFailedMessageConstant = "command handling failed"
	pollingStartedMessageConstant        = "polling for updates"
	pollTimeoutFieldNameConstant         = "poll_timeout_seconds"
)

// UpdateProvider supplies the long-polling update stream. It is the minimal
// surface of tgbotapi.BotAPI the poller needs.
type UpdateProvider interface {
	GetUpdatesChan(configuration tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Poller consumes Telegram updates and feeds bot commands to the dispatcher.
type Poller struct {
	updateProvider UpdateProvider
	dispatcher     CommandDispatcher
	timeoutSeconds int
	logger         *zap.Logger
}

// NewPoller validates dependencies and constructs a Poller. A non-positive
// timeout falls back to the default long-polling timeout.
func NewPoller(updateProvider UpdateProvider, dispatcher CommandDispatcher, timeoutSeconds int, logger *zap.Logger) (*Poller, error) {
	if updateProvider == nil {
		return nil, fmt.Errorf(requiredDependencyTemplateConstant, updateProviderDependencyNameConstant)
	}
	if dispatcher == nil {
		return nil, fmt.Errorf(requiredDependencyTemplateConstant, dispatcherDependencyNameConstant)
	}
	if timeoutSeconds <= 0 {
		timeoutSeconds = defaultPollTimeoutSecondsConstant
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Poller{
		updateProvider: updateProvider,
		dispatcher:     dispatcher,
		timeoutSeconds: timeoutSeconds,
		logger:         logger,
	}, nil
}

// Run drains the update stream until the context is cancelled or the stream
// closes. Dispatch failures are logged and polling continues; one failed reply
// must not stop the bot.
func (poller *Poller) Run(executionContext context.Context) error {
	updateConfiguration := tgbotapi.NewUpdate(initialUpdateOffsetConstant)
	updateConfiguration.Timeout = poller.timeoutSeconds
	updatesChannel := poller.updateProvider.GetUpdatesChan(updateConfiguration)

	poller.logger.Info(pollingStartedMessageConstant, zap.Int(pollTimeoutFieldNameConstant, poller.timeoutSeconds))

	for {
		select {
		case <-executionContext.Done():
			poller.updateProvider.StopReceivingUpdates()
			return nil
		case update, channelOpen := <-updatesChannel:
			if !channelOpen {
				return nil
			}
			poller.handleUpdate(executionContext, update)
		}
	}
}

func (poller *Poller) handleUpdate(executionContext context.Context, update tgbotapi.Update) {
	incoming, isCommand := commandFromUpdate(update)
	if !isCommand {
		return
	}
	if dispatchError := poller.dispatcher.DispatchCommand(executionContext, incoming); dispatchError != nil {
		poller.logger.Warn(commandHandlingFailedMessageConstant,
			zap.String(commandFieldNameConstant, incoming.CommandName),
			zap.Error(dispatchError),
		)
	}
}

// commandFromUpdate extracts a bot command from an update. Updates without a
// command message are ignored, mirroring a dispatcher that only registers
// command handlers.
func commandFromUpdate(update tgbotapi.Update) (IncomingCommand, bool) {
	message := update.Message
	if message == nil || message.Chat == nil || !message.IsCommand() {
		return IncomingCommand{}, false
	}

	incoming := IncomingCommand{
		ChatIdentifier: message.Chat.ID,
		CommandName:    message.Command(),
		ArgumentText:   message.CommandArguments(),
	}
	if message.From != nil {
		incoming.UserIdentifier = message.From.ID
	}
	return incoming, true
}
