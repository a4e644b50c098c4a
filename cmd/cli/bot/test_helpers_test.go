package bot_test

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/KelDakroury/The-Mighty-Todolist-Telegram-Bot/internal/tasks"
)

type fakeUpdateProvider struct {
	updatesChannel chan tgbotapi.Update
	stopCalls      int
}

func newFakeUpdateProvider(updates ...tgbotapi.Update) *fakeUpdateProvider {
	provider := &fakeUpdateProvider{updatesChannel: make(chan tgbotapi.Update, len(updates))}
	for _, update := range updates {
		provider.updatesChannel <- update
	}
	close(provider.updatesChannel)
	return provider
}

func (provider *fakeUpdateProvider) GetUpdatesChan(_ tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return provider.updatesChannel
}

func (provider *fakeUpdateProvider) StopReceivingUpdates() {
	provider.stopCalls++
}

type deliveredMessage struct {
	chatIdentifier int64
	messageText    string
}

// recordingMessenger is shared between the poller and scheduler goroutines.
type recordingMessenger struct {
	mutex     sync.Mutex
	delivered []deliveredMessage
}

func (messenger *recordingMessenger) Send(_ context.Context, chatIdentifier int64, messageText string) error {
	messenger.mutex.Lock()
	defer messenger.mutex.Unlock()
	messenger.delivered = append(messenger.delivered, deliveredMessage{chatIdentifier: chatIdentifier, messageText: messageText})
	return nil
}

func (messenger *recordingMessenger) messages() []deliveredMessage {
	messenger.mutex.Lock()
	defer messenger.mutex.Unlock()
	return append([]deliveredMessage{}, messenger.delivered...)
}

type fixedClock struct {
	moment time.Time
}

func (clock fixedClock) Now() time.Time {
	return clock.moment
}

func commandUpdate(commandText string) tgbotapi.Update {
	commandLength := len(commandText)
	if spaceIndex := strings.Index(commandText, " "); spaceIndex >= 0 {
		commandLength = spaceIndex
	}
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			Text:     commandText,
			Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: commandLength}},
			Chat:     &tgbotapi.Chat{ID: 555},
			From:     &tgbotapi.User{ID: 100},
		},
	}
}

func seedTaskDatabase(testInstance *testing.T, seededTasks ...tasks.Task) string {
	testInstance.Helper()

	databasePath := filepath.Join(testInstance.TempDir(), "task.db")
	store, openError := tasks.OpenStore(context.Background(), databasePath)
	require.NoError(testInstance, openError)
	defer func() {
		require.NoError(testInstance, store.Close())
	}()

	for _, seededTask := range seededTasks {
		_, insertError := store.Insert(context.Background(), seededTask)
		require.NoError(testInstance, insertError)
	}
	return databasePath
}

func executeCommand(testInstance *testing.T, command *cobra.Command, arguments []string) (string, error) {
	testInstance.Helper()

	command.SetContext(context.Background())
	command.SetArgs(arguments)

	outputBuffer := &strings.Builder{}
	command.SetOut(outputBuffer)
	command.SetErr(outputBuffer)

	executionError := command.Execute()
	return outputBuffer.String(), executionError
}
