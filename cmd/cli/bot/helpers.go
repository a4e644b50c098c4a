package bot

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KelDakroury/The-Mighty-Todolist-Telegram-Bot/internal/utils"
	flagutils "github.com/KelDakroury/The-Mighty-Todolist-Telegram-Bot/internal/utils/flags"
	pathutils "github.com/KelDakroury/The-Mighty-Todolist-Telegram-Bot/internal/utils/path"
)

const (
	defaultEnvironmentFileNameConstant   = ".env"
	environmentFileErrorTemplateConstant = "unable to load environment file %s: %w"
	missingTokenErrorTemplateConstant    = "telegram bot token environment variable %s is not set"
	telegramConnectErrorTemplateConstant = "unable to connect to telegram: %w"
)

var environmentFileContextAccessor = utils.NewCommandContextAccessor()

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

func resolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// loadEnvironmentFile applies dotenv variables before the token lookup. A
// missing file is not an error; the variables may come from the environment.
func loadEnvironmentFile(command *cobra.Command) error {
	environmentFilePath := defaultEnvironmentFileNameConstant
	if command != nil {
		if contextPath, pathAvailable := environmentFileContextAccessor.EnvironmentFilePath(command.Context()); pathAvailable {
			environmentFilePath = contextPath
		}
	}

	loadError := godotenv.Load(environmentFilePath)
	if loadError == nil || errors.Is(loadError, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf(environmentFileErrorTemplateConstant, environmentFilePath, loadError)
}

func requireToken(tokenVariable string) (string, error) {
	token := strings.TrimSpace(os.Getenv(tokenVariable))
	if len(token) == 0 {
		return "", fmt.Errorf(missingTokenErrorTemplateConstant, tokenVariable)
	}
	return token, nil
}

func newBotClient(tokenVariable string) (*tgbotapi.BotAPI, error) {
	token, tokenError := requireToken(tokenVariable)
	if tokenError != nil {
		return nil, tokenError
	}

	client, clientError := tgbotapi.NewBotAPI(token)
	if clientError != nil {
		return nil, fmt.Errorf(telegramConnectErrorTemplateConstant, clientError)
	}
	return client, nil
}

func resolveDatabasePath(command *cobra.Command, storageFlagValues *flagutils.StorageFlagValues, configuredPath string) string {
	homeExpander := pathutils.NewHomeExpander()
	if command != nil && command.Flags().Changed(flagutils.DatabaseFlagName) && storageFlagValues != nil {
		flagPath := strings.TrimSpace(storageFlagValues.DatabasePath)
		if len(flagPath) > 0 {
			return homeExpander.Expand(flagPath)
		}
	}
	return homeExpander.Expand(configuredPath)
}

func resolveTokenVariable(command *cobra.Command, messengerFlagValues *flagutils.MessengerFlagValues, configuredVariable string) string {
	if command != nil && command.Flags().Changed(flagutils.TokenVariableFlagName) && messengerFlagValues != nil {
		flagVariable := strings.TrimSpace(messengerFlagValues.TokenVariable)
		if len(flagVariable) > 0 {
			return flagVariable
		}
	}
	return configuredVariable
}
