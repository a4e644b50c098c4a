package bot

import (
	"strings"

	"github.com/KelDakroury/The-Mighty-Todolist-Telegram-Bot/internal/reminder"
)

const (
	configurationTokenVariableKeyConstant = "token_env"
	configurationDatabaseKeyConstant      = "database"
	configurationPollTimeoutKeyConstant   = "poll_timeout_seconds"
	reminderConfigurationKeyConstant      = "reminder"
	reminderDailyStartKeyConstant         = "daily_start"
	reminderMinimumIntervalKeyConstant    = "minimum_interval_minutes"
	reminderDueWindowKeyConstant          = "due_window_hours"
	reminderPollIntervalKeyConstant       = "poll_interval_seconds"

	defaultTokenVariableConstant      = "TELEGRAM_TOKEN"
	defaultDatabasePathConstant       = "task.db"
	defaultPollTimeoutSecondsConstant = 60
)

// Configuration captures bot command configuration values.
type Configuration struct {
	TokenVariable      string                         `mapstructure:"token_env"`
	Database           string                         `mapstructure:"database"`
	PollTimeoutSeconds int                            `mapstructure:"poll_timeout_seconds"`
	Reminder           reminder.ScheduleConfiguration `mapstructure:"reminder"`
}

// DefaultConfiguration returns baseline configuration values for the bot commands.
func DefaultConfiguration() Configuration {
	return Configuration{
		TokenVariable:      defaultTokenVariableConstant,
		Database:           defaultDatabasePathConstant,
		PollTimeoutSeconds: defaultPollTimeoutSecondsConstant,
		Reminder:           reminder.DefaultScheduleConfiguration(),
	}
}

// DefaultConfigurationValues produces Viper defaults for the bot commands.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultConfiguration()
	reminderKey := rootKey + "." + reminderConfigurationKeyConstant
	return map[string]any{
		rootKey + "." + configurationTokenVariableKeyConstant:  defaults.TokenVariable,
		rootKey + "." + configurationDatabaseKeyConstant:       defaults.Database,
		rootKey + "." + configurationPollTimeoutKeyConstant:    defaults.PollTimeoutSeconds,
		reminderKey + "." + reminderDailyStartKeyConstant:      defaults.Reminder.DailyStart,
		reminderKey + "." + reminderMinimumIntervalKeyConstant: defaults.Reminder.MinimumIntervalMinutes,
		reminderKey + "." + reminderDueWindowKeyConstant:       defaults.Reminder.DueWindowHours,
		reminderKey + "." + reminderPollIntervalKeyConstant:    defaults.Reminder.PollIntervalSeconds,
	}
}

// sanitize normalizes bot configuration values.
func (configuration Configuration) sanitize() Configuration {
	sanitized := configuration
	sanitized.TokenVariable = strings.TrimSpace(configuration.TokenVariable)
	if len(sanitized.TokenVariable) == 0 {
		sanitized.TokenVariable = defaultTokenVariableConstant
	}
	sanitized.Database = strings.TrimSpace(configuration.Database)
	if len(sanitized.Database) == 0 {
		sanitized.Database = defaultDatabasePathConstant
	}
	if sanitized.PollTimeoutSeconds <= 0 {
		sanitized.PollTimeoutSeconds = defaultPollTimeoutSecondsConstant
	}
	return sanitized
}
