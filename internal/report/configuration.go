package report

import "strings"

const (
	defaultDatabasePathConstant      = "task.db"
	configurationDatabaseKeyConstant = "database"
)

// CommandConfiguration captures persistent settings for the report command.
type CommandConfiguration struct {
	Database string `mapstructure:"database"`
}

// DefaultCommandConfiguration returns baseline configuration values for the report command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{Database: defaultDatabasePathConstant}
}

// DefaultConfigurationValues produces Viper defaults for the report command.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + "." + configurationDatabaseKeyConstant: defaults.Database,
	}
}

// sanitize trims whitespace and applies defaults to unset configuration values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.Database = strings.TrimSpace(configuration.Database)
	if len(sanitized.Database) == 0 {
		sanitized.Database = defaultDatabasePathConstant
	}
	return sanitized
}
