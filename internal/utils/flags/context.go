package flags

import "github.com/spf13/cobra"

const (
	// DefaultRootFlagName exposes the shared source root flag name.
	DefaultRootFlagName = "root"
	// DefaultRootFlagUsage describes the shared source root flag purpose.
	DefaultRootFlagUsage = "Source directories to scan (repeatable)"
	// DryRunFlagName exposes the shared dry-run flag name.
	DryRunFlagName = "dry-run"
	// DryRunFlagUsage describes the shared dry-run flag purpose.
	DryRunFlagUsage = "Preview operations without making changes"
	// DatabaseFlagName exposes the shared task database flag name.
	DatabaseFlagName = "database"
	// DatabaseFlagUsage describes the shared task database flag purpose.
	DatabaseFlagUsage = "Path to the task database file"
	// TokenVariableFlagName exposes the shared bot token environment variable flag name.
	TokenVariableFlagName = "token-env"
	// TokenVariableFlagUsage describes the shared bot token environment variable flag purpose.
	TokenVariableFlagUsage = "Environment variable holding the Telegram bot token"
)

// StorageFlagDefinition captures configuration for task storage context flags.
type StorageFlagDefinition struct {
	Name    string
	Usage   string
	Enabled bool
}

// StorageFlagValues stores task storage context flag values.
type StorageFlagValues struct {
	DatabasePath string
}

// BindStorageFlags attaches task storage context flags to the provided command.
func BindStorageFlags(command *cobra.Command, defaults StorageFlagValues, definition StorageFlagDefinition) *StorageFlagValues {
	values := defaults
	if command == nil {
		return &values
	}
	if !definition.Enabled {
		return &values
	}

	flagName := definition.Name
	if len(flagName) == 0 {
		flagName = DatabaseFlagName
	}
	flagUsage := definition.Usage
	if len(flagUsage) == 0 {
		flagUsage = DatabaseFlagUsage
	}

	command.Flags().StringVar(&values.DatabasePath, flagName, defaults.DatabasePath, flagUsage)
	return &values
}

// MessengerFlagDefinition captures configuration for messenger credential flags.
type MessengerFlagDefinition struct {
	Name    string
	Usage   string
	Enabled bool
}

// MessengerFlagValues stores messenger credential flag values.
type MessengerFlagValues struct {
	TokenVariable string
}

// BindMessengerFlags attaches messenger credential flags to the provided command.
func BindMessengerFlags(command *cobra.Command, defaults MessengerFlagValues, definition MessengerFlagDefinition) *MessengerFlagValues {
	values := defaults
	if command == nil {
		return &values
	}
	if !definition.Enabled {
		return &values
	}

	flagName := definition.Name
	if len(flagName) == 0 {
		flagName = TokenVariableFlagName
	}
	flagUsage := definition.Usage
	if len(flagUsage) == 0 {
		flagUsage = TokenVariableFlagUsage
	}

	command.Flags().StringVar(&values.TokenVariable, flagName, defaults.TokenVariable, flagUsage)
	return &values
}

// RootFlagDefinition captures configuration for source root flags.
type RootFlagDefinition struct {
	Name       string
	Usage      string
	Enabled    bool
	Persistent bool
}

// RootFlagValues stores source root flag values.
type RootFlagValues struct {
	Roots []string
}

// BindRootFlags attaches standard source root flags to the provided command.
func BindRootFlags(command *cobra.Command, defaults RootFlagValues, definition RootFlagDefinition) *RootFlagValues {
	values := RootFlagValues{Roots: append([]string{}, defaults.Roots...)}
	if command == nil {
		return &values
	}
	if !definition.Enabled {
		return &values
	}
	flagName := definition.Name
	if len(flagName) == 0 {
		flagName = DefaultRootFlagName
	}
	flagUsage := definition.Usage
	if len(flagUsage) == 0 {
		flagUsage = DefaultRootFlagUsage
	}

	targetSet := command.PersistentFlags()
	if !definition.Persistent {
		targetSet = command.Flags()
	}

	if targetSet.Lookup(flagName) == nil {
		targetSet.StringSliceVar(&values.Roots, flagName, values.Roots, flagUsage)
	}

	if definition.Persistent {
		if command.Flags().Lookup(flagName) == nil {
			if persistentFlag := targetSet.Lookup(flagName); persistentFlag != nil {
				command.Flags().AddFlag(persistentFlag)
			}
		}
	}
	return &values
}
