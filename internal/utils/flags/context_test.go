package flags

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestBindStorageFlagsUsesDefaultsAndParsesValues(t *testing.T) {
	command := &cobra.Command{}

	values := BindStorageFlags(command, StorageFlagValues{DatabasePath: "tasks.db"}, StorageFlagDefinition{Enabled: true})

	require.NotNil(t, values)
	require.Equal(t, "tasks.db", values.DatabasePath)

	parseError := command.ParseFlags([]string{"--" + DatabaseFlagName, "/var/lib/todolist/tasks.db"})
	require.NoError(t, parseError)
	require.Equal(t, "/var/lib/todolist/tasks.db", values.DatabasePath)
}

func TestBindMessengerFlagsUsesDefaultsAndParsesValues(t *testing.T) {
	command := &cobra.Command{}

	values := BindMessengerFlags(command, MessengerFlagValues{TokenVariable: "TELEGRAM_TOKEN"}, MessengerFlagDefinition{Enabled: true})

	require.NotNil(t, values)
	require.Equal(t, "TELEGRAM_TOKEN", values.TokenVariable)

	parseError := command.ParseFlags([]string{"--" + TokenVariableFlagName, "BOT_TOKEN"})
	require.NoError(t, parseError)
	require.Equal(t, "BOT_TOKEN", values.TokenVariable)
}

func TestBindStorageFlagsDisabledLeavesCommandUntouched(t *testing.T) {
	command := &cobra.Command{}

	values := BindStorageFlags(command, StorageFlagValues{DatabasePath: "tasks.db"}, StorageFlagDefinition{Enabled: false})

	require.NotNil(t, values)
	require.Equal(t, "tasks.db", values.DatabasePath)
	require.Nil(t, command.Flags().Lookup(DatabaseFlagName))
}

func TestBindRootFlagsUsesDefaultsAndParsesValues(t *testing.T) {
	command := &cobra.Command{}

	values := BindRootFlags(command, RootFlagValues{Roots: []string{"/tmp/default"}}, RootFlagDefinition{Enabled: true})

	require.NotNil(t, values)
	require.Equal(t, []string{"/tmp/default"}, values.Roots)

	parseError := command.ParseFlags([]string{"--" + DefaultRootFlagName, "/workspace", "--" + DefaultRootFlagName, "/projects"})
	require.NoError(t, parseError)
	require.Equal(t, []string{"/workspace", "/projects"}, values.Roots)
}
