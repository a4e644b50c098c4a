package cli_test

import (
	"bytes"
	"io"
	"os"
	"testing"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/KelDakroury/The-Mighty-Todolist-Telegram-Bot/cmd/cli"
	botcmd "github.com/KelDakroury/The-Mighty-Todolist-Telegram-Bot/cmd/cli/bot"
	"github.com/KelDakroury/The-Mighty-Todolist-Telegram-Bot/internal/format"
	"github.com/KelDakroury/The-Mighty-Todolist-Telegram-Bot/internal/report"
)

const (
	embeddedDefaultsCommonTestNameConstant = "CommonDefaults"
	embeddedDefaultsBotTestNameConstant    = "BotDefaults"
	embeddedDefaultsFormatTestNameConstant = "FormatDefaults"
	embeddedDefaultsReportTestNameConstant = "ReportDefaults"
	embeddedDefaultDatabasePathConstant    = "task.db"
	embeddedDefaultTokenVariableConstant   = "TELEGRAM_TOKEN"
	embeddedDefaultSourceSuffixConstant    = ".py"
	embeddedDefaultRootPathConstant        = "."
)

func TestApplicationEmbeddedDefaultsProvideCommandConfigurations(testInstance *testing.T) {
	testCases := []struct {
		name       string
		sectionKey string
		assertion  func(testing.TB, map[string]any)
	}{
		{
			name:       embeddedDefaultsBotTestNameConstant,
			sectionKey: "bot",
			assertion: func(assertionTarget testing.TB, options map[string]any) {
				assertionTarget.Helper()

				var configuration botcmd.Configuration
				decodeConfigurationSection(assertionTarget, options, &configuration)

				assertions := require.New(assertionTarget)
				assertions.Equal(embeddedDefaultTokenVariableConstant, configuration.TokenVariable)
				assertions.Equal(embeddedDefaultDatabasePathConstant, configuration.Database)
				assertions.Equal(60, configuration.PollTimeoutSeconds)
				assertions.Equal("09:00:00", configuration.Reminder.DailyStart)
				assertions.Equal(10, configuration.Reminder.MinimumIntervalMinutes)
				assertions.Equal(24, configuration.Reminder.DueWindowHours)
				assertions.Equal(10, configuration.Reminder.PollIntervalSeconds)
			},
		},
		{
			name:       embeddedDefaultsFormatTestNameConstant,
			sectionKey: "format",
			assertion: func(assertionTarget testing.TB, options map[string]any) {
				assertionTarget.Helper()

				var configuration format.CommandConfiguration
				decodeConfigurationSection(assertionTarget, options, &configuration)

				assertions := require.New(assertionTarget)
				assertions.Equal([]string{embeddedDefaultRootPathConstant}, configuration.Roots)
				assertions.Equal(embeddedDefaultSourceSuffixConstant, configuration.Suffix)
				assertions.True(configuration.Stage)
			},
		},
		{
			name:       embeddedDefaultsReportTestNameConstant,
			sectionKey: "report",
			assertion: func(assertionTarget testing.TB, options map[string]any) {
				assertionTarget.Helper()

				var configuration report.CommandConfiguration
				decodeConfigurationSection(assertionTarget, options, &configuration)

				assertions := require.New(assertionTarget)
				assertions.Equal(embeddedDefaultDatabasePathConstant, configuration.Database)
			},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(t *testing.T) {
			sectionOptions := embeddedConfigurationSection(t, testCase.sectionKey)
			testCase.assertion(t, sectionOptions)
		})
	}
}

func TestApplicationEmbeddedDefaultsProvideCommonConfiguration(testInstance *testing.T) {
	testInstance.Run(embeddedDefaultsCommonTestNameConstant, func(t *testing.T) {
		configuration := decodeEmbeddedApplicationConfiguration(t)

		require.Equal(t, "info", configuration.Common.LogLevel)
		require.Equal(t, "structured", configuration.Common.LogFormat)
	})
}

func TestApplicationRootCommandListsSubcommands(testInstance *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()
	os.Args = []string{"todolist"}

	reader, writer, pipeError := os.Pipe()
	require.NoError(testInstance, pipeError)
	originalStdout := os.Stdout
	os.Stdout = writer
	defer func() {
		os.Stdout = originalStdout
	}()

	executionError := cli.Execute()

	os.Stdout = originalStdout
	require.NoError(testInstance, writer.Close())
	capturedBytes, readError := io.ReadAll(reader)
	require.NoError(testInstance, readError)
	require.NoError(testInstance, reader.Close())

	require.NoError(testInstance, executionError)

	helpOutput := string(capturedBytes)
	require.Contains(testInstance, helpOutput, "format")
	require.Contains(testInstance, helpOutput, "bot")
	require.Contains(testInstance, helpOutput, "notify")
	require.Contains(testInstance, helpOutput, "report")
}

func embeddedConfigurationSection(testingInstance testing.TB, sectionKey string) map[string]any {
	testingInstance.Helper()

	viperInstance := readEmbeddedConfiguration(testingInstance)
	sectionOptions := viperInstance.GetStringMap(sectionKey)
	require.NotEmpty(testingInstance, sectionOptions)
	return sectionOptions
}

func decodeEmbeddedApplicationConfiguration(testingInstance testing.TB) cli.ApplicationConfiguration {
	testingInstance.Helper()

	viperInstance := readEmbeddedConfiguration(testingInstance)

	var configuration cli.ApplicationConfiguration
	unmarshalError := viperInstance.Unmarshal(&configuration)
	require.NoError(testingInstance, unmarshalError)

	return configuration
}

func readEmbeddedConfiguration(testingInstance testing.TB) *viper.Viper {
	testingInstance.Helper()

	configurationData, configurationType := cli.EmbeddedDefaultConfiguration()
	viperInstance := viper.New()
	viperInstance.SetConfigType(configurationType)

	readError := viperInstance.ReadConfig(bytes.NewReader(configurationData))
	require.NoError(testingInstance, readError)

	return viperInstance
}

func decodeConfigurationSection(testingInstance testing.TB, options map[string]any, target any) {
	testingInstance.Helper()

	decoder, decoderError := mapstructure.NewDecoder(&mapstructure.DecoderConfig{TagName: "mapstructure", Result: target})
	require.NoError(testingInstance, decoderError)

	decodeError := decoder.Decode(options)
	require.NoError(testingInstance, decodeError)
}
