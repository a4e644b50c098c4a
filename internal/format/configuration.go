package format

import "strings"

const (
	defaultSourceFileSuffixConstant = ".py"
	defaultRootPathConstant         = "."

	configurationRootsKeyConstant  = "roots"
	configurationSuffixKeyConstant = "suffix"
	configurationDryRunKeyConstant = "dry_run"
	configurationStageKeyConstant  = "stage"
)

// CommandConfiguration captures persistent settings for the format command.
type CommandConfiguration struct {
	Roots  []string            `mapstructure:"roots"`
	Suffix string              `mapstructure:"suffix"`
	DryRun bool                `mapstructure:"dry_run"`
	Stage  bool                `mapstructure:"stage"`
	Steps  []StepConfiguration `mapstructure:"steps"`
}

// StepConfiguration describes one pipeline step loaded from configuration.
// Conditional steps pair a checker command with a fixer template; unconditional
// steps declare a single run template.
type StepConfiguration struct {
	Name    string   `mapstructure:"name" yaml:"name"`
	Checker []string `mapstructure:"checker" yaml:"checker"`
	Fixer   []string `mapstructure:"fixer" yaml:"fixer"`
	Run     []string `mapstructure:"run" yaml:"run"`
}

// DefaultCommandConfiguration returns baseline configuration values for the format command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Roots:  nil,
		Suffix: defaultSourceFileSuffixConstant,
		DryRun: false,
		Stage:  true,
		Steps:  nil,
	}
}

// DefaultConfigurationValues produces Viper defaults for the format command.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + "." + configurationRootsKeyConstant:  []string{defaultRootPathConstant},
		rootKey + "." + configurationSuffixKeyConstant: defaults.Suffix,
		rootKey + "." + configurationDryRunKeyConstant: defaults.DryRun,
		rootKey + "." + configurationStageKeyConstant:  defaults.Stage,
	}
}

// sanitize trims whitespace and applies defaults to unset configuration values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.Roots = sanitizeRoots(configuration.Roots)
	sanitized.Suffix = strings.TrimSpace(configuration.Suffix)
	if len(sanitized.Suffix) == 0 {
		sanitized.Suffix = defaultSourceFileSuffixConstant
	}

	return sanitized
}

func sanitizeRoots(raw []string) []string {
	sanitized := make([]string, 0, len(raw))
	for index := range raw {
		trimmed := strings.TrimSpace(raw[index])
		if len(trimmed) == 0 {
			continue
		}
		sanitized = append(sanitized, trimmed)
	}
	return sanitized
}
