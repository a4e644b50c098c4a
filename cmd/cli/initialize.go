package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

const (
	initializeFlagNameConstant                = "init"
	initializeFlagUsageConstant               = "Write the embedded default configuration to config.yaml (use --init=user for the home directory)."
	initializeLocalScopeConstant              = "local"
	initializeUserScopeConstant               = "user"
	forceFlagNameConstant                     = "force"
	forceFlagUsageConstant                    = "Overwrite an existing configuration file when combined with --init."
	userConfigurationDirectoryNameConstant    = ".todolist"
	configurationFileNameConstant             = "config.yaml"
	configurationFileCreatedMessageConstant   = "configuration file created"
	initializeUnknownScopeTemplateConstant    = "unsupported configuration scope: %s"
	initializeExistingFileTemplateConstant    = "configuration file %s already exists (use --force to overwrite)"
	initializeHomeDirectoryTemplateConstant   = "unable to determine home directory: %w"
	initializeCreateDirectoryTemplateConstant = "unable to create configuration directory %s: %w"
	initializeWriteFileTemplateConstant       = "unable to write configuration file %s: %w"
	configurationDirectoryPermissionConstant  = fs.FileMode(0o755)
	configurationFilePermissionConstant       = fs.FileMode(0o644)
	initializeScopeFieldConstant              = "scope"
)

func (application *Application) initializeConfigurationFile(initializationScope string) error {
	targetPath, targetPathError := application.configurationFileTargetPath(initializationScope)
	if targetPathError != nil {
		return targetPathError
	}

	if !application.forceFlagValue {
		if _, statError := os.Stat(targetPath); statError == nil {
			return fmt.Errorf(initializeExistingFileTemplateConstant, targetPath)
		}
	}

	targetDirectory := filepath.Dir(targetPath)
	if directoryError := os.MkdirAll(targetDirectory, configurationDirectoryPermissionConstant); directoryError != nil {
		return fmt.Errorf(initializeCreateDirectoryTemplateConstant, targetDirectory, directoryError)
	}

	embeddedConfiguration, _ := EmbeddedDefaultConfiguration()
	if writeError := os.WriteFile(targetPath, embeddedConfiguration, configurationFilePermissionConstant); writeError != nil {
		return fmt.Errorf(initializeWriteFileTemplateConstant, targetPath, writeError)
	}

	application.logger.Info(
		configurationFileCreatedMessageConstant,
		zap.String(initializeScopeFieldConstant, initializationScope),
		zap.String(configurationFileFieldConstant, targetPath),
	)

	return nil
}

func (application *Application) configurationFileTargetPath(initializationScope string) (string, error) {
	switch initializationScope {
	case initializeLocalScopeConstant:
		return configurationFileNameConstant, nil
	case initializeUserScopeConstant:
		homeDirectory, homeDirectoryError := os.UserHomeDir()
		if homeDirectoryError != nil {
			return "", fmt.Errorf(initializeHomeDirectoryTemplateConstant, homeDirectoryError)
		}
		return filepath.Join(homeDirectory, userConfigurationDirectoryNameConstant, configurationFileNameConstant), nil
	default:
		return "", fmt.Errorf(initializeUnknownScopeTemplateConstant, initializationScope)
	}
}
