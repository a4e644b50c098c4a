package format

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	stepsFileLoadErrorTemplateConstant  = "failed to load pipeline file: %w"
	stepsFileParseErrorTemplateConstant = "failed to parse pipeline file: %w"
	stepsFilePathRequiredConstant       = "pipeline file path must be provided"
	stepsFileEmptyStepsConstant         = "pipeline file must define at least one step"
)

type stepsFileConfiguration struct {
	Steps []StepConfiguration `yaml:"steps"`
}

// LoadStepsFile reads pipeline step definitions from a YAML file. The steps may
// sit at the top level or under a "format" wrapper so the file can double as a
// full application configuration.
func LoadStepsFile(filePath string) ([]StepConfiguration, error) {
	trimmedPath := strings.TrimSpace(filePath)
	if len(trimmedPath) == 0 {
		return nil, errors.New(stepsFilePathRequiredConstant)
	}

	contentBytes, readError := os.ReadFile(trimmedPath)
	if readError != nil {
		return nil, fmt.Errorf(stepsFileLoadErrorTemplateConstant, readError)
	}

	var configuration stepsFileConfiguration
	if unmarshalError := yaml.Unmarshal(contentBytes, &configuration); unmarshalError != nil {
		return nil, fmt.Errorf(stepsFileParseErrorTemplateConstant, unmarshalError)
	}

	if len(configuration.Steps) == 0 {
		var wrapper struct {
			Format stepsFileConfiguration `yaml:"format"`
		}
		if unmarshalError := yaml.Unmarshal(contentBytes, &wrapper); unmarshalError != nil {
			return nil, fmt.Errorf(stepsFileParseErrorTemplateConstant, unmarshalError)
		}
		configuration = wrapper.Format
	}

	if len(configuration.Steps) == 0 {
		return nil, errors.New(stepsFileEmptyStepsConstant)
	}

	return configuration.Steps, nil
}
