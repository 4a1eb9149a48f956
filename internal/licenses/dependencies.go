package licenses

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

const (
	dependencyNameFieldConstant              = "name"
	dependencyVersionFieldConstant           = "version"
	dependencyPackageNamePlaceholderConstant = "{name}"
	dependencyVersionPlaceholderConstant     = "{version}"
	dependenciesReadErrorTemplateConstant    = "unable to read dependency list %s: %w"
	dependenciesParseErrorTemplateConstant   = "unable to parse dependency list %s: %w"
	dependencyRecordErrorTemplateConstant    = "dependency list %s: record %d: %w"
	dependencyDecoderErrorTemplateConstant   = "unable to build dependency decoder: %w"
)

var (
	errDependencyNameMissing  = errors.New("record has no string \"name\" field")
	errDependencyListNotArray = errors.New("expected a JSON array of dependency records, found null")
)

// DependenciesFileName renders the dependency list file name for the package under build.
func DependenciesFileName(fileNameTemplate string, packageName string, packageVersion string) string {
	replacer := strings.NewReplacer(
		dependencyPackageNamePlaceholderConstant, packageName,
		dependencyVersionPlaceholderConstant, packageVersion,
	)
	return replacer.Replace(fileNameTemplate)
}

// LoadDependencies reads the cargo dependency list stored as a JSON array of objects.
func LoadDependencies(fileSystem FileSystem, dependenciesFilePath string) ([]Dependency, error) {
	contents, readError := fileSystem.ReadFile(dependenciesFilePath)
	if readError != nil {
		return nil, fmt.Errorf(dependenciesReadErrorTemplateConstant, dependenciesFilePath, readError)
	}

	var rawRecords []map[string]any
	if parseError := json.Unmarshal(contents, &rawRecords); parseError != nil {
		return nil, fmt.Errorf(dependenciesParseErrorTemplateConstant, dependenciesFilePath, parseError)
	}
	if rawRecords == nil {
		return nil, fmt.Errorf(dependenciesParseErrorTemplateConstant, dependenciesFilePath, errDependencyListNotArray)
	}

	dependencies := make([]Dependency, 0, len(rawRecords))
	for recordIndex, rawRecord := range rawRecords {
		dependency, decodeError := decodeDependency(rawRecord)
		if decodeError != nil {
			return nil, fmt.Errorf(dependencyRecordErrorTemplateConstant, dependenciesFilePath, recordIndex, decodeError)
		}
		dependencies = append(dependencies, dependency)
	}

	return dependencies, nil
}

// decodeDependency requires only a string name. A version that is not a
// string is kept verbatim in Attributes.
func decodeDependency(rawRecord map[string]any) (Dependency, error) {
	if _, nameIsString := rawRecord[dependencyNameFieldConstant].(string); !nameIsString {
		return Dependency{}, errDependencyNameMissing
	}

	decoderInput := make(map[string]any, len(rawRecord))
	for fieldName, fieldValue := range rawRecord {
		decoderInput[fieldName] = fieldValue
	}

	rawVersion, hasVersion := rawRecord[dependencyVersionFieldConstant]
	_, versionIsString := rawVersion.(string)
	keepVersionUntyped := hasVersion && !versionIsString
	if keepVersionUntyped {
		delete(decoderInput, dependencyVersionFieldConstant)
	}

	var dependency Dependency
	decoder, decoderError := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result: &dependency,
	})
	if decoderError != nil {
		return Dependency{}, fmt.Errorf(dependencyDecoderErrorTemplateConstant, decoderError)
	}

	if decodeError := decoder.Decode(decoderInput); decodeError != nil {
		return Dependency{}, decodeError
	}

	if keepVersionUntyped {
		if dependency.Attributes == nil {
			dependency.Attributes = map[string]any{}
		}
		dependency.Attributes[dependencyVersionFieldConstant] = rawVersion
	}

	return dependency, nil
}
