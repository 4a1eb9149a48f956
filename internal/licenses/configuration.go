package licenses

import (
	"fmt"
	"strings"
)

const (
	buildConfigurationKeyConstant                    = "build"
	packageNameConfigurationKeyConstant              = buildConfigurationKeyConstant + ".package_name"
	packageVersionConfigurationKeyConstant           = buildConfigurationKeyConstant + ".package_version"
	recipeDirectoryConfigurationKeyConstant          = buildConfigurationKeyConstant + ".recipe_directory"
	sourceDirectoryConfigurationKeyConstant          = buildConfigurationKeyConstant + ".source_directory"
	licensesDirectoryConfigurationKeyConstant        = "licenses_directory"
	metadataFileConfigurationKeyConstant             = "metadata_file"
	dependenciesFileTemplateConfigurationKeyConstant = "dependencies_file_template"
	ignoredCratesConfigurationKeyConstant            = "ignored_crates"
	configurationKeySeparatorConstant                = "."
	missingEnvironmentErrorTemplateConstant          = "%w: %s"

	// PackageNameEnvironmentVariable names the package under build.
	PackageNameEnvironmentVariable = "PKG_NAME"
	// PackageVersionEnvironmentVariable names the version of the package under build.
	PackageVersionEnvironmentVariable = "PKG_VERSION"
	// RecipeDirectoryEnvironmentVariable points at the recipe holding meta.yaml and the license library.
	RecipeDirectoryEnvironmentVariable = "RECIPE_DIR"
	// SourceDirectoryEnvironmentVariable points at the unpacked sources holding the dependency list.
	SourceDirectoryEnvironmentVariable = "SRC_DIR"

	// DefaultLicensesDirectory is the recipe subdirectory holding per-crate license files.
	DefaultLicensesDirectory = "library_licenses"
	// DefaultMetadataFile is the rendered recipe metadata file name.
	DefaultMetadataFile = "meta.yaml"
	// DefaultDependenciesFileTemplate builds the dependency list file name from the package name and version.
	DefaultDependenciesFileTemplate = "{name}-{version}-cargo-dependencies.json"
)

// BuildEnvironment carries the values exported by the package build.
type BuildEnvironment struct {
	PackageName     string `mapstructure:"package_name"`
	PackageVersion  string `mapstructure:"package_version"`
	RecipeDirectory string `mapstructure:"recipe_directory"`
	SourceDirectory string `mapstructure:"source_directory"`
}

// Validate returns ErrMissingEnvironment naming the first unset variable.
func (environment BuildEnvironment) Validate() error {
	requiredValues := []struct {
		variableName string
		value        string
	}{
		{variableName: PackageNameEnvironmentVariable, value: environment.PackageName},
		{variableName: PackageVersionEnvironmentVariable, value: environment.PackageVersion},
		{variableName: RecipeDirectoryEnvironmentVariable, value: environment.RecipeDirectory},
		{variableName: SourceDirectoryEnvironmentVariable, value: environment.SourceDirectory},
	}

	for _, requiredValue := range requiredValues {
		if len(strings.TrimSpace(requiredValue.value)) == 0 {
			return fmt.Errorf(missingEnvironmentErrorTemplateConstant, ErrMissingEnvironment, requiredValue.variableName)
		}
	}

	return nil
}

// CommandConfiguration captures persistent settings for the license check.
type CommandConfiguration struct {
	Build                    BuildEnvironment `mapstructure:"build"`
	LicensesDirectory        string           `mapstructure:"licenses_directory"`
	MetadataFile             string           `mapstructure:"metadata_file"`
	DependenciesFileTemplate string           `mapstructure:"dependencies_file_template"`
	IgnoredCrates            []string         `mapstructure:"ignored_crates"`
}

// DefaultCommandConfiguration returns baseline configuration values for the license check.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		LicensesDirectory:        DefaultLicensesDirectory,
		MetadataFile:             DefaultMetadataFile,
		DependenciesFileTemplate: DefaultDependenciesFileTemplate,
		IgnoredCrates:            nil,
	}
}

// DefaultConfigurationValues returns Viper defaults rooted at the provided key prefix.
func DefaultConfigurationValues(keyPrefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		qualifyConfigurationKey(keyPrefix, packageNameConfigurationKeyConstant):              "",
		qualifyConfigurationKey(keyPrefix, packageVersionConfigurationKeyConstant):           "",
		qualifyConfigurationKey(keyPrefix, recipeDirectoryConfigurationKeyConstant):          "",
		qualifyConfigurationKey(keyPrefix, sourceDirectoryConfigurationKeyConstant):          "",
		qualifyConfigurationKey(keyPrefix, licensesDirectoryConfigurationKeyConstant):        defaults.LicensesDirectory,
		qualifyConfigurationKey(keyPrefix, metadataFileConfigurationKeyConstant):             defaults.MetadataFile,
		qualifyConfigurationKey(keyPrefix, dependenciesFileTemplateConfigurationKeyConstant): defaults.DependenciesFileTemplate,
		qualifyConfigurationKey(keyPrefix, ignoredCratesConfigurationKeyConstant):            []string{},
	}
}

// EnvironmentBindings maps the build configuration keys to the variables exported by the package build.
func EnvironmentBindings(keyPrefix string) map[string]string {
	return map[string]string{
		qualifyConfigurationKey(keyPrefix, packageNameConfigurationKeyConstant):     PackageNameEnvironmentVariable,
		qualifyConfigurationKey(keyPrefix, packageVersionConfigurationKeyConstant):  PackageVersionEnvironmentVariable,
		qualifyConfigurationKey(keyPrefix, recipeDirectoryConfigurationKeyConstant): RecipeDirectoryEnvironmentVariable,
		qualifyConfigurationKey(keyPrefix, sourceDirectoryConfigurationKeyConstant): SourceDirectoryEnvironmentVariable,
	}
}

// sanitize trims whitespace and applies defaults to unset configuration values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	defaults := DefaultCommandConfiguration()
	sanitized := configuration

	sanitized.LicensesDirectory = valueOrDefault(configuration.LicensesDirectory, defaults.LicensesDirectory)
	sanitized.MetadataFile = valueOrDefault(configuration.MetadataFile, defaults.MetadataFile)
	sanitized.DependenciesFileTemplate = valueOrDefault(configuration.DependenciesFileTemplate, defaults.DependenciesFileTemplate)
	sanitized.IgnoredCrates = sanitizeCrateNames(configuration.IgnoredCrates)

	return sanitized
}

func valueOrDefault(value string, defaultValue string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return defaultValue
	}
	return trimmed
}

func sanitizeCrateNames(raw []string) []string {
	sanitized := make([]string, 0, len(raw))
	for _, candidate := range raw {
		trimmed := strings.TrimSpace(candidate)
		if len(trimmed) == 0 {
			continue
		}
		sanitized = append(sanitized, trimmed)
	}
	return sanitized
}

func qualifyConfigurationKey(keyPrefix string, key string) string {
	trimmedPrefix := strings.TrimSpace(keyPrefix)
	if len(trimmedPrefix) == 0 {
		return key
	}
	return trimmedPrefix + configurationKeySeparatorConstant + key
}
