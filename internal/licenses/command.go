package licenses

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	commandNameConstant                = "cargo-license-check"
	commandShortDescriptionConstant    = "Verify cargo dependency licenses are present and packaged"
	commandLongDescriptionConstant     = "cargo-license-check reads the cargo dependency list of the package under build, expects a <crate>-LICEN* file per third-party crate in the recipe license library, and checks that every such file is declared in meta.yaml about.license_file. The exit status is the number of discrepancies found.\n\nThe build environment is read from PKG_NAME, PKG_VERSION, RECIPE_DIR, and SRC_DIR."
	flagLicensesDirectoryNameConstant  = "licenses-dir"
	flagLicensesDirectoryUsageConstant = "Name of the recipe subdirectory holding per-crate license files."
	flagIgnoreNameConstant             = "ignore"
	flagIgnoreUsageConstant            = "Additional crate name excluded from the check (repeatable)."
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current license check configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the license check cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	FileSystem            FileSystem
}

// Build constructs the cobra command for the license check.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           commandNameConstant,
		Short:         commandShortDescriptionConstant,
		Long:          commandLongDescriptionConstant,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          builder.run,
	}

	command.Flags().String(flagLicensesDirectoryNameConstant, "", flagLicensesDirectoryUsageConstant)
	command.Flags().StringSlice(flagIgnoreNameConstant, nil, flagIgnoreUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	options := builder.parseOptions(command)

	service := NewService(builder.FileSystem, builder.resolveLogger())
	report, auditError := service.Audit(command.Context(), options)
	if auditError != nil {
		return auditError
	}

	if renderError := RenderReport(command.OutOrStdout(), report); renderError != nil {
		return renderError
	}

	if !report.Compliant() {
		return &ComplianceError{Report: report}
	}

	return nil
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command) AuditOptions {
	configuration := builder.resolveConfiguration()

	if command.Flags().Changed(flagLicensesDirectoryNameConstant) {
		licensesDirectory, _ := command.Flags().GetString(flagLicensesDirectoryNameConstant)
		configuration.LicensesDirectory = licensesDirectory
	}

	if command.Flags().Changed(flagIgnoreNameConstant) {
		ignoredCrates, _ := command.Flags().GetStringSlice(flagIgnoreNameConstant)
		configuration.IgnoredCrates = append(append([]string{}, configuration.IgnoredCrates...), ignoredCrates...)
	}

	configuration = configuration.sanitize()

	return AuditOptions{
		Environment:              configuration.Build,
		LicensesDirectory:        configuration.LicensesDirectory,
		MetadataFile:             configuration.MetadataFile,
		DependenciesFileTemplate: configuration.DependenciesFileTemplate,
		IgnoredCrates:            configuration.IgnoredCrates,
	}
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
