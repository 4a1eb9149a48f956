package licenses

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/cargo-license-check/internal/filesystem"
)

const (
	auditStartedMessageConstant        = "license audit started"
	auditInputsLoadedMessageConstant   = "license audit inputs loaded"
	auditCompletedMessageConstant      = "license audit completed"
	dependencyIgnoredMessageConstant   = "dependency ignored"
	dependencyMissingMessageConstant   = "license file missing"
	candidateUnpackagedMessageConstant = "license file not declared in license_file"
	candidatePackagedMessageConstant   = "license file packaged"
	logFieldPackageNameConstant        = "package_name"
	logFieldPackageVersionConstant     = "package_version"
	logFieldDependenciesFileConstant   = "dependencies_file"
	logFieldMetadataFileConstant       = "metadata_file"
	logFieldLicensesDirectoryConstant  = "licenses_directory"
	logFieldDependencyCountConstant    = "dependency_count"
	logFieldDeclaredCountConstant      = "declared_count"
	logFieldLibraryCountConstant       = "library_count"
	logFieldDependencyNameConstant     = "dependency"
	logFieldDependencyVersionConstant  = "version"
	logFieldRelativePathConstant       = "relative_path"
	logFieldMissingCountConstant       = "missing_count"
	logFieldUnpackagedCountConstant    = "unpackaged_count"
)

// firstPartyCrates are covered by the package's own license.
var firstPartyCrates = []string{"jsonrpc-derive", "jsonrpc"}

// Service cross-references cargo dependencies against the recipe license library.
type Service struct {
	fileSystem FileSystem
	logger     *zap.Logger
}

// NewService constructs a Service using the provided dependencies.
func NewService(fileSystem FileSystem, logger *zap.Logger) *Service {
	if fileSystem == nil {
		fileSystem = filesystem.OSFileSystem{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{fileSystem: fileSystem, logger: logger}
}

// Audit loads every input and computes the missing and unpackaged lists.
// Any unreadable or malformed input aborts the audit without a partial report.
func (service *Service) Audit(executionContext context.Context, options AuditOptions) (Report, error) {
	if contextError := executionContext.Err(); contextError != nil {
		return Report{}, contextError
	}

	if validationError := options.Environment.Validate(); validationError != nil {
		return Report{}, validationError
	}

	options = options.withDefaults()
	environment := options.Environment

	dependenciesFilePath := filepath.Join(
		environment.SourceDirectory,
		DependenciesFileName(options.DependenciesFileTemplate, environment.PackageName, environment.PackageVersion),
	)
	metadataFilePath := filepath.Join(environment.RecipeDirectory, options.MetadataFile)
	licensesDirectoryPath := filepath.Join(environment.RecipeDirectory, options.LicensesDirectory)

	service.logger.Info(
		auditStartedMessageConstant,
		zap.String(logFieldPackageNameConstant, environment.PackageName),
		zap.String(logFieldPackageVersionConstant, environment.PackageVersion),
		zap.String(logFieldDependenciesFileConstant, dependenciesFilePath),
		zap.String(logFieldMetadataFileConstant, metadataFilePath),
		zap.String(logFieldLicensesDirectoryConstant, licensesDirectoryPath),
	)

	dependencies, dependenciesError := LoadDependencies(service.fileSystem, dependenciesFilePath)
	if dependenciesError != nil {
		return Report{}, dependenciesError
	}

	manifest, manifestError := LoadManifest(service.fileSystem, metadataFilePath)
	if manifestError != nil {
		return Report{}, manifestError
	}

	library, libraryError := ListCandidates(service.fileSystem, licensesDirectoryPath)
	if libraryError != nil {
		return Report{}, libraryError
	}

	service.logger.Debug(
		auditInputsLoadedMessageConstant,
		zap.Int(logFieldDependencyCountConstant, len(dependencies)),
		zap.Int(logFieldDeclaredCountConstant, len(manifest.Paths())),
		zap.Int(logFieldLibraryCountConstant, library.Len()),
	)

	report := service.crossReference(dependencies, manifest, library, ignoredCrateSet(environment.PackageName, options.IgnoredCrates))

	service.logger.Info(
		auditCompletedMessageConstant,
		zap.Int(logFieldMissingCountConstant, len(report.Missing)),
		zap.Int(logFieldUnpackagedCountConstant, len(report.Unpackaged)),
	)

	return report, nil
}

func (service *Service) crossReference(dependencies []Dependency, manifest Manifest, library LicenseLibrary, ignored map[string]struct{}) Report {
	report := Report{
		Missing:    []Dependency{},
		Unpackaged: []Dependency{},
	}

	for _, dependency := range dependencies {
		dependencyLogger := service.logger.With(
			zap.String(logFieldDependencyNameConstant, dependency.Name),
			zap.String(logFieldDependencyVersionConstant, dependency.Version),
		)

		if _, isIgnored := ignored[dependency.Name]; isIgnored {
			dependencyLogger.Debug(dependencyIgnoredMessageConstant)
			continue
		}

		candidates := library.Match(dependency.Name)
		if len(candidates) == 0 {
			dependencyLogger.Warn(dependencyMissingMessageConstant)
			report.Missing = append(report.Missing, dependency)
			continue
		}

		for _, candidate := range candidates {
			if manifest.Declares(candidate.RelativePath) {
				dependencyLogger.Debug(candidatePackagedMessageConstant, zap.String(logFieldRelativePathConstant, candidate.RelativePath))
				continue
			}
			dependencyLogger.Warn(candidateUnpackagedMessageConstant, zap.String(logFieldRelativePathConstant, candidate.RelativePath))
			report.Unpackaged = append(report.Unpackaged, dependency)
		}
	}

	return report
}

func ignoredCrateSet(packageName string, configuredCrates []string) map[string]struct{} {
	ignored := make(map[string]struct{}, len(firstPartyCrates)+len(configuredCrates)+1)
	ignored[packageName] = struct{}{}
	for _, crateName := range firstPartyCrates {
		ignored[crateName] = struct{}{}
	}
	for _, crateName := range configuredCrates {
		ignored[crateName] = struct{}{}
	}
	return ignored
}

func (options AuditOptions) withDefaults() AuditOptions {
	configuration := CommandConfiguration{
		LicensesDirectory:        options.LicensesDirectory,
		MetadataFile:             options.MetadataFile,
		DependenciesFileTemplate: options.DependenciesFileTemplate,
		IgnoredCrates:            options.IgnoredCrates,
	}.sanitize()

	resolved := options
	resolved.LicensesDirectory = configuration.LicensesDirectory
	resolved.MetadataFile = configuration.MetadataFile
	resolved.DependenciesFileTemplate = configuration.DependenciesFileTemplate
	resolved.IgnoredCrates = configuration.IgnoredCrates
	return resolved
}
