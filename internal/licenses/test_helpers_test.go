package licenses_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/cargo-license-check/internal/licenses"
)

const (
	testPackageNameConstant       = "pysyntect"
	testPackageVersionConstant    = "0.4.0"
	testRecipeDirectoryConstant   = "recipe"
	testSourceDirectoryConstant   = "src"
	testLicensesDirectoryConstant = "library_licenses"
	testMetadataFileConstant      = "meta.yaml"
	testDependenciesFileConstant  = "pysyntect-0.4.0-cargo-dependencies.json"
	testLicenseContentConstant    = "Permission is hereby granted, free of charge"
)

type recipeFixture struct {
	rootDirectory   string
	recipeDirectory string
	sourceDirectory string
}

func newRecipeFixture(testInstance *testing.T) recipeFixture {
	testInstance.Helper()

	rootDirectory := testInstance.TempDir()
	fixture := recipeFixture{
		rootDirectory:   rootDirectory,
		recipeDirectory: filepath.Join(rootDirectory, testRecipeDirectoryConstant),
		sourceDirectory: filepath.Join(rootDirectory, testSourceDirectoryConstant),
	}

	require.NoError(testInstance, os.MkdirAll(filepath.Join(fixture.recipeDirectory, testLicensesDirectoryConstant), 0o755))
	require.NoError(testInstance, os.MkdirAll(fixture.sourceDirectory, 0o755))

	return fixture
}

func (fixture recipeFixture) environment() licenses.BuildEnvironment {
	return licenses.BuildEnvironment{
		PackageName:     testPackageNameConstant,
		PackageVersion:  testPackageVersionConstant,
		RecipeDirectory: fixture.recipeDirectory,
		SourceDirectory: fixture.sourceDirectory,
	}
}

func (fixture recipeFixture) options() licenses.AuditOptions {
	return licenses.AuditOptions{Environment: fixture.environment()}
}

func (fixture recipeFixture) writeDependencies(testInstance *testing.T, records []map[string]any) {
	testInstance.Helper()

	encoded, encodeError := json.Marshal(records)
	require.NoError(testInstance, encodeError)
	fixture.writeRawDependencies(testInstance, string(encoded))
}

func (fixture recipeFixture) writeRawDependencies(testInstance *testing.T, contents string) {
	testInstance.Helper()

	dependenciesPath := filepath.Join(fixture.sourceDirectory, testDependenciesFileConstant)
	require.NoError(testInstance, os.WriteFile(dependenciesPath, []byte(contents), 0o600))
}

func (fixture recipeFixture) writeMetadata(testInstance *testing.T, licenseFiles []string) {
	testInstance.Helper()

	builder := strings.Builder{}
	builder.WriteString("package:\n  name: pysyntect\n  version: 0.4.0\nabout:\n  license: MIT\n  license_file:\n    - LICENSE\n")
	for _, licenseFile := range licenseFiles {
		builder.WriteString("    - " + licenseFile + "\n")
	}
	fixture.writeRawMetadata(testInstance, builder.String())
}

func (fixture recipeFixture) writeRawMetadata(testInstance *testing.T, contents string) {
	testInstance.Helper()

	metadataPath := filepath.Join(fixture.recipeDirectory, testMetadataFileConstant)
	require.NoError(testInstance, os.WriteFile(metadataPath, []byte(contents), 0o600))
}

func (fixture recipeFixture) writeLicense(testInstance *testing.T, fileName string) {
	testInstance.Helper()

	licensePath := filepath.Join(fixture.recipeDirectory, testLicensesDirectoryConstant, fileName)
	require.NoError(testInstance, os.WriteFile(licensePath, []byte(testLicenseContentConstant), 0o600))
}

func dependencyRecord(name string, version string) map[string]any {
	return map[string]any{"name": name, "version": version}
}

func dependencyNames(dependencies []licenses.Dependency) []string {
	names := make([]string, 0, len(dependencies))
	for _, dependency := range dependencies {
		names = append(names, dependency.Name)
	}
	return names
}
