package licenses_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/cargo-license-check/internal/filesystem"
	"github.com/temirov/cargo-license-check/internal/licenses"
)

func TestDependenciesFileName(testInstance *testing.T) {
	testInstance.Parallel()

	require.Equal(
		testInstance,
		testDependenciesFileConstant,
		licenses.DependenciesFileName(licenses.DefaultDependenciesFileTemplate, testPackageNameConstant, testPackageVersionConstant),
	)
	require.Equal(testInstance, "deps/pysyntect.json", licenses.DependenciesFileName("deps/{name}.json", testPackageNameConstant, testPackageVersionConstant))
}

func TestLoadDependencies(testInstance *testing.T) {
	testInstance.Parallel()

	testCases := []struct {
		name                 string
		contents             string
		expectError          bool
		expectedErrorMessage string
		expectedDependencies []licenses.Dependency
	}{
		{
			name:     "records_with_extra_fields",
			contents: `[{"name": "regex", "version": "1.5.4", "license": "MIT OR Apache-2.0"}, {"name": "memchr", "version": "2.4.1"}]`,
			expectedDependencies: []licenses.Dependency{
				{Name: "regex", Version: "1.5.4", Attributes: map[string]any{"license": "MIT OR Apache-2.0"}},
				{Name: "memchr", Version: "2.4.1"},
			},
		},
		{
			name:                 "empty_list",
			contents:             `[]`,
			expectedDependencies: []licenses.Dependency{},
		},
		{
			name:                 "not_an_array",
			contents:             `{"name": "regex"}`,
			expectError:          true,
			expectedErrorMessage: "unable to parse dependency list",
		},
		{
			name:     "non_string_version_kept_as_attribute",
			contents: `[{"name": "foo", "version": {"major": 1}}]`,
			expectedDependencies: []licenses.Dependency{
				{Name: "foo", Attributes: map[string]any{"version": map[string]any{"major": float64(1)}}},
			},
		},
		{
			name:                 "empty_name",
			contents:             `[{"name": ""}]`,
			expectedDependencies: []licenses.Dependency{{Name: ""}},
		},
		{
			name:                 "null_document",
			contents:             `null`,
			expectError:          true,
			expectedErrorMessage: "unable to parse dependency list",
		},
		{
			name:                 "null_record",
			contents:             `[null]`,
			expectError:          true,
			expectedErrorMessage: "record 0",
		},
		{
			name:                 "record_without_name",
			contents:             `[{"name": "regex"}, {"version": "1.0.0"}]`,
			expectError:          true,
			expectedErrorMessage: "record 1",
		},
		{
			name:                 "record_with_numeric_name",
			contents:             `[{"name": 7}]`,
			expectError:          true,
			expectedErrorMessage: "record 0",
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			subTest.Parallel()

			fixture := newRecipeFixture(subTest)
			fixture.writeRawDependencies(subTest, testCase.contents)

			dependencies, loadError := licenses.LoadDependencies(
				filesystem.OSFileSystem{},
				filepath.Join(fixture.sourceDirectory, testDependenciesFileConstant),
			)

			if testCase.expectError {
				require.Error(subTest, loadError)
				require.Contains(subTest, loadError.Error(), testCase.expectedErrorMessage)
				require.Nil(subTest, dependencies)
				return
			}

			require.NoError(subTest, loadError)
			require.Len(subTest, dependencies, len(testCase.expectedDependencies))
			for index, expectedDependency := range testCase.expectedDependencies {
				require.Equal(subTest, expectedDependency.Name, dependencies[index].Name)
				require.Equal(subTest, expectedDependency.Version, dependencies[index].Version)
				for attributeName, attributeValue := range expectedDependency.Attributes {
					require.Equal(subTest, attributeValue, dependencies[index].Attributes[attributeName])
				}
			}
		})
	}
}

func TestLoadManifest(testInstance *testing.T) {
	testInstance.Parallel()

	testCases := []struct {
		name          string
		contents      string
		expectError   bool
		expectedPaths []string
	}{
		{
			name:          "sequence",
			contents:      "about:\n  license_file:\n    - LICENSE\n    - library_licenses/regex-LICENSE-MIT\n",
			expectedPaths: []string{"LICENSE", "library_licenses/regex-LICENSE-MIT"},
		},
		{
			name:          "single_string",
			contents:      "about:\n  license_file: LICENSE\n",
			expectedPaths: []string{"LICENSE"},
		},
		{
			name:          "null_value",
			contents:      "about:\n  license_file:\n",
			expectedPaths: []string{},
		},
		{
			name:          "about_absent",
			contents:      "package:\n  name: pysyntect\n",
			expectedPaths: []string{},
		},
		{
			name:        "mapping_value",
			contents:    "about:\n  license_file:\n    path: LICENSE\n",
			expectError: true,
		},
		{
			name:        "invalid_yaml",
			contents:    "about: [\n",
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			subTest.Parallel()

			fixture := newRecipeFixture(subTest)
			fixture.writeRawMetadata(subTest, testCase.contents)

			manifest, loadError := licenses.LoadManifest(
				filesystem.OSFileSystem{},
				filepath.Join(fixture.recipeDirectory, testMetadataFileConstant),
			)

			if testCase.expectError {
				require.Error(subTest, loadError)
				return
			}

			require.NoError(subTest, loadError)
			require.Equal(subTest, testCase.expectedPaths, manifest.Paths())
			for _, expectedPath := range testCase.expectedPaths {
				require.True(subTest, manifest.Declares(expectedPath))
			}
		})
	}
}

func TestManifestDeclaresExactPathsOnly(testInstance *testing.T) {
	testInstance.Parallel()

	manifest := licenses.NewManifest([]string{"library_licenses/bar-LICENSE-MIT"})

	require.True(testInstance, manifest.Declares("library_licenses/bar-LICENSE-MIT"))
	require.False(testInstance, manifest.Declares("bar-LICENSE-MIT"))
	require.False(testInstance, manifest.Declares("library_licenses/bar-LICENSE"))
}

func TestListCandidates(testInstance *testing.T) {
	testInstance.Parallel()

	fixture := newRecipeFixture(testInstance)
	for _, fileName := range []string{"regex-LICENSE-MIT", "regex-LICENSE-APACHE", "regex-syntax-LICENSE", "memchr-COPYING", "memchr-LICENSE-UNLICENSE"} {
		fixture.writeLicense(testInstance, fileName)
	}

	library, listError := licenses.ListCandidates(filesystem.OSFileSystem{}, filepath.Join(fixture.recipeDirectory, testLicensesDirectoryConstant))
	require.NoError(testInstance, listError)
	require.Equal(testInstance, testLicensesDirectoryConstant, library.DirectoryName())
	require.Equal(testInstance, 5, library.Len())

	require.Equal(testInstance, []licenses.Candidate{
		{FileName: "regex-LICENSE-APACHE", RelativePath: "library_licenses/regex-LICENSE-APACHE"},
		{FileName: "regex-LICENSE-MIT", RelativePath: "library_licenses/regex-LICENSE-MIT"},
	}, library.Match("regex"))
	require.Equal(testInstance, []licenses.Candidate{
		{FileName: "regex-syntax-LICENSE", RelativePath: "library_licenses/regex-syntax-LICENSE"},
	}, library.Match("regex-syntax"))
	require.Equal(testInstance, []licenses.Candidate{
		{FileName: "memchr-LICENSE-UNLICENSE", RelativePath: "library_licenses/memchr-LICENSE-UNLICENSE"},
	}, library.Match("memchr"))
	require.Empty(testInstance, library.Match("aho-corasick"))
}

func TestListCandidatesAbsentDirectory(testInstance *testing.T) {
	testInstance.Parallel()

	fixture := newRecipeFixture(testInstance)

	library, listError := licenses.ListCandidates(filesystem.OSFileSystem{}, filepath.Join(fixture.recipeDirectory, "missing_directory"))
	require.NoError(testInstance, listError)
	require.Zero(testInstance, library.Len())
	require.Empty(testInstance, library.Match("regex"))
}

func TestLicenseLibraryMatchSkipsHiddenEntries(testInstance *testing.T) {
	testInstance.Parallel()

	library := licenses.NewLicenseLibrary(testLicensesDirectoryConstant, []string{".regex-LICENSE.swp", "regex-LICENSE"})

	require.Equal(testInstance, []licenses.Candidate{
		{FileName: "regex-LICENSE", RelativePath: "library_licenses/regex-LICENSE"},
	}, library.Match("regex"))
}
