package licenses

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
)

const (
	licenseSuffixPatternConstant     = "-LICEN"
	libraryListErrorTemplateConstant = "unable to list license library %s: %w"
)

// LicenseLibrary is a snapshot of the license directory entries.
type LicenseLibrary struct {
	directoryName string
	fileNames     []string
}

// NewLicenseLibrary builds a library from the directory base name and its entry names.
func NewLicenseLibrary(directoryName string, fileNames []string) LicenseLibrary {
	duplicatedFileNames := make([]string, len(fileNames))
	copy(duplicatedFileNames, fileNames)
	return LicenseLibrary{directoryName: directoryName, fileNames: duplicatedFileNames}
}

// ListCandidates enumerates the license directory once.
// A directory that does not exist yields an empty library.
func ListCandidates(fileSystem FileSystem, directoryPath string) (LicenseLibrary, error) {
	directoryName := filepath.Base(filepath.Clean(directoryPath))

	entries, listError := fileSystem.ReadDir(directoryPath)
	if listError != nil {
		if errors.Is(listError, fs.ErrNotExist) {
			return NewLicenseLibrary(directoryName, nil), nil
		}
		return LicenseLibrary{}, fmt.Errorf(libraryListErrorTemplateConstant, directoryPath, listError)
	}

	fileNames := make([]string, 0, len(entries))
	for _, entry := range entries {
		fileNames = append(fileNames, entry.Name())
	}

	return NewLicenseLibrary(directoryName, fileNames), nil
}

// DirectoryName returns the base name used to build manifest-relative paths.
func (library LicenseLibrary) DirectoryName() string {
	return library.directoryName
}

// Len returns the number of entries in the library.
func (library LicenseLibrary) Len() int {
	return len(library.fileNames)
}

// Match returns the entries named <dependencyName>-LICEN*, in directory order.
// Matching is case-sensitive; hidden entries never match.
func (library LicenseLibrary) Match(dependencyName string) []Candidate {
	expectedPrefix := dependencyName + licenseSuffixPatternConstant

	var candidates []Candidate
	for _, fileName := range library.fileNames {
		if strings.HasPrefix(fileName, ".") || !strings.HasPrefix(fileName, expectedPrefix) {
			continue
		}
		candidates = append(candidates, Candidate{
			FileName:     fileName,
			RelativePath: path.Join(library.directoryName, fileName),
		})
	}

	return candidates
}
