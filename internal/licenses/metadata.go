package licenses

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

const (
	metadataReadErrorTemplateConstant    = "unable to read recipe metadata %s: %w"
	metadataParseErrorTemplateConstant   = "unable to parse recipe metadata %s: %w"
	licenseFileKindErrorTemplateConstant = "about.license_file must be a string or a list of strings, found %s at line %d"
	yamlNullTagConstant                  = "!!null"
)

// Manifest is the set of license files declared in about.license_file.
type Manifest struct {
	declaredPaths map[string]struct{}
}

// NewManifest builds a manifest from declared relative paths.
func NewManifest(declaredPaths []string) Manifest {
	manifest := Manifest{declaredPaths: make(map[string]struct{}, len(declaredPaths))}
	for _, declaredPath := range declaredPaths {
		manifest.declaredPaths[declaredPath] = struct{}{}
	}
	return manifest
}

// Declares reports whether the relative path is listed in the manifest.
func (manifest Manifest) Declares(relativePath string) bool {
	_, declared := manifest.declaredPaths[relativePath]
	return declared
}

// Paths returns the declared paths in lexical order.
func (manifest Manifest) Paths() []string {
	paths := make([]string, 0, len(manifest.declaredPaths))
	for declaredPath := range manifest.declaredPaths {
		paths = append(paths, declaredPath)
	}
	sort.Strings(paths)
	return paths
}

type recipeMetadata struct {
	About recipeAbout `yaml:"about"`
}

type recipeAbout struct {
	LicenseFile licenseFileList `yaml:"license_file"`
}

// licenseFileList accepts both the list form and the single string form conda allows.
type licenseFileList []string

func (list *licenseFileList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.ShortTag() == yamlNullTagConstant {
			*list = nil
			return nil
		}
		*list = licenseFileList{node.Value}
		return nil
	case yaml.SequenceNode:
		var entries []string
		if decodeError := node.Decode(&entries); decodeError != nil {
			return decodeError
		}
		*list = entries
		return nil
	default:
		return fmt.Errorf(licenseFileKindErrorTemplateConstant, node.ShortTag(), node.Line)
	}
}

// LoadManifest reads the rendered recipe metadata and extracts about.license_file.
// Metadata without about.license_file yields an empty manifest.
func LoadManifest(fileSystem FileSystem, metadataFilePath string) (Manifest, error) {
	contents, readError := fileSystem.ReadFile(metadataFilePath)
	if readError != nil {
		return Manifest{}, fmt.Errorf(metadataReadErrorTemplateConstant, metadataFilePath, readError)
	}

	var metadata recipeMetadata
	if parseError := yaml.Unmarshal(contents, &metadata); parseError != nil {
		return Manifest{}, fmt.Errorf(metadataParseErrorTemplateConstant, metadataFilePath, parseError)
	}

	return NewManifest(metadata.About.LicenseFile), nil
}
