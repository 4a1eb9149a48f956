package licenses

import "io/fs"

// FileSystem exposes the read-only file access required by the audit.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	ReadDir(path string) ([]fs.DirEntry, error)
}

// Dependency models one record of the cargo dependency list.
// Only Name participates in the audit; Attributes keeps every other field so
// reports can echo the record as it was read.
type Dependency struct {
	Name       string         `mapstructure:"name" yaml:"name"`
	Version    string         `mapstructure:"version" yaml:"version,omitempty"`
	Attributes map[string]any `mapstructure:",remain" yaml:",inline"`
}

// Candidate describes a license library entry matching a dependency.
type Candidate struct {
	FileName     string
	RelativePath string
}

// AuditOptions captures the inputs of a single audit run.
type AuditOptions struct {
	Environment              BuildEnvironment
	LicensesDirectory        string
	MetadataFile             string
	DependenciesFileTemplate string
	IgnoredCrates            []string
}

// Report holds the discrepancies found by an audit.
type Report struct {
	Missing    []Dependency
	Unpackaged []Dependency
}

// DiscrepancyCount returns the combined number of missing and unpackaged entries.
func (report Report) DiscrepancyCount() int {
	return len(report.Missing) + len(report.Unpackaged)
}

// Compliant reports whether the audit found no discrepancies.
func (report Report) Compliant() bool {
	return report.DiscrepancyCount() == 0
}
