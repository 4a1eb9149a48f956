package licenses

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

const (
	missingHeaderConstant             = "\nLicenses for the following dependencies are missing:\n\n"
	missingNoneConstant               = "\nNo missing licenses.\n"
	unpackagedHeaderConstant          = "\nLicenses for the following dependencies are not in license_file:\n\n"
	unpackagedNoneConstant            = "\nNo unpackaged licenses.\n"
	reportIndentConstant              = 2
	reportEncodeErrorTemplateConstant = "unable to encode report section: %w"
)

// RenderReport prints the missing and unpackaged sections of the report.
// Non-empty sections dump the offending dependency records as YAML.
func RenderReport(writer io.Writer, report Report) error {
	if sectionError := renderSection(writer, report.Missing, missingHeaderConstant, missingNoneConstant); sectionError != nil {
		return sectionError
	}
	return renderSection(writer, report.Unpackaged, unpackagedHeaderConstant, unpackagedNoneConstant)
}

func renderSection(writer io.Writer, dependencies []Dependency, header string, emptyMessage string) error {
	if len(dependencies) == 0 {
		_, writeError := io.WriteString(writer, emptyMessage)
		return writeError
	}

	var encoded bytes.Buffer
	encoder := yaml.NewEncoder(&encoded)
	encoder.SetIndent(reportIndentConstant)
	if encodeError := encoder.Encode(dependencies); encodeError != nil {
		return fmt.Errorf(reportEncodeErrorTemplateConstant, encodeError)
	}
	if closeError := encoder.Close(); closeError != nil {
		return fmt.Errorf(reportEncodeErrorTemplateConstant, closeError)
	}

	_, writeError := fmt.Fprintf(writer, "%s%s\n", header, encoded.String())
	return writeError
}
