package licenses

import (
	"errors"
	"fmt"
)

const (
	complianceErrorTemplateConstant = "license check failed: %d missing, %d unpackaged"
	maximumExitCodeConstant         = 255
)

// ErrMissingEnvironment indicates a required build environment variable is unset.
var ErrMissingEnvironment = errors.New("required environment variable is not set")

// ComplianceError reports a completed audit that found discrepancies.
type ComplianceError struct {
	Report Report
}

// Error describes the discrepancy counts.
func (complianceError *ComplianceError) Error() string {
	return fmt.Sprintf(complianceErrorTemplateConstant, len(complianceError.Report.Missing), len(complianceError.Report.Unpackaged))
}

// ExitCode returns the discrepancy count as a process status.
// Counts above 255 are clamped so the status never wraps to zero.
func (complianceError *ComplianceError) ExitCode() int {
	discrepancyCount := complianceError.Report.DiscrepancyCount()
	if discrepancyCount > maximumExitCodeConstant {
		return maximumExitCodeConstant
	}
	return discrepancyCount
}
