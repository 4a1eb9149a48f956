package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/temirov/cargo-license-check/cmd/cli"
	"github.com/temirov/cargo-license-check/internal/licenses"
)

const (
	exitErrorTemplateConstant = "%v\n"
	failureExitCodeConstant   = 1
)

// main runs the license check and exits with the number of discrepancies found.
func main() {
	executionError := cli.Execute()
	if executionError == nil {
		return
	}

	fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)

	var complianceError *licenses.ComplianceError
	if errors.As(executionError, &complianceError) {
		os.Exit(complianceError.ExitCode())
	}
	os.Exit(failureExitCodeConstant)
}
