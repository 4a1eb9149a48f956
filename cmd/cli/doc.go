// Package cli constructs the cargo-license-check command-line interface,
// wiring the Cobra root command, the Viper configuration loader, and zap
// diagnostics around the license audit.
package cli
