// Package licenses implements the cargo dependency license audit used by the
// cargo-license-check CLI.
//
// It exposes CommandBuilder for wiring the Cobra command, Service for running
// the audit programmatically, loaders for the dependency list, the recipe
// metadata and the license library, and RenderReport for the text report.
package licenses
