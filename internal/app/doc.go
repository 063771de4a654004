// Package app contains the core application logic. It wires the extraction
// pipeline together and owns the run lifecycle, decoupled from any specific
// entrypoint like a CLI.
//
// An extraction runs these phases in order, each inside its own trace span:
//
//	decode -> map -> resolve -> hierarchy -> traverse
//
// Localization and map discovery read the configured game roots and are
// independent of the save.
package app
