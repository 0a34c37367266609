// Package cli implements the command-line interface for fbref-matches.
//
// The cli package provides the Cobra-based root command. It loads the
// configuration, applies flag overrides, wires the fetcher, extractor, store
// and notifier together, runs the scrape and reports a summary as text or
// JSON.
package cli
