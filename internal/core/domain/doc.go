// Package domain defines the core entities shared by every loader.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: text plus metadata produced by a loader
//   - Source: a configured data source a loader is built from
//   - Filter: an include/exclude list applied while fetching
//   - LoaderType: the descriptor of a registered loader
//   - Settings: user-level defaults read from the config file
//
// # Import Rules
//
//   - Can Import: Standard library only
package domain
