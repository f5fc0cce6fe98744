// Package driving defines interfaces that external actors (CLI, MCP) use
// to interact with core services. These are the "driving" ports in hexagonal
// architecture terminology - they drive the application.
//
//   - LoaderService: builds a loader for a source and runs it
//   - SettingsService: reads and updates user-level defaults
//
// Implementations of these interfaces live in internal/core/services.
package driving
