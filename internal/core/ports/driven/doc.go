// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and adapters or loaders
// implement them.
//
//   - Loader: fetches documents from one configured source
//   - LoaderBuilder: creates a Loader from a Source
//   - TokenProvider: supplies bearer tokens for API calls
//   - SettingsStore: reads and writes user-level defaults
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or loader package
package driven
