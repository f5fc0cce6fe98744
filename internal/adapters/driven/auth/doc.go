// Package auth provides driven.TokenProvider implementations.
//
// Providers:
//   - PATProvider: a static personal access token
//   - NullTokenProvider: anonymous access
package auth
