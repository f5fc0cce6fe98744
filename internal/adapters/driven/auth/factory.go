package auth

import (
	"strings"

	"github.com/custodia-labs/loaderhub/internal/core/ports/driven"
)

// NewTokenProvider returns a PATProvider for a non-empty token and a
// NullTokenProvider otherwise.
func NewTokenProvider(token string) driven.TokenProvider {
	if strings.TrimSpace(token) == "" {
		return NewNullTokenProvider()
	}
	return NewPATProvider(token)
}
