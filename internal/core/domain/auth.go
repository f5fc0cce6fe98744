package domain

// AuthMethod represents how a loader authenticates.
type AuthMethod string

const (
	// AuthMethodNone indicates no authentication.
	AuthMethodNone AuthMethod = "none"

	// AuthMethodPAT indicates a personal access token used as a bearer token.
	AuthMethodPAT AuthMethod = "pat"
)

// String returns the string representation.
func (m AuthMethod) String() string {
	return string(m)
}
