package domain

import (
	"fmt"
	"strings"
)

// FilterMode selects whether a Filter keeps or drops matching values.
type FilterMode string

const (
	// FilterInclude keeps only values matching the filter.
	FilterInclude FilterMode = "include"

	// FilterExclude drops values matching the filter.
	FilterExclude FilterMode = "exclude"
)

// ParseFilterMode parses a filter mode case-insensitively.
// An empty string yields FilterInclude.
func ParseFilterMode(s string) (FilterMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(FilterInclude):
		return FilterInclude, nil
	case string(FilterExclude):
		return FilterExclude, nil
	default:
		return "", fmt.Errorf("%w: unknown filter mode %q", ErrInvalidInput, s)
	}
}

// IsValid returns true if the mode is recognised.
func (m FilterMode) IsValid() bool {
	return m == FilterInclude || m == FilterExclude
}

// String returns the string representation.
func (m FilterMode) String() string {
	return string(m)
}

// Filter is a list of values applied in a single mode.
// A nil *Filter means "no filter": everything passes.
type Filter struct {
	Values []string
	Mode   FilterMode
}

// NewFilter builds a filter, dropping blank values.
func NewFilter(mode FilterMode, values ...string) *Filter {
	f := &Filter{Mode: mode, Values: make([]string, 0, len(values))}
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			f.Values = append(f.Values, v)
		}
	}
	return f
}

// Validate checks the mode is known.
func (f *Filter) Validate() error {
	if f == nil {
		return nil
	}
	if !f.Mode.IsValid() {
		return fmt.Errorf("%w: unknown filter mode %q", ErrInvalidInput, f.Mode)
	}
	return nil
}
