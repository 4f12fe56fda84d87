package model

import (
	"regexp"
	"strings"
)

// MaxSymbolLen is the longest ticker accepted.
const MaxSymbolLen = 10

var symbolPattern = regexp.MustCompile(`^[A-Z0-9.-]+$`)

// NormalizeSymbol trims and upper-cases a user-entered ticker.
// It returns a *ValidationError for input that must not reach the network.
func NormalizeSymbol(raw string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	switch {
	case s == "":
		return "", &ValidationError{Input: raw, Reason: ErrEmptySymbol}
	case len(s) > MaxSymbolLen:
		return "", &ValidationError{Input: raw, Reason: ErrSymbolTooLong}
	case !symbolPattern.MatchString(s):
		return "", &ValidationError{Input: raw, Reason: ErrSymbolFormat}
	}
	return s, nil
}
