package tabs

import (
	"fmt"
	"strings"
)

// PositionPolicy governs where a newly created tab is placed relative to its source tab.
type PositionPolicy string

const (
	PositionRight PositionPolicy = "right"
	PositionLeft  PositionPolicy = "left"
	PositionStart PositionPolicy = "start"
	PositionEnd   PositionPolicy = "end"
)

// CloseBehaviorPolicy governs which tab gains focus after the active tab closes.
type CloseBehaviorPolicy string

const (
	// CloseRight accepts the host default and takes no action.
	CloseRight CloseBehaviorPolicy = "right"
	CloseLeft  CloseBehaviorPolicy = "left"
	// CloseSmart prefers the opener, then the left neighbour, then the right neighbour.
	CloseSmart CloseBehaviorPolicy = "smart"
)

// Setting defaults, matching the keys the settings store falls back to.
const (
	DefaultPosition      = PositionRight
	DefaultCloseBehavior = CloseLeft
	DefaultLanguage      = "en"
)

// PositionPolicies lists the accepted position values in display order.
var PositionPolicies = []PositionPolicy{PositionRight, PositionLeft, PositionStart, PositionEnd}

// CloseBehaviorPolicies lists the accepted close behaviors in display order.
var CloseBehaviorPolicies = []CloseBehaviorPolicy{CloseRight, CloseLeft, CloseSmart}

// Valid reports whether p is a known position policy.
func (p PositionPolicy) Valid() bool {
	for _, known := range PositionPolicies {
		if p == known {
			return true
		}
	}
	return false
}

// Valid reports whether p is a known close behavior.
func (p CloseBehaviorPolicy) Valid() bool {
	for _, known := range CloseBehaviorPolicies {
		if p == known {
			return true
		}
	}
	return false
}

// ParsePositionPolicy parses a user supplied value.
func ParsePositionPolicy(s string) (PositionPolicy, error) {
	p := PositionPolicy(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("invalid position %q (expected one of %s)", s, joinPolicies(PositionPolicies))
	}
	return p, nil
}

// ParseCloseBehaviorPolicy parses a user supplied value.
func ParseCloseBehaviorPolicy(s string) (CloseBehaviorPolicy, error) {
	p := CloseBehaviorPolicy(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("invalid close behavior %q (expected one of %s)", s, joinPolicies(CloseBehaviorPolicies))
	}
	return p, nil
}

// Settings is the immutable per-invocation snapshot of the user's preferences.
type Settings struct {
	Position      PositionPolicy
	CloseBehavior CloseBehaviorPolicy
	Language      string
}

// DefaultSettings returns the documented defaults.
func DefaultSettings() Settings {
	return Settings{
		Position:      DefaultPosition,
		CloseBehavior: DefaultCloseBehavior,
		Language:      DefaultLanguage,
	}
}

// Normalize replaces unknown or empty values with their defaults.
func (s Settings) Normalize() Settings {
	if !s.Position.Valid() {
		s.Position = DefaultPosition
	}
	if !s.CloseBehavior.Valid() {
		s.CloseBehavior = DefaultCloseBehavior
	}
	if strings.TrimSpace(s.Language) == "" {
		s.Language = DefaultLanguage
	}
	return s
}

func joinPolicies[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
