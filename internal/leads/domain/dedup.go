package domain

import "strings"

// Resolver decides whether an incoming candidate refers to an already-saved
// lead. The identity key is the display name, compared exactly by default;
// the comparison is deliberately cheap because the final judge of "is this
// the same business" is the user, not the resolver.
type Resolver struct {
	normalize bool
}

// NewResolver creates a resolver. When normalize is true, keys are trimmed,
// lowercased, and inner whitespace is collapsed before comparison; the
// default is an exact, case- and whitespace-sensitive match.
func NewResolver(normalize bool) *Resolver {
	return &Resolver{normalize: normalize}
}

// Key returns the identity key for a display name.
func (r *Resolver) Key(displayName string) string {
	if !r.normalize {
		return displayName
	}
	return strings.Join(strings.Fields(strings.ToLower(displayName)), " ")
}

// Matches reports whether two display names identify the same business.
func (r *Resolver) Matches(a, b string) bool {
	return r.Key(a) == r.Key(b)
}
