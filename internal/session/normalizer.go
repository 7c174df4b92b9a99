// Package session canonicalizes client-presented session tokens.
//
// The identifier proxy hands services a session URI, but historical bugs
// produced tokens that are bare ids, single-prefixed URIs, or URIs
// prefixed twice. All variants of the same token must collapse to one
// canonical key so that lookups and cleanup agree on identity.
package session

import "regexp"

// Namespace is the URI prefix under which session resources live.
const Namespace = "http://mu.semte.ch/sessions/"

var prefixRx = regexp.MustCompile(`^https?://mu\.semte\.ch/sessions/`)

// Normalize strips every known session-namespace prefix from rawToken and
// returns the bare token. Tokens without a prefix pass through unchanged,
// which makes Normalize idempotent.
func Normalize(rawToken string) string {
	for {
		stripped := prefixRx.ReplaceAllString(rawToken, "")
		if stripped == rawToken {
			return stripped
		}
		rawToken = stripped
	}
}

// CanonicalURI returns the canonical session URI for rawToken.
func CanonicalURI(rawToken string) string {
	return Namespace + Normalize(rawToken)
}
