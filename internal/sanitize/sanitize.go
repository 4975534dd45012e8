// Package sanitize strips HTML from user-supplied text before it is stored.
// Mood labels, notes, and tag names are plain text in Moodlog -- there is no
// rich-text surface -- so anything tag-shaped in the input is hostile or
// accidental and gets removed with bluemonday's strict policy.
package sanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// policy is the singleton bluemonday policy for stripping user-supplied HTML.
// Initialized once via sync.Once for thread-safe lazy initialization.
var (
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

// getPolicy returns the shared sanitization policy, initializing it on first call.
func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		// StrictPolicy removes every element and attribute, leaving only
		// the text content.
		policy = bluemonday.StrictPolicy()
	})
	return policy
}

// Text removes all HTML elements from the input and returns the remaining
// plain text with entities decoded and surrounding whitespace trimmed.
//
// This MUST be called on all user-provided strings before storing them in
// the database. The stored value is plain text; clients may render it
// without further escaping concerns on their side, though they should still
// escape on output as usual.
func Text(input string) string {
	cleaned := getPolicy().Sanitize(input)

	// bluemonday escapes the surviving text (&amp; etc.); decode it back so
	// the stored value is the literal text the user typed.
	return strings.TrimSpace(html.UnescapeString(cleaned))
}
