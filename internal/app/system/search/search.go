// internal/app/system/search/search.go
package search

import (
	"regexp"
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EmailPivot reports whether a directory query should match on email
// instead of folded name. A query containing '@' is taken as an email
// search; emails are stored lowercased, so the prefix match below
// stays exact.
func EmailPivot(q string) bool {
	return strings.Contains(q, "@")
}

// Term normalizes a raw query for matching: lowercased for email
// searches, folded the same way names are folded at write time
// otherwise. Folding both sides keeps "José" and "jose" equivalent.
func Term(q string) string {
	q = strings.TrimSpace(q)
	if q == "" {
		return ""
	}
	if EmailPivot(q) {
		return strings.ToLower(q)
	}
	return text.Fold(q)
}

// PrefixRegex builds an anchored prefix regex for a normalized term.
// Anchoring keeps the query on the index instead of a collection scan.
func PrefixRegex(term string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(term)}
}
