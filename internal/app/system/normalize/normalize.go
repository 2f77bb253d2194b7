// internal/app/system/normalize/normalize.go
package normalize

import "strings"

// Email lowercases and trims an email address so lookups and the unique
// index agree on one spelling.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name collapses interior whitespace runs and trims the ends. Display
// casing is preserved; the case-insensitive variant is produced separately
// with text.Fold.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
