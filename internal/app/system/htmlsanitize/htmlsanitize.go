// internal/app/system/htmlsanitize/htmlsanitize.go
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

// policy allows basic user-generated-content markup and strips scripts,
// event handlers, and javascript: URLs.
var policy = bluemonday.UGCPolicy()

// Sanitize cleans user-supplied text (feedback content, goal descriptions)
// before it is stored. Plain text passes through unchanged.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}
