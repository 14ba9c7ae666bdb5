package models

import "strings"

// GenerateSlug derives a URL-safe identifier from a project title: lowercase,
// runs of non-alphanumeric characters collapsed to a single '-', leading and
// trailing separators stripped.
func GenerateSlug(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	pendingDash := false
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		} else {
			pendingDash = true
		}
	}
	return b.String()
}
