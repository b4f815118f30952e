// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize turns admin-entered free text (descriptions, notes)
// into plain text before it is stored. Templates escape on output, so the
// stored value never carries markup.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Sanitize strips every tag (and the contents of script/style elements) and
// returns unescaped plain text.
func Sanitize(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
