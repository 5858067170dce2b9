package export

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Clean strips markup from user text so reports only carry plain text.
func Clean(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
