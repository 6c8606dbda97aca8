// Package sanitize cleans user-supplied text before it is stored or indexed.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ugc    = bluemonday.UGCPolicy()
	strict = bluemonday.StrictPolicy()
)

// Rich keeps safe formatting markup (links, lists, emphasis) and strips
// scripts, handlers and styles.
func Rich(s string) string {
	return strings.TrimSpace(ugc.Sanitize(s))
}

// Plain strips all markup and collapses whitespace. Block boundaries become
// spaces so adjacent paragraphs don't merge.
func Plain(s string) string {
	for _, tag := range []string{"</p>", "<br>", "<br/>", "<br />", "</div>", "</li>"} {
		s = strings.ReplaceAll(s, tag, " ")
	}
	s = html.UnescapeString(strict.Sanitize(s))
	return strings.Join(strings.Fields(s), " ")
}
