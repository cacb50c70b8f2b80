// Package sanitize filters rendered block markup before it leaves the
// process. The renderer escapes all text on its own; the policy here strips
// anything that could still execute, e.g. javascript URLs in links.
package sanitize

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

var policy = NewPolicy()

// NewPolicy allows the element and class vocabulary of the block renderer on
// top of the user generated content policy.
func NewPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()

	p.AllowStyling()
	p.AddTargetBlankToFullyQualifiedLinks(true)
	p.RequireNoReferrerOnLinks(true)

	p.AllowAttrs("loading").Matching(regexp.MustCompile(`^(lazy|eager)$`)).OnElements("img", "iframe")

	p.AllowElements("iframe")
	p.AllowAttrs("src").OnElements("iframe")
	p.AllowAttrs("allowfullscreen").OnElements("iframe")
	p.AllowAttrs("frameborder").Matching(bluemonday.Integer).OnElements("iframe")

	p.AllowElements("video")
	p.AllowAttrs("src").OnElements("video")
	p.AllowAttrs("controls").OnElements("video")
	p.AllowAttrs("preload").Matching(regexp.MustCompile(`^(none|metadata|auto)$`)).OnElements("video")

	p.AllowAttrs("type").Matching(regexp.MustCompile(`^checkbox$`)).OnElements("input")
	p.AllowAttrs("checked", "disabled").OnElements("input")

	return p
}

// HTML returns the sanitized form of the given fragment.
func HTML(s string) string {
	return policy.Sanitize(s)
}
