// Package render turns result sets into the markup that fills a widget's
// results container.
package render

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	"github.com/NivBraz/linkwidgets/internal/models"
)

const (
	// Spinner is shown between request dispatch and response handling.
	Spinner = `<i class="fa fa-2x fa-pulse fa-spinner"></i>`
	// NoResults replaces the whole container when a result set is empty.
	NoResults = `<span>No results found</span>`
)

var policy = newPolicy()

// blockedSchemes run code or inline content when followed.
var blockedSchemes = map[string]bool{
	"javascript": true,
	"data":       true,
	"vbscript":   true,
}

// newPolicy admits only what the table and list renderers emit. Any
// well-formed scheme passes the policy; blocked schemes never reach it
// because href drops them first. An anchor whose href is rejected is
// unwrapped to its text.
func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("table", "thead", "tbody", "tr", "th", "td", "ul", "li", "span")
	p.AllowAttrs("href").OnElements("a")
	p.RequireParseableURLs(true)
	p.AllowRelativeURLs(true)
	p.AllowURLSchemesMatching(regexp.MustCompile(`^[a-z][a-z0-9+.\-]*$`))
	return p
}

// linkPath returns the site-relative, percent-encoded path of a short link.
func linkPath(link string) string {
	return (&url.URL{Path: "/" + link}).String()
}

// href percent-encodes raw for use as a link target. It reports false when
// raw cannot be parsed or uses a blocked scheme.
func href(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		if u, err = url.Parse(escapeInvalid(raw)); err != nil {
			return "", false
		}
	}
	if blockedSchemes[u.Scheme] {
		return "", false
	}
	// String re-encodes the path and fragment but emits these verbatim.
	u.RawQuery = escapeInvalid(u.RawQuery)
	u.Opaque = escapeInvalid(u.Opaque)
	return u.String(), true
}

// escapeInvalid percent-encodes every byte that may not appear in a URL,
// including a '%' that does not start a valid escape.
func escapeInvalid(raw string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c == '%' && i+2 < len(raw) && isHex(raw[i+1]) && isHex(raw[i+2]):
			b.WriteByte(c)
		case c != '%' && c > ' ' && c < 0x7f && !strings.ContainsRune(`"<>\^`+"`"+`{|}`, rune(c)):
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&0x0f])
		}
	}
	return b.String()
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

// TopNTable renders a two-column table of links and hit counts. Each link
// points at the site-relative path of the short name.
func TopNTable(results []models.TopNResult) string {
	if len(results) == 0 {
		return NoResults
	}

	var b strings.Builder
	b.WriteString("<table><thead><tr><th>Link</th><th>Count</th></tr></thead><tbody>")
	for _, r := range results {
		b.WriteString(`<tr><td><a href="`)
		b.WriteString(html.EscapeString(linkPath(r.Link)))
		b.WriteString(`">`)
		b.WriteString(html.EscapeString(r.Link))
		b.WriteString("</a></td><td>")
		b.WriteString(strconv.Itoa(r.HitCount))
		b.WriteString("</td></tr>")
	}
	b.WriteString("</tbody></table>")
	return policy.Sanitize(b.String())
}

// SearchList renders one "<link>: <url>" item per match.
func SearchList(results []models.SearchResult) string {
	if len(results) == 0 {
		return NoResults
	}

	var b strings.Builder
	b.WriteString("<ul>")
	for _, r := range results {
		b.WriteString("<li>")
		b.WriteString(html.EscapeString(r.Link))
		b.WriteString(": ")
		target, ok := href(r.URL)
		if ok {
			b.WriteString(`<a href="`)
			b.WriteString(html.EscapeString(target))
			b.WriteString(`">`)
		}
		b.WriteString(html.EscapeString(r.URL))
		if ok {
			b.WriteString("</a>")
		}
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return policy.Sanitize(b.String())
}
