// Package dom holds an HTML page in memory and gives widgets the small set of
// element operations they need: lookup by id or class, innerHTML replacement,
// attribute reads and class toggling.
//
// A Document is not safe for concurrent use. Callers serialize access through
// the event loop.
package dom

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrElementNotFound is returned when the page lacks an element a widget needs.
var ErrElementNotFound = errors.New("element not found")

type Document struct {
	doc *goquery.Document
}

// Parse loads a page from r.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("error parsing page: %w", err)
	}
	return &Document{doc: doc}, nil
}

func ParseString(page string) (*Document, error) {
	return Parse(strings.NewReader(page))
}

// ByID returns the element with the given id.
func (d *Document) ByID(id string) (*goquery.Selection, error) {
	sel := d.doc.Find("#" + id).First()
	if sel.Length() == 0 {
		return nil, fmt.Errorf("%w: #%s", ErrElementNotFound, id)
	}
	return sel, nil
}

// FirstByClass returns the first element carrying class.
func (d *Document) FirstByClass(class string) (*goquery.Selection, error) {
	sel := d.doc.Find("." + class).First()
	if sel.Length() == 0 {
		return nil, fmt.Errorf("%w: .%s", ErrElementNotFound, class)
	}
	return sel, nil
}

// HasClass reports whether any element carries class.
func (d *Document) HasClass(class string) bool {
	return d.doc.Find("."+class).Length() > 0
}

// SetInnerHTML replaces the children of sel with the parsed markup.
func SetInnerHTML(sel *goquery.Selection, markup string) {
	sel.SetHtml(markup)
}

// InnerHTML renders the children of sel. A rendering failure yields "".
func InnerHTML(sel *goquery.Selection) string {
	markup, err := sel.Html()
	if err != nil {
		return ""
	}
	return markup
}

// SelectExclusive removes class from every button in group and adds it to
// button only.
func SelectExclusive(group, button *goquery.Selection, class string) {
	group.Find("button").RemoveClass(class)
	button.AddClass(class)
}

// HTML renders the whole page.
func (d *Document) HTML() (string, error) {
	return goquery.OuterHtml(d.doc.Selection)
}

// Find exposes a raw CSS query for read-only inspection.
func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}
