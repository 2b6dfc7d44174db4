package dom

import (
	"errors"
	"strings"
	"testing"
)

func TestDefaultPageContract(t *testing.T) {
	doc, err := ParseString(DefaultPage)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	for _, id := range []string{"days-nav", "search-form", "search-term"} {
		if _, err := doc.ByID(id); err != nil {
			t.Errorf("ByID(%q) error = %v", id, err)
		}
	}
	for _, class := range []string{"top-n-results", "search-results", "search-container"} {
		if _, err := doc.FirstByClass(class); err != nil {
			t.Errorf("FirstByClass(%q) error = %v", class, err)
		}
	}

	nav, _ := doc.ByID("days-nav")
	buttons := nav.Find("button")
	if buttons.Length() != 3 {
		t.Fatalf("Expected 3 day buttons, got %d", buttons.Length())
	}
	for i, want := range []string{"1", "7", "30"} {
		if got, _ := buttons.Eq(i).Attr("data-days"); got != want {
			t.Errorf("button %d data-days = %q, want %q", i, got, want)
		}
	}
}

func TestMissingElement(t *testing.T) {
	doc, err := ParseString("<html><body></body></html>")
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	if _, err := doc.ByID("days-nav"); !errors.Is(err, ErrElementNotFound) {
		t.Errorf("Expected ErrElementNotFound, got %v", err)
	}
	if _, err := doc.FirstByClass("top-n-results"); !errors.Is(err, ErrElementNotFound) {
		t.Errorf("Expected ErrElementNotFound, got %v", err)
	}
	if doc.HasClass("search-container") {
		t.Error("HasClass() = true on empty page")
	}
}

func TestSetInnerHTML(t *testing.T) {
	doc, _ := ParseString(`<div class="out"><p>old</p></div>`)
	out, _ := doc.FirstByClass("out")

	SetInnerHTML(out, "<span>No results found</span>")
	if got := InnerHTML(out); got != "<span>No results found</span>" {
		t.Errorf("InnerHTML() = %q", got)
	}

	SetInnerHTML(out, "")
	if got := InnerHTML(out); got != "" {
		t.Errorf("InnerHTML() after clear = %q", got)
	}
}

func TestSelectExclusive(t *testing.T) {
	doc, _ := ParseString(DefaultPage)
	nav, _ := doc.ByID("days-nav")
	buttons := nav.Find("button")

	for _, i := range []int{2, 1, 1, 0, 2} {
		SelectExclusive(nav, buttons.Eq(i), "selected")

		selected := nav.Find("button.selected")
		if selected.Length() != 1 {
			t.Fatalf("Expected exactly one selected button, got %d", selected.Length())
		}
		if !buttons.Eq(i).HasClass("selected") {
			t.Errorf("button %d should be selected", i)
		}
	}
}

func TestHTML(t *testing.T) {
	doc, _ := ParseString(DefaultPage)
	page, err := doc.HTML()
	if err != nil {
		t.Fatalf("HTML() error = %v", err)
	}
	if !strings.Contains(page, `id="days-nav"`) {
		t.Errorf("rendered page lost the days nav: %s", page)
	}
}
