package widget

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"github.com/NivBraz/linkwidgets/internal/eventloop"
	"github.com/NivBraz/linkwidgets/pkg/dom"
	"github.com/NivBraz/linkwidgets/pkg/parser"
	"github.com/NivBraz/linkwidgets/pkg/render"
)

const (
	SearchFormID         = "search-form"
	SearchTermID         = "search-term"
	SearchResultsClass   = "search-results"
	SearchContainerClass = "search-container"
)

// ErrNotBound is returned by Show when the page has no search container.
var ErrNotBound = errors.New("show event not bound")

// SearchView is the part of the page the Search widget owns. Container is
// nil when the page has no search container.
type SearchView struct {
	Form      *goquery.Selection
	Input     *goquery.Selection
	Results   *goquery.Selection
	Container *goquery.Selection
}

func BindSearch(doc *dom.Document) (*SearchView, error) {
	form, err := doc.ByID(SearchFormID)
	if err != nil {
		return nil, fmt.Errorf("failed to bind search widget: %w", err)
	}
	input, err := doc.ByID(SearchTermID)
	if err != nil {
		return nil, fmt.Errorf("failed to bind search widget: %w", err)
	}
	results, err := doc.FirstByClass(SearchResultsClass)
	if err != nil {
		return nil, fmt.Errorf("failed to bind search widget: %w", err)
	}

	view := &SearchView{Form: form, Input: input, Results: results}
	if container, err := doc.FirstByClass(SearchContainerClass); err == nil {
		view.Container = container
	}
	return view, nil
}

type SearchConfig struct {
	Path string
}

type Search struct {
	*cycle
	view   *SearchView
	config SearchConfig
}

func NewSearch(loop *eventloop.Loop, client Requester, view *SearchView, config SearchConfig, opts Options) *Search {
	return &Search{
		cycle:  newCycle("search", loop, client, view.Results, opts),
		view:   view,
		config: config,
	}
}

// Type sets the value of the search input. It does not trigger a request.
func (w *Search) Type(ctx context.Context, term string) error {
	return w.loop.Do(ctx, func() {
		w.view.Input.SetAttr("value", term)
	})
}

// Submit is the form submission trigger.
func (w *Search) Submit(ctx context.Context) error {
	return w.loop.Do(ctx, func() { w.request(ctx) })
}

// Show is the custom show event on the search container, used to re-run the
// search when its tab becomes visible.
func (w *Search) Show(ctx context.Context) error {
	if w.view.Container == nil {
		return ErrNotBound
	}
	return w.loop.Do(ctx, func() { w.request(ctx) })
}

// request reads the term when the request is made, not when the trigger was
// bound.
func (w *Search) request(ctx context.Context) {
	query := url.Values{"s": {w.view.Input.AttrOr("value", "")}}
	w.start(ctx, w.config.Path, query, func(body []byte) (string, error) {
		results, err := parser.ParseSearch(body)
		if err != nil {
			return "", err
		}
		return render.SearchList(results), nil
	})
}
