package widget

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/PuerkitoBio/goquery"

	"github.com/NivBraz/linkwidgets/internal/eventloop"
	"github.com/NivBraz/linkwidgets/pkg/dom"
	"github.com/NivBraz/linkwidgets/pkg/parser"
	"github.com/NivBraz/linkwidgets/pkg/render"
)

const (
	TopNNavID        = "days-nav"
	TopNResultsClass = "top-n-results"
	SelectedClass    = "selected"
	DaysAttr         = "data-days"
)

// TopNView is the part of the page the TopN widget owns.
type TopNView struct {
	Nav     *goquery.Selection
	Results *goquery.Selection
}

func BindTopN(doc *dom.Document) (*TopNView, error) {
	nav, err := doc.ByID(TopNNavID)
	if err != nil {
		return nil, fmt.Errorf("failed to bind top-n widget: %w", err)
	}
	results, err := doc.FirstByClass(TopNResultsClass)
	if err != nil {
		return nil, fmt.Errorf("failed to bind top-n widget: %w", err)
	}
	return &TopNView{Nav: nav, Results: results}, nil
}

type TopNConfig struct {
	Path        string
	Count       int
	DefaultDays int
}

type TopN struct {
	*cycle
	view   *TopNView
	config TopNConfig
}

func NewTopN(loop *eventloop.Loop, client Requester, view *TopNView, config TopNConfig, opts Options) *TopN {
	return &TopN{
		cycle:  newCycle("top-n", loop, client, view.Results, opts),
		view:   view,
		config: config,
	}
}

// Load is the page-load trigger: the default window, without touching the
// button selection.
func (w *TopN) Load(ctx context.Context) error {
	return w.loop.Do(ctx, func() {
		w.request(ctx, strconv.Itoa(w.config.DefaultDays))
	})
}

// Click presses the day button whose data-days equals days.
func (w *TopN) Click(ctx context.Context, days string) error {
	var clickErr error
	err := w.loop.Do(ctx, func() {
		button := w.view.Nav.Find("button").FilterFunction(func(_ int, s *goquery.Selection) bool {
			return s.AttrOr(DaysAttr, "") == days
		}).First()
		if button.Length() == 0 {
			clickErr = fmt.Errorf("%w: no button with %s=%q", dom.ErrElementNotFound, DaysAttr, days)
			return
		}
		w.click(ctx, button)
	})
	if err != nil {
		return err
	}
	return clickErr
}

func (w *TopN) click(ctx context.Context, button *goquery.Selection) {
	dom.SelectExclusive(w.view.Nav, button, SelectedClass)
	w.request(ctx, button.AttrOr(DaysAttr, ""))
}

func (w *TopN) request(ctx context.Context, days string) {
	query := url.Values{
		"n":    {strconv.Itoa(w.config.Count)},
		"days": {days},
	}
	w.start(ctx, w.config.Path, query, func(body []byte) (string, error) {
		results, err := parser.ParseTopN(body)
		if err != nil {
			return "", err
		}
		return render.TopNTable(results), nil
	})
}
