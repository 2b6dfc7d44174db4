package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/NivBraz/linkwidgets/internal/config"
	"github.com/NivBraz/linkwidgets/internal/eventloop"
	"github.com/NivBraz/linkwidgets/internal/widget"
	"github.com/NivBraz/linkwidgets/pkg/dom"
	"github.com/NivBraz/linkwidgets/pkg/fetcher"
)

// App represents the main application
type App struct {
	logger *slog.Logger
	loop   *eventloop.Loop
	doc    *dom.Document
	topN   *widget.TopN
	search *widget.Search
	alerts *AlertLog

	spinnerOut io.Writer
	stop       context.CancelFunc
	stopped    chan struct{}
}

// Options holds the process-level collaborators of the application.
type Options struct {
	Logger *slog.Logger
	// AlertOut receives every alert as it is raised.
	AlertOut io.Writer
	// SpinnerOut receives the terminal spinner. Nil disables it.
	SpinnerOut io.Writer
}

// New creates a new instance of the application and starts its event loop.
func New(cfg *config.Config, opts Options) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.AlertOut == nil {
		opts.AlertOut = io.Discard
	}

	doc, err := loadPage(cfg.Page.File)
	if err != nil {
		return nil, err
	}

	client := fetcher.New(fetcher.FetcherConfig{
		BaseURL:             cfg.API.BaseURL,
		Timeout:             time.Duration(cfg.HTTPClient.Timeout) * time.Second,
		UserAgent:           cfg.HTTPClient.UserAgent,
		LegacyAcceptsHeader: cfg.HTTPClient.LegacyAcceptsHeader,
	})

	alerts := &AlertLog{out: opts.AlertOut}
	widgetOpts := widget.Options{
		Logger:          opts.Logger,
		Alerter:         alerts,
		GuardStale:      cfg.StaleGuardEnabled(),
		ExposeRawErrors: cfg.Widgets.ExposeRawErrors,
	}

	loop := eventloop.New()
	a := &App{
		logger:     opts.Logger,
		loop:       loop,
		doc:        doc,
		alerts:     alerts,
		spinnerOut: opts.SpinnerOut,
		stopped:    make(chan struct{}),
	}

	// A page may carry only one of the two widgets.
	if view, err := widget.BindTopN(doc); err == nil {
		a.topN = widget.NewTopN(loop, client, view, widget.TopNConfig{
			Path:        cfg.API.TopNPath,
			Count:       cfg.TopN.Count,
			DefaultDays: cfg.TopN.Days,
		}, widgetOpts)
	} else {
		opts.Logger.Debug("top-n widget not bound", "err", err)
	}
	if view, err := widget.BindSearch(doc); err == nil {
		a.search = widget.NewSearch(loop, client, view, widget.SearchConfig{
			Path: cfg.API.SearchPath,
		}, widgetOpts)
	} else {
		opts.Logger.Debug("search widget not bound", "err", err)
	}
	if a.topN == nil && a.search == nil {
		return nil, fmt.Errorf("page binds no widget")
	}

	ctx, stop := context.WithCancel(context.Background())
	a.stop = stop
	go func() {
		defer close(a.stopped)
		loop.Run(ctx)
	}()

	return a, nil
}

func loadPage(path string) (*dom.Document, error) {
	if path == "" {
		return dom.ParseString(dom.DefaultPage)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening page file: %w", err)
	}
	defer f.Close()
	return dom.Parse(f)
}

// Close stops the event loop. Requests still in flight are abandoned.
func (a *App) Close() {
	a.stop()
	<-a.stopped
}

// TopN runs one top-n cycle: the page-load trigger when days is 0, otherwise
// a click on the matching day button.
func (a *App) TopN(ctx context.Context, days int) error {
	if a.topN == nil {
		return fmt.Errorf("top-n widget: %w", dom.ErrElementNotFound)
	}

	var err error
	if days == 0 {
		err = a.topN.Load(ctx)
	} else {
		err = a.topN.Click(ctx, strconv.Itoa(days))
	}
	if err != nil {
		return err
	}

	a.wait("Loading top links...")
	return nil
}

// Search types term into the search box and submits the form.
func (a *App) Search(ctx context.Context, term string) error {
	if a.search == nil {
		return fmt.Errorf("search widget: %w", dom.ErrElementNotFound)
	}
	if err := a.search.Type(ctx, term); err != nil {
		return err
	}
	if err := a.search.Submit(ctx); err != nil {
		return err
	}

	a.wait("Searching...")
	return nil
}

// Page fires the page-load trigger of every bound widget at once, the way a
// browser would, and returns the finished document. When term is empty the
// search widget is left alone.
func (a *App) Page(ctx context.Context, term string) (string, error) {
	if a.topN != nil {
		if err := a.topN.Load(ctx); err != nil {
			return "", err
		}
	}
	if a.search != nil && term != "" {
		if err := a.search.Type(ctx, term); err != nil {
			return "", err
		}
		err := a.search.Show(ctx)
		if errors.Is(err, widget.ErrNotBound) {
			err = a.search.Submit(ctx)
		}
		if err != nil {
			return "", err
		}
	}

	a.wait("Loading page...")

	var page string
	var renderErr error
	if err := a.loop.Do(ctx, func() { page, renderErr = a.doc.HTML() }); err != nil {
		return "", err
	}
	return page, renderErr
}

// wait blocks until every in-flight request has been handled.
func (a *App) wait(description string) {
	start := time.Now()
	if a.spinnerOut == nil {
		a.loop.Wait()
	} else {
		runWithSpinner(a.spinnerOut, description, a.loop.Wait)
	}
	a.logger.Debug("requests settled", "elapsed", time.Since(start))
}

// TopNRows reads the rendered top-n table back out of the page.
func (a *App) TopNRows(ctx context.Context) ([][]string, error) {
	var rows [][]string
	err := a.loop.Do(ctx, func() {
		a.doc.Find("." + widget.TopNResultsClass + " tbody tr").Each(func(_ int, tr *goquery.Selection) {
			var row []string
			tr.Find("td").Each(func(_ int, td *goquery.Selection) {
				row = append(row, strings.TrimSpace(td.Text()))
			})
			rows = append(rows, row)
		})
	})
	return rows, err
}

// SearchRows reads the rendered search list back out of the page as
// (link, url) pairs.
func (a *App) SearchRows(ctx context.Context) ([][]string, error) {
	var rows [][]string
	err := a.loop.Do(ctx, func() {
		a.doc.Find("." + widget.SearchResultsClass + " li").Each(func(_ int, li *goquery.Selection) {
			text := li.Text()
			url := li.Find("a").Last().Text()
			if url == "" {
				// Unlinked URLs leave no anchor to split on.
				_, url, _ = strings.Cut(text, ": ")
			}
			link := strings.TrimSuffix(strings.TrimSuffix(text, url), ": ")
			rows = append(rows, []string{link, url})
		})
	})
	return rows, err
}

// ResultsHTML returns the innerHTML of the results container with class.
func (a *App) ResultsHTML(ctx context.Context, class string) (string, error) {
	var markup string
	var findErr error
	err := a.loop.Do(ctx, func() {
		var sel *goquery.Selection
		sel, findErr = a.doc.FirstByClass(class)
		if findErr == nil {
			markup = dom.InnerHTML(sel)
		}
	})
	if err != nil {
		return "", err
	}
	return markup, findErr
}

// Alerts returns every alert raised so far.
func (a *App) Alerts() []string {
	return a.alerts.Messages()
}

// AlertLog records alerts and echoes them to a writer.
type AlertLog struct {
	mu       sync.Mutex
	out      io.Writer
	messages []string
}

func (l *AlertLog) Alert(message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, message)
	fmt.Fprintln(l.out, message)
}

func (l *AlertLog) Messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.messages...)
}
