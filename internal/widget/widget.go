// Package widget binds the top-N and search result panels to a page. Each
// widget owns one results container and runs one request cycle per trigger:
// spinner, GET, then either a rendered result set or the error path.
//
// Triggers may be called from any goroutine. All document access happens on
// the event loop.
package widget

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync/atomic"

	"github.com/PuerkitoBio/goquery"

	"github.com/NivBraz/linkwidgets/internal/eventloop"
	"github.com/NivBraz/linkwidgets/pkg/dom"
	"github.com/NivBraz/linkwidgets/pkg/fetcher"
	"github.com/NivBraz/linkwidgets/pkg/render"
)

// GenericAlert is shown to the user on any failure unless raw errors are
// exposed.
const GenericAlert = "Error: request failed"

type State int32

const (
	Idle State = iota
	Loading
	Rendered
	Error
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Rendered:
		return "rendered"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Alerter surfaces a failure to the user. It is called on the event loop and
// blocks it, like a modal dialog.
type Alerter interface {
	Alert(message string)
}

type AlertFunc func(message string)

func (f AlertFunc) Alert(message string) { f(message) }

// Requester is the transport a widget sends its GET through.
type Requester interface {
	Get(ctx context.Context, path string, query url.Values) (*fetcher.Response, error)
}

type Options struct {
	Logger  *slog.Logger
	Alerter Alerter
	// GuardStale drops a response when a later trigger has already been
	// issued for the same widget.
	GuardStale bool
	// ExposeRawErrors puts the raw response body into the alert text.
	ExposeRawErrors bool
}

// cycle is the request lifecycle shared by both widgets.
type cycle struct {
	name    string
	loop    *eventloop.Loop
	client  Requester
	results *goquery.Selection
	opts    Options

	token uint64 // loop-only
	state atomic.Int32
}

func newCycle(name string, loop *eventloop.Loop, client Requester, results *goquery.Selection, opts Options) *cycle {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Alerter == nil {
		opts.Alerter = AlertFunc(func(string) {})
	}
	return &cycle{
		name:    name,
		loop:    loop,
		client:  client,
		results: results,
		opts:    opts,
	}
}

func (c *cycle) State() State {
	return State(c.state.Load())
}

// start must run on the loop. It shows the spinner and dispatches the request;
// the response is handled by a later loop task.
func (c *cycle) start(ctx context.Context, path string, query url.Values, renderBody func([]byte) (string, error)) {
	c.token++
	token := c.token

	dom.SetInnerHTML(c.results, render.Spinner)
	c.state.Store(int32(Loading))
	c.opts.Logger.Debug("request dispatched", "widget", c.name, "token", token, "query", query.Encode())

	var (
		resp *fetcher.Response
		err  error
	)
	c.loop.Dispatch(
		func() { resp, err = c.client.Get(ctx, path, query) },
		func() { c.finish(token, resp, err, renderBody) },
	)
}

func (c *cycle) finish(token uint64, resp *fetcher.Response, err error, renderBody func([]byte) (string, error)) {
	if c.opts.GuardStale && token != c.token {
		c.opts.Logger.Debug("stale response dropped", "widget", c.name, "token", token, "latest", c.token)
		return
	}

	dom.SetInnerHTML(c.results, "")

	if err != nil {
		c.fail(0, nil, err)
		return
	}
	if resp.StatusCode != http.StatusOK {
		c.fail(resp.StatusCode, resp.Body, nil)
		return
	}

	markup, err := renderBody(resp.Body)
	if err != nil {
		c.fail(resp.StatusCode, resp.Body, err)
		return
	}

	dom.SetInnerHTML(c.results, markup)
	c.state.Store(int32(Rendered))
}

// fail logs the raw status and body, then alerts. The container stays empty.
func (c *cycle) fail(status int, body []byte, err error) {
	c.state.Store(int32(Error))

	attrs := []any{"widget", c.name, "status", status, "body", string(body)}
	if err != nil {
		attrs = append(attrs, "err", err)
	}
	c.opts.Logger.Error("request failed", attrs...)

	message := GenericAlert
	if c.opts.ExposeRawErrors {
		raw := string(body)
		if raw == "" && err != nil {
			raw = err.Error()
		}
		message = "Error: " + raw
	}
	c.opts.Alerter.Alert(message)
}
