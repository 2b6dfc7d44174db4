// pkg/fetcher/fetcher.go
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("linkwidgets/pkg/fetcher")

// ErrTransport wraps failures that happen before any HTTP status is known:
// DNS, connection, timeout, cancelled context.
var ErrTransport = errors.New("transport error")

type Fetcher struct {
	client *resty.Client
	config FetcherConfig
}

type FetcherConfig struct {
	BaseURL   string
	Timeout   time.Duration // zero means requests may hang forever
	UserAgent string
	// LegacyAcceptsHeader also sends the misspelled "Accepts" header that
	// older page scripts used.
	LegacyAcceptsHeader bool
}

// Response is what came back from the endpoint. Non-200 statuses are not
// errors at this layer.
type Response struct {
	StatusCode int
	Body       []byte
}

func New(config FetcherConfig) *Fetcher {
	client := resty.New()
	client.SetBaseURL(config.BaseURL)
	client.SetHeader("Accept", "application/json")
	if config.LegacyAcceptsHeader {
		client.SetHeader("Accepts", "application/json")
	}
	if config.UserAgent != "" {
		client.SetHeader("User-Agent", config.UserAgent)
	}
	if config.Timeout > 0 {
		client.SetTimeout(config.Timeout)
	}

	return &Fetcher{
		client: client,
		config: config,
	}
}

// Get issues a single GET against path with the given query parameters.
func (f *Fetcher) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	ctx, span := tracer.Start(ctx, "fetcher:Get")
	defer span.End()
	span.SetAttributes(attribute.String("http.path", path))

	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParamsFromValues(query).
		Get(path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return nil, fmt.Errorf("%w: GET %s: %v", ErrTransport, path, err)
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode()))
	return &Response{
		StatusCode: resp.StatusCode(),
		Body:       resp.Body(),
	}, nil
}
