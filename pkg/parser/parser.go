// pkg/parser/parser.go
package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/NivBraz/linkwidgets/internal/models"
)

// ErrMalformedBody is returned when a 200 response does not hold a JSON array.
var ErrMalformedBody = errors.New("malformed response body")

// ParseResults decodes a result set from a response body. Surrounding
// whitespace is ignored. An empty body and a JSON null both mean "no results"
// and yield an empty, non-nil slice.
func ParseResults[T any](content []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []T{}, nil
	}

	var results []T
	if err := json.Unmarshal(trimmed, &results); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if results == nil {
		results = []T{}
	}
	return results, nil
}

// ParseTopN extracts the top_n result set
func ParseTopN(content []byte) ([]models.TopNResult, error) {
	return ParseResults[models.TopNResult](content)
}

// ParseSearch extracts the search result set
func ParseSearch(content []byte) ([]models.SearchResult, error) {
	return ParseResults[models.SearchResult](content)
}
