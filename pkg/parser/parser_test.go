package parser

import (
	"errors"
	"reflect"
	"testing"

	"github.com/NivBraz/linkwidgets/internal/models"
)

func TestParseTopN(t *testing.T) {
	tests := []struct {
		name     string
		content  []byte
		expected []models.TopNResult
		wantErr  bool
	}{
		{
			name:    "Two Results In Order",
			content: []byte(`[{"Link":"a/b","HitCount":5},{"Link":"c/d","HitCount":2}]`),
			expected: []models.TopNResult{
				{Link: "a/b", HitCount: 5},
				{Link: "c/d", HitCount: 2},
			},
		},
		{
			name:     "Surrounding Whitespace",
			content:  []byte("\n  [{\"Link\":\"x\",\"HitCount\":1}]\n"),
			expected: []models.TopNResult{{Link: "x", HitCount: 1}},
		},
		{
			name:     "Empty Array",
			content:  []byte("[]\n"),
			expected: []models.TopNResult{},
		},
		{
			name:     "Null Body",
			content:  []byte("null\n"),
			expected: []models.TopNResult{},
		},
		{
			name:     "Absent Body",
			content:  []byte(""),
			expected: []models.TopNResult{},
		},
		{
			name:    "Malformed JSON",
			content: []byte("<html>oops</html>"),
			wantErr: true,
		},
		{
			name:    "Object Instead Of Array",
			content: []byte(`{"Link":"a"}`),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTopN(tt.content)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTopN() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedBody) {
					t.Errorf("Expected ErrMalformedBody, got %v", err)
				}
				return
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ParseTopN() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseSearch(t *testing.T) {
	got, err := ParseSearch([]byte(`[{"Link":"docs","URL":"https://docs.example.com"}]`))
	if err != nil {
		t.Fatalf("ParseSearch() error = %v", err)
	}
	expected := []models.SearchResult{{Link: "docs", URL: "https://docs.example.com"}}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("ParseSearch() = %v, want %v", got, expected)
	}
}
