package models

// TopNResult is one row of the top_n endpoint: a short link and how often it
// was hit in the requested window.
type TopNResult struct {
	Link     string `json:"Link"`
	HitCount int    `json:"HitCount"`
}

// SearchResult is one match returned by the search endpoint.
type SearchResult struct {
	Link string `json:"Link"`
	URL  string `json:"URL"`
}
