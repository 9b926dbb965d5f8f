package covers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultCoverAPIURL = "https://bookcover.longitood.com/bookcover"
	openLibraryCovers  = "https://covers.openlibrary.org/b"

	requestTimeout = 5 * time.Second
)

// Resolver finds a cover image URL for a book, trying sources from most
// to least specific. Every source failure just moves on to the next
// one; a book with no resolvable cover is a normal outcome, not an
// error.
type Resolver struct {
	coverAPIURL string
	olCoversURL string
	httpClient  *http.Client
}

func NewResolver(coverAPIURL string) *Resolver {
	if coverAPIURL == "" {
		coverAPIURL = defaultCoverAPIURL
	}
	return &Resolver{
		coverAPIURL: strings.TrimRight(coverAPIURL, "/"),
		olCoversURL: openLibraryCovers,
		httpClient:  &http.Client{Timeout: requestTimeout},
	}
}

// Resolve tries the cover API by title and author, then OpenLibrary by
// LCCN (newest identifiers first), then OpenLibrary by ISBN. Returns
// false when every source comes up empty.
func (r *Resolver) Resolve(ctx context.Context, title, author string, lccns []string, isbn string) (string, bool) {
	if coverURL, ok := r.fromCoverAPI(ctx, title, author); ok {
		return coverURL, true
	}
	// later identifiers tend to be the newer editions
	for i := len(lccns) - 1; i >= 0; i-- {
		if coverURL, ok := r.fromOpenLibrary(ctx, "lccn", lccns[i]); ok {
			return coverURL, true
		}
	}
	if isbn != "" {
		if coverURL, ok := r.fromOpenLibrary(ctx, "isbn", isbn); ok {
			return coverURL, true
		}
	}
	return "", false
}

func (r *Resolver) fromCoverAPI(ctx context.Context, title, author string) (string, bool) {
	if title == "" {
		return "", false
	}

	params := url.Values{}
	params.Set("book_title", title)
	params.Set("author_name", author)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.coverAPIURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", false
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", false
	}

	var body struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", false
	}
	if body.URL == "" {
		return "", false
	}
	return body.URL, true
}

// fromOpenLibrary probes the covers service for one identifier.
// default=false turns the placeholder image into a 404, and the
// content-type check guards against HTML error pages served with 200.
func (r *Resolver) fromOpenLibrary(ctx context.Context, idType, id string) (string, bool) {
	if id == "" {
		return "", false
	}

	coverURL := fmt.Sprintf("%s/%s/%s-L.jpg?default=false", r.olCoversURL, idType, url.PathEscape(id))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, coverURL, nil)
	if err != nil {
		return "", false
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", false
	}
	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "image/") {
		return "", false
	}
	return coverURL, true
}
