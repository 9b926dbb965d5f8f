package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://openlibrary.org"

	// OpenLibrary asks clients to stay under ~100 requests per 5 minutes
	rateLimit = 2
	rateBurst = 5

	requestTimeout = 5 * time.Second
)

// searchFields keeps the search payload small; anything not listed here
// is dropped server-side.
var searchFields = strings.Join([]string{
	"author_key",
	"author_name",
	"first_publish_year",
	"language",
	"number_of_pages_median",
	"title",
	"subject",
	"person",
	"ratings_average",
	"readinglog_count",
	"subject_key",
	"lccn",
	"isbn",
}, ",")

var authorKeyPattern = regexp.MustCompile(`^OL\d+A$`)

// Client wraps the OpenLibrary REST API with rate limiting and short
// timeouts. A slow upstream should degrade search, not take the whole
// service down with it.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		rateLimiter: rate.NewLimiter(rate.Limit(rateLimit), rateBurst),
		httpClient: &http.Client{
			Timeout: requestTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Doc is one search result. Every field is optional; upstream records
// are wildly uneven.
type Doc struct {
	Title          string   `json:"title"`
	AuthorKey      []string `json:"author_key,omitempty"`
	AuthorName     []string `json:"author_name,omitempty"`
	FirstPublish   *int     `json:"first_publish_year,omitempty"`
	Language       []string `json:"language,omitempty"`
	PagesMedian    int      `json:"number_of_pages_median,omitempty"`
	Subject        []string `json:"subject,omitempty"`
	Person         []string `json:"person,omitempty"`
	RatingsAverage *float64 `json:"ratings_average,omitempty"`
	ReadinglogCnt  int      `json:"readinglog_count,omitempty"`
	SubjectKey     []string `json:"subject_key,omitempty"`
	LCCN           []string `json:"lccn,omitempty"`
	ISBN           []string `json:"isbn,omitempty"`
}

type SearchResponse struct {
	NumFound int   `json:"numFound"`
	Start    int   `json:"start"`
	Docs     []Doc `json:"docs"`
}

type AuthorDoc struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	BirthDate string `json:"birth_date,omitempty"`
	TopWork   string `json:"top_work,omitempty"`
	WorkCount int    `json:"work_count,omitempty"`
}

type AuthorSearchResponse struct {
	NumFound int         `json:"numFound"`
	Docs     []AuthorDoc `json:"docs"`
}

// Author is the detail record behind /authors/{key}.json. Bio shows up
// as either a plain string or a typed text object, so it stays raw.
type Author struct {
	Key            string          `json:"key"`
	Name           string          `json:"name"`
	Bio            json.RawMessage `json:"bio,omitempty"`
	BirthDate      string          `json:"birth_date,omitempty"`
	DeathDate      string          `json:"death_date,omitempty"`
	AlternateNames []string        `json:"alternate_names,omitempty"`
	Links          json.RawMessage `json:"links,omitempty"`
}

// Search runs a paginated title/author/keyword search.
func (c *Client) Search(ctx context.Context, query string, page, limit int) (*SearchResponse, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))
	params.Set("fields", searchFields)

	var result SearchResponse
	if err := c.get(ctx, "/search.json?"+params.Encode(), &result); err != nil {
		return nil, fmt.Errorf("openlibrary search: %w", err)
	}
	return &result, nil
}

// SearchAuthors searches authors by name.
func (c *Client) SearchAuthors(ctx context.Context, query string, limit int) (*AuthorSearchResponse, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))

	var result AuthorSearchResponse
	if err := c.get(ctx, "/search/authors.json?"+params.Encode(), &result); err != nil {
		return nil, fmt.Errorf("openlibrary author search: %w", err)
	}
	return &result, nil
}

// GetAuthor fetches one author record by OpenLibrary key (e.g. OL23919A).
func (c *Client) GetAuthor(ctx context.Context, key string) (*Author, error) {
	if !authorKeyPattern.MatchString(key) {
		return nil, fmt.Errorf("invalid author key %q", key)
	}

	var result Author
	if err := c.get(ctx, "/authors/"+key+".json", &result); err != nil {
		return nil, fmt.Errorf("openlibrary author %s: %w", key, err)
	}
	return &result, nil
}

func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}
