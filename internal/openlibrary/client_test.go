package openlibrary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search.json", r.URL.Path)
		assert.Equal(t, "the hobbit", r.URL.Query().Get("q"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.NotEmpty(t, r.URL.Query().Get("fields"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"numFound": 42,
			"start": 10,
			"docs": [
				{
					"title": "The Hobbit",
					"author_name": ["J.R.R. Tolkien"],
					"first_publish_year": 1937,
					"number_of_pages_median": 310,
					"ratings_average": 4.28,
					"isbn": ["9780618260300"],
					"lccn": ["37019212"]
				}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.Search(context.Background(), "the hobbit", 2, 10)

	require.NoError(t, err)
	assert.Equal(t, 42, result.NumFound)
	require.Len(t, result.Docs, 1)

	doc := result.Docs[0]
	assert.Equal(t, "The Hobbit", doc.Title)
	assert.Equal(t, []string{"J.R.R. Tolkien"}, doc.AuthorName)
	assert.Equal(t, 1937, *doc.FirstPublish)
	assert.Equal(t, 310, doc.PagesMedian)
	assert.Equal(t, 4.28, *doc.RatingsAverage)
}

func TestSearch_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.Search(context.Background(), "anything", 1, 20)

	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestSearchAuthors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/authors.json", r.URL.Path)
		assert.Equal(t, "tolkien", r.URL.Query().Get("q"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"numFound": 1,
			"docs": [{"key": "OL26320A", "name": "J.R.R. Tolkien", "work_count": 648}]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.SearchAuthors(context.Background(), "tolkien", 10)

	require.NoError(t, err)
	require.Len(t, result.Docs, 1)
	assert.Equal(t, "OL26320A", result.Docs[0].Key)
	assert.Equal(t, 648, result.Docs[0].WorkCount)
}

func TestGetAuthor(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/authors/OL26320A.json", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"key": "/authors/OL26320A", "name": "J.R.R. Tolkien", "birth_date": "3 January 1892"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	author, err := client.GetAuthor(context.Background(), "OL26320A")

	require.NoError(t, err)
	assert.Equal(t, "J.R.R. Tolkien", author.Name)
	assert.Equal(t, "3 January 1892", author.BirthDate)
}

func TestGetAuthor_InvalidKey(t *testing.T) {
	client := NewClient("http://unused.invalid")

	for _, key := range []string{"", "26320A", "OLxyzA", "OL26320A/works", "../etc/passwd"} {
		author, err := client.GetAuthor(context.Background(), key)
		assert.Error(t, err, "key %q should be rejected", key)
		assert.Nil(t, author)
	}
}
