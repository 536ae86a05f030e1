package stub

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/sidx05/NewsHub/pkg/newsapi"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewServer(NewMemStore(), nil).Handler())
	t.Cleanup(srv.Close)
	return srv
}

// getJSON fetches url, decodes the body into out and returns the status.
func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
	return resp.StatusCode
}

func TestServerCategories(t *testing.T) {
	srv := newTestServer(t)

	var body struct {
		Success bool       `json:"success"`
		Data    []Category `json:"data"`
	}
	if status := getJSON(t, srv.URL+"/api/categories", &body); status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if !body.Success {
		t.Error("success flag not set")
	}
	if len(body.Data) != 4 {
		t.Errorf("expected 4 categories, got %d", len(body.Data))
	}
}

func TestServerCategoryBySlug(t *testing.T) {
	srv := newTestServer(t)

	t.Run("found", func(t *testing.T) {
		// The single-category endpoint answers the bare object.
		var c Category
		if status := getJSON(t, srv.URL+"/api/categories/science", &c); status != http.StatusOK {
			t.Fatalf("status = %d", status)
		}
		if c.Slug != "science" || c.Name != "Science" {
			t.Errorf("got %+v", c)
		}
	})

	t.Run("missing", func(t *testing.T) {
		var body struct {
			Error string `json:"error"`
		}
		if status := getJSON(t, srv.URL+"/api/categories/gardening", &body); status != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", status)
		}
		if body.Error == "" {
			t.Error("404 body carries no error message")
		}
	})
}

func TestServerArticles(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name      string
		query     string
		wantSlugs []string
		wantTotal int
	}{
		{
			name:      "category filter",
			query:     "?category=science",
			wantSlugs: []string{"coral-reef-restoration", "deep-sea-mapping-milestone"},
			wantTotal: 2,
		},
		{
			name:      "search",
			query:     "?q=supply",
			wantSlugs: []string{"copper-supply-squeeze"},
			wantTotal: 1,
		},
		{
			name:      "featured",
			query:     "?featured=true",
			wantSlugs: []string{"chipmakers-race-to-2nm", "bond-yields-retreat", "grid-storage-tenders"},
			wantTotal: 3,
		},
		{
			name:      "pagination",
			query:     "?limit=2&page=2",
			wantSlugs: []string{"bond-yields-retreat", "ports-automation-dispute"},
			wantTotal: 8,
		},
		{
			name:      "junk numbers fall back to defaults",
			query:     "?limit=abc&page=xyz",
			wantSlugs: nil, // length checked below instead
			wantTotal: 8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body struct {
				Data struct {
					Articles []Article `json:"articles"`
					Total    int       `json:"total"`
				} `json:"data"`
			}
			if status := getJSON(t, srv.URL+"/api/public/articles"+tt.query, &body); status != http.StatusOK {
				t.Fatalf("status = %d", status)
			}
			if body.Data.Total != tt.wantTotal {
				t.Errorf("total = %d, want %d", body.Data.Total, tt.wantTotal)
			}
			if tt.wantSlugs == nil {
				if len(body.Data.Articles) != 8 {
					t.Errorf("expected the default page of 8, got %d", len(body.Data.Articles))
				}
				return
			}
			if got := slugsOf(body.Data.Articles); !reflect.DeepEqual(got, tt.wantSlugs) {
				t.Errorf("slugs = %v, want %v", got, tt.wantSlugs)
			}
		})
	}
}

func TestServerArticleBySlug(t *testing.T) {
	srv := newTestServer(t)

	t.Run("found", func(t *testing.T) {
		var body struct {
			Data Article `json:"data"`
		}
		if status := getJSON(t, srv.URL+"/api/public/articles/bond-yields-retreat", &body); status != http.StatusOK {
			t.Fatalf("status = %d", status)
		}
		if body.Data.Slug != "bond-yields-retreat" {
			t.Errorf("slug = %q", body.Data.Slug)
		}
		if body.Data.Author == "" || body.Data.PublishedAt.IsZero() {
			t.Errorf("incomplete article: %+v", body.Data)
		}
	})

	t.Run("missing", func(t *testing.T) {
		var body struct {
			Error string `json:"error"`
		}
		if status := getJSON(t, srv.URL+"/api/public/articles/missing", &body); status != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", status)
		}
		if body.Error == "" {
			t.Error("404 body carries no error message")
		}
	})
}

func TestServerTrending(t *testing.T) {
	srv := newTestServer(t)

	var body struct {
		Articles []Article `json:"articles"`
		Window   string    `json:"window"`
	}
	if status := getJSON(t, srv.URL+"/api/trending", &body); status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if body.Window != "24h" {
		t.Errorf("window = %q, want 24h", body.Window)
	}
	if len(body.Articles) != trendingLimit {
		t.Fatalf("expected %d trending articles, got %d", trendingLimit, len(body.Articles))
	}
	if body.Articles[0].Slug != "chipmakers-race-to-2nm" {
		t.Errorf("top article = %q", body.Articles[0].Slug)
	}
}

func TestServerActiveTickers(t *testing.T) {
	srv := newTestServer(t)

	var body struct {
		Data []Ticker `json:"data"`
	}
	if status := getJSON(t, srv.URL+"/api/ticker/active", &body); status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if len(body.Data) != 4 {
		t.Errorf("expected 4 tickers, got %d", len(body.Data))
	}
}

// TestServerEnvelopesNormalize drives the real client against the stub:
// every envelope shape the stub answers with must come out of the
// client's normalization as plain items.
func TestServerEnvelopesNormalize(t *testing.T) {
	srv := newTestServer(t)
	client := newsapi.New(newsapi.Options{Host: srv.URL})
	ctx := context.Background()

	t.Run("categories", func(t *testing.T) {
		list := client.FetchCategories(ctx)
		if len(list) != 4 {
			t.Fatalf("expected 4 categories, got %d", len(list))
		}
		var c Category
		if err := json.Unmarshal(list[0], &c); err != nil {
			t.Fatalf("item did not decode: %v", err)
		}
		if c.Slug == "" {
			t.Errorf("item misses slug: %s", list[0])
		}
	})

	t.Run("category by slug", func(t *testing.T) {
		raw, err := client.FetchCategoryBySlug(ctx, "markets")
		if err != nil {
			t.Fatalf("FetchCategoryBySlug failed: %v", err)
		}
		var c Category
		if err := json.Unmarshal(raw, &c); err != nil {
			t.Fatalf("body did not decode: %v", err)
		}
		if c.Slug != "markets" {
			t.Errorf("slug = %q", c.Slug)
		}

		if _, err := client.FetchCategoryBySlug(ctx, "gardening"); !errors.Is(err, newsapi.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("articles", func(t *testing.T) {
		list := client.FetchArticles(ctx, newsapi.ArticleParams{"category": "markets"})
		if len(list) != 2 {
			t.Fatalf("expected 2 articles, got %d", len(list))
		}
		var a Article
		if err := json.Unmarshal(list[0], &a); err != nil {
			t.Fatalf("item did not decode: %v", err)
		}
		if a.Slug != "bond-yields-retreat" {
			t.Errorf("first slug = %q", a.Slug)
		}
	})

	t.Run("article by slug", func(t *testing.T) {
		raw, err := client.FetchArticleBySlug(ctx, "grid-storage-tenders")
		if err != nil {
			t.Fatalf("FetchArticleBySlug failed: %v", err)
		}
		var a Article
		if err := json.Unmarshal(raw, &a); err != nil {
			t.Fatalf("data field did not decode: %v", err)
		}
		if a.Slug != "grid-storage-tenders" {
			t.Errorf("slug = %q", a.Slug)
		}
	})

	t.Run("trending", func(t *testing.T) {
		raw := client.FetchTrending(ctx)
		var body struct {
			Articles []Article `json:"articles"`
			Window   string    `json:"window"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			t.Fatalf("trending did not decode: %v", err)
		}
		if body.Window != "24h" || len(body.Articles) != trendingLimit {
			t.Errorf("window = %q, articles = %d", body.Window, len(body.Articles))
		}
	})

	t.Run("tickers", func(t *testing.T) {
		raw := client.FetchActiveTickers(ctx)
		var tickers []Ticker
		if err := json.Unmarshal(raw, &tickers); err != nil {
			t.Fatalf("tickers did not decode: %v", err)
		}
		if len(tickers) != 4 {
			t.Errorf("expected 4 tickers, got %d", len(tickers))
		}
	})
}
