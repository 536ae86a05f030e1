// Package stub implements a small development backend serving the
// NewsHub content endpoints with seeded fixture data.
//
// Each endpoint deliberately keeps the envelope quirk of the backend
// generation it stands in for ({success, data}, {data: {articles}},
// bare objects, {articles}), so a client exercised against the stub
// sees the same shape variety the real deployments produce.
package stub

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by slug lookups when no document matches.
var ErrNotFound = errors.New("not found")

// DefaultPageSize is the article page size when the request names none.
const DefaultPageSize = 10

// Category is a content section of the site.
type Category struct {
	ID          string `json:"id" bson:"_id"`
	Slug        string `json:"slug" bson:"slug"`
	Name        string `json:"name" bson:"name"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

// Article is a single published story.
type Article struct {
	ID          string    `json:"id" bson:"_id"`
	Slug        string    `json:"slug" bson:"slug"`
	Title       string    `json:"title" bson:"title"`
	Summary     string    `json:"summary" bson:"summary"`
	Category    string    `json:"category" bson:"category"`
	Author      string    `json:"author" bson:"author"`
	Featured    bool      `json:"featured" bson:"featured"`
	Views       int       `json:"views" bson:"views"`
	PublishedAt time.Time `json:"publishedAt" bson:"published_at"`
}

// Ticker is a stock symbol shown in the site's ticker bar.
type Ticker struct {
	Symbol string  `json:"symbol" bson:"symbol"`
	Name   string  `json:"name" bson:"name"`
	Price  float64 `json:"price" bson:"price"`
	Change float64 `json:"change" bson:"change"`
	Active bool    `json:"active" bson:"active"`
}

// ArticleFilter narrows the article feed. Zero values mean "no filter";
// Page is 1-based.
type ArticleFilter struct {
	Category string
	Query    string
	Featured *bool
	Limit    int
	Page     int
}

// Store supplies the fixture data behind the stub endpoints.
type Store interface {
	// Categories returns every category.
	Categories(ctx context.Context) ([]Category, error)

	// CategoryBySlug returns the category with the given slug, or
	// ErrNotFound.
	CategoryBySlug(ctx context.Context, slug string) (*Category, error)

	// Articles returns one page of the feed matching the filter, newest
	// first, along with the total match count before pagination.
	Articles(ctx context.Context, f ArticleFilter) ([]Article, int, error)

	// ArticleBySlug returns the article with the given slug, or
	// ErrNotFound.
	ArticleBySlug(ctx context.Context, slug string) (*Article, error)

	// Trending returns up to limit articles ordered by view count.
	Trending(ctx context.Context, limit int) ([]Article, error)

	// ActiveTickers returns the tickers currently shown on the site.
	ActiveTickers(ctx context.Context) ([]Ticker, error)

	// Close releases backing resources.
	Close(ctx context.Context) error
}

// MemStore serves seeded fixtures from memory. Safe for concurrent use.
type MemStore struct {
	mu         sync.RWMutex
	categories []Category
	articles   []Article
	tickers    []Ticker
}

// NewMemStore creates a store pre-populated with the seed fixtures.
func NewMemStore() *MemStore {
	return &MemStore{
		categories: seedCategories(),
		articles:   seedArticles(),
		tickers:    seedTickers(),
	}
}

// Categories returns every category.
func (s *MemStore) Categories(ctx context.Context) ([]Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Category, len(s.categories))
	copy(out, s.categories)
	return out, nil
}

// CategoryBySlug returns the category with the given slug.
func (s *MemStore) CategoryBySlug(ctx context.Context, slug string) (*Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.categories {
		if c.Slug == slug {
			cc := c
			return &cc, nil
		}
	}
	return nil, ErrNotFound
}

// Articles returns one page of the feed matching the filter.
func (s *MemStore) Articles(ctx context.Context, f ArticleFilter) ([]Article, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]Article, 0, len(s.articles))
	for _, a := range s.articles {
		if matchArticle(a, f) {
			matched = append(matched, a)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].PublishedAt.After(matched[j].PublishedAt)
	})

	total := len(matched)
	return paginate(matched, f.Limit, f.Page), total, nil
}

// ArticleBySlug returns the article with the given slug.
func (s *MemStore) ArticleBySlug(ctx context.Context, slug string) (*Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.articles {
		if a.Slug == slug {
			aa := a
			return &aa, nil
		}
	}
	return nil, ErrNotFound
}

// Trending returns up to limit articles ordered by view count.
func (s *MemStore) Trending(ctx context.Context, limit int) ([]Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Article, len(s.articles))
	copy(out, s.articles)
	sort.Slice(out, func(i, j int) bool { return out[i].Views > out[j].Views })
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// ActiveTickers returns the tickers flagged active.
func (s *MemStore) ActiveTickers(ctx context.Context) ([]Ticker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Ticker, 0, len(s.tickers))
	for _, t := range s.tickers {
		if t.Active {
			out = append(out, t)
		}
	}
	return out, nil
}

// Close does nothing for the in-memory store.
func (s *MemStore) Close(ctx context.Context) error { return nil }

// matchArticle applies every set filter field.
func matchArticle(a Article, f ArticleFilter) bool {
	if f.Category != "" && a.Category != f.Category {
		return false
	}
	if f.Featured != nil && a.Featured != *f.Featured {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(a.Title), q) &&
			!strings.Contains(strings.ToLower(a.Summary), q) {
			return false
		}
	}
	return true
}

// paginate slices one 1-based page out of matched.
func paginate(matched []Article, limit, page int) []Article {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if page <= 0 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(matched) {
		return []Article{}
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end]
}

// Ensure MemStore implements Store.
var _ Store = (*MemStore)(nil)

// seedTime anchors the fixtures so pagination and trending stay stable
// between runs.
var seedTime = time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC)

func seedCategories() []Category {
	return []Category{
		{ID: uuid.NewString(), Slug: "technology", Name: "Technology", Description: "Software, hardware and the business of both"},
		{ID: uuid.NewString(), Slug: "markets", Name: "Markets", Description: "Equities, rates and commodities"},
		{ID: uuid.NewString(), Slug: "science", Name: "Science", Description: "Research and discovery"},
		{ID: uuid.NewString(), Slug: "world", Name: "World", Description: "International coverage"},
	}
}

func seedArticles() []Article {
	return []Article{
		{
			ID: uuid.NewString(), Slug: "chipmakers-race-to-2nm",
			Title: "Chipmakers race to 2nm as fab costs balloon", Summary: "Foundries commit record capex for the next process node.",
			Category: "technology", Author: "R. Okafor", Featured: true, Views: 4820,
			PublishedAt: seedTime,
		},
		{
			ID: uuid.NewString(), Slug: "open-source-funding-models",
			Title: "Open source maintainers test new funding models", Summary: "Foundations and paid tiers compete for sustainability.",
			Category: "technology", Author: "J. Meier", Views: 2310,
			PublishedAt: seedTime.Add(-3 * time.Hour),
		},
		{
			ID: uuid.NewString(), Slug: "bond-yields-retreat",
			Title: "Bond yields retreat after inflation surprise", Summary: "Treasuries rally as traders reprice the cut path.",
			Category: "markets", Author: "S. Ahmed", Featured: true, Views: 3975,
			PublishedAt: seedTime.Add(-6 * time.Hour),
		},
		{
			ID: uuid.NewString(), Slug: "copper-supply-squeeze",
			Title: "Copper supply squeeze tightens on mine outages", Summary: "Spot premiums hit a two-year high.",
			Category: "markets", Author: "S. Ahmed", Views: 1540,
			PublishedAt: seedTime.Add(-26 * time.Hour),
		},
		{
			ID: uuid.NewString(), Slug: "coral-reef-restoration",
			Title: "Coral reef restoration scales past the lab", Summary: "Heat-tolerant strains survive a second bleaching season.",
			Category: "science", Author: "L. Tanaka", Views: 1980,
			PublishedAt: seedTime.Add(-12 * time.Hour),
		},
		{
			ID: uuid.NewString(), Slug: "deep-sea-mapping-milestone",
			Title: "Deep sea mapping passes the halfway milestone", Summary: "Autonomous fleets chart basins no ship has surveyed.",
			Category: "science", Author: "L. Tanaka", Views: 870,
			PublishedAt: seedTime.Add(-48 * time.Hour),
		},
		{
			ID: uuid.NewString(), Slug: "ports-automation-dispute",
			Title: "Ports automation dispute stalls freight corridor", Summary: "Negotiations resume under a federal mediator.",
			Category: "world", Author: "M. Duarte", Views: 2650,
			PublishedAt: seedTime.Add(-9 * time.Hour),
		},
		{
			ID: uuid.NewString(), Slug: "grid-storage-tenders",
			Title: "Grid storage tenders draw record bids", Summary: "Four-hour batteries now undercut peaker plants.",
			Category: "world", Author: "M. Duarte", Featured: true, Views: 3120,
			PublishedAt: seedTime.Add(-30 * time.Hour),
		},
	}
}

func seedTickers() []Ticker {
	return []Ticker{
		{Symbol: "ACME", Name: "Acme Corp", Price: 184.22, Change: 1.4, Active: true},
		{Symbol: "GLBX", Name: "Globex", Price: 96.05, Change: -0.8, Active: true},
		{Symbol: "INIT", Name: "Initech", Price: 42.90, Change: 0.3, Active: true},
		{Symbol: "UMBR", Name: "Umbrella Holdings", Price: 310.47, Change: -2.1, Active: true},
		{Symbol: "HOOL", Name: "Hooli", Price: 1289.00, Change: 5.6, Active: false},
	}
}
