package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sidx05/NewsHub/pkg/cache"
	"github.com/sidx05/NewsHub/pkg/observability"
)

// DefaultTTL is how long list responses stay cached.
const DefaultTTL = 60 * time.Second

// keyCategories is the fixed cache key for the categories list.
const keyCategories = "categories"

var (
	// ErrNotFound is returned when a requested resource doesn't exist.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures on raising operations
	// (connection errors and non-success statuses other than 404).
	ErrNetwork = errors.New("network error")

	// ErrEmptySlug is returned by FetchArticleBySlug, before any request
	// is made, when the slug is empty.
	ErrEmptySlug = errors.New("article slug is empty")
)

// Options configures a Client. The zero value resolves the host through
// the server-side precedence chain and caches responses in memory for
// DefaultTTL.
type Options struct {
	// Host is the configured API host. Surrounding whitespace is
	// ignored. When empty, SiteURL, DeployHost and finally the local
	// development fallback are consulted.
	Host string

	// PageOrigin is the origin of the embedding page, if any. Setting it
	// switches host resolution to the embedded-context rules (mixed
	// content and loopback protection). See ResolveHost.
	PageOrigin string

	// SiteURL is the deployment's public URL.
	SiteURL string

	// DeployHost is a bare deployment hostname, used as https://<host>
	// when SiteURL is absent.
	DeployHost string

	// HTTPClient overrides the transport. The default imposes no
	// timeout; callers bound requests through the context.
	HTTPClient *http.Client

	// Cache overrides the response cache backend.
	Cache cache.Cache

	// TTL overrides how long list responses stay cached.
	TTL time.Duration
}

// Client fetches categories, articles, trending aggregates and tickers
// from a NewsHub backend. The host is resolved once at construction and
// never re-evaluated.
//
// All methods are safe for concurrent use. Concurrent identical calls
// are not deduplicated: each hits the network and the last response wins
// the cache write.
type Client struct {
	host  string
	http  *http.Client
	cache cache.Cache
	ttl   time.Duration
}

// New creates a Client with the given options.
func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	store := opts.Cache
	if store == nil {
		store = cache.NewMemoryCache()
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Client{
		host: ResolveHost(HostConfig{
			ConfiguredHost: opts.Host,
			PageOrigin:     opts.PageOrigin,
			SiteURL:        opts.SiteURL,
			DeployHost:     opts.DeployHost,
		}),
		http:  httpClient,
		cache: store,
		ttl:   ttl,
	}
}

var (
	defaultClient *Client
	defaultOnce   sync.Once
)

// Default returns the process-wide client, built from the environment
// (see FromEnv) on first use. Later environment changes do not affect
// the resolved host.
func Default() *Client {
	defaultOnce.Do(func() {
		defaultClient = New(FromEnv())
	})
	return defaultClient
}

// Host returns the resolved base host used for all requests.
func (c *Client) Host() string { return c.host }

// FetchCategoryBySlug retrieves a single category. The slug is
// interpolated into the path as given. Unlike the list operations this
// one raises: a transport failure, a non-success status or an
// undecodable body is an error. A 404 unwraps to ErrNotFound.
func (c *Client) FetchCategoryBySlug(ctx context.Context, slug string) (json.RawMessage, error) {
	resp, err := c.get(ctx, c.host+"/api/categories/"+slug)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, fmt.Errorf("fetch category %q: %w", slug, err)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch category %q: %w", slug, err)
	}
	var raw json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode category %q: %w", slug, err)
	}
	return raw, nil
}

// FetchCategories retrieves all categories as a normalized list. Results
// are cached for the client TTL under a fixed key. Any failure degrades
// to an empty list.
func (c *Client) FetchCategories(ctx context.Context) []json.RawMessage {
	if list, ok := c.cachedList(ctx, keyCategories, keyCategories); ok {
		return list
	}

	resp, err := c.get(ctx, c.host+"/api/categories")
	if err != nil {
		return []json.RawMessage{}
	}
	defer resp.Body.Close()

	list := NormalizeArrayResponse(safeJSON(resp))
	c.storeList(ctx, keyCategories, keyCategories, list)
	return list
}

// FetchArticles retrieves the article feed matching params as a
// normalized list. The full request URL, query string included, is the
// cache key, so equal parameter sets share an entry. Any failure
// degrades to an empty list.
func (c *Client) FetchArticles(ctx context.Context, params ArticleParams) []json.RawMessage {
	reqURL := c.host + "/api/public/articles"
	if q := params.encode(); q != "" {
		reqURL += "?" + q
	}

	if list, ok := c.cachedList(ctx, "articles", reqURL); ok {
		return list
	}

	resp, err := c.get(ctx, reqURL)
	if err != nil {
		return []json.RawMessage{}
	}
	defer resp.Body.Close()

	list := NormalizeArrayResponse(safeJSON(resp))
	c.storeList(ctx, "articles", reqURL, list)
	return list
}

// FetchArticleBySlug retrieves a single article. It returns ErrEmptySlug
// before any request is made when slug is empty; the slug is
// percent-encoded into the path otherwise. When the body carries a
// non-null "data" field that field is returned, else the raw body.
// Network and parse failures degrade to a nil result with a nil error.
func (c *Client) FetchArticleBySlug(ctx context.Context, slug string) (json.RawMessage, error) {
	if slug == "" {
		return nil, ErrEmptySlug
	}

	resp, err := c.get(ctx, c.host+"/api/public/articles/"+url.PathEscape(slug))
	if err != nil {
		return nil, nil
	}
	defer resp.Body.Close()

	raw := safeJSON(resp)
	if raw == nil {
		return nil, nil
	}
	if data, ok := dataField(raw); ok {
		return data, nil
	}
	return raw, nil
}

// FetchTrending retrieves the trending aggregate as raw JSON. Any
// failure degrades to an empty object.
func (c *Client) FetchTrending(ctx context.Context) json.RawMessage {
	resp, err := c.get(ctx, c.host+"/api/trending")
	if err != nil {
		return json.RawMessage("{}")
	}
	defer resp.Body.Close()

	if raw := safeJSON(resp); raw != nil {
		return raw
	}
	return json.RawMessage("{}")
}

// FetchActiveTickers retrieves the active ticker list: the body's "data"
// field when present and non-null, else the raw body, else an empty
// array. Any failure degrades to an empty array.
func (c *Client) FetchActiveTickers(ctx context.Context) json.RawMessage {
	resp, err := c.get(ctx, c.host+"/api/ticker/active")
	if err != nil {
		return json.RawMessage("[]")
	}
	defer resp.Body.Close()

	raw := safeJSON(resp)
	if raw == nil {
		return json.RawMessage("[]")
	}
	if data, ok := dataField(raw); ok {
		return data
	}
	return raw
}

// get issues a GET request and emits HTTP hook events. The response is
// returned whatever its status; callers decide what a non-2xx means.
func (c *Client) get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	path := strings.TrimPrefix(rawURL, c.host)
	observability.HTTP().OnRequest(ctx, http.MethodGet, c.host, path)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, http.MethodGet, c.host, path, err)
		return nil, err
	}
	observability.HTTP().OnResponse(ctx, http.MethodGet, c.host, path, resp.StatusCode, time.Since(start))
	return resp, nil
}

func checkStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}

// safeJSON reads the response body as a raw JSON value. Read failures,
// empty bodies and invalid JSON all yield nil; the status code is never
// consulted, so a non-success response with a valid body parses like any
// other.
func safeJSON(resp *http.Response) json.RawMessage {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil
	}
	if !json.Valid(body) {
		return nil
	}
	return json.RawMessage(body)
}

// dataField extracts a non-null "data" field from an object body.
func dataField(raw json.RawMessage) (json.RawMessage, bool) {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, false
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, false
	}
	return env.Data, true
}

// cachedList returns the list stored under key while it is fresh.
func (c *Client) cachedList(ctx context.Context, keyType, key string) ([]json.RawMessage, bool) {
	data, ok, err := c.cache.Get(ctx, key)
	if err != nil || !ok {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	var list []json.RawMessage
	if err := json.Unmarshal(data, &list); err != nil {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return list, true
}

// storeList caches the normalized list under key for the client TTL.
// A round trip that produced an empty list is cached like any other;
// only transport failures skip the write.
func (c *Client) storeList(ctx context.Context, keyType, key string, list []json.RawMessage) {
	data, err := json.Marshal(list)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, key, data, c.ttl); err != nil {
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}
