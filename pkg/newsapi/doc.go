// Package newsapi provides the HTTP client for the NewsHub content API.
//
// # Overview
//
// The client covers the public read endpoints of a NewsHub backend:
//
//   - categories and category lookup by slug
//   - the public article feed and article lookup by slug
//   - the trending aggregate
//   - active stock tickers
//
// Responses arrive in several envelope conventions that grew across the
// backend ({data: [...]}, {articles: [...]}, bare arrays and more);
// [NormalizeArrayResponse] flattens them so callers always see a plain
// list of opaque JSON items.
//
// # Host Resolution
//
// The base host is resolved exactly once, at construction, from a
// precedence chain ([ResolveHost]): the configured host, the site URL,
// an https:// + deploy-host derivation, then a local development
// fallback. In embedded contexts the page origin additionally guards
// against mixed content and against leaking requests to a loopback
// backend. [Default] builds a process-wide client from the environment
// on first use.
//
// # Caching
//
// The categories list and article feed are cached for [DefaultTTL]
// through a [cache.Cache] backend. The article feed keys on the full
// request URL, query string included, so equal parameter sets share an
// entry. Concurrent identical calls are not deduplicated; the last
// response wins the cache write.
//
// # Error Philosophy
//
// Two failure modes coexist deliberately. FetchCategoryBySlug raises on
// a non-success status, and FetchArticleBySlug raises on an empty slug
// before any request is made; callers cannot proceed without those
// resources. Every list and aggregate operation instead degrades to an
// empty result on any failure, so a feed renders empty rather than
// breaking the page. Degraded failures are not logged or classified by
// the client; register observability hooks for visibility.
package newsapi
