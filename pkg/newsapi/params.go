package newsapi

import (
	"fmt"
	"net/url"
)

// ArticleParams holds optional query parameters for FetchArticles
// (category, q, limit, page, featured, ...). Entries are passed through
// to the backend as string-valued parameters; nil values are skipped.
// The client applies no pagination logic of its own.
type ArticleParams map[string]any

// encode renders the parameters as a canonical query string. Keys are
// sorted, so equal parameter sets always produce the same string and
// therefore the same cache key.
func (p ArticleParams) encode() string {
	if len(p) == 0 {
		return ""
	}
	q := url.Values{}
	for k, v := range p {
		if v == nil {
			continue
		}
		q.Set(k, fmt.Sprint(v))
	}
	return q.Encode()
}
