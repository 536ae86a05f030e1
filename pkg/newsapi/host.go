package newsapi

import (
	"net/url"
	"os"
	"strings"
)

// Environment variables consulted by FromEnv.
const (
	// EnvAPIHost names the configured API host.
	EnvAPIHost = "NEWSHUB_API_HOST"

	// EnvSiteURL names the deployment's public URL.
	EnvSiteURL = "NEWSHUB_SITE_URL"

	// EnvDeployHost names the bare deployment hostname.
	EnvDeployHost = "NEWSHUB_DEPLOY_HOST"
)

// fallbackHost is the local development default.
const fallbackHost = "http://localhost:3000"

// HostConfig carries the inputs to host resolution.
type HostConfig struct {
	// ConfiguredHost is the explicitly configured API host, if any.
	// Surrounding whitespace is ignored.
	ConfiguredHost string

	// PageOrigin is the origin of the embedding page. When non-empty the
	// embedded-context rules apply; when empty the server-side chain is
	// used.
	PageOrigin string

	// SiteURL is the deployment's public URL.
	SiteURL string

	// DeployHost is a bare hostname provided by the deployment platform,
	// combined with an https:// prefix when SiteURL is absent.
	DeployHost string
}

// ResolveHost computes the base host used for every request.
//
// With a page origin (embedded context):
//
//  1. No configured host: use the page origin.
//  2. Secure page but insecure configured host: use the page origin, so
//     a secure page never issues mixed-content requests.
//  3. Loopback configured host but non-loopback page: use the page
//     origin, so a production page never targets a developer's local
//     backend.
//  4. Otherwise: use the configured host as given.
//
// Without a page origin (server side): the configured host, else the
// site URL, else https:// plus the deploy host, else the local
// development fallback.
func ResolveHost(cfg HostConfig) string {
	host := strings.TrimSpace(cfg.ConfiguredHost)

	if cfg.PageOrigin != "" {
		if host == "" {
			return cfg.PageOrigin
		}
		if strings.HasPrefix(cfg.PageOrigin, "https://") && !strings.HasPrefix(host, "https://") {
			return cfg.PageOrigin
		}
		if isLoopbackHost(host) && !isLoopbackHost(cfg.PageOrigin) {
			return cfg.PageOrigin
		}
		return host
	}

	if host != "" {
		return host
	}
	if cfg.SiteURL != "" {
		return cfg.SiteURL
	}
	if cfg.DeployHost != "" {
		return "https://" + cfg.DeployHost
	}
	return fallbackHost
}

// isLoopbackHost reports whether the candidate URL points at the local
// machine. Unparsable candidates count as not loopback. The comparison
// is case-sensitive, matching how the backends are actually addressed.
func isLoopbackHost(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	hostname := u.Hostname()
	return hostname == "localhost" || hostname == "127.0.0.1"
}

// FromEnv builds Options from the process environment. Values are read
// at call time; the package-level Default client reads them exactly once.
func FromEnv() Options {
	return Options{
		Host:       strings.TrimSpace(os.Getenv(EnvAPIHost)),
		SiteURL:    strings.TrimSpace(os.Getenv(EnvSiteURL)),
		DeployHost: strings.TrimSpace(os.Getenv(EnvDeployHost)),
	}
}
