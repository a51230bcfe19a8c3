// internal/gate/bypass.go
package gate

import (
	"strings"

	"golang.org/x/exp/slices"
)

// Bypass reasons, used as metric labels.
const (
	BypassAsset     = "asset"
	BypassAPI       = "api"
	BypassFile      = "file"
	BypassWellKnown = "wellknown"
)

const (
	assetPrefix = "/_next"
	apiPrefix   = "/api"
)

// wellKnownFiles are root files served as-is. Paths containing a dot are
// bypassed anyway; the explicit list keeps these exempt even if the dot
// heuristic ever changes.
var wellKnownFiles = []string{
	"/favicon.ico",
	"/robots.txt",
	"/sitemap.xml",
	"/manifest.json",
}

// Bypass reports whether the path must skip all gating and pass through
// unmodified, and why. Pure string checks, no cookie or header reads; this
// runs on every request before anything else.
func Bypass(path string) (string, bool) {
	switch {
	case strings.HasPrefix(path, assetPrefix):
		return BypassAsset, true
	case strings.HasPrefix(path, apiPrefix):
		return BypassAPI, true
	case slices.Contains(wellKnownFiles, path):
		return BypassWellKnown, true
	case strings.Contains(path, "."):
		return BypassFile, true
	}
	return "", false
}
