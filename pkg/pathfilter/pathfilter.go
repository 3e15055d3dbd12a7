// Package pathfilter decides which request paths take part in visitor and
// session tracking.
//
// A path is skipped when it starts with one of the configured prefixes or ends
// with one of the configured extensions. Matching is case-sensitive and purely
// prefix/suffix based. Custom rules extend the defaults; they never replace
// them.
package pathfilter

import (
	"slices"
	"strings"

	"github.com/mbuzz/mbuzz-go/pkg/config"
)

// DefaultPrefixes covers health checks, asset mounts, websocket endpoints
// and the tracking API mount point.
var DefaultPrefixes = []string{
	"/up",
	"/health",
	"/healthz",
	"/ping",
	"/cable",
	"/assets",
	"/packs",
	"/rails/active_storage",
	"/api",
}

// DefaultExtensions covers scripts, styles, source maps, images and fonts.
var DefaultExtensions = []string{
	".js",
	".css",
	".map",
	".png",
	".jpg",
	".jpeg",
	".gif",
	".ico",
	".svg",
	".woff",
	".woff2",
	".ttf",
	".eot",
	".webp",
}

// Filter is immutable after construction and safe for concurrent use.
type Filter struct {
	prefixes   []string
	extensions []string
}

// New returns a Filter with the defaults followed by the extra rules.
// Empty strings are dropped since they would match every path.
func New(extraPrefixes, extraExtensions []string) *Filter {
	return &Filter{
		prefixes:   merge(DefaultPrefixes, extraPrefixes),
		extensions: merge(DefaultExtensions, extraExtensions),
	}
}

// NewFromConfig builds a Filter from the skip lists in cfg.
func NewFromConfig(cfg config.Config) *Filter {
	return New(cfg.SkipPaths, cfg.SkipExtensions)
}

// ShouldSkip reports whether path must bypass tracking.
func (f *Filter) ShouldSkip(path string) bool {
	for _, p := range f.prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	for _, ext := range f.extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// Prefixes returns a copy of the effective prefix list.
func (f *Filter) Prefixes() []string { return slices.Clone(f.prefixes) }

// Extensions returns a copy of the effective extension list.
func (f *Filter) Extensions() []string { return slices.Clone(f.extensions) }

func merge(defaults, extra []string) []string {
	out := make([]string, 0, len(defaults)+len(extra))
	out = append(out, defaults...)
	for _, v := range extra {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
