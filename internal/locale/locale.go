// internal/locale/locale.go
package locale

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Source identifies which input produced the effective locale.
type Source string

const (
	// SourcePath means the locale came from the URL path prefix.
	SourcePath Source = "path"

	// SourceCookie means the locale came from the preference cookie.
	SourceCookie Source = "cookie"

	// SourceHeader means the locale was negotiated from Accept-Language.
	SourceHeader Source = "header"

	// SourceDefault means negotiation produced nothing and the default applied.
	SourceDefault Source = "default"
)

// Set is the closed set of locales the platform serves. It is immutable after
// construction and safe for concurrent use.
type Set struct {
	tags    []string
	def     string
	rtl     map[string]struct{}
	matcher language.Matcher
}

// Resolution is the outcome of resolving a request path against the set.
type Resolution struct {
	// Locale is the effective locale tag.
	Locale string

	// Source records where Locale came from.
	Source Source

	// StrippedPath is the request path with any locale prefix removed,
	// always starting with "/".
	StrippedPath string

	// HasPathLocale indicates the path already carried a valid locale prefix.
	HasPathLocale bool
}

// NewSet builds a locale set. The default must be one of tags, and every RTL
// tag must be a member of tags.
func NewSet(tags []string, def string, rtl []string) (*Set, error) {
	if len(tags) == 0 {
		return nil, fmt.Errorf("at least one locale is required")
	}

	members := make(map[string]struct{}, len(tags))
	parsed := make([]language.Tag, 0, len(tags))
	for _, tag := range tags {
		if tag == "" {
			return nil, fmt.Errorf("empty locale tag")
		}
		if _, dup := members[tag]; dup {
			return nil, fmt.Errorf("duplicate locale tag: %s", tag)
		}
		members[tag] = struct{}{}

		t, err := language.Parse(tag)
		if err != nil {
			return nil, fmt.Errorf("invalid locale tag %q: %w", tag, err)
		}
		parsed = append(parsed, t)
	}

	if _, ok := members[def]; !ok {
		return nil, fmt.Errorf("default locale %q is not in the configured set", def)
	}

	rtlSet := make(map[string]struct{}, len(rtl))
	for _, tag := range rtl {
		if _, ok := members[tag]; !ok {
			return nil, fmt.Errorf("RTL locale %q is not in the configured set", tag)
		}
		rtlSet[tag] = struct{}{}
	}

	return &Set{
		tags:    append([]string(nil), tags...),
		def:     def,
		rtl:     rtlSet,
		matcher: language.NewMatcher(parsed),
	}, nil
}

// Tags returns the configured locale tags in order.
func (s *Set) Tags() []string {
	return append([]string(nil), s.tags...)
}

// Default returns the default locale tag.
func (s *Set) Default() string {
	return s.def
}

// Contains reports whether tag is a configured locale. Matching is
// case-sensitive against the canonical tag set.
func (s *Set) Contains(tag string) bool {
	for _, t := range s.tags {
		if t == tag {
			return true
		}
	}
	return false
}

// IsRTL reports whether the locale renders right-to-left.
func (s *Set) IsRTL(tag string) bool {
	_, ok := s.rtl[tag]
	return ok
}

// PathLocale inspects the first path segment. When it is a configured locale,
// the tag and the path with the prefix stripped are returned.
func (s *Set) PathLocale(path string) (tag string, stripped string, ok bool) {
	trimmed := strings.TrimPrefix(path, "/")
	first, rest, _ := strings.Cut(trimmed, "/")
	if first == "" || !s.Contains(first) {
		return "", path, false
	}
	if rest == "" {
		return first, "/", true
	}
	return first, "/" + rest, true
}

// Negotiate matches an Accept-Language header against the configured set,
// preferring exact tags and falling back to primary-language matches. Unknown
// or malformed tags are ignored. The boolean reports whether the header
// actually matched; when it did not, the default locale is returned.
func (s *Set) Negotiate(acceptLanguage string) (string, bool) {
	if acceptLanguage == "" {
		return s.def, false
	}
	wanted, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(wanted) == 0 {
		return s.def, false
	}
	_, index, conf := s.matcher.Match(wanted...)
	if conf == language.No {
		return s.def, false
	}
	return s.tags[index], true
}

// Preferred determines the preferred locale in priority order: preference
// cookie, Accept-Language negotiation, configured default.
func (s *Set) Preferred(cookieValue, acceptLanguage string) (string, Source) {
	if cookieValue != "" && s.Contains(cookieValue) {
		return cookieValue, SourceCookie
	}
	if tag, ok := s.Negotiate(acceptLanguage); ok {
		return tag, SourceHeader
	}
	return s.def, SourceDefault
}

// Resolve computes the effective locale for a request path. A path carrying a
// valid locale prefix wins outright; otherwise the preferred locale applies
// and the caller is expected to canonicalize via a redirect.
func (s *Set) Resolve(path, cookieValue, acceptLanguage string) Resolution {
	if tag, stripped, ok := s.PathLocale(path); ok {
		return Resolution{
			Locale:        tag,
			Source:        SourcePath,
			StrippedPath:  stripped,
			HasPathLocale: true,
		}
	}

	tag, source := s.Preferred(cookieValue, acceptLanguage)
	stripped := path
	if stripped == "" {
		stripped = "/"
	}
	return Resolution{
		Locale:       tag,
		Source:       source,
		StrippedPath: stripped,
	}
}

// Prefixed returns path with the locale prefix applied. The bare root becomes
// "/<tag>" without a trailing slash; any other path keeps its own leading
// slash so no slash is duplicated.
func Prefixed(tag, path string) string {
	if path == "" || path == "/" {
		return "/" + tag
	}
	if !strings.HasPrefix(path, "/") {
		return "/" + tag + "/" + path
	}
	return "/" + tag + path
}
