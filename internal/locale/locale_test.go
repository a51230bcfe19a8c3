package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSet(t *testing.T) *Set {
	t.Helper()
	s, err := NewSet([]string{"en", "fr", "ar"}, "en", []string{"ar"})
	require.NoError(t, err)
	return s
}

func TestNewSetValidation(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		def  string
		rtl  []string
	}{
		{"empty set", nil, "en", nil},
		{"default not in set", []string{"en", "fr"}, "de", nil},
		{"rtl not in set", []string{"en", "fr"}, "en", []string{"ar"}},
		{"duplicate tag", []string{"en", "en"}, "en", nil},
		{"empty tag", []string{"en", ""}, "en", nil},
		{"unparseable tag", []string{"en", "not a tag"}, "en", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSet(tt.tags, tt.def, tt.rtl)
			assert.Error(t, err)
		})
	}
}

func TestSetMembership(t *testing.T) {
	s := newTestSet(t)

	assert.True(t, s.Contains("en"))
	assert.True(t, s.Contains("ar"))
	assert.False(t, s.Contains("de"))
	// Matching is case-sensitive against the canonical tags.
	assert.False(t, s.Contains("EN"))

	assert.True(t, s.IsRTL("ar"))
	assert.False(t, s.IsRTL("en"))
	assert.Equal(t, "en", s.Default())
	assert.Equal(t, []string{"en", "fr", "ar"}, s.Tags())
}

func TestPathLocale(t *testing.T) {
	s := newTestSet(t)

	tests := []struct {
		name     string
		path     string
		tag      string
		stripped string
		ok       bool
	}{
		{"bare locale", "/en", "en", "/", true},
		{"locale with page", "/fr/dashboard", "fr", "/dashboard", true},
		{"locale with nested page", "/ar/admin/users", "ar", "/admin/users", true},
		{"no locale", "/dashboard", "", "/dashboard", false},
		{"root", "/", "", "/", false},
		{"unknown locale", "/de/dashboard", "", "/de/dashboard", false},
		{"uppercase is not canonical", "/EN/dashboard", "", "/EN/dashboard", false},
		{"locale-like page name", "/english", "", "/english", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag, stripped, ok := s.PathLocale(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.tag, tag)
			assert.Equal(t, tt.stripped, stripped)
		})
	}
}

func TestNegotiate(t *testing.T) {
	s := newTestSet(t)

	tests := []struct {
		name    string
		header  string
		want    string
		matched bool
	}{
		{"exact tag", "fr", "fr", true},
		{"regional variant falls back to primary", "fr-CA", "fr", true},
		{"quality ordering", "de;q=0.9, ar;q=0.8", "ar", true},
		{"first supported wins", "ar,fr;q=0.9", "ar", true},
		{"unknown tag only", "de", "en", false},
		{"empty header", "", "en", false},
		{"garbage ignored", ";;;===", "en", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, matched := s.Negotiate(tt.header)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.matched, matched)
		})
	}
}

func TestPreferred(t *testing.T) {
	s := newTestSet(t)

	tests := []struct {
		name   string
		cookie string
		header string
		want   string
		source Source
	}{
		{"cookie wins over header", "fr", "ar", "fr", SourceCookie},
		{"unknown cookie falls to header", "de", "ar", "ar", SourceHeader},
		{"empty cookie falls to header", "", "fr-FR", "fr", SourceHeader},
		{"nothing matches", "de", "it", "en", SourceDefault},
		{"no inputs", "", "", "en", SourceDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, source := s.Preferred(tt.cookie, tt.header)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.source, source)
		})
	}
}

func TestResolve(t *testing.T) {
	s := newTestSet(t)

	t.Run("path locale wins outright", func(t *testing.T) {
		res := s.Resolve("/fr/dashboard", "ar", "ar")
		assert.Equal(t, "fr", res.Locale)
		assert.Equal(t, SourcePath, res.Source)
		assert.Equal(t, "/dashboard", res.StrippedPath)
		assert.True(t, res.HasPathLocale)
	})

	t.Run("missing locale uses preference chain", func(t *testing.T) {
		res := s.Resolve("/dashboard", "", "ar")
		assert.Equal(t, "ar", res.Locale)
		assert.Equal(t, SourceHeader, res.Source)
		assert.Equal(t, "/dashboard", res.StrippedPath)
		assert.False(t, res.HasPathLocale)
	})

	t.Run("root counts as missing locale", func(t *testing.T) {
		res := s.Resolve("/", "fr", "")
		assert.Equal(t, "fr", res.Locale)
		assert.False(t, res.HasPathLocale)
		assert.Equal(t, "/", res.StrippedPath)
	})
}

func TestPrefixed(t *testing.T) {
	tests := []struct {
		name string
		tag  string
		path string
		want string
	}{
		{"root has no trailing slash", "en", "/", "/en"},
		{"empty path", "fr", "", "/fr"},
		{"page keeps its slash", "en", "/dashboard", "/en/dashboard"},
		{"nested page", "ar", "/admin/users", "/ar/admin/users"},
		{"relative path gains a slash", "en", "about", "/en/about"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Prefixed(tt.tag, tt.path))
		})
	}
}

// Prefixing a path that lacked a locale must yield a path the resolver
// recognizes, so one redirect is always enough.
func TestPrefixedRoundTrip(t *testing.T) {
	s := newTestSet(t)

	for _, path := range []string{"/", "/dashboard", "/about/pricing", "/login"} {
		res := s.Resolve(path, "", "fr")
		require.False(t, res.HasPathLocale)

		again := s.Resolve(Prefixed(res.Locale, path), "", "fr")
		assert.True(t, again.HasPathLocale, "path %q should resolve after one redirect", path)
		assert.Equal(t, res.Locale, again.Locale)
	}
}
