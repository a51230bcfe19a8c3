package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBypass(t *testing.T) {
	tests := []struct {
		path   string
		reason string
		ok     bool
	}{
		{"/_next/static/chunk.js", BypassAsset, true},
		{"/_next/image", BypassAsset, true},
		{"/api/invoices", BypassAPI, true},
		{"/api", BypassAPI, true},
		{"/favicon.ico", BypassWellKnown, true},
		{"/robots.txt", BypassWellKnown, true},
		{"/sitemap.xml", BypassWellKnown, true},
		{"/manifest.json", BypassWellKnown, true},
		{"/logo.png", BypassFile, true},
		{"/en/docs/readme.txt", BypassFile, true},
		{"/", "", false},
		{"/en/dashboard", "", false},
		{"/admin", "", false},
		{"/login", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			reason, ok := Bypass(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

// A static asset under a protected prefix still bypasses the gate.
func TestBypassWinsOverProtectedPrefix(t *testing.T) {
	_, ok := Bypass("/admin/report.pdf")
	assert.True(t, ok)

	_, ok = Bypass("/api/admin/users")
	assert.True(t, ok)
}
