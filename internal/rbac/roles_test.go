package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	for _, r := range Roles() {
		parsed, ok := Parse(string(r))
		assert.True(t, ok)
		assert.Equal(t, r, parsed)
	}

	for _, raw := range []string{"", "ADMIN", "client", "PLATFORM_OWNER ", "SUPERUSER"} {
		_, ok := Parse(raw)
		assert.False(t, ok, "raw %q should not parse", raw)
	}
}

func TestRoleValid(t *testing.T) {
	assert.True(t, Client.Valid())
	assert.False(t, Role("").Valid())
	assert.False(t, Role("OWNER").Valid())
}

func TestDefaultRoute(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{PlatformOwner, "/en/admin"},
		{PlatformAdmin, "/en/admin"},
		{BusinessOwner, "/en/dashboard"},
		{BusinessAdmin, "/en/dashboard"},
		{Client, "/en/invoices"},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultRoute(tt.role, "en"))
		})
	}

	assert.Equal(t, "/ar/invoices", DefaultRoute(Client, "ar"))
}
