// internal/rbac/table.go
package rbac

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

// Entry maps a path prefix to the set of roles allowed beneath it. Prefixes
// are matched against the locale-stripped request path; the first matching
// entry wins. Paths matching no entry are public.
type Entry struct {
	Prefix string `yaml:"prefix"`
	Roles  []Role `yaml:"roles"`
}

// Permits reports whether the role is in the entry's allowed set.
func (e Entry) Permits(r Role) bool {
	return slices.Contains(e.Roles, r)
}

// Table is the static route permission table. It is immutable once built;
// live replacement goes through Holder.
type Table struct {
	entries []Entry
}

// NewTable validates and builds a table from entries.
func NewTable(entries []Entry) (*Table, error) {
	for _, e := range entries {
		if !strings.HasPrefix(e.Prefix, "/") {
			return nil, fmt.Errorf("route prefix %q must start with /", e.Prefix)
		}
		if len(e.Roles) == 0 {
			return nil, fmt.Errorf("route prefix %q has no allowed roles", e.Prefix)
		}
		for _, r := range e.Roles {
			if !r.Valid() {
				return nil, fmt.Errorf("route prefix %q references unknown role %q", e.Prefix, r)
			}
		}
	}
	return &Table{entries: append([]Entry(nil), entries...)}, nil
}

// DefaultTable returns the built-in route permission table for the platform.
func DefaultTable() *Table {
	t, err := NewTable([]Entry{
		{Prefix: "/admin", Roles: []Role{PlatformAdmin, PlatformOwner}},
		{Prefix: "/dashboard", Roles: []Role{BusinessOwner, BusinessAdmin}},
		{Prefix: "/invoices", Roles: []Role{Client, BusinessOwner, BusinessAdmin}},
		{Prefix: "/clients", Roles: []Role{BusinessOwner, BusinessAdmin}},
		{Prefix: "/team", Roles: []Role{BusinessOwner, BusinessAdmin}},
	})
	if err != nil {
		panic(err)
	}
	return t
}

// tableFile is the on-disk shape of a route permission table.
type tableFile struct {
	Routes []Entry `yaml:"routes"`
}

// LoadTable reads a route permission table from a YAML file.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read route table: %w", err)
	}

	var file tableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse route table: %w", err)
	}
	if len(file.Routes) == 0 {
		return nil, fmt.Errorf("route table %s defines no routes", path)
	}
	return NewTable(file.Routes)
}

// Match returns the first entry whose prefix matches the path.
func (t *Table) Match(path string) (Entry, bool) {
	for _, e := range t.entries {
		if strings.HasPrefix(path, e.Prefix) {
			return e, true
		}
	}
	return Entry{}, false
}

// Protected reports whether the path falls under any configured prefix.
func (t *Table) Protected(path string) bool {
	_, ok := t.Match(path)
	return ok
}

// Allowed reports whether role may access path. Unprotected paths are public
// and allowed for any role, including none.
func (t *Table) Allowed(path string, role Role) bool {
	e, ok := t.Match(path)
	if !ok {
		return true
	}
	return e.Permits(role)
}

// Entries returns a copy of the table entries.
func (t *Table) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

// Holder publishes a table to concurrent readers and allows it to be swapped
// atomically when the rules file changes.
type Holder struct {
	table atomic.Pointer[Table]
}

// NewHolder creates a holder seeded with the given table.
func NewHolder(t *Table) *Holder {
	h := &Holder{}
	h.table.Store(t)
	return h
}

// Load returns the current table.
func (h *Holder) Load() *Table {
	return h.table.Load()
}

// Store replaces the current table.
func (h *Holder) Store(t *Table) {
	h.table.Store(t)
}
