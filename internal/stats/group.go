package stats

import (
	"fmt"
	"slices"
)

// Group is one node in the statistics tree: a set of named scalar entries
// plus nested groups. Groups are not safe for concurrent mutation.
type Group struct {
	entries map[string]any
	groups  map[string]*Group
}

// NewGroup creates an empty, unattached group. Useful as a pure in-memory
// counter context when no backing file is wanted.
func NewGroup() *Group {
	return &Group{
		entries: make(map[string]any),
		groups:  make(map[string]*Group),
	}
}

// HasGroup reports whether a nested group with the given name exists.
func (g *Group) HasGroup(name string) bool {
	_, ok := g.groups[name]
	return ok
}

// Group returns the named nested group, if present.
func (g *Group) Group(name string) (*Group, bool) {
	sub, ok := g.groups[name]
	return sub, ok
}

// AddGroup returns the named nested group, creating it when absent.
func (g *Group) AddGroup(name string) *Group {
	if sub, ok := g.groups[name]; ok {
		return sub
	}
	sub := NewGroup()
	g.groups[name] = sub
	return sub
}

// DeleteGroup removes the named nested group and everything under it.
func (g *Group) DeleteGroup(name string) {
	delete(g.groups, name)
}

// Merge copies other's entries and nested groups into g. Entries from other
// overwrite same-named entries in g; nested groups merge recursively.
func (g *Group) Merge(other *Group) {
	for name, v := range other.entries {
		g.entries[name] = v
	}
	for name, sub := range other.groups {
		g.AddGroup(name).Merge(sub)
	}
}

// GroupNames returns nested group names in lexicographic order.
func (g *Group) GroupNames() []string {
	names := make([]string, 0, len(g.groups))
	for name := range g.groups {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// EntryNames returns entry names in lexicographic order.
func (g *Group) EntryNames() []string {
	names := make([]string, 0, len(g.entries))
	for name := range g.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// HasEntry reports whether a scalar entry with the given name exists.
func (g *Group) HasEntry(name string) bool {
	_, ok := g.entries[name]
	return ok
}

// EntryInt reads an integer entry, returning def when the entry is absent
// or holds a non-integer value.
func (g *Group) EntryInt(name string, def int64) int64 {
	switch v := g.entries[name].(type) {
	case int64:
		return v
	case float64:
		// JSON numbers decode as float64; accept exact integers.
		if v == float64(int64(v)) {
			return int64(v)
		}
	}
	return def
}

// EntryFloat reads a float entry, returning def when absent or mistyped.
func (g *Group) EntryFloat(name string, def float64) float64 {
	switch v := g.entries[name].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	}
	return def
}

// EntryString reads a string entry, returning def when absent or mistyped.
func (g *Group) EntryString(name, def string) string {
	if v, ok := g.entries[name].(string); ok {
		return v
	}
	return def
}

// EntryBool reads a boolean entry, returning def when absent or mistyped.
func (g *Group) EntryBool(name string, def bool) bool {
	if v, ok := g.entries[name].(bool); ok {
		return v
	}
	return def
}

// WriteEntry stores a scalar entry, replacing any previous value under the
// name. Integers are normalized to int64.
func (g *Group) WriteEntry(name string, value any) error {
	switch v := value.(type) {
	case int:
		g.entries[name] = int64(v)
	case int32:
		g.entries[name] = int64(v)
	case int64, float64, string, bool:
		g.entries[name] = v
	default:
		return fmt.Errorf("stats: unsupported entry type %T for %q", value, name)
	}
	return nil
}

// AddCounter adds delta to an integer entry (zero when absent) and returns
// the new value.
func (g *Group) AddCounter(name string, delta int64) int64 {
	next := g.EntryInt(name, 0) + delta
	g.entries[name] = next
	return next
}

// toJSON converts the group tree to the plain map form encoding/json
// understands. Nested groups become nested objects.
func (g *Group) toJSON() map[string]any {
	out := make(map[string]any, len(g.entries)+len(g.groups))
	for name, v := range g.entries {
		out[name] = v
	}
	for name, sub := range g.groups {
		out[name] = sub.toJSON()
	}
	return out
}

// groupFromJSON rebuilds a group tree from a decoded JSON object. Nested
// objects become nested groups; everything else is kept as an entry.
func groupFromJSON(obj map[string]any) *Group {
	g := NewGroup()
	for name, v := range obj {
		if sub, ok := v.(map[string]any); ok {
			g.groups[name] = groupFromJSON(sub)
			continue
		}
		g.entries[name] = v
	}
	return g
}
