// Package filters derives the filter vocabulary of a category from the parts
// currently loaded for it, and keeps the active filter state.
package filters

import (
	"sort"
	"strings"

	"github.com/Aquilabot/KreaPC-Configurator/internal/models"
	"github.com/Aquilabot/KreaPC-Configurator/internal/utils"
)

// Filter is a structured catalog filter, written "key=value" on the wire.
type Filter struct {
	Key   string
	Value string
}

func (f Filter) String() string {
	return f.Key + "=" + f.Value
}

func ParseFilter(s string) (Filter, bool) {
	key, value, ok := strings.Cut(s, "=")
	key, value = strings.TrimSpace(key), strings.TrimSpace(value)
	if !ok || key == "" || value == "" {
		return Filter{}, false
	}
	return Filter{Key: key, Value: value}, true
}

type Option struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Group struct {
	Title   string   `json:"title"`
	Options []Option `json:"options"`
}

// lessValue orders by leading number when both values have one, and
// lexically otherwise.
func lessValue(a, b string) bool {
	na, oka := utils.LeadingNumber(a)
	nb, okb := utils.LeadingNumber(b)
	if oka && okb && na != nb {
		return na < nb
	}
	return a < b
}

// BuildGroups creates one group per specification key found on the parts,
// except the keys the category's quick filters already cover.
func BuildGroups(categoryID string, parts []models.Part) []Group {
	reserved := ReservedKeys(categoryID)
	values := map[string]map[string]bool{}

	for _, p := range parts {
		for key, value := range p.Specifications {
			value = strings.TrimSpace(value)
			if reserved[key] || value == "" {
				continue
			}
			if values[key] == nil {
				values[key] = map[string]bool{}
			}
			values[key][value] = true
		}
	}

	titles := make([]string, 0, len(values))
	for key := range values {
		titles = append(titles, key)
	}
	sort.Strings(titles)

	groups := make([]Group, 0, len(titles))
	for _, key := range titles {
		distinct := make([]string, 0, len(values[key]))
		for v := range values[key] {
			distinct = append(distinct, v)
		}
		sort.Slice(distinct, func(i, j int) bool { return lessValue(distinct[i], distinct[j]) })

		group := Group{Title: key}
		for _, v := range distinct {
			group.Options = append(group.Options, Option{ID: Filter{Key: key, Value: v}.String(), Name: v})
		}
		groups = append(groups, group)
	}
	return groups
}

// State is the active filter set of a category. A quick filter and manually
// picked filters never coexist.
type State struct {
	Quick   string   `json:"quick,omitempty"`
	Filters []string `json:"filters"`
}

// SelectQuick replaces the active set with the quick filter's expansion, or
// clears it when that quick filter is already active.
func (s *State) SelectQuick(categoryID, quickID string) bool {
	if s.Quick == quickID && IsQuickFilterActive(categoryID, quickID, s.Filters) {
		s.Clear()
		return true
	}
	expanded, ok := Expand(categoryID, quickID)
	if !ok {
		return false
	}
	s.Quick = quickID
	s.Filters = expanded
	return true
}

// Toggle adds or removes a manually picked filter. Picking one drops an
// active quick filter and its expansion.
func (s *State) Toggle(filter string) bool {
	if _, ok := ParseFilter(filter); !ok {
		return false
	}
	if s.Quick != "" {
		s.Quick = ""
		s.Filters = nil
	}
	for i, f := range s.Filters {
		if f == filter {
			s.Filters = append(s.Filters[:i:i], s.Filters[i+1:]...)
			return true
		}
	}
	s.Filters = append(s.Filters, filter)
	return true
}

// Set replaces the manual filters wholesale, dropping invalid entries.
func (s *State) Set(filters []string) {
	s.Quick = ""
	s.Filters = nil
	for _, f := range filters {
		if _, ok := ParseFilter(f); ok {
			s.Filters = append(s.Filters, f)
		}
	}
}

func (s *State) Clear() {
	s.Quick = ""
	s.Filters = nil
}

// ActiveQuick returns the quick filter id matching the active set, if any.
func (s *State) ActiveQuick(categoryID string) string {
	for _, q := range quickFilters[categoryID] {
		if IsQuickFilterActive(categoryID, q.ID, s.Filters) {
			return q.ID
		}
	}
	return ""
}
