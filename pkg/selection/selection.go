// Package selection holds the in-progress build: one part per structural
// category plus any number of services.
package selection

import (
	"sort"

	"github.com/Aquilabot/KreaPC-Configurator/internal/models"
)

// Entry is either a single part or, for services, an ordered list of parts.
type Entry struct {
	parts    []models.Part
	multiple bool
}

func Single(part models.Part) Entry {
	return Entry{parts: []models.Part{part}}
}

func Multiple(parts ...models.Part) Entry {
	return Entry{parts: append([]models.Part(nil), parts...), multiple: true}
}

func (e Entry) IsMultiple() bool {
	return e.multiple
}

// First returns the single part, or the first service of a list.
func (e Entry) First() (models.Part, bool) {
	if len(e.parts) == 0 {
		return models.Part{}, false
	}
	return e.parts[0], true
}

func (e Entry) All() []models.Part {
	return append([]models.Part(nil), e.parts...)
}

func (e Entry) contains(id string) int {
	for i, p := range e.parts {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func isMultiSelect(categoryID string) bool {
	return categoryID == models.CategoryServices
}

// Selection maps category ids to entries. The zero value is not usable; use New.
type Selection struct {
	entries map[string]Entry
	version uint64
}

func New() *Selection {
	return &Selection{entries: make(map[string]Entry)}
}

// Select replaces the part of a structural category. For services it toggles
// membership and drops the key once the list is empty.
func (s *Selection) Select(categoryID string, part models.Part) {
	defer s.touch()

	if !isMultiSelect(categoryID) {
		s.entries[categoryID] = Single(part)
		return
	}

	current := s.entries[categoryID]
	if i := current.contains(part.ID); i >= 0 {
		rest := append(current.All()[:i], current.parts[i+1:]...)
		if len(rest) == 0 {
			delete(s.entries, categoryID)
			return
		}
		s.entries[categoryID] = Multiple(rest...)
		return
	}
	s.entries[categoryID] = Multiple(append(current.All(), part)...)
}

func (s *Selection) Deselect(categoryID string) {
	if _, ok := s.entries[categoryID]; !ok {
		return
	}
	delete(s.entries, categoryID)
	s.touch()
}

// Get returns the selected part, or the first service for services.
func (s *Selection) Get(categoryID string) (*models.Part, bool) {
	part, ok := s.entries[categoryID].First()
	if !ok {
		return nil, false
	}
	return &part, true
}

// Has reports whether the category holds at least one part.
func (s *Selection) Has(categoryID string) bool {
	_, ok := s.entries[categoryID].First()
	return ok
}

func (s *Selection) Entry(categoryID string) (Entry, bool) {
	e, ok := s.entries[categoryID]
	return e, ok
}

// All returns every part selected for the category.
func (s *Selection) All(categoryID string) []models.Part {
	return s.entries[categoryID].All()
}

// Categories lists filled categories, structural ones in step order first.
func (s *Selection) Categories() []string {
	rank := make(map[string]int, len(models.StructuralCategories))
	for i, c := range models.StructuralCategories {
		rank[c] = i
	}

	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, iok := rank[keys[i]]
		rj, jok := rank[keys[j]]
		switch {
		case iok && jok:
			return ri < rj
		case iok != jok:
			return iok
		}
		return keys[i] < keys[j]
	})
	return keys
}

func (s *Selection) Len() int {
	return len(s.entries)
}

func (s *Selection) Clear() {
	if len(s.entries) == 0 {
		return
	}
	s.entries = make(map[string]Entry)
	s.touch()
}

// Version increases on every mutation; derived values compare it to know when
// to recompute.
func (s *Selection) Version() uint64 {
	return s.version
}

// Parts flattens the selection, services expanded.
func (s *Selection) Parts() map[string][]models.Part {
	out := make(map[string][]models.Part, len(s.entries))
	for k, e := range s.entries {
		out[k] = e.All()
	}
	return out
}

// LineItems flattens the selection into catalog line items, one per part.
func (s *Selection) LineItems() []models.LineItem {
	var items []models.LineItem
	for _, k := range s.Categories() {
		for _, p := range s.entries[k].parts {
			items = append(items, models.LineItem{ID: p.ID, Quantity: 1})
		}
	}
	return items
}

// TotalPrice sums effective prices of every selected part.
func (s *Selection) TotalPrice() float64 {
	var total float64
	for _, e := range s.entries {
		for _, p := range e.parts {
			total += p.EffectivePrice()
		}
	}
	return total
}

func (s *Selection) touch() {
	s.version++
}
