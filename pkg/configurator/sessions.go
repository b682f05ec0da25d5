package configurator

import (
	"errors"
	"sync"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/Aquilabot/KreaPC-Configurator/pkg/catalog"
)

var ErrSessionNotFound = errors.New("build session not found")

// Sessions keeps the open build sessions in memory.
type Sessions struct {
	mu      sync.RWMutex
	items   map[string]*Configurator
	catalog catalog.Catalog
	opts    Options
}

func NewSessions(cat catalog.Catalog, opts Options) *Sessions {
	return &Sessions{
		items:   map[string]*Configurator{},
		catalog: cat,
		opts:    opts,
	}
}

// Create opens an empty build session.
func (s *Sessions) Create() *Configurator {
	c := New(uuid.NewString(), s.catalog, s.opts)

	s.mu.Lock()
	s.items[c.ID()] = c
	s.mu.Unlock()

	log.Infof("session %s created", c.ID())
	return c
}

func (s *Sessions) Get(id string) (*Configurator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.items[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return c, nil
}

// Close drops a session and its selection.
func (s *Sessions) Close(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.items[id]
	if !ok {
		return ErrSessionNotFound
	}
	c.Reset()
	delete(s.items, id)
	log.Infof("session %s closed", id)
	return nil
}

func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
