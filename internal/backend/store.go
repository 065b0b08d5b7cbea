package backend

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"

	"rhystmorgan/contactterm/internal/models"
)

var ErrObjectNotFound = errors.New("store: object not found")

type Store interface {
	List(context.Context) ([]models.Contact, error)
	Get(context.Context, string) (models.Contact, error)
	Create(context.Context, models.ContactFields) (models.Contact, error)
	Replace(context.Context, string, models.ContactFields) (models.Contact, error)
	Delete(context.Context, string) error
}

// MemoryStore keeps the collection in insertion order.
type MemoryStore struct {
	mu       sync.Mutex
	index    map[string]int
	contacts []models.Contact
	newID    func() string
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore(seed ...models.ContactFields) *MemoryStore {
	s := &MemoryStore{
		index: make(map[string]int, len(seed)),
		newID: uuid.NewString,
	}
	for _, fields := range seed {
		_, _ = s.Create(context.Background(), fields)
	}
	return s
}

func (s *MemoryStore) List(_ context.Context) ([]models.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.contacts), nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (models.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return models.Contact{}, ErrObjectNotFound
	}
	return s.contacts[i], nil
}

func (s *MemoryStore) Create(_ context.Context, fields models.ContactFields) (models.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	for _, taken := s.index[id]; taken; _, taken = s.index[id] {
		id = s.newID()
	}

	contact := fields.WithID(id)
	s.index[id] = len(s.contacts)
	s.contacts = append(s.contacts, contact)
	return contact, nil
}

func (s *MemoryStore) Replace(_ context.Context, id string, fields models.ContactFields) (models.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return models.Contact{}, ErrObjectNotFound
	}
	s.contacts[i] = fields.WithID(id)
	return s.contacts[i], nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return ErrObjectNotFound
	}
	delete(s.index, id)
	s.contacts = slices.Delete(s.contacts, i, i+1)
	for j := i; j < len(s.contacts); j++ {
		s.index[s.contacts[j].ID] = j
	}
	return nil
}
