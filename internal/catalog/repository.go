package catalog

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for catalog storage.
type Repository interface {
	List(ctx context.Context, activeOnly bool) ([]*Service, error)
	GetBySlug(ctx context.Context, slug string) (*Service, error)
	Create(ctx context.Context, svc *Service) (*Service, error)
	Update(ctx context.Context, id string, svc *Service) (*Service, error)
	Delete(ctx context.Context, id string) error
}

// InMemoryRepository is a Repository backed by a map.
type InMemoryRepository struct {
	mu       sync.RWMutex
	services map[string]*Service
}

// NewInMemoryRepository creates a new in-memory catalog repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{services: make(map[string]*Service)}
}

// List returns catalog entries ordered by displayOrder then name.
func (r *InMemoryRepository) List(ctx context.Context, activeOnly bool) ([]*Service, error) {
	r.mu.RLock()
	out := make([]*Service, 0, len(r.services))
	for _, svc := range r.services {
		if activeOnly && !svc.Active {
			continue
		}
		copied := *svc
		out = append(out, &copied)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// GetBySlug returns the catalog entry with the given slug.
func (r *InMemoryRepository) GetBySlug(ctx context.Context, slug string) (*Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, svc := range r.services {
		if svc.Slug == slug {
			copied := *svc
			return &copied, nil
		}
	}
	return nil, ErrServiceNotFound
}

// Create validates and stores a new catalog entry.
func (r *InMemoryRepository) Create(ctx context.Context, svc *Service) (*Service, error) {
	if err := svc.Validate(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()

	copied := *svc
	copied.ID = uuid.NewString()
	copied.CreatedAt = now
	copied.UpdatedAt = now

	r.mu.Lock()
	r.services[copied.ID] = &copied
	r.mu.Unlock()

	result := copied
	return &result, nil
}

// Update replaces a catalog entry, preserving identity and creation time.
func (r *InMemoryRepository) Update(ctx context.Context, id string, svc *Service) (*Service, error) {
	if err := svc.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.services[id]
	if !ok {
		return nil, ErrServiceNotFound
	}

	copied := *svc
	copied.ID = id
	copied.CreatedAt = existing.CreatedAt
	copied.UpdatedAt = time.Now().UTC()
	r.services[id] = &copied

	result := copied
	return &result, nil
}

// Delete removes a catalog entry.
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.services[id]; !ok {
		return ErrServiceNotFound
	}
	delete(r.services, id)
	return nil
}
