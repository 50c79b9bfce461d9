package leads

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ListFilter narrows admin lead listings.
type ListFilter struct {
	Status   string
	Priority string
	Source   string
	Limit    int
	Offset   int
}

// Update carries the staff-editable fields. Nil pointers leave the stored
// value untouched.
type Update struct {
	Status        *string `json:"status"`
	Priority      *string `json:"priority"`
	EstimatedCost *string `json:"estimatedCost"`
	Notes         *string `json:"notes"`
}

// Repository defines the interface for lead storage. Create is the
// authoritative validation layer: it rejects any record violating the schema
// invariants with a *ValidationError before anything is written.
type Repository interface {
	Create(ctx context.Context, req *BookingRequest) (*Lead, error)
	GetByID(ctx context.Context, id string) (*Lead, error)
	List(ctx context.Context, filter ListFilter) ([]*Lead, error)
	Update(ctx context.Context, id string, upd Update) (*Lead, error)
}

// InMemoryRepository is a Repository backed by a map, used in tests and when
// no database is configured.
type InMemoryRepository struct {
	mu     sync.RWMutex
	leads  map[string]*Lead
	tokens map[string]struct{}
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		leads:  make(map[string]*Lead),
		tokens: make(map[string]struct{}),
	}
}

// Create validates and stores a new lead in memory.
func (r *InMemoryRepository) Create(ctx context.Context, req *BookingRequest) (*Lead, error) {
	now := time.Now().UTC()
	lead := req.lead(now)
	if err := lead.validate(); err != nil {
		return nil, err
	}
	lead.ID = uuid.NewString()

	r.mu.Lock()
	defer r.mu.Unlock()
	if lead.ReviewToken != "" {
		if _, exists := r.tokens[lead.ReviewToken]; exists {
			return nil, ErrDuplicateReviewToken
		}
		r.tokens[lead.ReviewToken] = struct{}{}
	}
	r.leads[lead.ID] = lead

	copied := *lead
	return &copied, nil
}

// GetByID retrieves a lead by ID
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lead, ok := r.leads[id]
	if !ok {
		return nil, ErrLeadNotFound
	}
	copied := *lead
	return &copied, nil
}

// List returns leads matching the filter, newest first.
func (r *InMemoryRepository) List(ctx context.Context, filter ListFilter) ([]*Lead, error) {
	r.mu.RLock()
	matched := make([]*Lead, 0, len(r.leads))
	for _, lead := range r.leads {
		if filter.Status != "" && lead.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && lead.Priority != filter.Priority {
			continue
		}
		if filter.Source != "" && lead.Source != filter.Source {
			continue
		}
		copied := *lead
		matched = append(matched, &copied)
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].SubmittedAt.After(matched[j].SubmittedAt)
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return []*Lead{}, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

// Update applies staff edits to a lead and refreshes lastUpdated.
func (r *InMemoryRepository) Update(ctx context.Context, id string, upd Update) (*Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lead, ok := r.leads[id]
	if !ok {
		return nil, ErrLeadNotFound
	}

	updated := *lead
	if upd.Status != nil {
		updated.Status = *upd.Status
	}
	if upd.Priority != nil {
		updated.Priority = *upd.Priority
	}
	if upd.EstimatedCost != nil {
		updated.EstimatedCost = *upd.EstimatedCost
	}
	if upd.Notes != nil {
		updated.Notes = *upd.Notes
	}
	updated.LastUpdated = time.Now().UTC()

	if err := updated.validate(); err != nil {
		return nil, err
	}

	r.leads[id] = &updated
	copied := updated
	return &copied, nil
}
