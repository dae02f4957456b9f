// Package quotes stores finalized and shared financing quotes and provides
// the response cache used by the HTTP API.
package quotes

import (
	"fmt"
	"sync"
	"time"

	"github.com/megamarcio/bhph-engine/internal/financing"
)

// Quote is a saved snapshot of a computed deal.
type Quote struct {
	ID        string           `json:"id"`
	CreatedAt time.Time        `json:"createdAt"`
	Deal      financing.Deal   `json:"deal"`
	Origin    financing.Origin `json:"origin"`
	Finalized bool             `json:"finalized"`
}

// Repository persists quotes.
type Repository interface {
	Save(q Quote) (Quote, error)
	List() []Quote
}

// MemoryRepository is an in-memory implementation of Repository.
type MemoryRepository struct {
	mu   sync.Mutex
	next int
	data []Quote
}

// NewMemoryRepository creates a new in-memory quote repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{next: 1}
}

// Save stores the quote, assigning an ID and timestamp when absent.
func (r *MemoryRepository) Save(q Quote) (Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if q.ID == "" {
		q.ID = fmt.Sprintf("Q-%04d", r.next)
		r.next++
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now().UTC()
	}
	r.data = append(r.data, q)
	return q, nil
}

// List returns all saved quotes in insertion order.
func (r *MemoryRepository) List() []Quote {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Quote, len(r.data))
	copy(out, r.data)
	return out
}
