// Package inventory defines the vehicle records supplied to the financing
// core. Vehicles are owned and mutated by the inventory subsystem; the
// financing engine only reads them.
package inventory

import "fmt"

// Vehicle is a read-only input to the financing core.
type Vehicle struct {
	ID            string  `yaml:"id"`
	Name          string  `yaml:"name"`
	Year          int     `yaml:"year"`
	Color         string  `yaml:"color"`
	VIN           string  `yaml:"vin"`
	InternalCode  string  `yaml:"internalCode"`
	PurchasePrice float64 `yaml:"purchasePrice"`
	SalePrice     float64 `yaml:"salePrice"`
}

// Identity returns the display identity used on quotes, e.g. "2019 Corolla XLE (Silver)".
func (v Vehicle) Identity() string {
	if v.Color == "" {
		return fmt.Sprintf("%d %s", v.Year, v.Name)
	}
	return fmt.Sprintf("%d %s (%s)", v.Year, v.Name, v.Color)
}

// Repository provides read access to vehicles. The financing core depends on
// this interface, not on a concrete implementation.
type Repository interface {
	Get(id string) (Vehicle, bool)
	List() []Vehicle
}

// MemoryRepository is an in-memory implementation of Repository, seeded from
// the application configuration.
type MemoryRepository struct {
	order    []string
	vehicles map[string]Vehicle
}

// NewMemoryRepository creates a repository holding the given vehicles.
// Insertion order is preserved for List.
func NewMemoryRepository(vehicles []Vehicle) *MemoryRepository {
	repo := &MemoryRepository{
		vehicles: make(map[string]Vehicle, len(vehicles)),
	}
	for _, v := range vehicles {
		if _, exists := repo.vehicles[v.ID]; !exists {
			repo.order = append(repo.order, v.ID)
		}
		repo.vehicles[v.ID] = v
	}
	return repo
}

// Get returns the vehicle with the given id.
func (r *MemoryRepository) Get(id string) (Vehicle, bool) {
	v, ok := r.vehicles[id]
	return v, ok
}

// List returns all vehicles in insertion order.
func (r *MemoryRepository) List() []Vehicle {
	out := make([]Vehicle, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.vehicles[id])
	}
	return out
}
