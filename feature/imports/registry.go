package imports

import (
	"strings"

	"store-ops/core/reconcile"
	"store-ops/feature/budget"
	"store-ops/feature/employee"
	"store-ops/feature/hurdle"
	"store-ops/feature/rate"
	"store-ops/feature/storeemployee"
)

// Entity describes an importable entity type.
type Entity struct {
	Name    string             `json:"name"`
	Module  string             `json:"module"`
	Columns []reconcile.Column `json:"columns"`
}

// Registry maps entity types to descriptors. Lookups accept the entity name or
// its permission module, case-insensitively.
type Registry struct {
	descriptors []reconcile.Descriptor
	byName      map[string]reconcile.Descriptor
}

// NewRegistry creates a registry of descs.
func NewRegistry(descs ...reconcile.Descriptor) *Registry {
	r := &Registry{byName: make(map[string]reconcile.Descriptor)}
	for _, d := range descs {
		r.descriptors = append(r.descriptors, d)
		r.byName[strings.ToLower(d.Name())] = d
		if _, taken := r.byName[strings.ToLower(d.Module())]; !taken {
			r.byName[strings.ToLower(d.Module())] = d
		}
	}
	return r
}

// DefaultRegistry returns every built-in entity type.
func DefaultRegistry() *Registry {
	return NewRegistry(
		employee.NewDescriptor(),
		storeemployee.NewDescriptor(),
		hurdle.NewDescriptor(),
		rate.NewDescriptor(),
		budget.NewDescriptor(),
	)
}

// Get returns the descriptor of entity.
func (r *Registry) Get(entity string) (reconcile.Descriptor, bool) {
	d, ok := r.byName[strings.ToLower(strings.TrimSpace(entity))]
	return d, ok
}

// Entities lists the registered entity types in registration order.
func (r *Registry) Entities() []Entity {
	entities := make([]Entity, len(r.descriptors))
	for i, d := range r.descriptors {
		entities[i] = Entity{Name: d.Name(), Module: d.Module(), Columns: d.Columns()}
	}
	return entities
}
