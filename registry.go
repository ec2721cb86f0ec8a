package respawn

import (
	"fmt"
	"reflect"
)

// registration is the fixed record the registry keeps per known entity.
// The component list and the recognized types are computed once, at raw
// instantiation, and never change across spawn/recycle cycles.
type registration struct {
	instance   Instance
	components []Component

	// recognized holds, aligned with components, the types each component
	// is indexed under while spawned: concrete type first, then declared
	// capabilities.
	recognized [][]reflect.Type
}

// entityRegistry maps every known entity to its registration. Entries are
// created when the provider reports a raw instantiation and removed when
// the instance is found destroyed.
type entityRegistry struct {
	entries map[Entity]*registration
}

func newEntityRegistry() *entityRegistry {
	return &entityRegistry{
		entries: map[Entity]*registration{},
	}
}

// register stores the record for entity. Registering an entity twice is a
// logic error: raw instantiation happens exactly once per instance.
func (r *entityRegistry) register(entity Entity, reg *registration) {
	if _, exists := r.entries[entity]; exists {
		panic(fmt.Sprintf("entity %T is already registered", entity))
	}

	if len(reg.components) == 0 || reg.components[0] != Component(entity) {
		panic(fmt.Sprintf("component list of entity %T must start with the entity itself", entity))
	}

	r.entries[entity] = reg
}

// of returns the registration of entity. Looking up an unknown entity is
// a programming error.
func (r *entityRegistry) of(entity Entity) *registration {
	reg, ok := r.entries[entity]
	if !ok {
		panic(fmt.Sprintf("entity %T is not registered with this manager", entity))
	}

	return reg
}

// evictDestroyed removes the record of every entity whose instance no
// longer physically exists and returns the evicted records. Running it
// again without intervening destruction is a no-op.
func (r *entityRegistry) evictDestroyed() []*registration {
	var evicted []*registration

	for entity, reg := range r.entries {
		if reg.instance.Alive() {
			continue
		}

		evicted = append(evicted, reg)
		delete(r.entries, entity)
	}

	return evicted
}
