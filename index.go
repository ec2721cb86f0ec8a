package respawn

import (
	"iter"
	"reflect"

	"github.com/oliverbestmann/respawn/internal/set"
)

// typeIndex maintains, per recognized type, the set of currently active
// components. It is populated on spawn and drained on recycle, so a query
// only ever sees components of spawned entities.
type typeIndex struct {
	active map[reflect.Type]*set.Set[Component]
}

func newTypeIndex() *typeIndex {
	return &typeIndex{
		active: map[reflect.Type]*set.Set[Component]{},
	}
}

// add inserts component into the active set of every given type.
// Idempotent per type.
func (i *typeIndex) add(component Component, types []reflect.Type) {
	for _, ty := range types {
		active, ok := i.active[ty]
		if !ok {
			active = &set.Set[Component]{}
			i.active[ty] = active
		}

		active.Insert(component)
	}
}

// remove drops component from the active set of every given type. Types
// the component is not indexed under are skipped.
func (i *typeIndex) remove(component Component, types []reflect.Type) {
	for _, ty := range types {
		active, ok := i.active[ty]
		if !ok {
			continue
		}

		active.Remove(component)

		if active.Len() == 0 {
			delete(i.active, ty)
		}
	}
}

// query iterates over the active set for ty, in no particular order. The
// sequence is empty if no component of that type is currently active.
func (i *typeIndex) query(ty reflect.Type) iter.Seq[Component] {
	active, ok := i.active[ty]
	if !ok {
		return func(yield func(Component) bool) {}
	}

	return active.Values()
}

// count returns the number of active components for ty.
func (i *typeIndex) count(ty reflect.Type) int {
	active, ok := i.active[ty]
	if !ok {
		return 0
	}

	return active.Len()
}
