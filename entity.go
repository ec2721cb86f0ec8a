package respawn

import (
	"fmt"
	"reflect"
)

// Entity is the root component of a spawnable object. Every object drawn
// from a pool has exactly one Entity; its nested components are discovered
// once, when the pool provider reports the raw instance.
type Entity interface {
	Component

	entityBase() *EntityBase
}

// EntityBase must be embedded into every entity struct.
type EntityBase struct {
	ComponentBase
}

func (b *EntityBase) entityBase() *EntityBase { return b }

// paramsSlot is implemented by Params[P]. An entity embedding Params[P]
// accepts a typed payload via the WithParams spawn option.
type paramsSlot interface {
	setParams(value any)
}

// Params gives an entity a typed parameter slot. The value is assigned by
// the Manager strictly before OnSpawn runs, so spawn callbacks can rely
// on it. Embed it next to EntityBase:
//
//	type Goblin struct {
//	    respawn.EntityBase
//	    respawn.Params[GoblinParams]
//	}
type Params[P any] struct {
	value    P
	assigned bool
}

func (p *Params[P]) setParams(value any) {
	typed, ok := value.(P)
	if !ok {
		panic(fmt.Sprintf(
			"params of type %T do not fit a slot of type %s",
			value, reflect.TypeFor[P](),
		))
	}

	p.value = typed
	p.assigned = true
}

// Get returns the payload assigned at spawn time. It returns the zero
// value if the entity was spawned without params.
func (p *Params[P]) Get() P { return p.value }

// Assigned reports whether a payload was assigned for the current cycle.
func (p *Params[P]) Assigned() bool { return p.assigned }

// clearParams resets the slot so a payload from a previous cycle does not
// leak into the next spawn.
func (p *Params[P]) clearParams() {
	var zero P
	p.value = zero
	p.assigned = false
}

type paramsClearer interface {
	clearParams()
}
