package localpool

import (
	"github.com/google/uuid"

	"github.com/oliverbestmann/respawn"
)

// Instance is the raw object handle of the in-memory pool. It carries the
// entity graph built by the prefab factory plus the placement of the
// current spawn cycle.
type Instance struct {
	id        uuid.UUID
	entity    respawn.Entity
	placement respawn.Placement
	alive     bool

	prefab *prefab
}

func (i *Instance) Entity() respawn.Entity { return i.entity }

// Alive reports whether the instance still exists. It turns false once
// the pool destroys the instance during Cleanup or Unload.
func (i *Instance) Alive() bool { return i.alive }

// ID returns the unique identity assigned at creation.
func (i *Instance) ID() uuid.UUID { return i.id }

// Placement returns the placement of the current spawn cycle. It is the
// zero value while the instance is pooled.
func (i *Instance) Placement() respawn.Placement { return i.placement }
