package respawn

import (
	"context"

	"github.com/oliverbestmann/respawn/gm"
)

// Key selects the pool an instance is drawn from. It is either a plain
// string or an application defined prefab identity. Keys are compared
// with ==, so string keys match by value while prefab identities match
// by reference. A Key must be comparable.
type Key any

// Placement describes where a freshly spawned instance should be placed.
// The zero value spawns at the origin, unrotated, without a parent.
type Placement struct {
	Position gm.Vec
	Rotation gm.Rad

	// Parent is the instance the new one is attached to, or nil.
	Parent Instance

	// WorldSpace indicates that Position and Rotation are given in world
	// space even when a Parent is set.
	WorldSpace bool
}

// Instance is the raw object handle the pool provider hands out. It is the
// physical side of an entity: the Manager tracks the logical lifecycle,
// the provider creates, parks and destroys the instance.
type Instance interface {
	// Entity returns the root component of the instance's object graph.
	Entity() Entity

	// Alive reports whether the instance still physically exists. It
	// turns false once the provider destroys the instance, which is how
	// the Manager detects entities to evict during reconciliation.
	Alive() bool
}

// InstantiateSink receives the raw instantiation callback. The Manager
// implements it; a provider must be bound to exactly one sink and must
// invoke Instantiated synchronously, exactly once per physical instance,
// before handing that instance out for the first time.
type InstantiateSink interface {
	Instantiated(inst Instance)
}

// ProgressFunc reports pre-warm progress as instances become ready.
type ProgressFunc func(done, total int)

// Provider is the pool allocator the Manager delegates physical object
// management to. All methods except LoadAsync are expected to run on the
// caller's goroutine without suspending; LoadAsync may block while assets
// are prepared and must honor cancellation.
type Provider interface {
	// Bind attaches the instantiation sink. Called once, by NewManager.
	Bind(sink InstantiateSink)

	// Load synchronously pre-warms count inactive instances.
	Load(key Key, count int) error

	// LoadAsync pre-warms count inactive instances, reporting progress as
	// they become ready. Cancellation aborts the in-flight load and
	// surfaces as ctx.Err(); partially loaded pool state is provider
	// defined.
	LoadAsync(ctx context.Context, key Key, count int, progress ProgressFunc) error

	// Spawn takes an instance from the pool, growing it if empty, and
	// performs the physical placement.
	Spawn(key Key, at Placement) (Instance, error)

	// Recycle returns a spawned instance to its pool.
	Recycle(inst Instance)

	// RecycleAll returns every spawned instance of key to its pool. Note
	// that the Manager recycles per instance to fire callbacks in order;
	// this exists for provider-direct consumers.
	RecycleAll(key Key)

	// Cleanup destroys excess pooled, non-spawned instances of key until
	// at most retain remain pooled.
	Cleanup(key Key, retain int)

	// Unload destroys the whole pool for key, including pooled instances.
	Unload(key Key)
}
