package respawn

import (
	"context"
	"fmt"
	"iter"
	"reflect"
	"slices"

	"go.uber.org/zap"

	"github.com/oliverbestmann/respawn/internal/refl"
)

// Manager is the lifecycle coordinator. It owns the mapping from live
// entities to their components, keeps a type indexed set of active
// components for queries and drives the instantiate/spawn/recycle/cleanup
// lifecycle across the pool provider.
//
// A Manager is not safe for concurrent use. All mutating operations are
// expected to run on one logical thread; only LoadAsync may suspend, and
// it suspends inside the provider, not inside the Manager's bookkeeping.
type Manager struct {
	_ noCopy

	provider  Provider
	container Container
	log       *zap.Logger

	registry *entityRegistry
	index    *typeIndex

	// spawned records the pool key every currently spawned entity was
	// drawn with. Presence in this map is what makes an entity recyclable.
	spawned map[Entity]Key

	// recognizedByType caches the recognized types per concrete component
	// type. The per component lists in the registry share these slices.
	recognizedByType map[reflect.Type][]reflect.Type
}

// ManagerOption configures a Manager during NewManager.
type ManagerOption func(m *Manager)

// WithLogger attaches a logger for lifecycle debug output. The default is
// a no-op logger.
func WithLogger(log *zap.Logger) ManagerOption {
	return func(m *Manager) {
		m.log = log
	}
}

// WithContainer sets the opaque service locator handle assigned to every
// component at instantiation.
func WithContainer(container Container) ManagerOption {
	return func(m *Manager) {
		m.container = container
	}
}

// NewManager creates a Manager on top of the given provider and binds
// itself as the provider's instantiation sink.
func NewManager(provider Provider, opts ...ManagerOption) *Manager {
	m := &Manager{
		provider:         provider,
		log:              zap.NewNop(),
		registry:         newEntityRegistry(),
		index:            newTypeIndex(),
		spawned:          map[Entity]Key{},
		recognizedByType: map[reflect.Type][]reflect.Type{},
	}

	for _, opt := range opts {
		opt(m)
	}

	provider.Bind(m)

	return m
}

// Instantiated implements InstantiateSink. The provider calls it
// synchronously, exactly once per physical instance: here the object graph
// is walked to discover the fixed component list, recognized types are
// computed, back references are assigned and OnInstantiate fires once per
// component, in discovery order.
func (m *Manager) Instantiated(inst Instance) {
	entity := inst.Entity()

	components := refl.ComponentsOf[Component](entity)

	reg := &registration{
		instance:   inst,
		components: components,
		recognized: make([][]reflect.Type, len(components)),
	}

	for idx, component := range components {
		reg.recognized[idx] = m.recognizedTypes(component)
		component.base().bind(entity, m, m.container)
	}

	m.registry.register(entity, reg)

	for _, component := range components {
		component.OnInstantiate()
	}

	m.log.Debug("instance registered",
		zap.String("entity", fmt.Sprintf("%T", entity)),
		zap.Int("components", len(components)))
}

func (m *Manager) recognizedTypes(component Component) []reflect.Type {
	concrete := reflect.TypeOf(component)

	if cached, ok := m.recognizedByType[concrete]; ok {
		return cached
	}

	types := recognizedTypesOf(component)
	m.recognizedByType[concrete] = types

	return types
}

// Load pre-warms count inactive instances for key.
func (m *Manager) Load(key Key, count int) error {
	return m.provider.Load(key, count)
}

// LoadAsync pre-warms count inactive instances for key without blocking
// the caller beyond the provider's asset preparation. Cancellation aborts
// the in-flight load and surfaces as ctx.Err(); it never corrupts the
// registry or index.
func (m *Manager) LoadAsync(ctx context.Context, key Key, count int, progress ProgressFunc) error {
	return m.provider.LoadAsync(ctx, key, count, progress)
}

// Spawn draws an instance for key from the provider, assigns the optional
// params payload, activates all of the entity's components in the type
// index and fires OnSpawn on each of them in the fixed registration
// order. The returned entity stays spawned until passed to Recycle.
func (m *Manager) Spawn(key Key, opts ...SpawnOption) (Entity, error) {
	var cfg spawnConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	inst, err := m.provider.Spawn(key, cfg.placement)
	if err != nil {
		return nil, err
	}

	entity := inst.Entity()
	reg := m.registry.of(entity)

	if cfg.params != nil {
		slot, ok := entity.(paramsSlot)
		if !ok {
			panic(fmt.Sprintf("entity %T has no params slot but was spawned with params", entity))
		}

		slot.setParams(cfg.params)
	}

	for idx, component := range reg.components {
		m.index.add(component, reg.recognized[idx])
	}

	for _, component := range reg.components {
		component.OnSpawn()
	}

	m.spawned[entity] = key

	m.log.Debug("entity spawned",
		zap.String("entity", fmt.Sprintf("%T", entity)),
		zap.Any("key", key))

	return entity, nil
}

// Recycle deactivates a spawned entity: its components leave the type
// index, OnRecycle fires on each of them in registration order and the
// instance returns to the provider's pool. Recycling an entity that is
// not currently spawned by this manager is a logic error and panics.
func (m *Manager) Recycle(entity Entity) {
	key, ok := m.spawned[entity]
	if !ok {
		panic(fmt.Sprintf("entity %T was not spawned by this manager", entity))
	}

	delete(m.spawned, entity)

	reg := m.registry.of(entity)

	for idx, component := range reg.components {
		m.index.remove(component, reg.recognized[idx])
	}

	for _, component := range reg.components {
		component.OnRecycle()
	}

	if slot, ok := entity.(paramsClearer); ok {
		slot.clearParams()
	}

	m.provider.Recycle(reg.instance)

	m.log.Debug("entity recycled",
		zap.String("entity", fmt.Sprintf("%T", entity)),
		zap.Any("key", key))
}

// RecycleAll recycles every currently spawned entity that was drawn with
// the given key. The order among matches is unspecified.
func (m *Manager) RecycleAll(key Key) {
	var matches []Entity

	for entity, spawnedKey := range m.spawned {
		if spawnedKey == key {
			matches = append(matches, entity)
		}
	}

	for _, entity := range matches {
		m.Recycle(entity)
	}
}

// Cleanup asks the provider to destroy excess pooled instances of key
// down to retain, then reconciles the registry with whatever the provider
// destroyed.
func (m *Manager) Cleanup(key Key, retain int) {
	m.provider.Cleanup(key, retain)
	m.EvictDestroyed()
}

// Unload recycles all spawned instances of key, destroys the whole pool
// for key and reconciles the registry.
func (m *Manager) Unload(key Key) {
	m.RecycleAll(key)
	m.provider.Unload(key)
	m.EvictDestroyed()
}

// EvictDestroyed removes the registry records of entities whose instances
// the provider has destroyed. It runs automatically after Cleanup and
// Unload and is idempotent; call it directly after destroying instances
// behind the manager's back. Returns the number of evicted entities.
func (m *Manager) EvictDestroyed() int {
	evicted := m.registry.evictDestroyed()

	for _, reg := range evicted {
		entity := reg.instance.Entity()

		// a destroyed entity must not linger in the spawned set or the
		// index, even if the provider destroyed it while spawned
		if _, wasSpawned := m.spawned[entity]; !wasSpawned {
			continue
		}

		delete(m.spawned, entity)

		for idx, component := range reg.components {
			m.index.remove(component, reg.recognized[idx])
		}
	}

	if len(evicted) > 0 {
		m.log.Debug("evicted destroyed entities", zap.Int("count", len(evicted)))
	}

	return len(evicted)
}

// IsSpawned reports whether entity is currently spawned by this manager.
func (m *Manager) IsSpawned(entity Entity) bool {
	_, ok := m.spawned[entity]
	return ok
}

// SpawnedCount returns the number of entities currently spawned with key.
func (m *Manager) SpawnedCount(key Key) int {
	var count int
	for _, spawnedKey := range m.spawned {
		if spawnedKey == key {
			count++
		}
	}

	return count
}

// InstanceOf returns the raw instance backing entity, for example to pass
// it as spawn parent. Looking up an entity unknown to this manager panics.
func (m *Manager) InstanceOf(entity Entity) Instance {
	return m.registry.of(entity).instance
}

// ComponentsOf returns the fixed component list of entity, in discovery
// order. Looking up an entity unknown to this manager panics.
func (m *Manager) ComponentsOf(entity Entity) []Component {
	return slices.Clone(m.registry.of(entity).components)
}

// RecognizedTypesOf returns the types entity's components are indexed
// under while spawned, per component in discovery order.
func (m *Manager) RecognizedTypesOf(entity Entity) [][]reflect.Type {
	reg := m.registry.of(entity)

	recognized := make([][]reflect.Type, len(reg.recognized))
	for idx, types := range reg.recognized {
		recognized[idx] = slices.Clone(types)
	}

	return recognized
}

// Query iterates over the currently active components of type T. T is
// either a concrete component type (a pointer to the component struct) or
// a capability interface the component declares. The sequence is empty if
// nothing of that type is spawned; the order is unspecified.
//
// The manager must not spawn or recycle while the sequence is being
// iterated; collect the matches first when the loop body mutates.
func Query[T any](m *Manager) iter.Seq[T] {
	ty := reflect.TypeFor[T]()

	return func(yield func(T) bool) {
		for component := range m.index.query(ty) {
			if !yield(component.(T)) {
				return
			}
		}
	}
}

// QueryCount returns the number of active components of type T without
// iterating them.
func QueryCount[T any](m *Manager) int {
	return m.index.count(reflect.TypeFor[T]())
}
