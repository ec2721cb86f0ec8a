package respawn

import (
	"fmt"
	"reflect"
)

// Container is an opaque service locator handle stored on every component
// at instantiation time. The framework never interprets it; it only passes
// it through so components can reach application services from their
// lifecycle callbacks.
type Container any

// Component is the contract every poolable unit satisfies. A component is
// always a pointer to a struct embedding ComponentBase; the pointer is its
// identity for the whole lifetime of the physical instance.
//
// The four callbacks split into two pairs: OnInstantiate runs exactly once
// per physical instance, OnSpawn and OnRecycle run once per spawn/recycle
// cycle. OnCleanup is invoked by whoever actually destroys the instance
// (usually the pool provider), never by the Manager itself.
type Component interface {
	OnInstantiate()
	OnSpawn()
	OnRecycle()
	OnCleanup()

	base() *ComponentBase
}

// ComponentBase must be embedded into every component struct. It carries
// the back references that are assigned exactly once, when the pool
// provider reports the raw instance, and provides no-op lifecycle
// callbacks so components only override the ones they care about.
type ComponentBase struct {
	entity    Entity
	manager   *Manager
	container Container
	bound     bool
}

func (b *ComponentBase) base() *ComponentBase { return b }

// Entity returns the entity this component belongs to.
func (b *ComponentBase) Entity() Entity { return b.entity }

// Manager returns the Manager that instantiated this component.
func (b *ComponentBase) Manager() *Manager { return b.manager }

// Container returns the opaque service locator handle.
func (b *ComponentBase) Container() Container { return b.container }

func (b *ComponentBase) OnInstantiate() {}
func (b *ComponentBase) OnSpawn()       {}
func (b *ComponentBase) OnRecycle()     {}
func (b *ComponentBase) OnCleanup()     {}

// bind assigns the back references. Called exactly once per physical
// instance; a second call means the same object was instantiated twice,
// which is a logic error.
func (b *ComponentBase) bind(entity Entity, manager *Manager, container Container) {
	if b.bound {
		panic(fmt.Sprintf("component of entity %T was instantiated twice", entity))
	}

	b.entity = entity
	b.manager = manager
	b.container = container
	b.bound = true
}

// Capability identifies an interface a component exposes to Query in
// addition to its concrete type. Build one with CapabilityFor.
type Capability struct {
	ty reflect.Type
}

func (c Capability) String() string {
	return c.ty.String()
}

// CapabilityFor returns the Capability for the interface type I.
// Panics if I is not an interface.
func CapabilityFor[I any]() Capability {
	ty := reflect.TypeFor[I]()
	if ty.Kind() != reflect.Interface {
		panic(fmt.Sprintf("capability %s is not an interface", ty))
	}

	return Capability{ty: ty}
}

// CapabilityDeclarer is implemented by components that want to be queryable
// by interfaces beyond their concrete type. The list is read exactly once,
// at instantiation, and every declared capability must actually be
// implemented by the component.
type CapabilityDeclarer interface {
	DeclareCapabilities() []Capability
}

// recognizedTypesOf computes the fixed type list a component is indexed
// under: the concrete type first, then the declared capabilities in
// declaration order.
func recognizedTypesOf(component Component) []reflect.Type {
	concrete := reflect.TypeOf(component)

	types := []reflect.Type{concrete}

	declarer, ok := component.(CapabilityDeclarer)
	if !ok {
		return types
	}

	for _, capability := range declarer.DeclareCapabilities() {
		if !concrete.Implements(capability.ty) {
			panic(fmt.Sprintf(
				"component %s declares capability %s but does not implement it",
				concrete, capability,
			))
		}

		types = append(types, capability.ty)
	}

	return types
}
