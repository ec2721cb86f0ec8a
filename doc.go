// Package respawn is a pooling and lifecycle framework for game objects
// built from composable components.
//
// A Manager sits between application code and a pool Provider. The
// provider physically creates, parks and destroys instances; the manager
// drives the logical lifecycle on top of that: it discovers the component
// graph of every raw instance exactly once, fires OnInstantiate, and then
// cycles entities through spawn and recycle, keeping a type indexed set of
// active components that backs Query.
//
// Lifecycle of a physical instance:
//
//	Uninstantiated -> Instantiated <-> Spawned -> ... -> Destroyed
//
// OnInstantiate runs once per instance, OnSpawn/OnRecycle run once per
// cycle, and destruction happens inside the provider; the manager learns
// about it through EvictDestroyed reconciliation after Cleanup or Unload.
package respawn
