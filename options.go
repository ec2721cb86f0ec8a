package respawn

import "github.com/oliverbestmann/respawn/gm"

type spawnConfig struct {
	placement Placement
	params    any
}

// SpawnOption configures a single Spawn call.
type SpawnOption func(cfg *spawnConfig)

// WithParams assigns a payload to the entity's Params slot. The payload
// is set strictly before OnSpawn runs. Spawning an entity without a
// matching Params slot, or with a payload of the wrong type, panics.
func WithParams(params any) SpawnOption {
	return func(cfg *spawnConfig) {
		cfg.params = params
	}
}

// At places the spawned instance at the given position.
func At(position gm.Vec) SpawnOption {
	return func(cfg *spawnConfig) {
		cfg.placement.Position = position
	}
}

// WithRotation places the spawned instance with the given rotation.
func WithRotation(rotation gm.Rad) SpawnOption {
	return func(cfg *spawnConfig) {
		cfg.placement.Rotation = rotation
	}
}

// WithParent attaches the spawned instance to a parent instance.
func WithParent(parent Instance) SpawnOption {
	return func(cfg *spawnConfig) {
		cfg.placement.Parent = parent
	}
}

// InWorldSpace marks the placement as world space even when a parent is
// set.
func InWorldSpace() SpawnOption {
	return func(cfg *spawnConfig) {
		cfg.placement.WorldSpace = true
	}
}
