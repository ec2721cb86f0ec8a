package respawn

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type turretBrain struct {
	calls []string
}

func (b *turretBrain) OnInstantiate() { b.calls = append(b.calls, "instantiate") }
func (b *turretBrain) OnSpawn()       { b.calls = append(b.calls, "spawn") }
func (b *turretBrain) OnRecycle()     { b.calls = append(b.calls, "recycle") }
func (b *turretBrain) OnCleanup()     { b.calls = append(b.calls, "cleanup") }

type Turret struct {
	EntityBase
	Cannon *Cannon
}

var _ = ValidateEntity[*Turret]()

type Cannon struct {
	Controlled
}

var _ = ValidateComponent[*Cannon]()

func TestControlledForwardsLifecycle(t *testing.T) {
	brain := &turretBrain{}

	provider := newFakeProvider()
	provider.register("turret", func() Entity {
		return &Turret{Cannon: &Cannon{Controlled: Controlled{Controller: brain}}}
	})

	manager := NewManager(provider)

	entity, err := manager.Spawn("turret")
	require.NoError(t, err)
	manager.Recycle(entity)

	manager.Unload("turret")

	require.Equal(t, []string{"instantiate", "spawn", "recycle"}, brain.calls)
}

func TestControlledWithoutControllerIsNoop(t *testing.T) {
	provider := newFakeProvider()
	provider.register("turret", func() Entity {
		return &Turret{Cannon: &Cannon{}}
	})

	manager := NewManager(provider)

	require.NotPanics(t, func() {
		entity, err := manager.Spawn("turret")
		require.NoError(t, err)
		manager.Recycle(entity)
	})
}
