package manifest_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oliverbestmann/respawn"
	"github.com/oliverbestmann/respawn/localpool"
	"github.com/oliverbestmann/respawn/manifest"
)

const testManifest = `
pools:
  - key: goblin
    prewarm: 3
    retain: 1
  - key: boss
    prewarm: 1
`

type Goblin struct {
	respawn.EntityBase
}

var _ = respawn.ValidateEntity[*Goblin]()

type Boss struct {
	respawn.EntityBase
}

var _ = respawn.ValidateEntity[*Boss]()

func TestParse(t *testing.T) {
	t.Run("valid manifest", func(t *testing.T) {
		m, err := manifest.Parse(strings.NewReader(testManifest))
		require.NoError(t, err)

		require.Equal(t, manifest.Manifest{
			Pools: []manifest.Pool{
				{Key: "goblin", Prewarm: 3, Retain: 1},
				{Key: "boss", Prewarm: 1},
			},
		}, m)
	})

	t.Run("unknown fields are rejected", func(t *testing.T) {
		_, err := manifest.Parse(strings.NewReader("pools:\n  - key: a\n    color: red\n"))
		require.Error(t, err)
	})

	t.Run("missing key is rejected", func(t *testing.T) {
		_, err := manifest.Parse(strings.NewReader("pools:\n  - prewarm: 1\n"))
		require.Error(t, err)
	})

	t.Run("duplicate keys are rejected", func(t *testing.T) {
		_, err := manifest.Parse(strings.NewReader("pools:\n  - key: a\n  - key: a\n"))
		require.Error(t, err)
	})

	t.Run("negative counts are rejected", func(t *testing.T) {
		_, err := manifest.Parse(strings.NewReader("pools:\n  - key: a\n    prewarm: -1\n"))
		require.Error(t, err)
	})
}

func TestApplyAndShrink(t *testing.T) {
	pool := localpool.New()
	pool.Register("goblin", func() respawn.Entity { return &Goblin{} })
	pool.Register("boss", func() respawn.Entity { return &Boss{} })

	manager := respawn.NewManager(pool)

	m, err := manifest.Parse(strings.NewReader(testManifest))
	require.NoError(t, err)

	require.NoError(t, m.Apply(context.Background(), manager, nil))
	require.Equal(t, 3, pool.PooledCount("goblin"))
	require.Equal(t, 1, pool.PooledCount("boss"))

	m.Shrink(manager)
	require.Equal(t, 1, pool.PooledCount("goblin"))
	require.Equal(t, 0, pool.PooledCount("boss"))
}

func TestApplyUnknownKey(t *testing.T) {
	pool := localpool.New()
	manager := respawn.NewManager(pool)

	m := manifest.Manifest{Pools: []manifest.Pool{{Key: "dragon", Prewarm: 1}}}

	require.Error(t, m.Apply(context.Background(), manager, nil))
}
