// Package manifest loads declarative pool pre-warm configuration from
// YAML and applies it to a respawn.Manager:
//
//	pools:
//	  - key: goblin
//	    prewarm: 8
//	    retain: 4
//	  - key: boss
//	    prewarm: 1
package manifest

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/oliverbestmann/respawn"
)

// Pool is the configuration of a single pool key.
type Pool struct {
	Key string `yaml:"key"`

	// Prewarm is the number of inactive instances loaded by Apply.
	Prewarm int `yaml:"prewarm"`

	// Retain is the pooled instance count Shrink cleans down to.
	Retain int `yaml:"retain"`
}

// Manifest is a set of pool configurations.
type Manifest struct {
	Pools []Pool `yaml:"pools"`
}

// Parse reads a manifest from r and validates it.
func Parse(r io.Reader) (Manifest, error) {
	var m Manifest

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&m); err != nil {
		return Manifest{}, fmt.Errorf("decode manifest: %w", err)
	}

	if err := m.validate(); err != nil {
		return Manifest{}, err
	}

	return m, nil
}

// Load reads a manifest from the file at path.
func Load(path string) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("open manifest: %w", err)
	}

	defer func() { _ = f.Close() }()

	return Parse(f)
}

func (m Manifest) validate() error {
	seen := map[string]struct{}{}

	for _, pool := range m.Pools {
		if pool.Key == "" {
			return fmt.Errorf("manifest contains a pool without a key")
		}

		if _, dup := seen[pool.Key]; dup {
			return fmt.Errorf("duplicate pool key %q in manifest", pool.Key)
		}
		seen[pool.Key] = struct{}{}

		if pool.Prewarm < 0 || pool.Retain < 0 {
			return fmt.Errorf("pool %q has negative counts", pool.Key)
		}
	}

	return nil
}

// Apply pre-warms every configured pool through the manager. Pools are
// loaded one after the other since the manager's bookkeeping is single
// threaded; cancellation aborts the remaining loads.
func (m Manifest) Apply(ctx context.Context, mgr *respawn.Manager, progress respawn.ProgressFunc) error {
	for _, pool := range m.Pools {
		if err := mgr.LoadAsync(ctx, pool.Key, pool.Prewarm, progress); err != nil {
			return fmt.Errorf("prewarm pool %q: %w", pool.Key, err)
		}
	}

	return nil
}

// Shrink cleans every configured pool down to its retain count.
func (m Manifest) Shrink(mgr *respawn.Manager) {
	for _, pool := range m.Pools {
		mgr.Cleanup(pool.Key, pool.Retain)
	}
}
