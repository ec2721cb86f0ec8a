// Package localpool provides an in-memory pool provider for respawn. It
// keeps per-key free lists, grows pools on demand and destroys instances
// on cleanup and unload, which makes the framework usable without a
// rendering engine and is what the tests and examples run against.
package localpool

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/oliverbestmann/respawn"
	"github.com/oliverbestmann/respawn/internal/refl"
)

// Factory builds one raw object graph for a prefab. It is invoked every
// time the pool needs a fresh physical instance.
type Factory func() respawn.Entity

// PrepareFunc performs the one-time asset preparation of a prefab, for
// example loading textures or sounds. It runs at most once per prefab,
// inside Load or LoadAsync, and must honor cancellation.
type PrepareFunc func(ctx context.Context) error

type prefab struct {
	key      respawn.Key
	factory  Factory
	prepare  PrepareFunc
	prepared bool

	free    []*Instance
	spawned map[*Instance]struct{}
}

// Pool is an in-memory respawn.Provider.
type Pool struct {
	log  *zap.Logger
	sink respawn.InstantiateSink

	prefabs map[respawn.Key]*prefab

	// loads dedupes concurrent asset preparation per key
	loads singleflight.Group
}

// Option configures a Pool during New.
type Option func(p *Pool)

// WithLogger attaches a logger for pool debug output.
func WithLogger(log *zap.Logger) Option {
	return func(p *Pool) {
		p.log = log
	}
}

// New creates an empty pool. Register prefabs before spawning, then hand
// the pool to respawn.NewManager, which binds itself as the sink.
func New(opts ...Option) *Pool {
	p := &Pool{
		log:     zap.NewNop(),
		prefabs: map[respawn.Key]*prefab{},
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// RegisterOption configures a prefab during Register.
type RegisterOption func(pf *prefab)

// WithPrepare attaches the one-time asset preparation step of a prefab.
func WithPrepare(prepare PrepareFunc) RegisterOption {
	return func(pf *prefab) {
		pf.prepare = prepare
	}
}

// Register makes key spawnable by associating it with a factory.
// Registering the same key twice panics.
func (p *Pool) Register(key respawn.Key, factory Factory, opts ...RegisterOption) {
	if _, exists := p.prefabs[key]; exists {
		panic(fmt.Sprintf("pool key %v is already registered", key))
	}

	pf := &prefab{
		key:     key,
		factory: factory,
		spawned: map[*Instance]struct{}{},
	}

	for _, opt := range opts {
		opt(pf)
	}

	p.prefabs[key] = pf
}

// Bind implements respawn.Provider.
func (p *Pool) Bind(sink respawn.InstantiateSink) {
	if p.sink != nil {
		panic("pool is already bound to a manager")
	}

	p.sink = sink
}

func (p *Pool) prefabOf(key respawn.Key) (*prefab, error) {
	pf, ok := p.prefabs[key]
	if !ok {
		return nil, fmt.Errorf("unknown pool key %v", key)
	}

	return pf, nil
}

// newInstance physically creates an instance and reports it to the sink
// before it is handed out anywhere.
func (p *Pool) newInstance(pf *prefab) *Instance {
	if p.sink == nil {
		panic("pool is not bound to a manager")
	}

	inst := &Instance{
		id:     uuid.New(),
		entity: pf.factory(),
		alive:  true,
		prefab: pf,
	}

	p.sink.Instantiated(inst)

	p.log.Debug("instance created",
		zap.Stringer("id", inst.id),
		zap.Any("key", pf.key))

	return inst
}

// destroy ends the physical life of an instance. The components receive
// OnCleanup here, since destruction is the provider's call, and Alive
// flips to false so the manager's reconciliation can evict the entity.
func (p *Pool) destroy(inst *Instance) {
	for _, component := range refl.ComponentsOf[respawn.Component](inst.entity) {
		component.OnCleanup()
	}

	inst.alive = false

	p.log.Debug("instance destroyed",
		zap.Stringer("id", inst.id),
		zap.Any("key", inst.prefab.key))
}

func (p *Pool) ensurePrepared(ctx context.Context, pf *prefab) error {
	if pf.prepare == nil || pf.prepared {
		return nil
	}

	_, err, _ := p.loads.Do(fmt.Sprint(pf.key), func() (any, error) {
		return nil, pf.prepare(ctx)
	})
	if err != nil {
		return err
	}

	pf.prepared = true
	return nil
}

// Load implements respawn.Provider.
func (p *Pool) Load(key respawn.Key, count int) error {
	return p.LoadAsync(context.Background(), key, count, nil)
}

// LoadAsync implements respawn.Provider. Cancellation aborts between
// instance creations; instances created before the abort stay pooled.
func (p *Pool) LoadAsync(ctx context.Context, key respawn.Key, count int, progress respawn.ProgressFunc) error {
	pf, err := p.prefabOf(key)
	if err != nil {
		return err
	}

	if err := p.ensurePrepared(ctx, pf); err != nil {
		return err
	}

	for idx := range count {
		if err := ctx.Err(); err != nil {
			return err
		}

		pf.free = append(pf.free, p.newInstance(pf))

		if progress != nil {
			progress(idx+1, count)
		}
	}

	return nil
}

// Spawn implements respawn.Provider. The pool grows by one instance when
// the free list is empty.
func (p *Pool) Spawn(key respawn.Key, at respawn.Placement) (respawn.Instance, error) {
	pf, err := p.prefabOf(key)
	if err != nil {
		return nil, err
	}

	if err := p.ensurePrepared(context.Background(), pf); err != nil {
		return nil, err
	}

	var inst *Instance
	if n := len(pf.free); n > 0 {
		inst = pf.free[n-1]
		pf.free = pf.free[:n-1]
	} else {
		inst = p.newInstance(pf)
	}

	inst.placement = at
	pf.spawned[inst] = struct{}{}

	return inst, nil
}

// Recycle implements respawn.Provider.
func (p *Pool) Recycle(inst respawn.Instance) {
	local, ok := inst.(*Instance)
	if !ok {
		panic(fmt.Sprintf("instance %T does not belong to this pool", inst))
	}

	pf := local.prefab
	if _, isSpawned := pf.spawned[local]; !isSpawned {
		panic(fmt.Sprintf("instance %s of key %v is not spawned", local.id, pf.key))
	}

	delete(pf.spawned, local)
	local.placement = respawn.Placement{}
	pf.free = append(pf.free, local)
}

// RecycleAll implements respawn.Provider.
func (p *Pool) RecycleAll(key respawn.Key) {
	pf, ok := p.prefabs[key]
	if !ok {
		return
	}

	for inst := range pf.spawned {
		delete(pf.spawned, inst)
		inst.placement = respawn.Placement{}
		pf.free = append(pf.free, inst)
	}
}

// Cleanup implements respawn.Provider. It destroys pooled instances until
// at most retain remain; spawned instances are untouched.
func (p *Pool) Cleanup(key respawn.Key, retain int) {
	pf, ok := p.prefabs[key]
	if !ok {
		return
	}

	for len(pf.free) > retain {
		n := len(pf.free)
		inst := pf.free[n-1]
		pf.free = pf.free[:n-1]

		p.destroy(inst)
	}
}

// Unload implements respawn.Provider. It destroys every instance of key,
// spawned ones included, and resets the prefab to its unprepared state.
// The registration itself survives, so the key can be loaded again.
func (p *Pool) Unload(key respawn.Key) {
	pf, ok := p.prefabs[key]
	if !ok {
		return
	}

	for _, inst := range pf.free {
		p.destroy(inst)
	}
	pf.free = nil

	for inst := range pf.spawned {
		delete(pf.spawned, inst)
		p.destroy(inst)
	}

	pf.prepared = false
}

// PooledCount returns the number of inactive instances currently parked
// for key.
func (p *Pool) PooledCount(key respawn.Key) int {
	pf, ok := p.prefabs[key]
	if !ok {
		return 0
	}

	return len(pf.free)
}

// SpawnedCount returns the number of instances of key currently handed
// out.
func (p *Pool) SpawnedCount(key respawn.Key) int {
	pf, ok := p.prefabs[key]
	if !ok {
		return 0
	}

	return len(pf.spawned)
}
