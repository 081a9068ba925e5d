package state

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/mechdyn/internal/mechanism"
)

// Pool recycles MechanismStates for a fixed mechanism. States handed out
// keep whatever q, v and contact state they were returned with; callers
// set the state they need.
type Pool struct {
	pool sync.Pool
}

func NewPool(m *mechanism.Mechanism) *Pool {
	return &Pool{pool: sync.Pool{New: func() any { return New(m) }}}
}

func (p *Pool) Get() *MechanismState { return p.pool.Get().(*MechanismState) }

func (p *Pool) Put(st *MechanismState) { p.pool.Put(st) }

// ForEachConfiguration runs fn once per configuration, spreading the work
// over workers goroutines. Each call of fn gets a state owned by exactly
// one goroutine, so fn may freely read cached quantities; it must not
// retain the state past the call. workers <= 0 means one per CPU. The
// first error cancels the remaining work.
func ForEachConfiguration(ctx context.Context, m *mechanism.Mechanism, configs [][]float64, workers int, fn func(i int, st *MechanismState) error) error {
	if len(configs) == 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(configs) {
		workers = len(configs)
	}

	pool := NewPool(m)
	var next atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			st := pool.Get()
			defer pool.Put(st)
			for {
				i := int(next.Add(1)) - 1
				if i >= len(configs) {
					return nil
				}
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := st.SetConfiguration(configs[i]); err != nil {
					return err
				}
				if err := fn(i, st); err != nil {
					return err
				}
			}
		})
	}
	return g.Wait()
}
