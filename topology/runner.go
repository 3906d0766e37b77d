package topology

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/c360/streamblocks/block"
)

// idleBackoff is how long a block goroutine sleeps after an invocation
// that moved nothing.
const idleBackoff = 500 * time.Microsecond

// Run drives every block on its own goroutine until ctx is cancelled.
// Ports are not safe for concurrent access, so invocations interleave
// under the topology lock; a block is never reentered. Sources with
// real-time behavior (pacers, network endpoints) keep making progress
// while compute blocks idle.
func (t *Topology) Run(ctx context.Context) error {
	if err := t.Activate(); err != nil {
		return err
	}
	defer func() {
		if err := t.Deactivate(); err != nil {
			t.logger.Error("topology deactivate failed", "error", err)
		}
	}()

	g, ctx := errgroup.WithContext(ctx)
	for _, b := range t.Blocks() {
		b := b
		g.Go(func() error {
			return t.runBlock(ctx, b)
		})
	}
	return g.Wait()
}

func (t *Topology) runBlock(ctx context.Context, b block.Block) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		t.mu.Lock()
		moved := t.step(b)
		t.mu.Unlock()

		if !moved {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(idleBackoff):
			}
		}
	}
}
