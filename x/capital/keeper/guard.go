package keeper

import (
	"github.com/proof-of-capital/capital/x/capital/types"
)

// callGuard rejects re-entrant invocation of a mutating entry point from
// within an asset-transfer callback. Each operation carries its own token;
// tokens are not shared across operations. The host serializes calls, so
// no locking is needed, only the busy flag itself.
type callGuard struct {
	busy map[string]bool
}

func newCallGuard() *callGuard {
	return &callGuard{busy: make(map[string]bool)}
}

// enter acquires the token for op. The returned release function must run
// on every exit path.
func (g *callGuard) enter(op string) (func(), error) {
	if g.busy[op] {
		return nil, types.ErrReentrantCall.Wrapf("operation %s already in progress", op)
	}
	g.busy[op] = true
	return func() { g.busy[op] = false }, nil
}
