// Package task runs independent units of work concurrently with isolated
// failure. A unit that panics does not disturb its siblings or the spawner:
// the panic is captured and surfaces only when that unit's Handle is
// joined, as the failure side of a rop.Outcome.
//
//	g := task.NewGroup(ctx)
//	h := task.Spawn(g, "resize", func(ctx context.Context) int { return resize(ctx) })
//	out := h.Join() // rop.Outcome[int, *task.PanicInfo]
//
// Units share no mutable state through this package. There is no
// cancellation beyond the group's context and no retry.
package task
