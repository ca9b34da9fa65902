package flow

import (
	"context"

	"github.com/ib-77/outcome/pkg/rop"
	"github.com/ib-77/outcome/pkg/rop/core"
)

// CancelRemaining builds handlers that, when the context carries
// ProcessRemaining (the default), emit cancelled for every item a line did
// not get to, so the consumer sees one outcome per input. Items already
// processed when cancellation hit are still delivered.
func CancelRemaining[In, Out, E any](cancelled func(ctx context.Context) E) core.CancellationHandlers[In, Out, E] {
	return core.CancellationHandlers[In, Out, E]{
		OnCancel: func(ctx context.Context, inputCh <-chan rop.Outcome[In, E], outCh chan<- rop.Outcome[Out, E]) {
			if !core.IsProcessRemainingEnabled(ctx, true) {
				return
			}
			for in := range inputCh {
				outCh <- cancelledFrom[In, Out](ctx, in, cancelled)
			}
		},
		OnCancelUnprocessed: func(ctx context.Context, unprocessed rop.Outcome[In, E], outCh chan<- rop.Outcome[Out, E]) {
			if !core.IsProcessRemainingEnabled(ctx, true) {
				return
			}
			outCh <- cancelledFrom[In, Out](ctx, unprocessed, cancelled)
		},
		OnCancelProcessed: func(ctx context.Context, _ rop.Outcome[In, E], processed rop.Outcome[Out, E], outCh chan<- rop.Outcome[Out, E]) {
			if !core.IsProcessRemainingEnabled(ctx, true) {
				return
			}
			outCh <- processed
		},
	}
}

// an item that already failed keeps its own failure
func cancelledFrom[In, Out, E any](ctx context.Context, in rop.Outcome[In, E], cancelled func(ctx context.Context) E) rop.Outcome[Out, E] {
	if in.IsFailure() {
		return rop.Failure[Out](in.Reason())
	}
	return rop.Failure[Out](cancelled(ctx))
}
