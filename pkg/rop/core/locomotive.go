package core

import (
	"context"
	"sync"

	"github.com/ib-77/outcome/pkg/rop"
)

type CancellationHandlers[In, Out, E any] struct {
	OnCancel            func(ctx context.Context, inputCh <-chan rop.Outcome[In, E], outCh chan<- rop.Outcome[Out, E])
	OnCancelUnprocessed func(ctx context.Context, unprocessed rop.Outcome[In, E], outCh chan<- rop.Outcome[Out, E])
	OnCancelProcessed   func(ctx context.Context, in rop.Outcome[In, E], processed rop.Outcome[Out, E], outCh chan<- rop.Outcome[Out, E])
}

// Engine processes one item. It must return exactly one outcome.
type Engine[In, Out, E any] func(ctx context.Context, input rop.Outcome[In, E]) rop.Outcome[Out, E]

// Locomotive is one worker line: it pulls items from inputCh, runs the
// engine and pushes the outcome to outCh until the input closes or ctx is
// done. wg.Done is called on exit.
func Locomotive[In, Out, E any](ctx context.Context, inputCh <-chan rop.Outcome[In, E], outCh chan<- rop.Outcome[Out, E],
	engine Engine[In, Out, E],
	handlers CancellationHandlers[In, Out, E],
	onSuccess func(ctx context.Context, out rop.Outcome[Out, E]), wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			if handlers.OnCancel != nil {
				handlers.OnCancel(ctx, inputCh, outCh)
			}
			return
		case in, ok := <-inputCh:
			if !ok {
				return
			}

			if ctx.Err() != nil {
				if handlers.OnCancelUnprocessed != nil {
					handlers.OnCancelUnprocessed(ctx, in, outCh)
				}
				if handlers.OnCancel != nil {
					handlers.OnCancel(ctx, inputCh, outCh)
				}
				return
			}

			pr := engine(ctx, in)

			select {
			case <-ctx.Done():
				if handlers.OnCancelProcessed != nil {
					handlers.OnCancelProcessed(ctx, in, pr, outCh)
				}
				if handlers.OnCancel != nil {
					handlers.OnCancel(ctx, inputCh, outCh)
				}
				return
			case outCh <- pr:
				if onSuccess != nil {
					onSuccess(ctx, pr)
				}
			}
		}
	}
}
