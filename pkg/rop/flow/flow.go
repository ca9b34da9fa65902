package flow

import (
	"context"
	"sync"

	"github.com/ib-77/outcome/pkg/rop"
	"github.com/ib-77/outcome/pkg/rop/core"
	"github.com/ib-77/outcome/pkg/rop/solo"
	"github.com/ib-77/outcome/pkg/rop/task"
)

func Run[T, E any](ctx context.Context, inputCh <-chan rop.Outcome[T, E],
	engine core.Engine[T, T, E], lines int) <-chan rop.Outcome[T, E] {
	return TurnoutWith(ctx, inputCh, engine, core.CancellationHandlers[T, T, E]{}, nil, lines)
}

func Turnout[In, Out, E any](ctx context.Context, inputCh <-chan rop.Outcome[In, E],
	engine core.Engine[In, Out, E], lines int) <-chan rop.Outcome[Out, E] {
	return TurnoutWith(ctx, inputCh, engine, core.CancellationHandlers[In, Out, E]{}, nil, lines)
}

// TurnoutWith runs lines locomotives over inputCh. The returned channel is
// closed once every line has stopped and must be drained until then (see
// Collect). lines below one run a single line.
func TurnoutWith[In, Out, E any](ctx context.Context, inputCh <-chan rop.Outcome[In, E],
	engine core.Engine[In, Out, E],
	handlers core.CancellationHandlers[In, Out, E],
	onSuccess func(ctx context.Context, out rop.Outcome[Out, E]), lines int) <-chan rop.Outcome[Out, E] {

	if lines < 1 {
		lines = 1
	}

	out := make(chan rop.Outcome[Out, E])
	wg := &sync.WaitGroup{}

	for range lines {
		wg.Add(1)
		go core.Locomotive(ctx, inputCh, out, engine, handlers, onSuccess, wg)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}

// Guard isolates panics: a panicking engine call becomes a failure of that
// single item, converted with conv.
func Guard[In, Out, E any](engine core.Engine[In, Out, E], conv rop.Converter[*task.PanicInfo, E]) core.Engine[In, Out, E] {
	return func(ctx context.Context, input rop.Outcome[In, E]) rop.Outcome[Out, E] {
		res := task.Catch(func() rop.Outcome[Out, E] {
			return engine(ctx, input)
		})
		if res.IsFailure() {
			return rop.Failure[Out](conv(res.Reason()))
		}
		return res.Value()
	}
}

func Validate[T, E any](validate func(ctx context.Context, in T) (valid bool, failure E)) core.Engine[T, T, E] {
	return func(ctx context.Context, input rop.Outcome[T, E]) rop.Outcome[T, E] {
		return solo.AndValidate(ctx, input, validate)
	}
}

func Switch[In, Out, E any](switchOnSuccess func(ctx context.Context, r In) rop.Outcome[Out, E]) core.Engine[In, Out, E] {
	return func(ctx context.Context, input rop.Outcome[In, E]) rop.Outcome[Out, E] {
		return solo.Switch(ctx, input, switchOnSuccess)
	}
}

func Map[In, Out, E any](mapOnSuccess func(ctx context.Context, r In) Out) core.Engine[In, Out, E] {
	return func(ctx context.Context, input rop.Outcome[In, E]) rop.Outcome[Out, E] {
		return solo.Map(ctx, input, mapOnSuccess)
	}
}

func Try[In, Out, E any](onTryExecute func(ctx context.Context, r In) (Out, error),
	classify func(err error) E) core.Engine[In, Out, E] {
	return func(ctx context.Context, input rop.Outcome[In, E]) rop.Outcome[Out, E] {
		return solo.Try(ctx, input, onTryExecute, classify)
	}
}

func Tee[T, E any](sideEffect func(ctx context.Context, r rop.Outcome[T, E])) core.Engine[T, T, E] {
	return func(ctx context.Context, input rop.Outcome[T, E]) rop.Outcome[T, E] {
		return solo.Tee(ctx, input, sideEffect)
	}
}

// Then composes two engines into one.
func Then[A, B, C, E any](first core.Engine[A, B, E], second core.Engine[B, C, E]) core.Engine[A, C, E] {
	return func(ctx context.Context, input rop.Outcome[A, E]) rop.Outcome[C, E] {
		return second(ctx, first(ctx, input))
	}
}

// Finally folds each outcome into a value. The output closes when the input
// closes or ctx is done.
func Finally[In, Out, E any](ctx context.Context, inputCh <-chan rop.Outcome[In, E],
	onSuccess func(ctx context.Context, r In) Out,
	onFailure func(ctx context.Context, failure E) Out) <-chan Out {

	out := make(chan Out)

	go func() {
		defer close(out)

		for {
			select {
			case <-ctx.Done():
				return
			case in, ok := <-inputCh:
				if !ok {
					return
				}

				select {
				case <-ctx.Done():
					return
				case out <- solo.Finally(ctx, in, onSuccess, onFailure):
				}
			}
		}
	}()

	return out
}

// Collect drains ch until it closes. Lines keep sending cancelled items
// after their context is done, so the output of TurnoutWith must be read to
// the end even when the pipeline was cancelled.
func Collect[T, E any](ch <-chan rop.Outcome[T, E]) []rop.Outcome[T, E] {
	var res []rop.Outcome[T, E]
	for r := range ch {
		res = append(res, r)
	}
	return res
}
