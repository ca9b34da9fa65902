package core

import (
	"context"

	"github.com/ib-77/outcome/pkg/rop"
)

type ToChanHandlers[T any] struct {
	OnStartFail func(ctx context.Context, input []T)
	OnSuccess   func(ctx context.Context, input T)
	OnBreak     func(ctx context.Context, rest []T)
}

// ToChanFromArgs emits values until they run out or ctx is done.
func ToChanFromArgs[T any](ctx context.Context, values ...T) <-chan T {
	in := make(chan T)

	go func() {
		defer close(in)

		for _, v := range values {
			if ctx.Err() != nil {
				return
			}

			select {
			case in <- v:
			case <-ctx.Done():
				return
			}
		}
	}()

	return in
}

// ToChanFromArgsOutcomes emits every value as a Success.
func ToChanFromArgsOutcomes[T, E any](ctx context.Context, handlers ToChanHandlers[T], values ...T) <-chan rop.Outcome[T, E] {
	in := make(chan rop.Outcome[T, E])

	go func() {
		defer close(in)

		if ctx.Err() != nil {
			if handlers.OnStartFail != nil {
				handlers.OnStartFail(ctx, values)
			}
			return
		}

		for i, v := range values {
			select {
			case in <- rop.Success[T, E](v):
				if handlers.OnSuccess != nil {
					handlers.OnSuccess(ctx, v)
				}
			case <-ctx.Done():
				if handlers.OnBreak != nil {
					handlers.OnBreak(ctx, values[i:])
				}
				return
			}
		}
	}()

	return in
}

func ToChan[T any](ctx context.Context, value T) <-chan T {
	return ToChanFromArgs(ctx, value)
}

func ToChanMany[T any](ctx context.Context, values []T) <-chan T {
	return ToChanFromArgs(ctx, values...)
}

func ToChanManyOutcomesWithHandlers[T, E any](ctx context.Context, handlers ToChanHandlers[T], values []T) <-chan rop.Outcome[T, E] {
	return ToChanFromArgsOutcomes[T, E](ctx, handlers, values...)
}

func ToChanManyOutcomes[T, E any](ctx context.Context, values []T) <-chan rop.Outcome[T, E] {
	return ToChanFromArgsOutcomes[T, E](ctx, ToChanHandlers[T]{}, values...)
}

// FromChanFirst returns the first value received, Absent when the channel
// closes empty or ctx is done first.
func FromChanFirst[T any](ctx context.Context, out <-chan T) rop.Option[T] {
	select {
	case v, ok := <-out:
		return rop.FromOk(v, ok)
	case <-ctx.Done():
		return rop.Absent[T]()
	}
}

func FromChanFirstOrDefault[T any](ctx context.Context, out <-chan T, defaultV T) T {
	return FromChanFirst(ctx, out).UnwrapOr(defaultV)
}

// FromChanMany collects until the channel closes or ctx is done.
func FromChanMany[T any](ctx context.Context, out <-chan T) []T {
	res := make([]T, 0)
	for {
		select {
		case v, ok := <-out:
			if !ok {
				return res
			}
			res = append(res, v)
		case <-ctx.Done():
			return res
		}
	}
}
