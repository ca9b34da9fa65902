package chain

import (
	"context"

	"github.com/ib-77/outcome/pkg/rop"
	"github.com/ib-77/outcome/pkg/rop/solo"
)

// Chain carries a context next to the outcome so steps need not repeat it.
type Chain[T, E any] struct {
	ctx context.Context
	res rop.Outcome[T, E]
}

func Start[T, E any](ctx context.Context, r rop.Outcome[T, E]) Chain[T, E] {
	return Chain[T, E]{ctx: ctx, res: r}
}

func FromValue[T, E any](ctx context.Context, v T) Chain[T, E] {
	return Start(ctx, rop.Success[T, E](v))
}

func FromFailure[T, E any](ctx context.Context, failure E) Chain[T, E] {
	return Start(ctx, rop.Failure[T](failure))
}

// FromOption starts from an Option, using failure when it is absent.
func FromOption[T, E any](ctx context.Context, o rop.Option[T], failure E) Chain[T, E] {
	return Start(ctx, rop.ToOutcome(o, failure))
}

func (c Chain[T, E]) Result() rop.Outcome[T, E] {
	return c.res
}

func (c Chain[T, E]) Context() context.Context {
	return c.ctx
}

// Then composes a step that already returns an outcome of the same type.
func (c Chain[T, E]) Then(onSuccess func(ctx context.Context, t T) rop.Outcome[T, E]) Chain[T, E] {
	if c.res.IsFailure() {
		return c
	}
	return Chain[T, E]{ctx: c.ctx, res: onSuccess(c.ctx, c.res.Value())}
}

// ThenTry composes functions that return (T, error), like repository calls.
func (c Chain[T, E]) ThenTry(try func(ctx context.Context, t T) (T, error),
	classify func(err error) E) Chain[T, E] {
	return Chain[T, E]{ctx: c.ctx, res: solo.Try(c.ctx, c.res, try, classify)}
}

// Map transforms the successful value
func (c Chain[T, E]) Map(onSuccess func(ctx context.Context, t T) T) Chain[T, E] {
	return Chain[T, E]{ctx: c.ctx, res: solo.Map(c.ctx, c.res, onSuccess)}
}

// Validate fails the chain when validate reports an invalid value.
func (c Chain[T, E]) Validate(validate func(ctx context.Context, t T) (bool, E)) Chain[T, E] {
	return Chain[T, E]{ctx: c.ctx, res: solo.AndValidate(c.ctx, c.res, validate)}
}

func (c Chain[T, E]) RepeatUntil(onSuccess func(ctx context.Context, t T) rop.Outcome[T, E],
	until func(ctx context.Context, t T) bool) Chain[T, E] {

	if c.res.IsFailure() {
		return c
	}

	for {
		c = c.Then(onSuccess)

		if c.res.IsFailure() || until(c.ctx, c.res.Value()) {
			return c
		}
	}
}

func (c Chain[T, E]) While(onSuccess func(ctx context.Context, t T) rop.Outcome[T, E],
	while func(ctx context.Context, t T) bool) Chain[T, E] {

	for c.res.IsSuccess() && while(c.ctx, c.res.Value()) {
		c = c.Then(onSuccess)
	}
	return c
}

// Or returns the first successful chain among the receiver and alternatives,
// else the first failure.
func (c Chain[T, E]) Or(alternatives ...Chain[T, E]) Chain[T, E] {
	if c.res.IsSuccess() {
		return c
	}
	for _, alt := range alternatives {
		if alt.res.IsSuccess() {
			return alt
		}
	}
	return c
}

// And returns the first failing chain among the receiver and the required
// ones, else the last of them.
func (c Chain[T, E]) And(required ...Chain[T, E]) Chain[T, E] {
	last := c
	for _, ch := range append([]Chain[T, E]{c}, required...) {
		if ch.res.IsFailure() {
			return ch
		}
		last = ch
	}
	return last
}

// Ensure triggers side effects for success/failure without changing the result
func (c Chain[T, E]) Ensure(onSuccess func(context.Context, T), onFailure func(context.Context, E)) Chain[T, E] {
	solo.DoubleTee(c.ctx, c.res, onSuccess, onFailure)
	return c
}

// Finally collapses the chain to a final value, delegating to solo.Finally
func (c Chain[T, E]) Finally(onSuccess func(context.Context, T) T, onFailure func(context.Context, E) T) T {
	return solo.Finally(c.ctx, c.res, onSuccess, onFailure)
}

// Then chains a type-changing step.
func Then[T, U, E any](c Chain[T, E], onSuccess func(context.Context, T) rop.Outcome[U, E]) Chain[U, E] {
	return Chain[U, E]{ctx: c.ctx, res: solo.Switch(c.ctx, c.res, onSuccess)}
}

func ThenTry[T, U, E any](c Chain[T, E], tryOnSuccess func(context.Context, T) (U, error),
	classify func(err error) E) Chain[U, E] {
	return Chain[U, E]{ctx: c.ctx, res: solo.Try(c.ctx, c.res, tryOnSuccess, classify)}
}

func Map[T, U, E any](c Chain[T, E], onSuccess func(context.Context, T) U) Chain[U, E] {
	return Chain[U, E]{ctx: c.ctx, res: solo.Map(c.ctx, c.res, onSuccess)}
}

// ThenIn chains a step from another failure domain, converting its failure.
func ThenIn[T, U, E1, E any](c Chain[T, E], onSuccess func(context.Context, T) rop.Outcome[U, E1],
	conv rop.Converter[E1, E]) Chain[U, E] {
	return Chain[U, E]{ctx: c.ctx, res: rop.AndThenConv(c.res, func(t T) rop.Outcome[U, E1] {
		return onSuccess(c.ctx, t)
	}, conv)}
}

// Convert moves the whole chain into another failure domain.
func Convert[T, E1, E2 any](c Chain[T, E1], conv rop.Converter[E1, E2]) Chain[T, E2] {
	return Chain[T, E2]{ctx: c.ctx, res: rop.Convert(c.res, conv)}
}

// Finally collapses the chain into a value of another type.
func Finally[T, U, E any](c Chain[T, E], onSuccess func(context.Context, T) U, onFailure func(context.Context, E) U) U {
	return solo.Finally(c.ctx, c.res, onSuccess, onFailure)
}
