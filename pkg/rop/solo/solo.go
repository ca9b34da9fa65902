package solo

import (
	"context"

	"github.com/ib-77/outcome/pkg/rop"
)

func Succeed[T, E any](input T) rop.Outcome[T, E] {
	return rop.Success[T, E](input)
}

func Fail[T, E any](failure E) rop.Outcome[T, E] {
	return rop.Failure[T](failure)
}

func Validate[T, E any](ctx context.Context, input T,
	validate func(ctx context.Context, in T) (valid bool, failure E)) rop.Outcome[T, E] {
	return AndValidate(ctx, Succeed[T, E](input), validate)
}

func AndValidate[T, E any](ctx context.Context, input rop.Outcome[T, E],
	validate func(ctx context.Context, in T) (valid bool, failure E)) rop.Outcome[T, E] {

	if input.IsSuccess() {
		if valid, failure := validate(ctx, input.Value()); !valid {
			return rop.Failure[T](failure)
		}
	}
	return input
}

// ValidateAll runs every validator on input in order and returns input when
// all pass. With breakOnError the first failure is returned as is; otherwise
// failures are folded with merge (a nil merge keeps the first one).
func ValidateAll[T, E any](
	ctx context.Context,
	input rop.Outcome[T, E],
	breakOnError bool, // exit on first error
	merge func(acc, next E) E,
	inputsF ...func(ctx context.Context, in rop.Outcome[T, E]) rop.Outcome[T, E]) rop.Outcome[T, E] {

	if input.IsFailure() || ctx.Err() != nil {
		return input
	}

	acc := rop.Absent[E]()
	for _, validate := range inputsF {
		if ctx.Err() != nil {
			break
		}
		res := validate(ctx, input)
		if res.IsSuccess() {
			continue
		}
		if prev, ok := acc.Get(); !ok {
			acc = rop.Present(res.Reason())
		} else if merge != nil {
			acc = rop.Present(merge(prev, res.Reason()))
		}
		if breakOnError {
			break
		}
	}

	if failure, ok := acc.Get(); ok {
		return rop.Failure[T](failure)
	}
	return input
}

func Switch[In, Out, E any](ctx context.Context,
	input rop.Outcome[In, E],
	onSuccess func(ctx context.Context, r In) rop.Outcome[Out, E]) rop.Outcome[Out, E] {

	if input.IsSuccess() {
		return onSuccess(ctx, input.Value())
	}
	return rop.Failure[Out](input.Reason())
}

func Map[In, Out, E any](ctx context.Context,
	input rop.Outcome[In, E],
	onSuccess func(ctx context.Context, r In) Out) rop.Outcome[Out, E] {

	if input.IsSuccess() {
		return rop.Success[Out, E](onSuccess(ctx, input.Value()))
	}
	return rop.Failure[Out](input.Reason())
}

func Tee[T, E any](ctx context.Context,
	input rop.Outcome[T, E],
	onSuccess func(ctx context.Context, r rop.Outcome[T, E])) rop.Outcome[T, E] {

	if input.IsSuccess() {
		onSuccess(ctx, input)
	}

	return input
}

func TeeIf[T, E any](ctx context.Context,
	input rop.Outcome[T, E],
	condition func(ctx context.Context, r rop.Outcome[T, E]) bool,
	onSuccessAndCondition func(ctx context.Context, r rop.Outcome[T, E])) rop.Outcome[T, E] {

	if input.IsSuccess() {
		if condition(ctx, input) {
			onSuccessAndCondition(ctx, input)
		}
	}

	return input
}

func DoubleTee[T, E any](ctx context.Context, input rop.Outcome[T, E],
	onSuccess func(ctx context.Context, r T),
	onFailure func(ctx context.Context, failure E)) rop.Outcome[T, E] {

	if input.IsSuccess() {
		if onSuccess != nil {
			onSuccess(ctx, input.Value())
		}
	} else if onFailure != nil {
		onFailure(ctx, input.Reason())
	}

	return input
}

// DoubleMap maps both tracks at once.
func DoubleMap[In, Out, E, F any](ctx context.Context, input rop.Outcome[In, E],
	onSuccess func(ctx context.Context, r In) Out,
	onFailure func(ctx context.Context, failure E) F) rop.Outcome[Out, F] {

	if input.IsSuccess() {
		return rop.Success[Out, F](onSuccess(ctx, input.Value()))
	}
	return rop.Failure[Out](onFailure(ctx, input.Reason()))
}

// Try calls a function following the (Out, error) convention and classifies
// a non-nil error into the failure domain.
func Try[In, Out, E any](ctx context.Context, input rop.Outcome[In, E],
	onTryExecute func(ctx context.Context, r In) (Out, error),
	classify func(err error) E) rop.Outcome[Out, E] {

	if input.IsSuccess() {
		out, err := onTryExecute(ctx, input.Value())
		if err != nil {
			return rop.Failure[Out](classify(err))
		}
		return rop.Success[Out, E](out)
	}

	return rop.Failure[Out](input.Reason())
}

func FailOnError[T, E any](ctx context.Context, input rop.Outcome[T, E],
	maybeErr func(ctx context.Context, in T) error,
	classify func(err error) E) rop.Outcome[T, E] {

	if input.IsSuccess() {
		if err := maybeErr(ctx, input.Value()); err != nil {
			return rop.Failure[T](classify(err))
		}
	}
	return input
}

// Recover hands a failure to onFailure, which may put it back on the
// success track.
func Recover[T, E any](ctx context.Context, input rop.Outcome[T, E],
	onFailure func(ctx context.Context, failure E) rop.Outcome[T, E]) rop.Outcome[T, E] {

	if input.IsFailure() {
		return onFailure(ctx, input.Reason())
	}
	return input
}

func Finally[In, Out, E any](ctx context.Context, input rop.Outcome[In, E],
	onSuccess func(ctx context.Context, r In) Out,
	onFailure func(ctx context.Context, failure E) Out) Out {

	if input.IsSuccess() {
		return onSuccess(ctx, input.Value())
	}
	return onFailure(ctx, input.Reason())
}

// Join threads input through inputsF, folding each step with concat. A done
// context stops the fold and returns what has been computed so far.
func Join[T, E any](ctx context.Context,
	input rop.Outcome[T, E],
	breakOnError bool, // exit on first error
	concat func(ctx context.Context, current rop.Outcome[T, E]) rop.Outcome[T, E],
	inputsF ...func(ctx context.Context, in rop.Outcome[T, E]) rop.Outcome[T, E]) rop.Outcome[T, E] {

	if len(inputsF) == 0 || concat == nil || ctx.Err() != nil {
		return input
	}

	finalResult := concat(ctx, inputsF[0](ctx, input))

	if ctx.Err() != nil {
		return finalResult
	}

	if finalResult.IsSuccess() || !breakOnError {
		for _, in := range inputsF[1:] {
			if ctx.Err() != nil {
				return finalResult
			}

			nextRes := concat(ctx, in(ctx, finalResult))
			if nextRes.IsFailure() && breakOnError {
				return nextRes
			}
			finalResult = nextRes
		}
	}
	return finalResult
}
