package core

import (
	"context"

	"github.com/ib-77/outcome/pkg/rop"
)

type optionsKey struct{}

// Options tune pipelines started with a context. Unset fields fall back to
// the default passed by the reader.
type Options struct {
	MaxWorkers rop.Option[int]
	Lines      rop.Option[int]

	// ProcessRemaining makes cancelled pipelines drain their input and emit a
	// Cancelled failure per unprocessed item instead of dropping it.
	ProcessRemaining rop.Option[bool]
}

// OptionsFrom returns the options set on ctx so far.
func OptionsFrom(ctx context.Context) Options {
	o, _ := ctx.Value(optionsKey{}).(Options)
	return o
}

func withOptions(ctx context.Context, set func(*Options)) context.Context {
	o := OptionsFrom(ctx)
	set(&o)
	return context.WithValue(ctx, optionsKey{}, o)
}

// WithProcessOptions layers on top of options already on ctx.
func WithProcessOptions(ctx context.Context, processRemaining bool) context.Context {
	return withOptions(ctx, func(o *Options) { o.ProcessRemaining = rop.Present(processRemaining) })
}

func WithWorkerOptions(ctx context.Context, maxWorkers int) context.Context {
	return withOptions(ctx, func(o *Options) { o.MaxWorkers = rop.Present(maxWorkers) })
}

func WithLines(ctx context.Context, lines int) context.Context {
	return withOptions(ctx, func(o *Options) { o.Lines = rop.Present(lines) })
}

func positive(n int) bool { return n > 0 }

// GetWorkerMaxCount returns the configured worker limit, or the default when
// none is set or the configured value is not positive.
func GetWorkerMaxCount(ctx context.Context, defaultMaxWorkers int) int {
	return OptionsFrom(ctx).MaxWorkers.Filter(positive).UnwrapOr(defaultMaxWorkers)
}

func GetLines(ctx context.Context, defaultLines int) int {
	return OptionsFrom(ctx).Lines.Filter(positive).UnwrapOr(defaultLines)
}

func IsProcessRemainingEnabled(ctx context.Context, defaultProcessRemaining bool) bool {
	return OptionsFrom(ctx).ProcessRemaining.UnwrapOr(defaultProcessRemaining)
}
