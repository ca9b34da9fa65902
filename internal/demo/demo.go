// Package demo holds the ropdemo scenarios. Each scenario walks both the
// success and the failure track of a part of the library, prints what it
// sees and checks it against the expected result.
package demo

import (
	"context"
	"fmt"
	"io"
	"slices"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/ib-77/outcome/pkg/rop"
	"github.com/ib-77/outcome/pkg/rop/scratch"
	"github.com/ib-77/outcome/pkg/rop/task"
)

// Env carries what scenarios need. Scenarios run one at a time.
type Env struct {
	Log *zap.Logger
	FS  *scratch.FS
	Out io.Writer

	Workers          int
	Lines            int
	ProcessRemaining bool

	errs error
}

func NewEnv(log *zap.Logger, fs *scratch.FS, out io.Writer) *Env {
	if log == nil {
		log = zap.NewNop()
	}
	if fs == nil {
		fs = scratch.Memory()
	}
	if out == nil {
		out = io.Discard
	}
	return &Env{
		Log:              log,
		FS:               fs,
		Out:              out,
		Lines:            1,
		ProcessRemaining: true,
	}
}

func (e *Env) show(label string, v any) {
	fmt.Fprintf(e.Out, "  %-40s %v\n", label, v)
}

func (e *Env) expect(ok bool, format string, args ...any) {
	if !ok {
		e.errs = multierr.Append(e.errs, fmt.Errorf(format, args...))
	}
}

type Scenario struct {
	Name    string
	Summary string
	run     func(ctx context.Context, env *Env)
}

var scenarios = []Scenario{
	{Name: "options", Summary: "presence and absence", run: runOptions},
	{Name: "outcomes", Summary: "success and failure of single steps", run: runOutcomes},
	{Name: "propagation", Summary: "short-circuiting chains", run: runPropagation},
	{Name: "conversion", Summary: "failures crossing domains", run: runConversion},
	{Name: "panics", Summary: "panics isolated per unit", run: runPanics},
	{Name: "files", Summary: "fallible filesystem steps", run: runFiles},
	{Name: "ownership", Summary: "views, borrows and moves", run: runOwnership},
	{Name: "pipeline", Summary: "concurrent channel pipeline", run: runPipeline},
}

func All() []Scenario {
	return slices.Clone(scenarios)
}

func Names() []string {
	names := make([]string, len(scenarios))
	for i, s := range scenarios {
		names[i] = s.Name
	}
	return names
}

func Lookup(name string) rop.Option[Scenario] {
	return rop.Find(scenarios, func(s Scenario) bool { return s.Name == name })
}

// Run runs the named scenarios in order, all of them when names is empty.
// It keeps going after a failed scenario and returns every failure.
func Run(ctx context.Context, env *Env, names ...string) error {
	if len(names) == 0 {
		names = Names()
	}

	var errs error
	for _, name := range names {
		if ctx.Err() != nil {
			return multierr.Append(errs, ctx.Err())
		}
		sc, ok := Lookup(name).Get()
		if !ok {
			errs = multierr.Append(errs, fmt.Errorf("unknown scenario %q", name))
			continue
		}
		errs = multierr.Append(errs, runOne(ctx, env, sc))
	}
	return errs
}

func runOne(ctx context.Context, env *Env, sc Scenario) error {
	fmt.Fprintf(env.Out, "== %s: %s\n", sc.Name, sc.Summary)
	env.errs = nil

	res := task.Catch(func() struct{} {
		sc.run(ctx, env)
		return struct{}{}
	})
	if res.IsFailure() {
		p := res.Reason()
		env.Log.Error("scenario panicked", zap.String("scenario", sc.Name), zap.Any("value", p.Value))
		return fmt.Errorf("scenario %s: %w", sc.Name, p)
	}
	if env.errs != nil {
		env.Log.Warn("scenario mismatch", zap.String("scenario", sc.Name), zap.Error(env.errs))
		return fmt.Errorf("scenario %s: %w", sc.Name, env.errs)
	}

	env.Log.Debug("scenario passed", zap.String("scenario", sc.Name))
	return nil
}
