package demo

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/ib-77/outcome/internal/calc"
	"github.com/ib-77/outcome/internal/numfile"
	"github.com/ib-77/outcome/internal/registration"
	"github.com/ib-77/outcome/pkg/rop"
	"github.com/ib-77/outcome/pkg/rop/chain"
	"github.com/ib-77/outcome/pkg/rop/core"
	"github.com/ib-77/outcome/pkg/rop/fault"
	"github.com/ib-77/outcome/pkg/rop/flow"
	"github.com/ib-77/outcome/pkg/rop/own"
	"github.com/ib-77/outcome/pkg/rop/solo"
	"github.com/ib-77/outcome/pkg/rop/task"
)

func failedWith[T any](r rop.Outcome[T, *fault.Fault], kind fault.Kind) bool {
	return r.IsFailure() && r.Reason().Kind == kind
}

func runOptions(_ context.Context, env *Env) {
	ports := map[string]int{"http": 80, "https": 443}

	http := rop.Lookup(ports, "http")
	env.show(`Lookup(ports, "http")`, http)
	env.expect(http.UnwrapOr(0) == 80, "http port: got %v", http)

	ftp := rop.Lookup(ports, "ftp")
	env.show(`Lookup(ports, "ftp")`, ftp)
	env.show(`  .UnwrapOr(21)`, ftp.UnwrapOr(21))
	env.expect(ftp.IsAbsent(), "ftp port: got %v", ftp)

	nums := []int{1, 2, 3}
	big := rop.Find(nums, func(n int) bool { return n > 5 })
	env.show("Find([1 2 3], n > 5)", big)
	env.expect(big.IsAbsent(), "find > 5: got %v", big)

	small := rop.Find(nums, func(n int) bool { return n > 1 })
	env.show("Find([1 2 3], n > 1)", small)
	env.expect(small.UnwrapOr(0) == 2, "find > 1: got %v", small)

	found := rop.MatchOption(small,
		func(n int) string { return "found " + strconv.Itoa(n) },
		func() string { return "nothing" })
	env.show("MatchOption", found)

	word := calc.FirstWordLength(rop.Present("hello world"))
	blank := calc.FirstWordLength(rop.Present("   "))
	env.show(`FirstWordLength("hello world")`, word)
	env.show(`FirstWordLength("   ")`, blank)
	env.expect(word.UnwrapOr(0) == 5, "first word: got %v", word)
	env.expect(blank.IsAbsent(), "blank word: got %v", blank)

	for _, cfg := range []rop.Option[string]{
		rop.Present("timeout=30"),
		rop.Present("timeout"),
		rop.Present("timeout=soon"),
		rop.Absent[string](),
	} {
		n := calc.ExtractNumber(cfg)
		env.show(fmt.Sprintf("ExtractNumber(%v)", cfg), n)
		if v, ok := cfg.Get(); ok && v == "timeout=30" {
			env.expect(n.UnwrapOr(0) == 30, "timeout: got %v", n)
		} else {
			env.expect(n.IsAbsent(), "extract %v: got %v", cfg, n)
		}
	}

	env.show("Somes(http, ftp, small)", rop.Somes(http, ftp, small))

	counts := calc.LetterCounts("Hello, World!")
	env.show(`LetterCounts("Hello, World!")['l']`, rop.Lookup(counts, 'l'))
	env.expect(counts['l'] == 3 && counts['o'] == 2, "letter counts: got %v", counts)

	builds := 0
	cache := map[string]int{}
	for range 2 {
		rop.OrInsertWith(cache, "answer", func() int {
			builds++
			return 42
		})
	}
	env.show("OrInsertWith builds", builds)
	env.expect(builds == 1 && cache["answer"] == 42, "or insert with: %d builds, %v", builds, cache)

	for _, in := range []rop.Option[string]{rop.Present("12"), rop.Absent[string](), rop.Present("twelve")} {
		r := calc.ParseOptionalInt(in)
		env.show(fmt.Sprintf("ParseOptionalInt(%v)", in), r)
		if v, ok := in.Get(); ok && v == "twelve" {
			env.expect(failedWith(r, fault.InvalidFormat), "optional twelve: got %v", r)
		} else {
			env.expect(r.IsSuccess() && rop.TransposeOutcome(r).IsPresent() == in.IsPresent(),
				"optional %v: got %v", in, r)
		}
	}
}

func runOutcomes(_ context.Context, env *Env) {
	parsed := calc.ParseInt("42")
	env.show(`ParseInt("42")`, parsed)
	env.expect(parsed.UnwrapOr(0) == 42, "parse 42: got %v", parsed)

	bad := calc.ParseInt("abc")
	env.show(`ParseInt("abc")`, bad)
	env.expect(failedWith(bad, fault.InvalidFormat), "parse abc: got %v", bad)

	huge := calc.ParseInt("99999999999999999999")
	env.show(`ParseInt("999...")`, huge)
	env.expect(failedWith(huge, fault.Overflow), "parse huge: got %v", huge)

	half := calc.SafeDivide(10, 2)
	byZero := calc.SafeDivide(10, 0)
	env.show("SafeDivide(10, 2)", half)
	env.show("SafeDivide(10, 0)", byZero)
	env.expect(half.UnwrapOr(0) == 5, "10/2: got %v", half)
	env.expect(failedWith(byZero, fault.DivisionByZero), "10/0: got %v", byZero)

	root := calc.SafeSqrt(-4)
	env.show("SafeSqrt(-4)", root)
	env.expect(failedWith(root, fault.NegativeRoot), "sqrt(-4): got %v", root)

	f20 := calc.Factorial(20)
	f21 := calc.Factorial(21)
	env.show("Factorial(20)", f20)
	env.show("Factorial(21)", f21)
	env.expect(f20.UnwrapOr(0) == 2432902008176640000, "20!: got %v", f20)
	env.expect(failedWith(f21, fault.Overflow), "21!: got %v", f21)

	wrapped := rop.CheckedAdd[uint8](255, 1)
	fits := rop.CheckedAdd[int8](100, 27)
	env.show("CheckedAdd[uint8](255, 1)", wrapped)
	env.show("CheckedAdd[int8](100, 27)", fits)
	env.expect(wrapped.IsAbsent(), "255+1: got %v", wrapped)
	env.expect(fits.UnwrapOr(0) == 127, "100+27: got %v", fits)

	inputs := []string{"5", "", "0", "150", "x", "50"}
	processed := make([]rop.Outcome[int, *fault.Fault], len(inputs))
	for i, in := range inputs {
		processed[i] = calc.ProcessUserInput(in)
		env.show(fmt.Sprintf("ProcessUserInput(%q)", in), processed[i])
	}
	values, failures := rop.Partition(processed)
	env.show("  succeeded", values)
	env.show("  failed", len(failures))
	env.expect(slices.Equal(values, []int{10, 100}), "processed values: got %v", values)
	env.expect(len(failures) == 4, "processed failures: got %d", len(failures))

	all := rop.Collect(processed)
	env.show("Collect", all)
	env.expect(all.IsFailure(), "collect should stop at the first failure")
}

func runPropagation(ctx context.Context, env *Env) {
	ok := calc.Calculate("8", "10")
	env.show(`Calculate("8", "10")`, ok)
	env.expect(ok.UnwrapOr(0) == 3, "calculate: got %v", ok)

	for _, args := range [][2]string{{"x", "10"}, {"8", "-1"}} {
		r := calc.Calculate(args[0], args[1])
		env.show(fmt.Sprintf("Calculate(%q, %q)", args[0], args[1]), r)
		env.expect(failedWith(r, fault.InvalidInput), "calculate %v: got %v", args, r)
	}

	cc := calc.ComplexCalculation([]string{"100", "4"})
	env.show(`ComplexCalculation(["100" "4"])`, cc)
	env.expect(cc.UnwrapOr(0) == 5, "complex: got %v", cc)

	short := calc.ComplexCalculation([]string{"1"})
	env.show(`ComplexCalculation(["1"])`, short)
	env.expect(failedWith(short, fault.InvalidInput), "complex short: got %v", short)

	steps := 0
	doubled := chain.Map(
		chain.Then(chain.FromValue[string, *fault.Fault](ctx, "21"),
			func(_ context.Context, s string) rop.Outcome[int, *fault.Fault] { return calc.ParseInt(s) }),
		func(_ context.Context, n int) int { return n * 2 }).
		Validate(func(_ context.Context, n int) (bool, *fault.Fault) {
			return n < 100, fault.New(fault.Validation, "too large")
		}).
		Ensure(func(context.Context, int) { steps++ }, func(context.Context, *fault.Fault) { steps-- }).
		Result()
	env.show(`chain "21" -> int -> *2 -> < 100`, doubled)
	env.expect(doubled.UnwrapOr(0) == 42 && steps == 1, "chain: got %v", doubled)

	grown := chain.FromValue[int, *fault.Fault](ctx, 3).
		RepeatUntil(func(_ context.Context, n int) rop.Outcome[int, *fault.Fault] { return fault.Ok(n * 2) },
			func(_ context.Context, n int) bool { return n >= 100 }).
		Result()
	env.show("chain 3 doubled until >= 100", grown)
	env.expect(grown.UnwrapOr(0) == 192, "repeat: got %v", grown)

	rejected := chain.Then(chain.FromValue[string, *fault.Fault](ctx, "abc"),
		func(_ context.Context, s string) rop.Outcome[int, *fault.Fault] { return calc.ParseInt(s) }).
		Or(chain.FromValue[int, *fault.Fault](ctx, -1)).
		Result()
	env.show(`chain "abc" or -1`, rejected)
	env.expect(rejected.UnwrapOr(0) == -1, "or: got %v", rejected)

	rule := func(ok func(string) bool, msg string) func(context.Context, rop.Outcome[string, *fault.Fault]) rop.Outcome[string, *fault.Fault] {
		return func(ctx context.Context, in rop.Outcome[string, *fault.Fault]) rop.Outcome[string, *fault.Fault] {
			return solo.AndValidate(ctx, in, func(_ context.Context, s string) (bool, *fault.Fault) {
				return ok(s), fault.New(fault.Validation, msg)
			})
		}
	}
	merge := func(acc, next *fault.Fault) *fault.Fault {
		return fault.New(fault.Validation, acc.Msg+"; "+next.Msg)
	}
	rules := []func(context.Context, rop.Outcome[string, *fault.Fault]) rop.Outcome[string, *fault.Fault]{
		rule(func(s string) bool { return len(s) >= 8 }, "at least 8 characters"),
		rule(func(s string) bool { return strings.ContainsAny(s, "0123456789") }, "needs a digit"),
		rule(func(s string) bool { return strings.ToLower(s) != s }, "needs an upper case letter"),
	}
	for _, pw := range []string{"Secret123", "abc"} {
		r := solo.ValidateAll(ctx, fault.Ok(pw), false, merge, rules...)
		env.show(fmt.Sprintf("ValidateAll(%q)", pw), r)
		if pw == "abc" {
			env.expect(r.IsFailure() && strings.Count(r.Reason().Msg, ";") == 2, "validate abc: got %v", r)
		} else {
			env.expect(r.IsSuccess(), "validate %s: got %v", pw, r)
		}
	}
}

func runConversion(_ context.Context, env *Env) {
	store := registration.NewStore()
	forms := []struct {
		name, age, email string
		fails            bool
		kind             registration.Kind
	}{
		{name: "Alice", age: "30", email: "alice@example.com"},
		{name: "", age: "30", email: "x@example.com", fails: true, kind: registration.InvalidName},
		{name: "Bob", age: "12", email: "bob@example.com", fails: true, kind: registration.InvalidAge},
		{name: "Bob", age: "twelve", email: "bob@example.com", fails: true, kind: registration.InvalidAge},
		{name: "Carol", age: "25", email: "carol", fails: true, kind: registration.InvalidEmail},
		{name: "Dan", age: "40", email: registration.RejectedEmail, fails: true, kind: registration.Database},
		{name: "Eve", age: "22", email: "ALICE@example.com", fails: true, kind: registration.Database},
	}
	for _, f := range forms {
		r := registration.Register(store, f.name, f.age, f.email)
		env.show(fmt.Sprintf("Register(%q, %q, %q)", f.name, f.age, f.email), r)
		if f.fails {
			env.expect(r.IsFailure() && r.Reason().Kind == f.kind, "register %s: got %v", f.email, r)
		} else {
			env.expect(r.IsSuccess(), "register %s: got %v", f.email, r)
		}
	}

	first := store.Get(1)
	env.show("Get(1)", first)
	env.expect(first.IsSuccess(), "get 1: got %v", first)

	missing := store.Get(99)
	env.show("Get(99)", missing)
	env.expect(failedWith(missing, fault.NotFound), "get 99: got %v", missing)

	store.Restrict(1)
	hidden := store.Get(1)
	env.show("Get(1) after Restrict", hidden)
	env.expect(failedWith(hidden, fault.PermissionDenied), "restricted: got %v", hidden)
	env.show("Lookup(1) after Restrict", store.Lookup(1))

	asErr := rop.Lift(calc.ParseInt, func(f *fault.Fault) error { return f })
	lifted := asErr("x1")
	env.show(`Lift(ParseInt)("x1")`, lifted)
	env.expect(errors.Is(lifted.Err(), fault.ErrInvalidFormat), "lifted: got %v", lifted)
}

func runPanics(ctx context.Context, env *Env) {
	g := task.NewGroup(ctx, task.WithLogger(env.Log), task.WithLimit(env.Workers))
	handles := make([]*task.Handle[int], 3)
	for i := range handles {
		handles[i] = task.Spawn(g, "unit-"+strconv.Itoa(i), func(context.Context) int {
			if i == 1 {
				panic("unit 1 gave up")
			}
			return i * 10
		})
	}
	for i, h := range handles {
		r := h.Join()
		env.show("Join "+h.Name(), r)
		env.expect(r.IsFailure() == (i == 1), "join %s: got %v", h.Name(), r)
	}
	waited := g.Wait()
	env.show("Wait", waited)
	env.expect(waited != nil, "wait should report the panic")

	quotients := task.Map(ctx, []int{1, 0, 4}, func(_ context.Context, n int) int { return 100 / n },
		task.WithLogger(env.Log))
	for i, q := range quotients {
		env.show(fmt.Sprintf("Map 100 / item %d", i), q)
	}
	succeeded, failed := rop.Count(quotients...)
	env.expect(succeeded == 2 && failed == 1, "map: %d succeeded, %d failed", succeeded, failed)

	g2 := task.NewGroup(ctx, task.WithLogger(env.Log))
	div := task.SpawnOutcome(g2, "divide", func(context.Context) rop.Outcome[int, *fault.Fault] {
		return calc.SafeDivide(1, 0)
	})
	boom := task.SpawnOutcome(g2, "boom", func(context.Context) rop.Outcome[int, *fault.Fault] {
		var m map[string]int
		m["x"] = 1
		return fault.Ok(1)
	})
	settledDiv := task.Settle(div.Join(), task.AsFault)
	settledBoom := task.Settle(boom.Join(), task.AsFault)
	env.show("Settle divide", settledDiv)
	env.show("Settle boom", settledBoom)
	env.expect(failedWith(settledDiv, fault.DivisionByZero), "divide: got %v", settledDiv)
	env.expect(failedWith(settledBoom, fault.Panicked), "boom: got %v", settledBoom)
	_ = g2.Wait()

	caught := task.Catch(func() int { return calc.SafeDivide(1, 0).Unwrap() })
	env.show("Catch Unwrap of a failure", caught)
	var ue *rop.UnwrapError
	env.expect(caught.IsFailure() && errors.As(caught.Reason(), &ue), "catch: got %v", caught)
}

func runFiles(_ context.Context, env *Env) {
	files := map[string]string{
		"good.txt":  "  42\n",
		"bad.txt":   "forty-two",
		"empty.txt": "   ",
		"big.txt":   "2000000",
	}
	names := slices.Sorted(maps.Keys(files))
	for _, name := range names {
		w := env.FS.Write(name, files[name])
		env.expect(w.IsSuccess(), "write %s: got %v", name, w)
	}

	want := map[string]rop.Outcome[int, numfile.Kind]{
		"good.txt":    rop.Success[int, numfile.Kind](42),
		"bad.txt":     rop.Failure[int](numfile.Parse),
		"empty.txt":   rop.Failure[int](numfile.Validation),
		"big.txt":     rop.Failure[int](numfile.Validation),
		"missing.txt": rop.Failure[int](numfile.IO),
	}
	for _, name := range append(names, "missing.txt") {
		r := numfile.ReadAndParse(env.FS, name)
		env.show(fmt.Sprintf("ReadAndParse(%q)", name), r)
		got := rop.MapError(r, func(e *numfile.FileError) numfile.Kind { return e.Kind })
		env.expect(got == want[name], "read %s: got %v", name, r)
	}

	sum := numfile.Sum(env.FS, "good.txt", "good.txt")
	env.show("Sum(good, good)", sum)
	env.expect(sum.UnwrapOr(0) == 84, "sum: got %v", sum)

	all := numfile.ReadAll(env.FS, "good.txt", "bad.txt", "missing.txt")
	env.show("ReadAll(good, bad, missing)", all)
	env.expect(all.IsFailure() && all.Reason().Path == "bad.txt", "read all: got %v", all)

	tmp := env.FS.TempName("demo")
	env.expect(env.FS.Write(tmp, "1").IsSuccess(), "write temp")
	exists := env.FS.Exists(tmp)
	env.show("Exists(temp)", exists)
	env.expect(exists.UnwrapOr(false), "temp exists: got %v", exists)

	left := env.FS.Cleanup(append(names, tmp, "missing.txt")...)
	env.show("Cleanup left", left)
	env.expect(len(left) == 0, "cleanup left %v", left)
}

func runOwnership(_ context.Context, env *Env) {
	v := own.From(3, 1, 2)

	view := v.ViewAll()
	env.expect(view.IsSuccess(), "view: got %v", view)
	w := view.Value()
	env.show("view.Items()", w.Items())

	v.Push(4)
	stale := task.Catch(func() []int { return w.Items() })
	env.show("view.Items() after Push", stale)
	env.expect(stale.IsFailure() && errors.Is(stale.Reason(), own.ErrStaleView), "stale view: got %v", stale)

	w2 := v.ViewAll().Value()
	conflict := v.BorrowMut()
	env.show("BorrowMut() with a live view", conflict)
	env.expect(failedWith(conflict, fault.AliasConflict), "borrow with view: got %v", conflict)

	w2.Release()
	m := v.BorrowMut()
	env.show("BorrowMut() after Release", m.IsSuccess())
	if mut, ok := m.Get(); ok {
		mut.Push(5)
		blocked := task.Catch(func() int { return v.Len() })
		env.show("Len() while borrowed", blocked)
		env.expect(blocked.IsFailure() && errors.Is(blocked.Reason(), own.ErrBorrowed), "owner read: got %v", blocked)
		mut.Release()
	} else {
		env.expect(false, "borrow after release: got %v", m)
	}

	v.Sort(cmp.Compare[int])
	env.show("Sort", v.Items())
	pos := v.BinarySearch(4, cmp.Compare[int])
	env.show("BinarySearch(4)", pos)
	env.expect(pos.UnwrapOr(-1) == 3, "search: got %v", pos)

	bad := v.View(2, 9)
	env.show("View(2, 9)", bad)
	env.expect(failedWith(bad, fault.InvalidInput), "bad range: got %v", bad)

	moved := v.Move()
	env.show("moved.Items()", moved.Items())
	gone := task.Catch(func() int { return v.Len() })
	env.show("Len() after Move", gone)
	env.expect(gone.IsFailure() && errors.Is(gone.Reason(), own.ErrMoved), "moved: got %v", gone)
	env.expect(moved.Len() == 5, "moved len: got %d", moved.Len())
}

func runPipeline(ctx context.Context, env *Env) {
	pctx := core.WithLines(core.WithWorkerOptions(core.WithProcessOptions(ctx, env.ProcessRemaining), env.Workers), env.Lines)
	cancelled := func(ctx context.Context) *fault.Fault {
		return fault.Wrap(fault.Cancelled, ctx.Err(), "pipeline stopped")
	}
	engine := flow.Guard(flow.Switch(func(_ context.Context, s string) rop.Outcome[int, *fault.Fault] {
		if s == "boom" {
			panic("cannot process " + s)
		}
		return calc.ProcessUserInput(s)
	}), task.AsFault)

	inputs := []string{"5", "17", "", "0", "150", "x", "boom", "42"}
	in := core.ToChanManyOutcomes[string, *fault.Fault](pctx, inputs)
	out := flow.TurnoutWith(pctx, in, engine, flow.CancelRemaining[string, int](cancelled), nil, core.GetLines(pctx, 1))
	results := flow.Collect(out)

	values, failures := rop.Partition(results)
	slices.Sort(values)
	env.show("outputs", len(results))
	env.show("values", values)
	for _, f := range failures {
		env.show("  failure", f)
	}
	env.expect(len(results) == len(inputs), "pipeline lost items: %d of %d", len(results), len(inputs))
	env.expect(slices.Equal(values, []int{10, 34, 84}), "pipeline values: got %v", values)
	env.expect(slices.ContainsFunc(failures, func(f *fault.Fault) bool { return f.Kind == fault.Panicked }),
		"pipeline panic not isolated")

	stopped, cancel := context.WithCancel(pctx)
	cancel()
	skipped := make(chan int, 1)
	in = core.ToChanManyOutcomesWithHandlers[string, *fault.Fault](stopped, core.ToChanHandlers[string]{
		OnStartFail: func(_ context.Context, rest []string) { skipped <- len(rest) },
	}, inputs)
	out = flow.TurnoutWith(stopped, in, engine, flow.CancelRemaining[string, int](cancelled), nil, core.GetLines(pctx, 1))
	late := flow.Collect(out)
	n := <-skipped
	env.show("cancelled before start: outputs", len(late))
	env.show("cancelled before start: never sent", n)
	env.expect(len(late) == 0 && n == len(inputs), "cancelled pipeline: %d outputs, %d skipped", len(late), n)
}
