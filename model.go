package mvndeps

import (
	"log/slog"

	"github.com/go-mvndeps/mvndeps/dependencies"
	"github.com/go-mvndeps/mvndeps/replacement"
	"github.com/go-mvndeps/mvndeps/validated"
)

// Model is the top-level value this engine merges: a Dependencies map, an
// optional Replacements override map, and an Options settings value (whose
// own fields are each independently optional).
type Model struct {
	Dependencies dependencies.Dependencies
	Replacements *replacement.Replacements
	Options      Options
}

// combineConfig holds the settings a CombineOption can adjust. Its zero
// value (nil logger) leaves Combine and CombineAll silent.
type combineConfig struct {
	logger *slog.Logger
}

// CombineOption configures a single Combine or CombineAll call.
type CombineOption func(*combineConfig)

// WithLogger makes Combine and CombineAll emit structured records at their
// flatten, per-artifact-merge, and policy-resolution decision points
// through l. A nil logger (the default) keeps the call silent; this is an
// explicit, per-call parameter rather than shared state, so concurrent
// callers never race on it.
func WithLogger(l *slog.Logger) CombineOption {
	return func(c *combineConfig) { c.logger = l }
}

func newCombineConfig(opts []CombineOption) combineConfig {
	var c combineConfig
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Combine merges a and b: field-wise combine their Options, use the
// resulting policy to combine their Dependencies, combine their
// Replacements (identity if one side is absent), and accumulate every error
// from both of those independent sub-combines rather than short-circuit on
// the first.
func Combine(a, b Model, opts ...CombineOption) validated.Result[Model] {
	cfg := newCombineConfig(opts)
	mergedOptions := CombineOptions(a.Options, b.Options)
	pol := mergedOptions.Policy()

	depsResult := dependencies.Combine(pol, a.Dependencies, b.Dependencies, dependencies.WithLogger(cfg.logger))
	replResult := replacement.CombineOptional(a.Replacements, b.Replacements)

	var acc validated.Accumulator
	acc.AddAll(depsResult.Errs())
	acc.AddAll(replResult.Errs())
	if acc.Failed() {
		return validated.Errors[Model](acc.Errs()...)
	}

	deps, _ := depsResult.Value()
	repl, _ := replResult.Value()
	return validated.Of(Model{
		Dependencies: deps,
		Replacements: repl,
		Options:      mergedOptions,
	})
}

// CombineAll left-folds Combine over a non-empty sequence of models: the
// running value is carried forward pairwise, and the first pairwise
// combine that fails aborts the fold immediately (though each individual
// pairwise combine still accumulates every error from both its branches).
// CombineAll panics if models is empty — callers always have at least the
// model being merged into.
func CombineAll(models []Model, opts ...CombineOption) validated.Result[Model] {
	if len(models) == 0 {
		panic("mvndeps: CombineAll called with no models")
	}
	acc := models[0]
	for _, m := range models[1:] {
		res := Combine(acc, m, opts...)
		v, ok := res.Value()
		if !ok {
			return res
		}
		acc = v
	}
	return validated.Of(acc)
}
