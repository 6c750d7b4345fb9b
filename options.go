package mvndeps

import (
	"github.com/samber/lo"

	"github.com/go-mvndeps/mvndeps/coordinate"
	"github.com/go-mvndeps/mvndeps/policy"
	"github.com/go-mvndeps/mvndeps/version"
)

// Resolver describes one Maven repository the generated build rules fetch
// artifacts from.
type Resolver struct {
	ID   string
	Type string
	URL  string
}

// Options holds every model-wide setting, all of them optional: an unset
// scalar field is a nil pointer, an unset list field is a nil slice. The
// Policy, Directory and TransitivityMode accessors read an effective value,
// falling back to Default() for an unset field.
type Options struct {
	VersionConflictPolicy *policy.VersionConflictPolicy
	ThirdPartyDirectory   *policy.DirectoryName
	Languages             []coordinate.Language
	Resolvers             []Resolver
	Transitivity          *policy.Transitivity
	BuildHeader           []string
}

// Option configures an Options value under construction, the same
// functional-option shape used throughout this corpus for building
// configuration values distinct from the runtime combine algebra below.
type Option func(*Options)

// WithVersionConflictPolicy sets the version-conflict policy.
func WithVersionConflictPolicy(p policy.VersionConflictPolicy) Option {
	return func(o *Options) { o.VersionConflictPolicy = &p }
}

// WithThirdPartyDirectory sets the third-party directory.
func WithThirdPartyDirectory(d policy.DirectoryName) Option {
	return func(o *Options) { o.ThirdPartyDirectory = &d }
}

// WithLanguages sets the declared language set.
func WithLanguages(langs ...coordinate.Language) Option {
	return func(o *Options) { o.Languages = langs }
}

// WithResolvers sets the declared resolver list.
func WithResolvers(resolvers ...Resolver) Option {
	return func(o *Options) { o.Resolvers = resolvers }
}

// WithTransitivity sets the transitivity mode.
func WithTransitivity(tr policy.Transitivity) Option {
	return func(o *Options) { o.Transitivity = &tr }
}

// WithBuildHeader sets the build file header lines.
func WithBuildHeader(lines ...string) Option {
	return func(o *Options) { o.BuildHeader = lines }
}

// New builds an Options value from functional options, all fields unset
// unless an option sets them.
func New(opts ...Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// defaultScalaLang backs Default(); NewScala cannot
// fail for this literal, so the error is discarded.
var defaultScalaLang, _ = coordinate.NewScala(version.New("2.11.11"), true)

// Default returns the fully-populated Options every field falls back to
// when unset: policy Highest, directory "3rdparty/jvm", languages
// {Java, Scala(2.11.11, mangle=true)}, a single central resolver,
// transitivity Exports, and an empty build header.
func Default() Options {
	pol := policy.Highest
	dir := policy.DirectoryName("3rdparty/jvm")
	tr := policy.Exports
	return Options{
		VersionConflictPolicy: &pol,
		ThirdPartyDirectory:   &dir,
		Languages:             []coordinate.Language{coordinate.Java, defaultScalaLang},
		Resolvers: []Resolver{
			{ID: "central", Type: "default", URL: "http://central.maven.org/maven2/"},
		},
		Transitivity: &tr,
		BuildHeader:  nil,
	}
}

// Policy returns o's effective version-conflict policy, falling back to
// Default() when unset.
func (o Options) Policy() policy.VersionConflictPolicy {
	if o.VersionConflictPolicy != nil {
		return *o.VersionConflictPolicy
	}
	return *Default().VersionConflictPolicy
}

// Directory returns o's effective third-party directory, falling back to
// Default() when unset.
func (o Options) Directory() policy.DirectoryName {
	if o.ThirdPartyDirectory != nil {
		return *o.ThirdPartyDirectory
	}
	return *Default().ThirdPartyDirectory
}

// TransitivityMode returns o's effective transitivity, falling back to
// Default() when unset.
func (o Options) TransitivityMode() policy.Transitivity {
	if o.Transitivity != nil {
		return *o.Transitivity
	}
	return *Default().Transitivity
}

func combinePolicy(a, b *policy.VersionConflictPolicy) *policy.VersionConflictPolicy {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	default:
		p := policy.Combine(*a, *b)
		return &p
	}
}

func combineDirectory(a, b *policy.DirectoryName) *policy.DirectoryName {
	if b != nil {
		return b
	}
	return a
}

func combineTransitivity(a, b *policy.Transitivity) *policy.Transitivity {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	default:
		t := policy.CombineTransitivity(*a, *b)
		return &t
	}
}

func dedupLanguages(langs []coordinate.Language) []coordinate.Language {
	seen := make(map[string]bool, len(langs))
	out := make([]coordinate.Language, 0, len(langs))
	for _, l := range langs {
		k := l.SignatureKey()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, l)
	}
	return out
}

// CombineOptions implements the field-wise monoid combine over two Options
// values: stricter-wins for the policy, right-wins for the directory, the
// transitivity monoid, and concat-then-dedup-preserving-first-occurrence
// for languages, resolvers, and the build header.
func CombineOptions(a, b Options) Options {
	return Options{
		VersionConflictPolicy: combinePolicy(a.VersionConflictPolicy, b.VersionConflictPolicy),
		ThirdPartyDirectory:   combineDirectory(a.ThirdPartyDirectory, b.ThirdPartyDirectory),
		Languages:             dedupLanguages(append(append([]coordinate.Language{}, a.Languages...), b.Languages...)),
		Resolvers:             lo.Uniq(append(append([]Resolver{}, a.Resolvers...), b.Resolvers...)),
		Transitivity:          combineTransitivity(a.Transitivity, b.Transitivity),
		BuildHeader:           lo.Uniq(append(append([]string{}, a.BuildHeader...), b.BuildHeader...)),
	}
}
