// Package dependencies implements Dependencies, the merge engine's central
// value: a group -> artifact -> project.Record map, the policy-driven
// combine algorithm that fuses two such maps, and the queries the rest of
// the system (export resolution, exclude resolution, canonical rendering)
// runs against it.
//
// The derived coordinate indices (coordToProj, unversionedToProj) are kept
// as emirpasic/gods treemaps rather than native maps: their keys are value
// types (MavenCoordinate, UnversionedCoordinate) and the roots/
// unversionedRoots queries want deterministic, sorted iteration without a
// separate sort step at every call site.
package dependencies

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/emirpasic/gods/maps/treemap"

	"github.com/go-mvndeps/mvndeps/coordinate"
	"github.com/go-mvndeps/mvndeps/policy"
	"github.com/go-mvndeps/mvndeps/project"
	"github.com/go-mvndeps/mvndeps/replacement"
	"github.com/go-mvndeps/mvndeps/validated"
	"github.com/go-mvndeps/mvndeps/version"
)

// combineConfig holds the settings an Option can adjust. Its zero value
// (nil logger) leaves Combine silent.
type combineConfig struct {
	logger *slog.Logger
}

// Option configures a single Combine call.
type Option func(*combineConfig)

// WithLogger makes Combine emit Debug records at its flatten,
// per-artifact-merge, and policy-resolution decision points, and Warn
// records when a version conflict is resolved by discarding a candidate,
// through l. A nil logger (the default) keeps Combine silent.
func WithLogger(l *slog.Logger) Option {
	return func(c *combineConfig) { c.logger = l }
}

func logDebug(logger *slog.Logger, msg string, args ...any) {
	if logger != nil {
		logger.Debug(msg, args...)
	}
}

func logWarn(logger *slog.Logger, msg string, args ...any) {
	if logger != nil {
		logger.Warn(msg, args...)
	}
}

type recordMap = map[coordinate.MavenGroup]map[coordinate.ArtifactOrProject]project.Record

// Dependencies is an immutable group -> artifact -> project.Record map. A
// value returned by Combine is in flat form: records with Modules set have
// been expanded into one module-free record per subproject. A value built
// by FromMap holds its records as declared, Modules included.
type Dependencies struct {
	records recordMap
}

// New returns an empty Dependencies value.
func New() Dependencies {
	return Dependencies{records: recordMap{}}
}

// FromMap wraps an already-built group/artifact map, as produced by the
// upstream parser. It is NOT pre-flattened; Combine flattens its inputs
// before merging.
func FromMap(m recordMap) Dependencies {
	if m == nil {
		m = recordMap{}
	}
	return Dependencies{records: m}
}

// Get returns the declared record for (g, a), if any.
func (d Dependencies) Get(g coordinate.MavenGroup, a coordinate.ArtifactOrProject) (project.Record, bool) {
	arts, ok := d.records[g]
	if !ok {
		return project.Record{}, false
	}
	r, ok := arts[a]
	return r, ok
}

// Groups returns the declared group keys, sorted.
func (d Dependencies) Groups() []coordinate.MavenGroup {
	out := make([]coordinate.MavenGroup, 0, len(d.records))
	for g := range d.records {
		out = append(out, g)
	}
	sortStrings(out)
	return out
}

// Artifacts returns the declared artifact keys under g, sorted.
func (d Dependencies) Artifacts(g coordinate.MavenGroup) []coordinate.ArtifactOrProject {
	arts := d.records[g]
	out := make([]coordinate.ArtifactOrProject, 0, len(arts))
	for a := range arts {
		out = append(out, a)
	}
	sortStrings(out)
	return out
}

func sortStrings[T ~string](s []T) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j] < s[j-1]; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

// flatten expands every record whose Modules set is populated into one
// module-free record per declared subproject.
func (d Dependencies) flatten() Dependencies {
	out := recordMap{}
	for g, arts := range d.records {
		for a, r := range arts {
			for _, f := range r.Flatten(a) {
				if out[g] == nil {
					out[g] = map[coordinate.ArtifactOrProject]project.Record{}
				}
				out[g][f.Artifact] = f.Record
			}
		}
	}
	return Dependencies{records: out}
}

// mergeRecord implements the per-artifact merge rule: right wins when both
// sides agree or neither has a version, the policy breaks a genuine
// version conflict, and a lone version always survives.
func mergeRecord(logger *slog.Logger, pol policy.VersionConflictPolicy, a, b project.Record) (project.Record, error) {
	switch {
	case !a.HasVersion && !b.HasVersion:
		return b, nil
	case a.HasVersion && b.HasVersion:
		if version.Equal(a.Version, b.Version) {
			return b, nil
		}
		logDebug(logger, "resolving version conflict",
			"policy", pol.String(), "left", a.Version.String(), "right", b.Version.String())
		resolved, err := pol.Resolve("", false, []string{a.Version.String(), b.Version.String()})
		if err != nil {
			return b, err
		}
		if resolved == a.Version.String() {
			logWarn(logger, "discarding candidate version",
				"kept", a.Version.String(), "discarded", b.Version.String())
			return a, nil
		}
		logWarn(logger, "discarding candidate version",
			"kept", resolved, "discarded", a.Version.String())
		return b, nil
	case a.HasVersion:
		return a, nil
	default:
		return b, nil
	}
}

// Combine merges a and b under policy: flatten both sides, union their
// keys, and resolve each artifact present on both sides. Every error from
// every artifact is accumulated; Combine only fails the whole operation if
// at least one artifact failed to resolve.
func Combine(pol policy.VersionConflictPolicy, a, b Dependencies, opts ...Option) validated.Result[Dependencies] {
	cfg := combineConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	fa, fb := a.flatten(), b.flatten()
	logDebug(cfg.logger, "flattened dependency sets",
		"left_groups", len(fa.records), "right_groups", len(fb.records))

	var acc validated.Accumulator
	out := recordMap{}

	groups := make(map[coordinate.MavenGroup]struct{})
	for g := range fa.records {
		groups[g] = struct{}{}
	}
	for g := range fb.records {
		groups[g] = struct{}{}
	}

	for g := range groups {
		artifacts := make(map[coordinate.ArtifactOrProject]struct{})
		for art := range fa.records[g] {
			artifacts[art] = struct{}{}
		}
		for art := range fb.records[g] {
			artifacts[art] = struct{}{}
		}

		outArtifacts := make(map[coordinate.ArtifactOrProject]project.Record, len(artifacts))
		for art := range artifacts {
			ra, oka := fa.records[g][art]
			rb, okb := fb.records[g][art]
			switch {
			case oka && okb:
				logDebug(cfg.logger, "merging artifact", "group", string(g), "artifact", string(art))
				merged, err := mergeRecord(cfg.logger, pol, ra, rb)
				acc.Add(err)
				outArtifacts[art] = merged
			case oka:
				outArtifacts[art] = ra
			default:
				outArtifacts[art] = rb
			}
		}
		out[g] = outArtifacts
	}

	return validated.Finish(&acc, Dependencies{records: out})
}

func coordComparator(a, b interface{}) int {
	return strings.Compare(a.(coordinate.MavenCoordinate).String(), b.(coordinate.MavenCoordinate).String())
}

func unversionedComparator(a, b interface{}) int {
	return strings.Compare(a.(coordinate.UnversionedCoordinate).String(), b.(coordinate.UnversionedCoordinate).String())
}

// CoordToProj builds the versioned-coordinate -> record index by
// enumerating every record's VersionedDependencies.
func (d Dependencies) CoordToProj() *treemap.Map {
	m := treemap.NewWith(coordComparator)
	for g, arts := range d.records {
		for a, r := range arts {
			for _, c := range r.VersionedDependencies(g, a) {
				m.Put(c, r)
			}
		}
	}
	return m
}

// UnversionedToProj builds the unversioned-coordinate -> record index by
// enumerating every record's AllDependencies.
func (d Dependencies) UnversionedToProj() *treemap.Map {
	m := treemap.NewWith(unversionedComparator)
	for g, arts := range d.records {
		for a, r := range arts {
			for _, uv := range r.AllDependencies(g, a) {
				m.Put(uv, r)
			}
		}
	}
	return m
}

// Roots is the key set of CoordToProj, sorted.
func (d Dependencies) Roots() []coordinate.MavenCoordinate {
	keys := d.CoordToProj().Keys()
	out := make([]coordinate.MavenCoordinate, len(keys))
	for i, k := range keys {
		out[i] = k.(coordinate.MavenCoordinate)
	}
	return out
}

// UnversionedRoots is the subset of UnversionedToProj's keys whose record
// has no declared version.
func (d Dependencies) UnversionedRoots() []coordinate.UnversionedCoordinate {
	idx := d.UnversionedToProj()
	var out []coordinate.UnversionedCoordinate
	for _, k := range idx.Keys() {
		uv := k.(coordinate.UnversionedCoordinate)
		v, _ := idx.Get(uv)
		if rec, ok := v.(project.Record); ok && !rec.HasVersion {
			out = append(out, uv)
		}
	}
	return out
}

// UnversionedCoordinatesOf resolves the unique unversioned coordinate
// implied by artifact a under group g: the union of a's own record (if
// any) and every (project, subproject) split of a whose project declares a
// record with a's subproject among its modules. A non-unique or empty
// union resolves to (zero, false) silently; no diagnostic is raised for
// the ambiguous case.
func (d Dependencies) UnversionedCoordinatesOf(g coordinate.MavenGroup, a coordinate.ArtifactOrProject) (coordinate.UnversionedCoordinate, bool) {
	candidates := make(map[coordinate.UnversionedCoordinate]struct{})

	if r, ok := d.Get(g, a); ok {
		candidates[r.Lang.Unversioned(g, a)] = struct{}{}
	}
	for _, split := range a.SplitSubprojects() {
		r, ok := d.Get(g, split.Project)
		if !ok || r.Modules == nil {
			continue
		}
		if r.Modules.Contains(split.Subproject) {
			candidates[r.Lang.Unversioned(g, split.Project, split.Subproject)] = struct{}{}
		}
	}

	if len(candidates) != 1 {
		return coordinate.UnversionedCoordinate{}, false
	}
	for uv := range candidates {
		return uv, true
	}
	panic("unreachable")
}

// LanguageOf returns the declared language of uv's record, if any.
func (d Dependencies) LanguageOf(uv coordinate.UnversionedCoordinate) (coordinate.Language, bool) {
	v, ok := d.UnversionedToProj().Get(uv)
	if !ok {
		return coordinate.Language{}, false
	}
	return v.(project.Record).Lang, true
}

// ExportUnresolvedError reports the (group, artifact) export pairs that
// ExportedUnversioned could not resolve against either this Dependencies
// value or the supplied Replacements.
type ExportUnresolvedError struct {
	Pairs []project.GroupArtifact
}

func (e *ExportUnresolvedError) Error() string {
	return fmt.Sprintf("unresolved exports: %v", e.Pairs)
}

// ExportedUnversioned resolves uv's record's declared exports: each
// (group, artifact) pair is resolved first via UnversionedCoordinatesOf,
// falling back to repl. Any pair that resolves through neither source
// accumulates into a single ExportUnresolvedError naming every such pair.
func (d Dependencies) ExportedUnversioned(uv coordinate.UnversionedCoordinate, repl replacement.Replacements) ([]coordinate.UnversionedCoordinate, error) {
	v, ok := d.UnversionedToProj().Get(uv)
	if !ok {
		return nil, nil
	}
	rec := v.(project.Record)
	if rec.Exports == nil {
		return nil, nil
	}

	var resolved []coordinate.UnversionedCoordinate
	var unresolved []project.GroupArtifact
	for _, elem := range rec.Exports.Values() {
		ga := elem.(project.GroupArtifact)
		if x, ok := d.UnversionedCoordinatesOf(ga.Group, ga.Artifact); ok {
			resolved = append(resolved, x)
			continue
		}
		if _, ok := repl.Lookup(ga.Group, ga.Artifact); ok {
			resolved = append(resolved, coordinate.UnversionedCoordinate{
				Group:    ga.Group,
				Artifact: coordinate.MavenArtifactId(ga.Artifact),
			})
			continue
		}
		unresolved = append(unresolved, ga)
	}

	if len(unresolved) > 0 {
		return nil, &ExportUnresolvedError{Pairs: unresolved}
	}
	return resolved, nil
}

// Excludes resolves uv's record's declared exclude set, defaulting each
// unresolved (g, a) pair to the literal UnversionedCoordinate(g, a).
func (d Dependencies) Excludes(uv coordinate.UnversionedCoordinate) []coordinate.UnversionedCoordinate {
	v, ok := d.UnversionedToProj().Get(uv)
	if !ok {
		return nil
	}
	rec := v.(project.Record)
	if rec.Exclude == nil {
		return nil
	}

	out := make([]coordinate.UnversionedCoordinate, 0, rec.Exclude.Size())
	for _, elem := range rec.Exclude.Values() {
		ga := elem.(project.GroupArtifact)
		if x, ok := d.UnversionedCoordinatesOf(ga.Group, ga.Artifact); ok {
			out = append(out, x)
			continue
		}
		out = append(out, coordinate.UnversionedCoordinate{
			Group:    ga.Group,
			Artifact: coordinate.MavenArtifactId(ga.Artifact),
		})
	}
	return out
}
