// Package project implements ProjectRecord, the per-artifact declaration
// merged by the dependencies package: a language, an optional version, and
// optional module, export, and exclude sets.
//
// Modules, exports, and exclude are modeled as ordered sets
// (emirpasic/gods treeset), the same structure the jvm gazelle extension in
// this corpus uses for its own artifact-exclude and package-map state.
// Ordered iteration keeps flatten/combine deterministic without a separate
// sort step.
package project

import (
	"strings"

	"github.com/emirpasic/gods/sets/treeset"

	"github.com/go-mvndeps/mvndeps/coordinate"
	"github.com/go-mvndeps/mvndeps/version"
)

// GroupArtifact is an unversioned, unmangled (group, artifact) reference, as
// used in a record's exports and exclude sets.
type GroupArtifact struct {
	Group    coordinate.MavenGroup
	Artifact coordinate.ArtifactOrProject
}

// String renders "group:artifact".
func (ga GroupArtifact) String() string {
	return string(ga.Group) + ":" + string(ga.Artifact)
}

func subprojectComparator(a, b interface{}) int {
	return strings.Compare(string(a.(coordinate.Subproject)), string(b.(coordinate.Subproject)))
}

func groupArtifactComparator(a, b interface{}) int {
	return strings.Compare(a.(GroupArtifact).String(), b.(GroupArtifact).String())
}

// NewSubprojectSet builds an ordered set of subprojects.
func NewSubprojectSet(items ...coordinate.Subproject) *treeset.Set {
	s := treeset.NewWith(subprojectComparator)
	for _, it := range items {
		s.Add(it)
	}
	return s
}

// NewGroupArtifactSet builds an ordered set of (group, artifact) pairs.
func NewGroupArtifactSet(items ...GroupArtifact) *treeset.Set {
	s := treeset.NewWith(groupArtifactComparator)
	for _, it := range items {
		s.Add(it)
	}
	return s
}

func subprojects(s *treeset.Set) []coordinate.Subproject {
	if s == nil {
		return nil
	}
	values := s.Values()
	out := make([]coordinate.Subproject, len(values))
	for i, v := range values {
		out[i] = v.(coordinate.Subproject)
	}
	return out
}

func isEmptySet(s *treeset.Set) bool {
	return s == nil || s.Empty()
}

func setsEqual(a, b *treeset.Set) bool {
	av, bv := valuesOf(a), valuesOf(b)
	if len(av) != len(bv) {
		return false
	}
	for i := range av {
		if av[i] != bv[i] {
			return false
		}
	}
	return true
}

func valuesOf(s *treeset.Set) []interface{} {
	if s == nil {
		return nil
	}
	return s.Values()
}

// Record is one declared artifact entry: its language, optional version, and
// optional module/export/exclude sets. A nil Modules set means the record
// denotes a single artifact rather than a family of subprojects.
type Record struct {
	Lang       coordinate.Language
	Version    version.Version
	HasVersion bool
	Modules    *treeset.Set // of coordinate.Subproject
	Exports    *treeset.Set // of GroupArtifact
	Exclude    *treeset.Set // of GroupArtifact
}

// Flattened pairs a fully-formed artifact name with the record's
// per-module-stripped data, the shape Flatten and the merge engine operate
// on.
type Flattened struct {
	Artifact coordinate.ArtifactOrProject
	Record   Record
}

// Flatten normalizes r, declared under artifact ap, into one or more
// module-free records: one per declared subproject, or just r itself (with
// Modules cleared) if none are declared.
func (r Record) Flatten(ap coordinate.ArtifactOrProject) []Flattened {
	bare := r
	bare.Modules = nil

	if isEmptySet(r.Modules) {
		return []Flattened{{Artifact: ap, Record: bare}}
	}

	mods := subprojects(r.Modules)
	out := make([]Flattened, 0, len(mods))
	for _, m := range mods {
		artifact := ap
		if m != "" {
			artifact = coordinate.ArtifactOrProject(string(ap) + "-" + string(m))
		}
		out = append(out, Flattened{Artifact: artifact, Record: bare})
	}
	return out
}

// WithModule rewrites r as if it were declared one level deeper under m: an
// absent module set becomes {m}; each existing subproject s is rewritten to
// "m-s" (or bare m when s is the "" sentinel).
func (r Record) WithModule(m coordinate.Subproject) Record {
	out := r
	if isEmptySet(r.Modules) {
		out.Modules = NewSubprojectSet(m)
		return out
	}
	rewritten := treeset.NewWith(subprojectComparator)
	for _, s := range subprojects(r.Modules) {
		if s == "" {
			rewritten.Add(m)
			continue
		}
		rewritten.Add(coordinate.Subproject(string(m) + "-" + string(s)))
	}
	out.Modules = rewritten
	return out
}

// CombineModules fuses r with other when they agree on language, exports,
// exclude, and version, returning the union of their module sets. When
// exactly one side declared no modules, the merged set gains the "" bare
// sentinel so the module-free member survives the fusion.
func (r Record) CombineModules(other Record) (Record, bool) {
	if !r.Lang.Equal(other.Lang) {
		return Record{}, false
	}
	if !setsEqual(r.Exports, other.Exports) {
		return Record{}, false
	}
	if !setsEqual(r.Exclude, other.Exclude) {
		return Record{}, false
	}
	if r.HasVersion != other.HasVersion {
		return Record{}, false
	}
	if r.HasVersion && version.Compare(r.Version, other.Version) != 0 {
		return Record{}, false
	}

	merged := treeset.NewWith(subprojectComparator)
	for _, m := range subprojects(r.Modules) {
		merged.Add(m)
	}
	for _, m := range subprojects(other.Modules) {
		merged.Add(m)
	}
	if isEmptySet(r.Modules) != isEmptySet(other.Modules) {
		merged.Add(coordinate.Subproject(""))
	}

	out := r
	out.Modules = merged
	return out, true
}

// modulesOrBare returns the declared subprojects, or a single "" sentinel
// standing for the bare artifact when none were declared.
func (r Record) modulesOrBare() []coordinate.Subproject {
	if isEmptySet(r.Modules) {
		return []coordinate.Subproject{""}
	}
	return subprojects(r.Modules)
}

// VersionedDependencies returns the fully versioned coordinates this record
// implies for artifact ap under group g: empty if no version is declared,
// otherwise one coordinate per declared module (or a single bare coordinate
// when none are declared).
func (r Record) VersionedDependencies(g coordinate.MavenGroup, ap coordinate.ArtifactOrProject) []coordinate.MavenCoordinate {
	if !r.HasVersion {
		return nil
	}
	mods := r.modulesOrBare()
	out := make([]coordinate.MavenCoordinate, 0, len(mods))
	for _, m := range mods {
		if m == "" {
			out = append(out, r.Lang.MavenCoord(g, ap, r.Version))
			continue
		}
		out = append(out, r.Lang.MavenCoord(g, ap, r.Version, m))
	}
	return out
}

// AllDependencies returns the unversioned coordinates this record implies
// for artifact ap under group g. Unlike VersionedDependencies, this is
// always non-empty: absence of a version doesn't suppress the identity.
func (r Record) AllDependencies(g coordinate.MavenGroup, ap coordinate.ArtifactOrProject) []coordinate.UnversionedCoordinate {
	mods := r.modulesOrBare()
	out := make([]coordinate.UnversionedCoordinate, 0, len(mods))
	for _, m := range mods {
		if m == "" {
			out = append(out, r.Lang.Unversioned(g, ap))
			continue
		}
		out = append(out, r.Lang.Unversioned(g, ap, m))
	}
	return out
}
