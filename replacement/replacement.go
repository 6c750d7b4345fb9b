// Package replacement implements Replacements, the override map that
// redirects a Maven coordinate straight to an in-repo Bazel target instead
// of letting it resolve normally.
package replacement

import (
	"fmt"

	"github.com/go-mvndeps/mvndeps/coordinate"
	"github.com/go-mvndeps/mvndeps/validated"
)

// Record is one replacement target: the language the override artifact is
// written in, and the Bazel label it redirects to.
type Record struct {
	Lang   coordinate.Language
	Target coordinate.BazelTarget
}

// Equal reports structural equality, the criterion Combine uses to decide
// whether two declarations of the same key collide.
func (r Record) Equal(o Record) bool {
	return r.Lang.Equal(o.Lang) && r.Target.Equal(o.Target)
}

// Replacements is an immutable group -> artifact -> Record map.
type Replacements struct {
	records map[coordinate.MavenGroup]map[coordinate.ArtifactOrProject]Record
}

// New returns an empty Replacements value.
func New() Replacements {
	return Replacements{records: map[coordinate.MavenGroup]map[coordinate.ArtifactOrProject]Record{}}
}

// FromMap wraps an already-built group/artifact map, as produced by the
// upstream parser.
func FromMap(m map[coordinate.MavenGroup]map[coordinate.ArtifactOrProject]Record) Replacements {
	if m == nil {
		m = map[coordinate.MavenGroup]map[coordinate.ArtifactOrProject]Record{}
	}
	return Replacements{records: m}
}

// IsEmpty reports whether no replacements are declared.
func (r Replacements) IsEmpty() bool {
	return len(r.records) == 0
}

// Lookup returns the declared replacement for (g, a), if any.
func (r Replacements) Lookup(g coordinate.MavenGroup, a coordinate.ArtifactOrProject) (Record, bool) {
	arts, ok := r.records[g]
	if !ok {
		return Record{}, false
	}
	rec, ok := arts[a]
	return rec, ok
}

// ByUnversioned flattens the map into its derived unversioned-coordinate
// index.
func (r Replacements) ByUnversioned() map[coordinate.UnversionedCoordinate]Record {
	out := make(map[coordinate.UnversionedCoordinate]Record)
	for g, arts := range r.records {
		for a, rec := range arts {
			out[coordinate.UnversionedCoordinate{Group: g, Artifact: coordinate.MavenArtifactId(a)}] = rec
		}
	}
	return out
}

// CollisionError reports two replacement declarations for the same
// (group, artifact) key that are not structurally equal.
type CollisionError struct {
	A, B Record
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("in replacements combine: %s != %s", e.A.Target.String(), e.B.Target.String())
}

// Combine pointwise-merges two Replacements maps. A key declared on only
// one side passes through unchanged; a key declared on both sides must
// carry structurally equal records, or a CollisionError is accumulated for
// that key (one error per colliding key, not one for the whole combine).
func Combine(a, b Replacements) validated.Result[Replacements] {
	var acc validated.Accumulator
	out := make(map[coordinate.MavenGroup]map[coordinate.ArtifactOrProject]Record)

	groups := make(map[coordinate.MavenGroup]struct{})
	for g := range a.records {
		groups[g] = struct{}{}
	}
	for g := range b.records {
		groups[g] = struct{}{}
	}

	for g := range groups {
		artifacts := make(map[coordinate.ArtifactOrProject]struct{})
		for art := range a.records[g] {
			artifacts[art] = struct{}{}
		}
		for art := range b.records[g] {
			artifacts[art] = struct{}{}
		}

		outArtifacts := make(map[coordinate.ArtifactOrProject]Record, len(artifacts))
		for art := range artifacts {
			ra, oka := a.records[g][art]
			rb, okb := b.records[g][art]
			switch {
			case oka && okb:
				if !ra.Equal(rb) {
					acc.Add(&CollisionError{A: ra, B: rb})
				}
				outArtifacts[art] = rb
			case oka:
				outArtifacts[art] = ra
			default:
				outArtifacts[art] = rb
			}
		}
		out[g] = outArtifacts
	}

	return validated.Finish(&acc, Replacements{records: out})
}

// CombineOptional implements the "identity if one side is absent, strict
// Combine otherwise" rule Model.Combine uses for its replacements field.
func CombineOptional(a, b *Replacements) validated.Result[*Replacements] {
	switch {
	case a == nil && b == nil:
		return validated.Of[*Replacements](nil)
	case a == nil:
		return validated.Of(b)
	case b == nil:
		return validated.Of(a)
	default:
		r := Combine(*a, *b)
		v, ok := r.Value()
		if !ok {
			return validated.Errors[*Replacements](r.Errs()...)
		}
		return validated.Of(&v)
	}
}
