// Package policy implements the small closed-variant algebraic structures
// that govern how the merge engine resolves conflicts: the version-conflict
// policy semilattice and the transitivity monoid.
//
// Both are sealed enums dispatched by a handful of plain functions rather
// than an interface hierarchy with virtual methods, matching how this
// codebase's other closed variants (DirectDepsCheckMode, YankedVersionBehavior
// in the original resolver) are modeled: an iota-based type with a String
// method and free functions for any cross-value behavior.
package policy

import (
	"fmt"
	"slices"

	"github.com/go-mvndeps/mvndeps/version"
)

// VersionConflictPolicy selects how a version conflict between two declared
// records for the same artifact is resolved.
//
// The three variants form a commutative bounded semilattice: identity
// Highest, ordered by strictness Highest ≺ Fixed ≺ Fail, and Combine always
// keeps the stricter of the two.
type VersionConflictPolicy int

const (
	// Highest resolves a conflict by picking the maximum version under the
	// version package's ordering. It is the identity element of Combine.
	Highest VersionConflictPolicy = iota
	// Fixed requires a single declared version (or a caller-supplied root) and
	// errors otherwise.
	Fixed
	// Fail rejects any conflict outright; it is the strictest policy.
	Fail
)

// String renders the policy name used in error messages and canonical
// serialization.
func (p VersionConflictPolicy) String() string {
	switch p {
	case Highest:
		return "highest"
	case Fixed:
		return "fixed"
	case Fail:
		return "fail"
	default:
		return fmt.Sprintf("VersionConflictPolicy(%d)", int(p))
	}
}

// strictness orders the three variants for Combine: higher is stricter.
func (p VersionConflictPolicy) strictness() int {
	switch p {
	case Highest:
		return 0
	case Fixed:
		return 1
	case Fail:
		return 2
	default:
		return 0
	}
}

// Combine returns the stricter of the two policies. Combine(Highest, x) == x
// and Combine is commutative and associative, making Highest the identity of
// a bounded join-semilattice ordered by strictness.
func Combine(a, b VersionConflictPolicy) VersionConflictPolicy {
	if a.strictness() >= b.strictness() {
		return a
	}
	return b
}

// VersionConflictError reports a version conflict that the active policy
// could not resolve. Its Error text is the exact wording named by the
// top-level error taxonomy.
type VersionConflictError struct {
	Policy      VersionConflictPolicy
	Root        string // empty means "no root version supplied"
	HasRoot     bool
	Transitive  []string // the conflicting versions as supplied; Error sorts them ascending
}

func (e *VersionConflictError) Error() string {
	sorted := slices.Clone(e.Transitive)
	version.SortStrings(sorted)
	switch e.Policy {
	case Fail:
		root := "<none>"
		if e.HasRoot {
			root = e.Root
		}
		return fmt.Sprintf("multiple versions found in Fail policy, root: %s, transitive: %v", root, sorted)
	case Fixed:
		return fmt.Sprintf("fixed requires 1, or a declared version, found: %v", sorted)
	default:
		return fmt.Sprintf("version conflict under %s policy: %v", e.Policy, sorted)
	}
}

// Resolve picks a single version out of the candidate set s under the
// policy, honoring an optional caller-supplied root version. s must be
// non-empty; that invariant is the caller's responsibility (the merge
// engine only ever calls Resolve with at least one candidate version).
func (p VersionConflictPolicy) Resolve(root string, hasRoot bool, s []string) (string, error) {
	switch p {
	case Fail:
		if len(s) == 1 && (!hasRoot || s[0] == root) {
			if hasRoot {
				return root, nil
			}
			return s[0], nil
		}
		if hasRoot && len(s) == 0 {
			return root, nil
		}
		return "", &VersionConflictError{Policy: Fail, Root: root, HasRoot: hasRoot, Transitive: s}
	case Fixed:
		if hasRoot {
			return root, nil
		}
		if len(s) == 1 {
			return s[0], nil
		}
		return "", &VersionConflictError{Policy: Fixed, Root: root, HasRoot: hasRoot, Transitive: s}
	case Highest:
		if hasRoot {
			return root, nil
		}
		highest := s[0]
		for _, v := range s[1:] {
			highest = version.MaxString(highest, v)
		}
		return highest, nil
	default:
		return "", fmt.Errorf("unknown version conflict policy %v", p)
	}
}

// Transitivity controls whether generated build rules expose their
// dependencies to downstream consumers (Exports) or keep them private
// (RuntimeDeps).
//
// It is a commutative monoid with identity RuntimeDeps: the non-identity
// value wins over the identity, and Exports combined with itself is still
// Exports.
type Transitivity int

const (
	// RuntimeDeps is the identity element: dependencies are not re-exported.
	RuntimeDeps Transitivity = iota
	// Exports re-exports dependencies to anything depending on the artifact.
	Exports
)

func (t Transitivity) String() string {
	if t == Exports {
		return "exports"
	}
	return "runtime_deps"
}

// CombineTransitivity implements the monoid: RuntimeDeps is the identity,
// Exports wins whenever either side is Exports.
func CombineTransitivity(a, b Transitivity) Transitivity {
	if a == Exports || b == Exports {
		return Exports
	}
	return RuntimeDeps
}

// DirectoryName is the third-party directory option; combining two declared
// values simply keeps the right-hand one.
type DirectoryName string

// CombineDirectoryName implements "right wins" for the third-party directory
// option.
func CombineDirectoryName(a, b DirectoryName) DirectoryName {
	if b == "" {
		return a
	}
	return b
}
