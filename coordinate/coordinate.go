// Package coordinate models Maven-style dependency identities: groups,
// artifacts, subprojects, and the language-specific mangling that turns a
// bare artifact name into the string Maven actually resolves.
//
// The types here are opaque value wrappers around strings rather than
// validated constructions — a MavenGroup or ArtifactOrProject is whatever
// the manifest declared it to be. The one type that does validate at
// construction is [Language]'s Scala variant, whose major-version derivation
// can fail, and [BazelTarget], whose label syntax is checked against Bazel's
// own label grammar.
package coordinate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bazelbuild/buildtools/labels"

	"github.com/go-mvndeps/mvndeps/version"
)

// MavenGroup is a dotted Maven group identifier (e.g. "com.google.guava").
type MavenGroup string

// ArtifactOrProject is an artifact name that may carry a `-`-delimited
// suffix interpretable as a subproject (e.g. "guava-testlib" split into
// project "guava" and subproject "testlib").
type ArtifactOrProject string

// Subproject is the `-`-delimited suffix portion of an artifact name.
type Subproject string

// MavenArtifactId is the final, possibly language-mangled artifact id used
// in a coordinate string.
type MavenArtifactId string

// Split is one candidate (project, subproject) decomposition of an
// ArtifactOrProject.
type Split struct {
	Project    ArtifactOrProject
	Subproject Subproject
}

// SplitSubprojects returns every prefix/suffix split of ap's `-`-delimited
// components. "a-b-c-d" yields {(a, b-c-d), (a-b, c-d), (a-b-c, d)}; an
// artifact with no hyphen yields no splits.
func (ap ArtifactOrProject) SplitSubprojects() []Split {
	parts := strings.Split(string(ap), "-")
	if len(parts) < 2 {
		return nil
	}
	splits := make([]Split, 0, len(parts)-1)
	for i := 1; i < len(parts); i++ {
		splits = append(splits, Split{
			Project:    ArtifactOrProject(strings.Join(parts[:i], "-")),
			Subproject: Subproject(strings.Join(parts[i:], "-")),
		})
	}
	return splits
}

// String returns the raw artifact-or-project text.
func (ap ArtifactOrProject) String() string { return string(ap) }

// String returns the raw subproject text.
func (s Subproject) String() string { return string(s) }

// String returns the raw artifact id text.
func (a MavenArtifactId) String() string { return string(a) }

// join composes a project and an optional subproject into a single artifact
// string, joined by "-".
func join(ap ArtifactOrProject, sub Subproject) string {
	if sub == "" {
		return string(ap)
	}
	return string(ap) + "-" + string(sub)
}

// UnversionedCoordinate identifies an artifact without a version: a
// (group, artifactId) pair.
type UnversionedCoordinate struct {
	Group    MavenGroup
	Artifact MavenArtifactId
}

// String renders "group:artifactId".
func (u UnversionedCoordinate) String() string {
	return string(u.Group) + ":" + string(u.Artifact)
}

var nameSanitizer = strings.NewReplacer(".", "_", "-", "_", ":", "_", "/", "_")

// RepoName sanitizes the coordinate's string form into a valid Bazel repo
// name: every '.', '-', ':' becomes '_'.
func (u UnversionedCoordinate) RepoName() string {
	return nameSanitizer.Replace(u.String())
}

// BindingName derives the jar_library binding name used by generated build
// rules: "jar/<group, dots as slashes>/<artifact>", sanitized the same way
// as RepoName.
func (u UnversionedCoordinate) BindingName() string {
	groupPath := strings.ReplaceAll(string(u.Group), ".", "/")
	raw := "jar/" + groupPath + "/" + string(u.Artifact)
	return nameSanitizer.Replace(raw)
}

// MavenCoordinate is a fully versioned Maven identity: group, artifactId,
// and version.
type MavenCoordinate struct {
	Group    MavenGroup
	Artifact MavenArtifactId
	Version  version.Version
}

// CoordinateShapeError reports a coordinate string that didn't split into
// exactly three colon-delimited parts.
type CoordinateShapeError struct {
	Raw string
}

func (e *CoordinateShapeError) Error() string {
	return fmt.Sprintf("expected exactly three :, got %s", e.Raw)
}

// ParseMavenCoordinate parses "group:artifact:version". Anything that does
// not split into exactly three colon-delimited parts is a CoordinateShapeError.
func ParseMavenCoordinate(s string) (MavenCoordinate, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return MavenCoordinate{}, &CoordinateShapeError{Raw: s}
	}
	return MavenCoordinate{
		Group:    MavenGroup(parts[0]),
		Artifact: MavenArtifactId(parts[1]),
		Version:  version.New(parts[2]),
	}, nil
}

// String renders "group:artifact:version".
func (c MavenCoordinate) String() string {
	return string(c.Group) + ":" + string(c.Artifact) + ":" + c.Version.String()
}

// Unversioned drops the version, returning the coordinate's unversioned
// identity.
func (c MavenCoordinate) Unversioned() UnversionedCoordinate {
	return UnversionedCoordinate{Group: c.Group, Artifact: c.Artifact}
}

// Compare orders two coordinates by (group, artifact, version), the last
// component ordered under the version package's total order.
func Compare(a, b MavenCoordinate) int {
	if c := strings.Compare(string(a.Group), string(b.Group)); c != 0 {
		return c
	}
	if c := strings.Compare(string(a.Artifact), string(b.Artifact)); c != 0 {
		return c
	}
	return version.Compare(a.Version, b.Version)
}

// languageKind distinguishes the two supported coordinate languages. Unlike
// VersionConflictPolicy and Transitivity in the policy package, Scala
// carries data (its version and mangle flag), so Language is a tagged
// struct rather than a bare iota type, but the dispatch style is the same:
// a handful of methods switching on kind, no per-variant interface types.
type languageKind int

const (
	java languageKind = iota
	scala
)

// Language is the closed variant governing how an artifact id is mangled:
// Java (identity) or Scala (optional "_<major>" suffix).
type Language struct {
	kind    languageKind
	version version.Version
	mangle  bool
	major   string // e.g. "2.11"; empty for Java
}

// Java is the identity-mangling language.
var Java = Language{kind: java}

// UnsupportedScalaVersionError reports a Scala version string that does not
// derive a valid major version.
type UnsupportedScalaVersionError struct {
	Version string
}

func (e *UnsupportedScalaVersionError) Error() string {
	return fmt.Sprintf("unsupported scala version %q: expected 2.X or 2.X.Y with X >= 10", e.Version)
}

// NewScala constructs the Scala language variant. v must parse as "2.X" or
// "2.X.Y" with X >= 10 (Scala's post-2.10 major-version scheme); anything
// else is an UnsupportedScalaVersionError. When mangle is true, artifact ids
// are suffixed with "_<major>".
func NewScala(v version.Version, mangle bool) (Language, error) {
	major, err := scalaMajor(v.String())
	if err != nil {
		return Language{}, err
	}
	return Language{kind: scala, version: v, mangle: mangle, major: major}, nil
}

func scalaMajor(raw string) (string, error) {
	parts := strings.Split(raw, ".")
	if len(parts) < 2 || len(parts) > 3 || parts[0] != "2" {
		return "", &UnsupportedScalaVersionError{Version: raw}
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil || minor < 10 {
		return "", &UnsupportedScalaVersionError{Version: raw}
	}
	return "2." + strconv.Itoa(minor), nil
}

// Equal reports whether two Language values denote the same variant with
// the same data (for Scala, the same version and mangle flag).
func (l Language) Equal(o Language) bool {
	if l.kind != o.kind {
		return false
	}
	if l.kind == scala {
		return l.mangle == o.mangle && version.Equal(l.version, o.version)
	}
	return true
}

// String names the language for canonical serialization.
func (l Language) String() string {
	switch l.kind {
	case scala:
		return "scala"
	default:
		return "java"
	}
}

// SignatureKey returns a string uniquely identifying l's variant and data,
// suitable as a deduplication key — Language itself isn't comparable with
// == because its embedded version.Version holds a token slice.
func (l Language) SignatureKey() string {
	if l.kind == scala {
		return "scala:" + l.version.String() + ":" + strconv.FormatBool(l.mangle)
	}
	return "java"
}

// mangleArtifact applies this language's suffixing rule to a joined
// artifact string.
func (l Language) mangleArtifact(artifact string) string {
	if l.kind == scala && l.mangle {
		return artifact + "_" + l.major
	}
	return artifact
}

// Unversioned builds the unversioned coordinate for (g, ap) — or, when sub
// is supplied, for the (ap, sub) subproject pair — mangled for this
// language.
func (l Language) Unversioned(g MavenGroup, ap ArtifactOrProject, sub ...Subproject) UnversionedCoordinate {
	var s Subproject
	if len(sub) > 0 {
		s = sub[0]
	}
	artifact := MavenArtifactId(l.mangleArtifact(join(ap, s)))
	return UnversionedCoordinate{Group: g, Artifact: artifact}
}

// MavenCoord builds the fully versioned coordinate analogous to Unversioned.
func (l Language) MavenCoord(g MavenGroup, ap ArtifactOrProject, v version.Version, sub ...Subproject) MavenCoordinate {
	uv := l.Unversioned(g, ap, sub...)
	return MavenCoordinate{Group: uv.Group, Artifact: uv.Artifact, Version: v}
}

// RemoveSuffix strips this language's "_<major>" suffix from artifact if
// present, returning the stripped string and true. For Java, or when the
// suffix is absent, it returns artifact unchanged and false.
func (l Language) RemoveSuffix(artifact string) (string, bool) {
	if l.kind != scala {
		return artifact, false
	}
	suffix := "_" + l.major
	if stripped, ok := strings.CutSuffix(artifact, suffix); ok {
		return stripped, true
	}
	return artifact, false
}

// EndsWithScalaVersion reports whether uv's artifact id already carries
// this language's "_<major>" suffix.
func (l Language) EndsWithScalaVersion(uv UnversionedCoordinate) bool {
	if l.kind != scala {
		return false
	}
	return strings.HasSuffix(string(uv.Artifact), "_"+l.major)
}

// BazelTarget is a Bazel label, used as the right-hand side of a
// replacement mapping. Construction rejects empty or whitespace-containing
// text and then parses the label with buildtools' labels.Parse, which
// itself reports no errors; no further label grammar is checked.
type BazelTarget struct {
	raw    string
	parsed labels.Label
}

// InvalidBazelTargetError reports a string that does not parse as a Bazel
// label.
type InvalidBazelTargetError struct {
	Raw   string
	Cause error
}

func (e *InvalidBazelTargetError) Error() string {
	return fmt.Sprintf("invalid bazel target %q: %v", e.Raw, e.Cause)
}

func (e *InvalidBazelTargetError) Unwrap() error { return e.Cause }

// NewBazelTarget checks s and parses it as a Bazel label. An empty string
// or one containing whitespace is an InvalidBazelTargetError.
func NewBazelTarget(s string) (BazelTarget, error) {
	if s == "" {
		return BazelTarget{}, &InvalidBazelTargetError{Raw: s, Cause: fmt.Errorf("empty label")}
	}
	if strings.ContainsAny(s, " \t\r\n") {
		return BazelTarget{}, &InvalidBazelTargetError{Raw: s, Cause: fmt.Errorf("label contains whitespace")}
	}
	return BazelTarget{raw: s, parsed: labels.Parse(s)}, nil
}

// String returns the original label text.
func (t BazelTarget) String() string { return t.raw }

// Equal reports whether two targets denote the same label text.
func (t BazelTarget) Equal(o BazelTarget) bool { return t.raw == o.raw }
