// Package mvndeps implements a pure, single-threaded merge engine for
// Maven-style JVM dependency manifests: canonicalizing artifact identities
// across a language-mangling scheme, splitting and re-merging module
// groups, resolving per-artifact version conflicts under configurable
// policies, and rendering the result to a deterministic canonical
// document.
//
// The engine has no I/O and no concurrency of its own; it is a value
// transformer over [Model]. Parsing a manifest into a Model and rendering
// one back out are the caller's concern — see the coordinate, project,
// dependencies, replacement, and render subpackages for the pieces this
// package composes.
package mvndeps
