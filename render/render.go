// Package render implements the canonical, deterministic YAML-like document
// the merge engine emits: a textual projection of a Model meant for
// fixtures and round-trip tests, not a general-purpose serialization
// format.
//
// The renderer is a single bytes.Buffer-accumulating pass in the style of
// this corpus's graph/format.go: free functions writing directly into a
// buffer rather than a Marshaler interface hierarchy.
package render

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/go-mvndeps/mvndeps/coordinate"
	"github.com/go-mvndeps/mvndeps/dependencies"
	"github.com/go-mvndeps/mvndeps/project"
	"github.com/go-mvndeps/mvndeps/replacement"
)

// Model is the minimal surface render needs from the root package's Model,
// expressed structurally to avoid an import cycle (render sits below the
// root package in the dependency order: root imports render, not the
// reverse).
type Model struct {
	Dependencies dependencies.Dependencies
	Replacements *replacement.Replacements
	HasOptions   bool
	Options      Options
}

// Options is the subset of the root package's Options needed for
// rendering, again expressed structurally.
type Options struct {
	Policy       string
	Directory    string
	Languages    []string
	Resolvers    []Resolver
	Transitivity string
	BuildHeader  []string
}

// Resolver mirrors the root package's Resolver for rendering.
type Resolver struct {
	ID, Type, URL string
}

// quote renders s as a double-quoted string, escaping only '\' and '"' per
// the canonical grammar.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		if r == '\\' || r == '"' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}

func writeInlineList(buf *bytes.Buffer, items []string) {
	if len(items) == 0 {
		buf.WriteString("[]\n")
		return
	}
	buf.WriteString("[ " + strings.Join(items, ", ") + " ]\n")
}

// Document renders m as the canonical document: options, dependencies,
// replacements, in that order, each section separated by two blank lines,
// and omitted entirely when absent.
func Document(m Model) string {
	var buf bytes.Buffer
	var sections []func(*bytes.Buffer)

	if m.HasOptions {
		sections = append(sections, func(b *bytes.Buffer) { writeOptions(b, m.Options) })
	}
	if len(m.Dependencies.Groups()) > 0 {
		sections = append(sections, func(b *bytes.Buffer) { writeDependencies(b, m.Dependencies) })
	}
	if m.Replacements != nil && !m.Replacements.IsEmpty() {
		sections = append(sections, func(b *bytes.Buffer) { writeReplacements(b, *m.Replacements) })
	}

	for i, section := range sections {
		if i > 0 {
			buf.WriteString("\n\n")
		}
		section(&buf)
	}
	return buf.String()
}

func writeOptions(buf *bytes.Buffer, o Options) {
	buf.WriteString("options:\n")
	buf.WriteString("  build_header: ")
	writeInlineList(buf, quoteAll(o.BuildHeader))
	buf.WriteString("  directory: " + quote(o.Directory) + "\n")
	buf.WriteString("  languages:\n")
	langs := append([]string(nil), o.Languages...)
	sort.Strings(langs)
	for _, l := range langs {
		buf.WriteString("    - " + l + "\n")
	}
	buf.WriteString("  policy: " + o.Policy + "\n")
	buf.WriteString("  resolvers:\n")
	resolvers := append([]Resolver(nil), o.Resolvers...)
	sort.Slice(resolvers, func(i, j int) bool { return resolvers[i].ID < resolvers[j].ID })
	for _, r := range resolvers {
		buf.WriteString(fmt.Sprintf("    - {id: %s, type: %s, url: %s}\n", r.ID, r.Type, quote(r.URL)))
	}
	buf.WriteString("  transitivity: " + o.Transitivity + "\n")
}

func quoteAll(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = quote(s)
	}
	return out
}

// compactedEntry is one rendered line in a group: an artifact (possibly a
// re-fused stem standing in for several flat artifacts) paired with the
// record describing it.
type compactedEntry struct {
	Artifact coordinate.ArtifactOrProject
	Record   project.Record
}

// stemCandidates returns, for artifact, every (stem, suffix) decomposition
// that could take part in a fuse: the bare artifact itself (suffix "") and
// every split yielded by SplitSubprojects.
func stemCandidates(artifact coordinate.ArtifactOrProject) map[coordinate.ArtifactOrProject]coordinate.Subproject {
	m := map[coordinate.ArtifactOrProject]coordinate.Subproject{artifact: ""}
	for _, s := range artifact.SplitSubprojects() {
		m[s.Project] = s.Subproject
	}
	return m
}

// tryFuse attempts to re-express prev and cur under a single common stem,
// picking the longest stem for which the re-moduled records successfully
// combine: split each artifact into (stem, suffix), form candidate
// re-modulings (record.WithModule(suffix)), and take the longest-stem
// split whose re-moduled records successfully combine.
func tryFuse(prev, cur compactedEntry) (compactedEntry, bool) {
	prevStems := stemCandidates(prev.Artifact)
	curStems := stemCandidates(cur.Artifact)

	var common []coordinate.ArtifactOrProject
	for stem := range prevStems {
		if _, ok := curStems[stem]; ok {
			common = append(common, stem)
		}
	}
	sort.Slice(common, func(i, j int) bool { return len(common[i]) > len(common[j]) })

	for _, stem := range common {
		suffixPrev, suffixCur := prevStems[stem], curStems[stem]
		if suffixPrev == suffixCur {
			continue
		}
		prRewritten := prev.Record.WithModule(suffixPrev)
		curRewritten := cur.Record.WithModule(suffixCur)
		merged, ok := prRewritten.CombineModules(curRewritten)
		if ok {
			return compactedEntry{Artifact: stem, Record: merged}, true
		}
	}
	return compactedEntry{}, false
}

// compactGroup re-fuses a flat, sorted artifact list back into grouped
// module records for display. Re-compaction is purely a rendering
// concern; it never changes the underlying Dependencies value.
func compactGroup(flat []compactedEntry) []compactedEntry {
	var acc []compactedEntry
	for _, entry := range flat {
		if len(acc) > 0 {
			prev := acc[len(acc)-1]
			if fused, ok := tryFuse(prev, entry); ok {
				grandparentShares := len(acc) >= 2 && acc[len(acc)-2].Artifact == fused.Artifact
				if !grandparentShares {
					acc = acc[:len(acc)-1]
					acc = append(acc, fused)
					continue
				}
			}
		}
		acc = append(acc, entry)
	}
	return acc
}

func writeDependencies(buf *bytes.Buffer, d dependencies.Dependencies) {
	buf.WriteString("dependencies:\n")
	groups := d.Groups()
	if len(groups) == 0 {
		buf.WriteString("  {}\n")
		return
	}
	for gi, g := range groups {
		if gi > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString("  " + string(g) + ":\n")

		artifacts := d.Artifacts(g)
		flat := make([]compactedEntry, 0, len(artifacts))
		for _, a := range artifacts {
			r, _ := d.Get(g, a)
			flat = append(flat, compactedEntry{Artifact: a, Record: r})
		}
		for _, entry := range compactGroup(flat) {
			writeRecord(buf, entry.Artifact, entry.Record)
		}
	}
}

func writeRecord(buf *bytes.Buffer, artifact coordinate.ArtifactOrProject, r project.Record) {
	buf.WriteString("    " + string(artifact) + ":\n")

	if r.Exclude != nil && !r.Exclude.Empty() {
		buf.WriteString("      exclude: " + joinGroupArtifacts(r.Exclude) + "\n")
	}
	if r.Exports != nil && !r.Exports.Empty() {
		buf.WriteString("      exports: " + joinGroupArtifacts(r.Exports) + "\n")
	}
	buf.WriteString("      lang: " + r.Lang.String() + "\n")
	if r.Modules != nil && !r.Modules.Empty() {
		buf.WriteString("      modules: " + joinSubprojects(r.Modules) + "\n")
	}
	if r.HasVersion {
		buf.WriteString("      version: " + quote(r.Version.String()) + "\n")
	}
}

func joinGroupArtifacts(set interface{ Values() []interface{} }) string {
	values := set.Values()
	items := make([]string, len(values))
	for i, v := range values {
		items[i] = v.(project.GroupArtifact).String()
	}
	return "[ " + strings.Join(items, ", ") + " ]"
}

func joinSubprojects(set interface{ Values() []interface{} }) string {
	values := set.Values()
	items := make([]string, len(values))
	for i, v := range values {
		items[i] = string(v.(coordinate.Subproject))
	}
	return "[ " + strings.Join(items, ", ") + " ]"
}

func writeReplacements(buf *bytes.Buffer, r replacement.Replacements) {
	buf.WriteString("replacements:\n")
	byUnversioned := r.ByUnversioned()
	if len(byUnversioned) == 0 {
		buf.WriteString("  {}\n")
		return
	}

	type entry struct {
		uv  coordinate.UnversionedCoordinate
		rec replacement.Record
	}
	entries := make([]entry, 0, len(byUnversioned))
	for uv, rec := range byUnversioned {
		entries = append(entries, entry{uv, rec})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].uv.String() < entries[j].uv.String() })

	var currentGroup coordinate.MavenGroup
	first := true
	for _, e := range entries {
		if first || e.uv.Group != currentGroup {
			if !first {
				buf.WriteString("\n")
			}
			first = false
			currentGroup = e.uv.Group
			buf.WriteString("  " + string(currentGroup) + ":\n")
		}
		buf.WriteString("    " + string(e.uv.Artifact) + ": " + e.rec.Target.String() + "\n")
	}
}
