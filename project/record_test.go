package project

import (
	"testing"

	"github.com/go-mvndeps/mvndeps/coordinate"
	"github.com/go-mvndeps/mvndeps/version"
)

func TestFlattenNoModules(t *testing.T) {
	r := Record{Lang: coordinate.Java, Version: version.New("1.0"), HasVersion: true}
	got := r.Flatten("bar")
	if len(got) != 1 || got[0].Artifact != "bar" {
		t.Fatalf("Flatten(no modules) = %+v", got)
	}
	if got[0].Record.Modules != nil {
		t.Errorf("flattened record should have nil Modules")
	}
}

func TestFlattenWithModules(t *testing.T) {
	r := Record{
		Lang:       coordinate.Java,
		Version:    version.New("1.0"),
		HasVersion: true,
		Modules:    NewSubprojectSet("x", "y"),
	}
	got := r.Flatten("bar")
	if len(got) != 2 {
		t.Fatalf("Flatten(with modules) len = %d, want 2", len(got))
	}
	if got[0].Artifact != "bar-x" || got[1].Artifact != "bar-y" {
		t.Errorf("Flatten artifacts = %q, %q, want bar-x, bar-y", got[0].Artifact, got[1].Artifact)
	}
}

func TestWithModule(t *testing.T) {
	r := Record{Lang: coordinate.Java}
	out := r.WithModule("m")
	if subs := subprojects(out.Modules); len(subs) != 1 || subs[0] != "m" {
		t.Fatalf("WithModule(empty) = %v, want [m]", subs)
	}

	r2 := Record{Lang: coordinate.Java, Modules: NewSubprojectSet("a", "b")}
	out2 := r2.WithModule("m")
	subs2 := subprojects(out2.Modules)
	want := map[string]bool{"m-a": true, "m-b": true}
	if len(subs2) != 2 {
		t.Fatalf("WithModule(existing) len = %d, want 2", len(subs2))
	}
	for _, s := range subs2 {
		if !want[string(s)] {
			t.Errorf("unexpected rewritten subproject %q", s)
		}
	}
}

func TestCombineModulesUnion(t *testing.T) {
	a := Record{Lang: coordinate.Java, Version: version.New("2.0"), HasVersion: true, Modules: NewSubprojectSet("x", "y")}
	b := Record{Lang: coordinate.Java, Version: version.New("2.0"), HasVersion: true, Modules: NewSubprojectSet("y", "z")}

	merged, ok := a.CombineModules(b)
	if !ok {
		t.Fatal("CombineModules should succeed for matching lang/version")
	}
	subs := subprojects(merged.Modules)
	want := map[string]bool{"x": true, "y": true, "z": true}
	if len(subs) != 3 {
		t.Fatalf("merged modules = %v, want union of 3", subs)
	}
	for _, s := range subs {
		if !want[string(s)] {
			t.Errorf("unexpected module %q in merge", s)
		}
	}
}

func TestCombineModulesAddsBareSentinel(t *testing.T) {
	a := Record{Lang: coordinate.Java, Version: version.New("2.0"), HasVersion: true}
	b := Record{Lang: coordinate.Java, Version: version.New("2.0"), HasVersion: true, Modules: NewSubprojectSet("x")}

	merged, ok := a.CombineModules(b)
	if !ok {
		t.Fatal("CombineModules should succeed")
	}
	subs := subprojects(merged.Modules)
	foundBare, foundX := false, false
	for _, s := range subs {
		if s == "" {
			foundBare = true
		}
		if s == "x" {
			foundX = true
		}
	}
	if !foundBare || !foundX {
		t.Errorf("merged modules = %v, want bare sentinel + x", subs)
	}
}

func TestCombineModulesRejectsVersionMismatch(t *testing.T) {
	a := Record{Lang: coordinate.Java, Version: version.New("1.0"), HasVersion: true}
	b := Record{Lang: coordinate.Java, Version: version.New("2.0"), HasVersion: true}
	if _, ok := a.CombineModules(b); ok {
		t.Error("CombineModules should fail on differing versions")
	}
}

func TestCombineModulesRejectsExportMismatch(t *testing.T) {
	a := Record{Lang: coordinate.Java, Exports: NewGroupArtifactSet(GroupArtifact{"g", "x"})}
	b := Record{Lang: coordinate.Java, Exports: NewGroupArtifactSet(GroupArtifact{"g", "y"})}
	if _, ok := a.CombineModules(b); ok {
		t.Error("CombineModules should fail on differing exports")
	}
}

func TestVersionedDependenciesEmptyWithoutVersion(t *testing.T) {
	r := Record{Lang: coordinate.Java}
	if deps := r.VersionedDependencies("g", "a"); len(deps) != 0 {
		t.Errorf("VersionedDependencies without version = %v, want empty", deps)
	}
}

func TestVersionedDependenciesBareArtifact(t *testing.T) {
	r := Record{Lang: coordinate.Java, Version: version.New("1.0"), HasVersion: true}
	deps := r.VersionedDependencies("g", "a")
	if len(deps) != 1 || deps[0].String() != "g:a:1.0" {
		t.Fatalf("VersionedDependencies = %v, want [g:a:1.0]", deps)
	}
}

func TestVersionedDependenciesPerModule(t *testing.T) {
	r := Record{Lang: coordinate.Java, Version: version.New("1.0"), HasVersion: true, Modules: NewSubprojectSet("x", "y")}
	deps := r.VersionedDependencies("g", "a")
	if len(deps) != 2 {
		t.Fatalf("VersionedDependencies = %v, want 2 entries", deps)
	}
}

func TestAllDependenciesAlwaysNonEmpty(t *testing.T) {
	r := Record{Lang: coordinate.Java}
	deps := r.AllDependencies("g", "a")
	if len(deps) != 1 || deps[0].String() != "g:a" {
		t.Fatalf("AllDependencies(no version) = %v, want [g:a]", deps)
	}
}
