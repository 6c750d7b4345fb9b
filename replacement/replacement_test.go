package replacement

import (
	"testing"

	"github.com/go-mvndeps/mvndeps/coordinate"
)

func mustTarget(t *testing.T, s string) coordinate.BazelTarget {
	t.Helper()
	bt, err := coordinate.NewBazelTarget(s)
	if err != nil {
		t.Fatalf("NewBazelTarget(%q): %v", s, err)
	}
	return bt
}

func TestCombineDisjointKeysPassThrough(t *testing.T) {
	a := FromMap(map[coordinate.MavenGroup]map[coordinate.ArtifactOrProject]Record{
		"com.g": {"bar": {Lang: coordinate.Java, Target: mustTarget(t, "//repo:bar")}},
	})
	b := FromMap(map[coordinate.MavenGroup]map[coordinate.ArtifactOrProject]Record{
		"com.g": {"baz": {Lang: coordinate.Java, Target: mustTarget(t, "//repo:baz")}},
	})
	res := Combine(a, b)
	merged, ok := res.Value()
	if !ok {
		t.Fatalf("Combine failed: %v", res.Errs())
	}
	if _, ok := merged.Lookup("com.g", "bar"); !ok {
		t.Error("expected bar to survive disjoint combine")
	}
	if _, ok := merged.Lookup("com.g", "baz"); !ok {
		t.Error("expected baz to survive disjoint combine")
	}
}

func TestCombineEqualRecordsSucceed(t *testing.T) {
	rec := Record{Lang: coordinate.Java, Target: mustTarget(t, "//repo:bar")}
	a := FromMap(map[coordinate.MavenGroup]map[coordinate.ArtifactOrProject]Record{"com.g": {"bar": rec}})
	b := FromMap(map[coordinate.MavenGroup]map[coordinate.ArtifactOrProject]Record{"com.g": {"bar": rec}})
	res := Combine(a, b)
	if !res.Ok() {
		t.Fatalf("Combine of equal records should succeed: %v", res.Errs())
	}
}

func TestCombineCollisionEmitsOneErrorPerKey(t *testing.T) {
	a := FromMap(map[coordinate.MavenGroup]map[coordinate.ArtifactOrProject]Record{
		"com.g": {"bar": {Lang: coordinate.Java, Target: mustTarget(t, "//repo:bar")}},
	})
	b := FromMap(map[coordinate.MavenGroup]map[coordinate.ArtifactOrProject]Record{
		"com.g": {"bar": {Lang: coordinate.Java, Target: mustTarget(t, "//other:bar")}},
	})
	res := Combine(a, b)
	if res.Ok() {
		t.Fatal("Combine should fail on conflicting targets")
	}
	if len(res.Errs()) != 1 {
		t.Fatalf("Combine errors = %v, want exactly 1", res.Errs())
	}
	if _, ok := res.Errs()[0].(*CollisionError); !ok {
		t.Errorf("error type = %T, want *CollisionError", res.Errs()[0])
	}
}

func TestCombineOptionalIdentityOnAbsence(t *testing.T) {
	res := CombineOptional(nil, nil)
	v, _ := res.Value()
	if v != nil {
		t.Error("CombineOptional(nil, nil) should yield nil")
	}

	r := New()
	res2 := CombineOptional(&r, nil)
	v2, ok := res2.Value()
	if !ok || v2 != &r {
		t.Error("CombineOptional(a, nil) should return a unchanged")
	}
}
