package mvndeps

import (
	"testing"
)

func TestDiffDetectsAddedAndRemoved(t *testing.T) {
	before := singleModel("g", "a", "1.0")
	after := singleModel("g", "b", "1.0")

	d := before.Diff(after)
	if len(d.Added) != 1 || d.Added[0].String() != "g:b" {
		t.Errorf("Added = %v, want [g:b]", d.Added)
	}
	if len(d.Removed) != 1 || d.Removed[0].String() != "g:a" {
		t.Errorf("Removed = %v, want [g:a]", d.Removed)
	}
}

func TestDiffDetectsVersionChange(t *testing.T) {
	before := singleModel("g", "a", "1.0")
	after := singleModel("g", "a", "1.1")

	d := before.Diff(after)
	if len(d.ChangedVersions) != 1 {
		t.Fatalf("ChangedVersions = %v, want 1 entry", d.ChangedVersions)
	}
	change := d.ChangedVersions[0]
	if change.Unversioned.String() != "g:a" || change.From != "1.0" || change.To != "1.1" {
		t.Errorf("ChangedVersions[0] = %+v, want g:a 1.0->1.1", change)
	}
}

func TestDiffEmptyForIdenticalModels(t *testing.T) {
	m := singleModel("g", "a", "1.0")
	d := m.Diff(m)
	if !d.IsEmpty() {
		t.Errorf("Diff(m, m) = %+v, want empty", d)
	}
}
