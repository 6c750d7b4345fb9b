package mvndeps

import (
	"github.com/go-mvndeps/mvndeps/coordinate"
	"github.com/go-mvndeps/mvndeps/project"
)

// VersionChange reports one unversioned coordinate whose declared version
// differs between two models.
type VersionChange struct {
	Unversioned coordinate.UnversionedCoordinate
	From, To    string
}

// Diff is the pure structural difference between two canonical Models:
// which unversioned coordinates were added or removed, and which kept
// artifacts changed version. It compares dependencies only; replacements
// and options are not compared.
type Diff struct {
	Added           []coordinate.UnversionedCoordinate
	Removed         []coordinate.UnversionedCoordinate
	ChangedVersions []VersionChange
}

// IsEmpty reports whether the two models were identical under Diff.
func (d Diff) IsEmpty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.ChangedVersions) == 0
}

// Diff computes the structural difference from m (the "before" state) to
// other (the "after" state), comparing declared unversioned coordinates and
// their versions. Like the rest of this package, Diff is pure: it performs
// no I/O and mutates neither model.
func (m Model) Diff(other Model) Diff {
	before := m.Dependencies.UnversionedToProj()
	after := other.Dependencies.UnversionedToProj()

	var d Diff
	for _, k := range before.Keys() {
		uv := k.(coordinate.UnversionedCoordinate)
		if _, ok := after.Get(uv); !ok {
			d.Removed = append(d.Removed, uv)
		}
	}
	for _, k := range after.Keys() {
		uv := k.(coordinate.UnversionedCoordinate)
		newVal, _ := after.Get(uv)
		newRec := newVal.(project.Record)

		oldVal, existed := before.Get(uv)
		if !existed {
			d.Added = append(d.Added, uv)
			continue
		}
		oldRec := oldVal.(project.Record)
		if oldRec.HasVersion && newRec.HasVersion && oldRec.Version.String() != newRec.Version.String() {
			d.ChangedVersions = append(d.ChangedVersions, VersionChange{
				Unversioned: uv,
				From:        oldRec.Version.String(),
				To:          newRec.Version.String(),
			})
		}
	}
	return d
}
