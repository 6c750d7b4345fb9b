package version

import (
	"math/rand"
	"testing"
)

func TestCompareFixtures(t *testing.T) {
	// Ordering pairs exercising the pre-release, numeric-segment, and
	// alpha-vs-numeric comparison rules.
	tests := []struct {
		lesser, greater string
	}{
		{"1.0-RC", "1.0-2"},
		{"1.0-RC", "1.0"},
		{"1.0", "1.0.1"},
		{"2.11.8", "2.11.11"},
		{"2.11.11", "2.12.0"},
	}

	for _, tt := range tests {
		t.Run(tt.lesser+"_"+tt.greater, func(t *testing.T) {
			a, b := New(tt.lesser), New(tt.greater)
			if c := Compare(a, b); c >= 0 {
				t.Errorf("Compare(%q, %q) = %d, want < 0", tt.lesser, tt.greater, c)
			}
			if c := Compare(b, a); c <= 0 {
				t.Errorf("Compare(%q, %q) = %d, want > 0", tt.greater, tt.lesser, c)
			}
		})
	}
}

func TestCompareEqual(t *testing.T) {
	tests := [][2]string{
		{"1.0.0", "1.0.0"},
		{"", ""},
		{"2.11.11", "2.11.11"},
	}
	for _, tt := range tests {
		if c := Compare(New(tt[0]), New(tt[1])); c != 0 {
			t.Errorf("Compare(%q, %q) = %d, want 0", tt[0], tt[1], c)
		}
	}
}

func TestTokenizeAlternatingRuns(t *testing.T) {
	tests := []struct {
		input string
		want  []token
	}{
		{"1.0.0", []token{
			{kind: tokenNumeric, num: 1, str: "1"},
			{kind: tokenNumeric, num: 0, str: "0"},
			{kind: tokenNumeric, num: 0, str: "0"},
		}},
		{"1.0-RC", []token{
			{kind: tokenNumeric, num: 1, str: "1"},
			{kind: tokenNumeric, num: 0, str: "0"},
			{kind: tokenAlpha, str: "RC"},
		}},
		{"2.0-rc1", []token{
			{kind: tokenNumeric, num: 2, str: "2"},
			{kind: tokenNumeric, num: 0, str: "0"},
			{kind: tokenAlpha, str: "rc"},
			{kind: tokenNumeric, num: 1, str: "1"},
		}},
		{"", nil},
	}

	for _, tt := range tests {
		got := tokenize(tt.input)
		if len(got) != len(tt.want) {
			t.Fatalf("tokenize(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("tokenize(%q)[%d] = %+v, want %+v", tt.input, i, got[i], tt.want[i])
			}
		}
	}
}

// TestTotalOrder checks reflexivity, antisymmetry, and transitivity on
// random triples.
func TestTotalOrder(t *testing.T) {
	alphabet := []string{"1", "2", "10", "0", "a", "b", "RC", "alpha", "rc1", ""}
	rng := rand.New(rand.NewSource(1))

	randVersion := func() Version {
		n := 1 + rng.Intn(3)
		s := ""
		for i := 0; i < n; i++ {
			if i > 0 {
				if rng.Intn(2) == 0 {
					s += "."
				} else {
					s += "-"
				}
			}
			s += alphabet[rng.Intn(len(alphabet))]
		}
		return New(s)
	}

	for i := 0; i < 500; i++ {
		a, b, c := randVersion(), randVersion(), randVersion()

		// Reflexivity.
		if Compare(a, a) != 0 {
			t.Fatalf("Compare(%q, %q) != 0", a, a)
		}

		// Antisymmetry.
		if Compare(a, b) != -Compare(b, a) {
			if !(Compare(a, b) == 0 && Compare(b, a) == 0) {
				t.Fatalf("antisymmetry violated for %q, %q: %d vs %d", a, b, Compare(a, b), Compare(b, a))
			}
		}

		// Transitivity.
		if Compare(a, b) <= 0 && Compare(b, c) <= 0 {
			if Compare(a, c) > 0 {
				t.Fatalf("transitivity violated: %q <= %q <= %q but %q > %q", a, b, c, a, c)
			}
		}
	}
}

func TestMax(t *testing.T) {
	if got := MaxString("2.11.8", "2.11.11"); got != "2.11.11" {
		t.Errorf("MaxString(2.11.8, 2.11.11) = %q, want 2.11.11", got)
	}
	if got := MaxString("1.0", "1.0"); got != "1.0" {
		t.Errorf("MaxString(1.0, 1.0) = %q, want 1.0", got)
	}
}

func TestSortStrings(t *testing.T) {
	versions := []string{"2.12.0", "1.0-RC", "1.0", "1.0.1", "2.11.11", "2.11.8"}
	want := []string{"1.0-RC", "1.0", "1.0.1", "2.11.8", "2.11.11", "2.12.0"}

	SortStrings(versions)
	for i := range versions {
		if versions[i] != want[i] {
			t.Fatalf("SortStrings = %v, want %v", versions, want)
		}
	}
}
