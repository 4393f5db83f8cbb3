package model

import "testing"

func TestClearanceKindValid(t *testing.T) {
	valid := []ClearanceKind{
		ClearanceSeeding, ClearanceDamaged, ClearanceExpired,
		ClearanceObsolete, ClearanceRecall, ClearanceOther,
	}
	for _, k := range valid {
		if !k.Valid() {
			t.Errorf("Valid() = false for %q, want true", k)
		}
	}

	invalid := []ClearanceKind{"", "SEEDING", "lost", "seeding "}
	for _, k := range invalid {
		if k.Valid() {
			t.Errorf("Valid() = true for %q, want false", k)
		}
	}
}
