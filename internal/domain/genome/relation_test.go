package genome

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		name   string
		matron TraitGroup
		sire   TraitGroup
		kitten TraitGroup
		want   Relation
	}{
		{"all share", "1234", "5674", "9994", RelationAllShare},
		{"parents only", "1235", "5675", "9996", RelationParentsOnlyShare},
		{"matron offspring", "1235", "5676", "9995", RelationMatronOffspringShare},
		{"sire offspring", "1236", "5675", "9995", RelationSireOffspringShare},
		{"all distinct", "1236", "5677", "9998", RelationMutation},
		{"missing matron", "", "5677", "9998", RelationMutation},
		{"missing sire", "1236", "", "9998", RelationMutation},
		{"missing kitten", "1236", "5677", "", RelationMutation},
		{"all missing", "", "", "", RelationMutation},
	}

	for _, tc := range cases {
		got := Classify(tc.matron, tc.sire, tc.kitten)
		if got != tc.want {
			t.Fatalf("%s: Classify(%q,%q,%q) expected %q, got %q",
				tc.name, tc.matron, tc.sire, tc.kitten, tc.want, got)
		}
	}
}

func TestClassify_OnlyDominantMatters(t *testing.T) {
	// Los recesivos no influyen: solo cuenta el último nibble.
	got := Classify("aaa4", "bbb4", "ccc4")
	if got != RelationAllShare {
		t.Fatalf("expected allShare ignoring recessives, got %q", got)
	}
}
