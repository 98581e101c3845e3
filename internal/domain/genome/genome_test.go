package genome

import "testing"

func TestDecode_KnownGenome(t *testing.T) {
	// Genoma real de 72 dígitos decimales.
	genes := "512955438081049600613224346938352058409509756310147795204209859701881294"

	got := Decode(genes)
	want := []TraitGroup{
		"5c14", "bdce", "014a", "0318", "846a", "0c80",
		"8c60", "294a", "6314", "a34a", "1295", "b9ce",
	}

	if len(got) != TraitCount {
		t.Fatalf("expected %d groups, got %d", TraitCount, len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("group %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestDecode_ShapeAndDeterminism(t *testing.T) {
	cases := []string{
		"0",
		"5",
		"623332824742562578012939411278099",
		"512955438081049600613224346938352058409509756310147795204209859701881294",
	}

	for _, genes := range cases {
		a := Decode(genes)
		if len(a) != TraitCount {
			t.Fatalf("genes=%q: expected %d groups, got %d", genes, TraitCount, len(a))
		}
		for i, g := range a {
			if len(g) != GroupLen {
				t.Fatalf("genes=%q group %d: expected len %d, got %q", genes, i, GroupLen, g)
			}
		}

		b := Decode(genes)
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("genes=%q: decode is not deterministic at group %d", genes, i)
			}
		}
	}
}

func TestDecode_Zero(t *testing.T) {
	got := Decode("0")
	for i, g := range got {
		if g != "0000" {
			t.Fatalf("group %d: expected 0000, got %q", i, g)
		}
	}
}

func TestDecode_Malformed(t *testing.T) {
	cases := []string{
		"",
		"abc",
		"12x4",
		"  ",
		"1.5",
		// negativo: fuera de dominio, se trata como malformado
		"-42",
	}

	for _, genes := range cases {
		if got := Decode(genes); len(got) != 0 {
			t.Fatalf("genes=%q: expected empty result, got %v", genes, got)
		}
	}
}

func TestTraitGroup_Dominant(t *testing.T) {
	if d := TraitGroup("1234").Dominant(); d != "4" {
		t.Fatalf("expected dominant 4, got %q", d)
	}
	if r := TraitGroup("1234").Recessive(); r != "123" {
		t.Fatalf("expected recessive 123, got %q", r)
	}
	if d := TraitGroup("").Dominant(); d != "" {
		t.Fatalf("expected empty dominant for empty group, got %q", d)
	}
}
