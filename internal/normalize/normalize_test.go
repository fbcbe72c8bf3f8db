package normalize

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	n := New()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercases and trims", input: "  Area Finanza  ", want: "area finanza"},
		{name: "strips accents", input: "Società Però", want: "societa pero"},
		{name: "canonicalizes dotted legal form", input: "Area Finanza S.p.A.", want: "area finanza spa"},
		{name: "canonicalizes spelled legal form", input: "Acme Incorporated", want: "acme inc"},
		{name: "drops punctuation", input: "acme & partners, s.r.l.", want: "acme partners srl"},
		{name: "collapses whitespace", input: "acme    holding\tgroup", want: "acme holding group"},
		{name: "empty input", input: "   ", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	n := New()
	inputs := []string{"Area Finanza S.p.A.", "Società Générale", "ACME Corp."}
	for _, input := range inputs {
		once := n.Normalize(input)
		twice := n.Normalize(once)
		if once != twice {
			t.Errorf("Normalize is not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestGenerateAliases(t *testing.T) {
	n := New()

	got := n.GenerateAliases("Area Finanza S.p.A.")
	want := []string{"area finanza spa", "area finanza", "afs"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("GenerateAliases = %v, want %v", got, want)
	}
}

func TestGenerateAliasesStripsCommonWords(t *testing.T) {
	n := New()

	got := n.GenerateAliases("Acme Consulting Group S.r.l.")
	assertContains := func(alias string) {
		t.Helper()
		for _, a := range got {
			if a == alias {
				return
			}
		}
		t.Errorf("aliases %v missing %q", got, alias)
	}
	assertContains("acme consulting group srl")
	assertContains("acme consulting group")
	assertContains("acme srl")
	assertContains("acme")
}

func TestGenerateAliasesSingleWord(t *testing.T) {
	n := New()

	got := n.GenerateAliases("Acme")
	want := []string{"acme"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("GenerateAliases = %v, want %v", got, want)
	}
}

func TestFilenameTokens(t *testing.T) {
	n := New()

	tests := []struct {
		name     string
		filename string
		want     []string
	}{
		{
			name:     "separators and extension",
			filename: "fattura_area-finanza.2024.pdf",
			want:     []string{"fattura", "finanza"},
		},
		{
			name:     "drops short date and generic tokens",
			filename: "report_acme_2024-01-15_v2.xlsx",
			want:     []string{"acme"},
		},
		{
			name:     "no usable tokens",
			filename: "2024_01.pdf",
			want:     []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.FilenameTokens(tt.filename)
			if len(got) != len(tt.want) {
				t.Fatalf("FilenameTokens(%q) = %v, want %v", tt.filename, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("FilenameTokens(%q) = %v, want %v", tt.filename, got, tt.want)
				}
			}
		})
	}
}

func TestWithGenericWords(t *testing.T) {
	n := New(WithGenericWords([]string{"invoice"}))

	if !n.IsGenericWord("Invoice") {
		t.Error("expected configured word to be generic")
	}
	if n.IsGenericWord("area") {
		t.Error("default generic set should be replaced, not merged")
	}
}

func TestIsDateOrNumber(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"2024", true},
		{"20240115", true},
		{"15-01-2024", true},
		{"2024/01/15", true},
		{"3,14", true},
		{"42", true},
		{"finanza", false},
		{"a2024", false},
	}
	for _, tt := range tests {
		if got := IsDateOrNumber(tt.token); got != tt.want {
			t.Errorf("IsDateOrNumber(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}

func TestIsLegalForm(t *testing.T) {
	for _, token := range []string{"spa", "S.p.A.", "srl", "GmbH", "Limited"} {
		if !IsLegalForm(token) {
			t.Errorf("expected %q to be a legal form", token)
		}
	}
	if IsLegalForm("finanza") {
		t.Error("finanza should not be a legal form")
	}
}
