package match

import (
	"path/filepath"
	"testing"
)

func newTestMatcher(profiles ...Profile) *Matcher {
	m := New(DefaultSettings(), nil)
	for _, profile := range profiles {
		m.AddCompany(profile)
	}
	return m
}

func TestFindBestMatchExact(t *testing.T) {
	m := newTestMatcher(Profile{Name: "Area Finanza S.p.A."})

	company, score, alias := m.FindBestMatch("Area Finanza S.p.A.")
	if company != "Area Finanza S.p.A." {
		t.Fatalf("company = %q", company)
	}
	if score != 100 {
		t.Errorf("exact match score = %v, want 100", score)
	}
	if alias != "area finanza spa" {
		t.Errorf("alias = %q", alias)
	}
}

func TestFindBestMatchAlias(t *testing.T) {
	m := newTestMatcher(Profile{Name: "Area Finanza S.p.A."})

	company, score, _ := m.FindBestMatch("fattura area finanza gennaio")
	if company != "Area Finanza S.p.A." {
		t.Fatalf("company = %q, score %v", company, score)
	}
	if score < 95 {
		t.Errorf("contained alias score = %v, want >= 95", score)
	}
}

func TestFindBestMatchBelowThreshold(t *testing.T) {
	m := newTestMatcher(Profile{Name: "Area Finanza S.p.A."})

	company, score, _ := m.FindBestMatch("sky")
	if company != "" || score != 0 {
		t.Errorf("unrelated text matched: %q with score %v", company, score)
	}
}

func TestFindBestMatchEmptyInputs(t *testing.T) {
	m := newTestMatcher()
	if company, _, _ := m.FindBestMatch("anything"); company != "" {
		t.Error("matcher with no companies should never match")
	}

	m = newTestMatcher(Profile{Name: "Acme"})
	if company, _, _ := m.FindBestMatch("   "); company != "" {
		t.Error("blank text should never match")
	}
}

func TestRequiredKeywords(t *testing.T) {
	m := newTestMatcher(Profile{
		Name:             "Area Finanza S.p.A.",
		RequiredKeywords: []string{"finanza"},
	})

	if company, _, _ := m.FindBestMatch("area finanza fattura"); company == "" {
		t.Error("text containing the required keyword should match")
	}

	m = newTestMatcher(Profile{
		Name:             "Area Finanza S.p.A.",
		RequiredKeywords: []string{"fattura", "gennaio"},
	})
	if company, _, _ := m.FindBestMatch("area finanza spa fattura"); company != "" {
		t.Error("missing one of several required keywords should reject the match")
	}
	if company, _, _ := m.FindBestMatch("area finanza spa fattura gennaio"); company == "" {
		t.Error("all required keywords present should match")
	}
}

func TestExcludedStandalone(t *testing.T) {
	m := newTestMatcher(Profile{
		Name:    "Alpha Beta",
		Aliases: []string{"gamma"},
	})
	if company, _, _ := m.FindBestMatch("gamma"); company == "" {
		t.Fatal("sanity: the alias should match before exclusion is configured")
	}

	m = newTestMatcher(Profile{
		Name:               "Alpha Beta",
		Aliases:            []string{"gamma"},
		ExcludedStandalone: []string{"gamma"},
	})
	if company, _, _ := m.FindBestMatch("gamma"); company != "" {
		t.Error("excluded alias should not match on its own")
	}
	if company, _, _ := m.FindBestMatch("alpha beta"); company == "" {
		t.Error("the company name should still match")
	}
}

func TestFromFilename(t *testing.T) {
	m := newTestMatcher(Profile{Name: "Area Finanza S.p.A."})

	matches := m.FromFilename("fattura_area_finanza_2024-01-15.pdf")
	if len(matches) == 0 {
		t.Fatal("expected a match")
	}
	if matches[0].Company != "Area Finanza S.p.A." {
		t.Errorf("company = %q", matches[0].Company)
	}
	if matches[0].Score < 92 {
		t.Errorf("score = %v, want >= threshold", matches[0].Score)
	}
}

func TestFromFilenameNoFalsePositive(t *testing.T) {
	m := newTestMatcher(Profile{Name: "Area Finanza S.p.A."})

	if matches := m.FromFilename("sky_document.pdf"); len(matches) != 0 {
		t.Errorf("unrelated filename matched: %+v", matches)
	}
}

func TestFromFilenameSingleTokenGuards(t *testing.T) {
	m := newTestMatcher(Profile{Name: "Fincantieri"})

	matches := m.FromFilename("contratto_fincantieri_maggio.pdf")
	if len(matches) == 0 {
		t.Fatal("single distinctive token should match")
	}

	// A bare legal form never stands for a company on its own.
	m = newTestMatcher(Profile{Name: "SPA"})
	if matches := m.FromFilename("relax_day.pdf"); len(matches) != 0 {
		t.Errorf("unexpected matches: %+v", matches)
	}
}

func TestFromPathFilenamePrecedence(t *testing.T) {
	m := newTestMatcher(Profile{Name: "Area Finanza S.p.A."})

	path := filepath.Join("docs", "area_finanza", "fattura_area_finanza.pdf")
	matches := m.FromPath(path)
	if len(matches) == 0 {
		t.Fatal("expected a match")
	}
	if matches[0].Score != 100 {
		t.Errorf("filename match with bonus should cap at 100, got %v", matches[0].Score)
	}
}

func TestFromPathFolderFallback(t *testing.T) {
	settings := DefaultSettings()
	settings.Threshold = 85
	m := New(settings, nil)
	m.AddCompany(Profile{Name: "Fincantieri"})

	path := filepath.Join("archive", "fincantieri", "scan001.pdf")
	matches := m.FromPath(path)
	if len(matches) == 0 {
		t.Fatal("expected a folder-derived match")
	}
	if matches[0].Score != 90 {
		t.Errorf("path match score = %v, want 100 - penalty = 90", matches[0].Score)
	}
}

func TestFromPathPenaltyBelowThreshold(t *testing.T) {
	m := newTestMatcher(Profile{Name: "Fincantieri"})

	// The folder alone scores 100, but the penalty drags it to 90, below
	// the default threshold of 92.
	path := filepath.Join("archive", "fincantieri", "scan001.pdf")
	if matches := m.FromPath(path); len(matches) != 0 {
		t.Errorf("penalized path match should be dropped: %+v", matches)
	}
}

func TestThresholdMonotonicity(t *testing.T) {
	paths := []string{
		filepath.Join("docs", "fattura_fincantieri.pdf"),
		filepath.Join("archive", "fincantieri", "scan001.pdf"),
		filepath.Join("misc", "notes.txt"),
	}
	thresholds := []float64{80, 85, 90, 92, 95, 99}

	matchSet := func(threshold float64) map[string]bool {
		settings := DefaultSettings()
		settings.Threshold = threshold
		m := New(settings, nil)
		m.AddCompany(Profile{Name: "Fincantieri"})

		set := make(map[string]bool)
		for _, path := range paths {
			for _, match := range m.FromPath(path) {
				set[path+"|"+match.Company] = true
			}
		}
		return set
	}

	previous := matchSet(thresholds[0])
	if len(previous) != 2 {
		t.Fatalf("at threshold %v expected filename and folder matches, got %v", thresholds[0], previous)
	}
	for _, threshold := range thresholds[1:] {
		current := matchSet(threshold)
		for key := range current {
			if !previous[key] {
				t.Errorf("threshold %v introduced match %q absent at a lower threshold", threshold, key)
			}
		}
		previous = current
	}
	if len(previous) != 1 {
		t.Errorf("at threshold %v only the perfect filename match should survive, got %v", thresholds[len(thresholds)-1], previous)
	}
}

func TestDeterministicTieBreak(t *testing.T) {
	m := newTestMatcher(
		Profile{Name: "Zeta Logistics", Aliases: []string{"shared"}},
		Profile{Name: "Alpha Logistics", Aliases: []string{"shared"}},
	)

	for i := 0; i < 10; i++ {
		matches := m.FromFilename("invoice_shared_march.pdf")
		if len(matches) == 0 {
			t.Fatal("expected a match")
		}
		if matches[0].Company != "Alpha Logistics" {
			t.Fatalf("tie should break by registration order, got %q first", matches[0].Company)
		}
	}
}

func TestAddCompanyReplaces(t *testing.T) {
	m := newTestMatcher(Profile{Name: "Acme", Aliases: []string{"old alias"}})
	m.AddCompany(Profile{Name: "Acme", Aliases: []string{"fresh alias"}})

	if got := m.Companies(); len(got) != 1 {
		t.Fatalf("Companies() = %v, want a single entry", got)
	}
	aliases := m.Aliases("Acme")
	for _, alias := range aliases {
		if alias == "old alias" {
			t.Fatalf("stale alias survived replacement: %v", aliases)
		}
	}
}

func TestCompaniesSorted(t *testing.T) {
	m := newTestMatcher(
		Profile{Name: "Zeta"},
		Profile{Name: "Alpha"},
		Profile{Name: "Mid"},
	)
	got := m.Companies()
	want := []string{"Alpha", "Mid", "Zeta"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Companies() = %v, want %v", got, want)
		}
	}
}
