package match

import (
	"path/filepath"
	"sort"
	"strings"

	"docshelf/internal/normalize"
	"docshelf/internal/textutil"
)

// Profile declares a company and its matching rules. Profiles are plain
// data supplied by the configuration layer and read-only during a run.
type Profile struct {
	Name               string
	Aliases            []string
	RequiredKeywords   []string
	ExcludedStandalone []string
}

// Settings tunes the matcher's scoring behavior.
type Settings struct {
	Threshold     float64
	FilenameBonus float64
	PathPenalty   float64
}

// DefaultSettings mirrors the documented configuration defaults.
func DefaultSettings() Settings {
	return Settings{Threshold: 92, FilenameBonus: 15, PathPenalty: 10}
}

// Match is one ranked candidate for a file.
type Match struct {
	Company     string
	Score       float64
	MatchedText string
}

type companyEntry struct {
	name               string
	aliases            []string
	requiredKeywords   []string
	excludedStandalone map[string]struct{}
}

// Matcher owns the normalized alias sets for the lifetime of one engine
// instance. It is not safe for concurrent use.
type Matcher struct {
	settings Settings
	norm     *normalize.Normalizer

	// companies stays sorted by name so iteration order, and therefore
	// tie-breaking, is deterministic.
	companies []*companyEntry
	byName    map[string]*companyEntry
}

// New builds a Matcher with the given settings and normalizer. A nil
// normalizer gets the default word sets.
func New(settings Settings, norm *normalize.Normalizer) *Matcher {
	if norm == nil {
		norm = normalize.New()
	}
	return &Matcher{
		settings: settings,
		norm:     norm,
		byName:   make(map[string]*companyEntry),
	}
}

// AddCompany registers a company profile, replacing any prior entry with
// the same name. The alias set is the union of auto-generated variants,
// the normalized caller-provided aliases, and the normalized name itself.
func (m *Matcher) AddCompany(profile Profile) {
	var aliases []string
	seen := make(map[string]struct{})
	add := func(alias string) {
		if alias == "" {
			return
		}
		if _, dup := seen[alias]; dup {
			return
		}
		seen[alias] = struct{}{}
		aliases = append(aliases, alias)
	}

	for _, alias := range m.norm.GenerateAliases(profile.Name) {
		add(alias)
	}
	for _, alias := range profile.Aliases {
		add(m.norm.Normalize(alias))
	}
	add(m.norm.Normalize(profile.Name))

	excluded := make(map[string]struct{}, len(profile.ExcludedStandalone))
	for _, word := range profile.ExcludedStandalone {
		word = strings.ToLower(strings.TrimSpace(word))
		if word != "" {
			excluded[word] = struct{}{}
		}
	}

	keywords := make([]string, 0, len(profile.RequiredKeywords))
	for _, keyword := range profile.RequiredKeywords {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword != "" {
			keywords = append(keywords, keyword)
		}
	}

	entry := &companyEntry{
		name:               profile.Name,
		aliases:            aliases,
		requiredKeywords:   keywords,
		excludedStandalone: excluded,
	}

	if _, exists := m.byName[profile.Name]; exists {
		for i, existing := range m.companies {
			if existing.name == profile.Name {
				m.companies[i] = entry
				break
			}
		}
	} else {
		m.companies = append(m.companies, entry)
		sort.Slice(m.companies, func(i, j int) bool {
			return m.companies[i].name < m.companies[j].name
		})
	}
	m.byName[profile.Name] = entry
}

// Companies returns the registered company names in iteration order.
func (m *Matcher) Companies() []string {
	names := make([]string, len(m.companies))
	for i, entry := range m.companies {
		names[i] = entry.name
	}
	return names
}

// Aliases returns the normalized alias set for a registered company.
func (m *Matcher) Aliases(name string) []string {
	entry, ok := m.byName[name]
	if !ok {
		return nil
	}
	out := make([]string, len(entry.aliases))
	copy(out, entry.aliases)
	return out
}

// FindBestMatch scores text against every registered alias and returns the
// best company, its score, and the alias that matched. No match yields an
// empty company and zero score.
func (m *Matcher) FindBestMatch(text string) (string, float64, string) {
	if len(m.companies) == 0 {
		return "", 0, ""
	}
	normalized := m.norm.Normalize(text)
	if normalized == "" {
		return "", 0, ""
	}

	var (
		bestCompany string
		bestScore   float64
		bestAlias   string
	)
	for _, entry := range m.companies {
		for _, alias := range entry.aliases {
			score := scoreAlias(normalized, alias)
			if score > bestScore && score >= m.settings.Threshold && entry.validMatch(alias, normalized) {
				bestCompany = entry.name
				bestScore = score
				bestAlias = alias
			}
		}
	}
	return bestCompany, bestScore, bestAlias
}

// scoreAlias takes the maximum of the four ratio variants, forces 100 on
// exact equality, and grants a +10 bonus (capped at 100) on containment.
func scoreAlias(text, alias string) float64 {
	score := textutil.Ratio(text, alias)
	if s := textutil.PartialRatio(text, alias); s > score {
		score = s
	}
	if s := textutil.TokenSortRatio(text, alias); s > score {
		score = s
	}
	if s := textutil.TokenSetRatio(text, alias); s > score {
		score = s
	}
	switch {
	case text == alias:
		score = 100
	case strings.Contains(text, alias) || strings.Contains(alias, text):
		score = min(score+10, 100)
	}
	return score
}

// validMatch applies the company's contextual rules: every required keyword
// must appear in the full normalized text, and the matched alias must not
// itself be an excluded standalone word.
func (e *companyEntry) validMatch(alias, fullText string) bool {
	for _, keyword := range e.requiredKeywords {
		if !strings.Contains(fullText, keyword) {
			return false
		}
	}
	if _, excluded := e.excludedStandalone[strings.TrimSpace(alias)]; excluded {
		return false
	}
	return true
}

// FromFilename extracts ranked company candidates from a filename using
// three priority tiers: the whole name, contiguous 2-4 token runs, and
// finally single tokens guarded by standalone-validity rules.
func (m *Matcher) FromFilename(filename string) []Match {
	var matches []Match

	// Tier 1: the whole filename. A near-perfect hit is trusted alone so
	// partial matches cannot contaminate the ranking.
	if company, score, matched := m.FindBestMatch(filename); company != "" && score >= m.settings.Threshold {
		matches = append(matches, Match{Company: company, Score: score, MatchedText: matched})
		if score >= 95 {
			return matches
		}
	}

	// Tier 2: contiguous runs of 2-4 adjacent tokens recover names broken
	// across separators.
	tokens := m.norm.FilenameTokens(filename)
	if len(tokens) > 1 {
		for i := range tokens {
			for j := i + 2; j <= min(i+4, len(tokens)); j++ {
				phrase := strings.Join(tokens[i:j], " ")
				if company, score, matched := m.FindBestMatch(phrase); company != "" && score >= m.settings.Threshold {
					matches = append(matches, Match{Company: company, Score: score, MatchedText: matched})
				}
			}
		}
	}

	// Tier 3: single tokens, only without a high-confidence hit so far.
	if bestScore(matches) < m.settings.Threshold+5 {
		for _, token := range tokens {
			if !m.validSingleToken(token) {
				continue
			}
			if company, score, matched := m.FindBestMatch(token); company != "" && score >= m.settings.Threshold {
				matches = append(matches, Match{Company: company, Score: score, MatchedText: matched})
			}
		}
	}

	return dedupeAndRank(matches)
}

// FromPath extracts ranked candidates from a full path. Filename evidence
// receives the configured bonus; directory segments are consulted only when
// the filename yields nothing, with the configured penalty applied.
func (m *Matcher) FromPath(filePath string) []Match {
	filename := filepath.Base(filePath)

	filenameMatches := m.FromFilename(filename)
	for i := range filenameMatches {
		filenameMatches[i].Score = min(filenameMatches[i].Score+m.settings.FilenameBonus, 100)
	}

	var pathMatches []Match
	if len(filenameMatches) == 0 {
		dir := filepath.Dir(filePath)
		for _, segment := range strings.Split(dir, string(filepath.Separator)) {
			for _, token := range m.norm.FilenameTokens(segment) {
				company, score, matched := m.FindBestMatch(token)
				if company == "" || score < m.settings.Threshold {
					continue
				}
				penalized := max(score-m.settings.PathPenalty, 0)
				if penalized >= m.settings.Threshold {
					pathMatches = append(pathMatches, Match{Company: company, Score: penalized, MatchedText: matched})
				}
			}
		}
	}

	return dedupeAndRank(append(filenameMatches, pathMatches...))
}

// validSingleToken rejects bare legal-entity forms, generic words, and
// tokens shorter than three characters.
func (m *Matcher) validSingleToken(token string) bool {
	token = strings.ToLower(strings.TrimSpace(token))
	if len(token) < 3 {
		return false
	}
	if normalize.IsLegalForm(token) {
		return false
	}
	if m.norm.IsGenericWord(token) {
		return false
	}
	return true
}

func bestScore(matches []Match) float64 {
	best := 0.0
	for _, match := range matches {
		if match.Score > best {
			best = match.Score
		}
	}
	return best
}

// dedupeAndRank keeps the highest score per company and sorts descending by
// score, breaking ties alphabetically by company name.
func dedupeAndRank(matches []Match) []Match {
	if len(matches) == 0 {
		return nil
	}
	best := make(map[string]Match, len(matches))
	order := make([]string, 0, len(matches))
	for _, match := range matches {
		existing, ok := best[match.Company]
		if !ok {
			best[match.Company] = match
			order = append(order, match.Company)
			continue
		}
		if match.Score > existing.Score {
			best[match.Company] = match
		}
	}
	ranked := make([]Match, 0, len(order))
	for _, company := range order {
		ranked = append(ranked, best[company])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Company < ranked[j].Company
	})
	return ranked
}
