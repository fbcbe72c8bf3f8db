package normalize

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// legalForms maps recognized legal-entity suffix spellings to their canonical
// short code. Longest spellings are substituted first so "s.p.a." never
// decays into "s.p.a" plus a stray dot.
var legalForms = map[string]string{
	// Italian corporate forms
	"s.p.a.": "spa",
	"s.p.a":  "spa",
	"spa":    "spa",
	"s.r.l.": "srl",
	"s.r.l":  "srl",
	"srl":    "srl",
	"s.a.s.": "sas",
	"s.a.s":  "sas",
	"sas":    "sas",
	"s.n.c.": "snc",
	"s.n.c":  "snc",
	"snc":    "snc",
	"s.s.":   "ss",
	"s.s":    "ss",
	"ss":     "ss",

	// International forms
	"ltd.":         "ltd",
	"ltd":          "ltd",
	"limited":      "ltd",
	"inc.":         "inc",
	"inc":          "inc",
	"incorporated": "inc",
	"corp.":        "corp",
	"corp":         "corp",
	"corporation":  "corp",
	"llc":          "llc",
	"l.l.c.":       "llc",
	"l.l.c":        "llc",
	"gmbh":         "gmbh",
	"g.m.b.h.":     "gmbh",
	"ag":           "ag",
	"a.g.":         "ag",
	"sa":           "sa",
	"s.a.":         "sa",
	"sarl":         "sarl",
	"s.a.r.l.":     "sarl",
	"bv":           "bv",
	"b.v.":         "bv",
	"nv":           "nv",
	"n.v.":         "nv",
}

// legalFormCodes is the set of canonical short codes, used when stripping
// suffix tokens from an already-normalized name.
var legalFormCodes = func() map[string]struct{} {
	codes := make(map[string]struct{}, len(legalForms))
	for _, code := range legalForms {
		codes[code] = struct{}{}
	}
	return codes
}()

// commonWords are generic business terms that rarely distinguish one company
// from another and are stripped when deriving aliases.
var commonWords = map[string]struct{}{
	"company": {}, "co": {}, "group": {}, "gruppo": {}, "holding": {},
	"international": {}, "internazionale": {}, "global": {}, "worldwide": {},
	"enterprise": {}, "enterprises": {}, "business": {}, "services": {},
	"servizi": {}, "solutions": {}, "soluzioni": {}, "consulting": {},
	"consulenza": {}, "technology": {}, "tecnologia": {}, "tech": {},
	"systems": {}, "sistemi": {}, "software": {}, "hardware": {},
	"digital": {}, "innovation": {}, "innovazione": {}, "development": {},
	"sviluppo": {},
}

// defaultGenericWords are tokens too generic to ever stand for a company on
// their own.
var defaultGenericWords = []string{
	"area", "zone", "zona", "region", "regione", "city", "citta", "town",
	"place", "posto", "location", "posizione", "site", "sito", "page",
	"pagina", "file", "document", "documento", "report", "rapporto",
	"data", "dati", "info", "information", "informazione", "detail",
	"dettaglio", "item", "elemento", "component", "componente", "module",
	"modulo", "lib", "library", "libreria", "util", "utils", "utility",
	"helper", "support", "supporto", "test", "demo", "example", "esempio",
	"sample", "campione", "template", "modello", "base", "core", "main",
	"index", "home", "root", "src", "source", "dist", "build", "node",
	"modules", "assets", "static", "public", "private", "config",
	"configurazione", "setting", "impostazione", "option", "opzione",
}

var (
	specialChars = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
	multiSpace   = regexp.MustCompile(`\s+`)

	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\d{1,2}[/-]\d{1,2}[/-]\d{2,4}$`),
		regexp.MustCompile(`^\d{4}[/-]\d{1,2}[/-]\d{1,2}$`),
		regexp.MustCompile(`^\d{8}$`),
		regexp.MustCompile(`^\d{6}$`),
		regexp.MustCompile(`^\d{4}$`),
	}
)

// legalFormPattern matches any recognized suffix spelling on word boundaries,
// longest spelling first.
var legalFormPattern = func() *regexp.Regexp {
	spellings := make([]string, 0, len(legalForms))
	for spelling := range legalForms {
		spellings = append(spellings, spelling)
	}
	sort.Slice(spellings, func(i, j int) bool {
		if len(spellings[i]) != len(spellings[j]) {
			return len(spellings[i]) > len(spellings[j])
		}
		return spellings[i] < spellings[j]
	})
	for i, spelling := range spellings {
		spellings[i] = regexp.QuoteMeta(spelling)
	}
	return regexp.MustCompile(`\b(` + strings.Join(spellings, "|") + `)\b`)
}()

// stripMarks decomposes text and drops combining marks, turning "è" into "e".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// Normalizer canonicalizes company text. The zero value is not usable; build
// one with New.
type Normalizer struct {
	genericWords map[string]struct{}
}

// Option customizes a Normalizer.
type Option func(*Normalizer)

// WithGenericWords replaces the default generic-word set.
func WithGenericWords(words []string) Option {
	return func(n *Normalizer) {
		if len(words) == 0 {
			return
		}
		set := make(map[string]struct{}, len(words))
		for _, word := range words {
			word = strings.ToLower(strings.TrimSpace(word))
			if word != "" {
				set[word] = struct{}{}
			}
		}
		n.genericWords = set
	}
}

// New constructs a Normalizer with the default word sets.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{genericWords: make(map[string]struct{}, len(defaultGenericWords))}
	for _, word := range defaultGenericWords {
		n.genericWords[word] = struct{}{}
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize canonicalizes text for fuzzy comparison. The operation is
// idempotent: normalizing an already-normalized string returns it unchanged.
func (n *Normalizer) Normalize(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	out := strings.ToLower(strings.TrimSpace(text))
	if stripped, _, err := transform.String(stripMarks, out); err == nil {
		out = stripped
	}
	out = legalFormPattern.ReplaceAllStringFunc(out, func(m string) string {
		if code, ok := legalForms[m]; ok {
			return code
		}
		return m
	})
	out = specialChars.ReplaceAllString(out, " ")
	out = multiSpace.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

// GenerateAliases derives the recognition variants for a company name. The
// normalized full name always comes first; duplicates and empty variants are
// dropped while preserving insertion order.
func (n *Normalizer) GenerateAliases(companyName string) []string {
	normalized := n.Normalize(companyName)

	var aliases []string
	seen := make(map[string]struct{})
	add := func(alias string) {
		alias = strings.TrimSpace(alias)
		if alias == "" {
			return
		}
		if _, dup := seen[alias]; dup {
			return
		}
		seen[alias] = struct{}{}
		aliases = append(aliases, alias)
	}

	add(normalized)

	withoutForms := removeTokens(normalized, legalFormCodes)
	if withoutForms != normalized {
		add(withoutForms)
	}

	withoutCommon := removeTokens(normalized, commonWords)
	if withoutCommon != normalized {
		add(withoutCommon)
	}

	add(removeTokens(withoutForms, commonWords))

	words := strings.Fields(normalized)
	if len(words) > 1 {
		var acronym strings.Builder
		for _, word := range words {
			acronym.WriteRune([]rune(word)[0])
		}
		if len([]rune(acronym.String())) > 1 {
			add(acronym.String())
		}
	}

	return aliases
}

// FilenameTokens extracts candidate company tokens from a filename: the
// extension is removed, the rest is normalized and split on common
// separators, and tokens that are too short, date- or number-like, or
// generic are discarded.
func (n *Normalizer) FilenameTokens(filename string) []string {
	stem := filename
	if idx := strings.LastIndex(stem, "."); idx > 0 {
		stem = stem[:idx]
	}
	normalized := n.Normalize(stem)

	tokens := strings.FieldsFunc(normalized, func(r rune) bool {
		return r == '-' || r == '_' || r == ' ' || r == '.'
	})

	filtered := tokens[:0]
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if len(token) < 3 {
			continue
		}
		if IsDateOrNumber(token) || n.IsGenericWord(token) {
			continue
		}
		filtered = append(filtered, token)
	}
	return filtered
}

// IsGenericWord reports whether the token belongs to the configured
// generic-word set.
func (n *Normalizer) IsGenericWord(token string) bool {
	_, ok := n.genericWords[strings.ToLower(strings.TrimSpace(token))]
	return ok
}

// IsLegalForm reports whether the token is a legal-entity suffix, in either
// its spelled or canonical short form.
func IsLegalForm(token string) bool {
	token = strings.ToLower(strings.TrimSpace(token))
	if _, ok := legalForms[token]; ok {
		return true
	}
	_, ok := legalFormCodes[token]
	return ok
}

// IsDateOrNumber reports whether the token looks like a calendar date, a
// bare digit run, or a decimal literal.
func IsDateOrNumber(token string) bool {
	for _, pattern := range datePatterns {
		if pattern.MatchString(token) {
			return true
		}
	}
	allDigits := token != ""
	for _, r := range token {
		if r < '0' || r > '9' {
			allDigits = false
			break
		}
	}
	if allDigits {
		return true
	}
	if _, err := strconv.ParseFloat(strings.ReplaceAll(token, ",", "."), 64); err == nil {
		return true
	}
	return false
}

// removeTokens drops every whitespace-separated token present in the set.
func removeTokens(text string, set map[string]struct{}) string {
	words := strings.Fields(text)
	kept := words[:0]
	for _, word := range words {
		if _, drop := set[word]; !drop {
			kept = append(kept, word)
		}
	}
	return strings.Join(kept, " ")
}
