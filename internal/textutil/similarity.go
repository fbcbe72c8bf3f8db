package textutil

import (
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"
)

// Ratio scores the whole-string similarity of a and b on a 0-100 scale using
// normalized Levenshtein similarity.
func Ratio(a, b string) float64 {
	if a == b {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}
	score, err := edlib.StringsSimilarity(a, b, edlib.Levenshtein)
	if err != nil {
		return 0
	}
	return float64(score) * 100
}

// PartialRatio scores the best alignment of the shorter string against every
// equal-length window of the longer string. A string fully contained in the
// other scores 100.
func PartialRatio(a, b string) float64 {
	if a == "" || b == "" {
		return Ratio(a, b)
	}
	shorter, longer := []rune(a), []rune(b)
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if len(shorter) == len(longer) {
		return Ratio(string(shorter), string(longer))
	}
	needle := string(shorter)
	var best float64
	for i := 0; i+len(shorter) <= len(longer); i++ {
		score := Ratio(needle, string(longer[i:i+len(shorter)]))
		if score > best {
			best = score
			if best >= 100 {
				break
			}
		}
	}
	return best
}

// TokenSortRatio compares the two strings with their tokens sorted, making
// the score insensitive to word order.
func TokenSortRatio(a, b string) float64 {
	return Ratio(sortedTokens(a), sortedTokens(b))
}

// TokenSetRatio compares the shared-token core of the two strings against
// each side's full token set, rewarding strings that differ only by extra
// words.
func TokenSetRatio(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return Ratio(a, b)
	}

	var shared, onlyA, onlyB []string
	for token := range setA {
		if _, ok := setB[token]; ok {
			shared = append(shared, token)
		} else {
			onlyA = append(onlyA, token)
		}
	}
	for token := range setB {
		if _, ok := setA[token]; !ok {
			onlyB = append(onlyB, token)
		}
	}
	sort.Strings(shared)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	core := strings.Join(shared, " ")
	fullA := strings.TrimSpace(core + " " + strings.Join(onlyA, " "))
	fullB := strings.TrimSpace(core + " " + strings.Join(onlyB, " "))

	best := Ratio(core, fullA)
	if score := Ratio(core, fullB); score > best {
		best = score
	}
	if score := Ratio(fullA, fullB); score > best {
		best = score
	}
	return best
}

func sortedTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, token := range strings.Fields(s) {
		set[token] = struct{}{}
	}
	return set
}
