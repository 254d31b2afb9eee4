package grading

import (
	"strings"
	"unicode"
)

// Criteria drives the offline keyword grader, used for quick checks and
// when no model endpoint is configured.
type Criteria struct {
	Keywords    []string `json:"keywords"`
	TotalPoints int      `json:"total_points"`
}

// GradeKeywords scores an answer by keyword coverage: each expected keyword
// found earns an equal share of the total. Matching is case-insensitive and
// punctuation-blind, with a one-edit fuzzy tolerance for single-word
// keywords of four or more characters.
func GradeKeywords(text string, c Criteria) Result {
	total := c.TotalPoints
	if total <= 0 {
		total = 100
	}
	if len(c.Keywords) == 0 {
		return Result{TotalPoints: total, Feedback: "No grading criteria provided"}
	}

	norm := normalize(text)
	tokens := strings.Fields(norm)

	var matched, missing []string
	for _, kw := range c.Keywords {
		if kw == "" {
			continue
		}
		if matchKeyword(norm, tokens, kw) {
			matched = append(matched, kw)
		} else {
			missing = append(missing, kw)
		}
	}

	score := float64(total) * float64(len(matched)) / float64(len(c.Keywords))

	var fb []string
	if len(matched) > 0 {
		fb = append(fb, "Good points mentioned: "+strings.Join(matched, ", "))
	}
	if len(missing) > 0 {
		fb = append(fb, "Consider including: "+strings.Join(missing, ", "))
	}

	return Result{
		Score:           round2(score),
		TotalPoints:     total,
		Feedback:        strings.Join(fb, "\n"),
		GradingStandard: "Keyword",
	}
}

func matchKeyword(norm string, tokens []string, kw string) bool {
	nk := normalize(kw)
	if nk == "" {
		return false
	}
	if containsWord(norm, nk) {
		return true
	}
	// fuzzy pass for single-word keywords
	if strings.ContainsRune(nk, ' ') || len(nk) < 4 {
		return false
	}
	for _, tok := range tokens {
		if levenshtein(nk, tok) <= 1 {
			return true
		}
	}
	return false
}

// containsWord reports whether needle occurs in haystack on word boundaries.
// Both strings must already be normalized, so a space is the only separator.
func containsWord(haystack, needle string) bool {
	from := 0
	for {
		i := strings.Index(haystack[from:], needle)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(needle)
		leftOK := start == 0 || haystack[start-1] == ' '
		rightOK := end == len(haystack) || haystack[end] == ' '
		if leftOK && rightOK {
			return true
		}
		from = start + 1
	}
}

func round2(f float64) float64 {
	return float64(int64(f*100+0.5)) / 100
}

// normalize casefolds, strips punctuation, and collapses whitespace.
func normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pendingSpace := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			pendingSpace = true
		case unicode.IsPunct(r):
		default:
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// levenshtein computes edit distance with unit costs, two-row variant.
func levenshtein(a, b string) int {
	ar, br := []rune(a), []rune(b)
	if len(ar) == 0 {
		return len(br)
	}
	if len(br) == 0 {
		return len(ar)
	}
	prev := make([]int, len(br)+1)
	cur := make([]int, len(br)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ar); i++ {
		cur[0] = i
		for j := 1; j <= len(br); j++ {
			sub := prev[j-1]
			if ar[i-1] != br[j-1] {
				sub++
			}
			d := prev[j] + 1 // deletion
			if ins := cur[j-1] + 1; ins < d {
				d = ins
			}
			if sub < d {
				d = sub
			}
			cur[j] = d
		}
		prev, cur = cur, prev
	}
	return prev[len(br)]
}
