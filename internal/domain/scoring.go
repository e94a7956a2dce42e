package domain

import (
	"cmp"
	"math"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// Scoring weights
	ScoreExactMatch     = 100.0
	ScorePrefixMatch    = 75.0
	ScoreSubstringMatch = 50.0
	ScoreFuzzyMatch     = 25.0

	// Position bonus (earlier is better)
	ScorePositionBonus = 10.0

	// Whole-title match bonus (huge boost)
	ScoreExactTitleBonus = 200.0

	// Field weights: a hit in the title counts more than a tag, a tag more than a skill.
	weightTitle = 1.0
	weightTag   = 0.8
	weightSkill = 0.6

	// fuzzyThreshold is the minimum edit-distance similarity for a fuzzy hit.
	fuzzyThreshold = 0.8
	// fuzzyMinLen disables fuzzy matching for very short fragments.
	fuzzyMinLen = 4
)

// RecordCandidate represents a record with its match score
type RecordCandidate struct {
	Record Record
	Score  float64
}

// ParseQuery splits user input into normalized, non-empty fragments.
// Example: "Motion  graphics!" -> ["motion", "graphics"]
func ParseQuery(input string) []string {
	raw := splitAndClean(strings.ToLower(input), " ")
	fragments := make([]string, 0, len(raw))
	for _, f := range raw {
		if n := normalizeFragment(f); n != "" {
			fragments = append(fragments, n)
		}
	}
	return fragments
}

// ScoreRecord calculates the match score for a record against query fragments.
// Every fragment must match at least one field; otherwise the score is zero.
func ScoreRecord(fragments []string, r Record) float64 {
	if len(fragments) == 0 {
		return 0.0
	}

	titleWords := words(r.Title)
	tagWords := phrases(r.Tags)
	skillWords := phrases(r.Skills)

	var total float64
	for _, frag := range fragments {
		best := bestFieldScore(frag, titleWords, weightTitle)
		best = math.Max(best, bestFieldScore(frag, tagWords, weightTag))
		best = math.Max(best, bestFieldScore(frag, skillWords, weightSkill))
		if best == 0.0 {
			return 0.0
		}
		total += best
	}

	if strings.Join(fragments, "") == normalizeFragment(r.Title) {
		total += ScoreExactTitleBonus
	}

	return total
}

// RankRecords ranks records by score (descending). Records that do not match
// are dropped; ties keep catalog order.
func RankRecords(query string, records []Record) []RecordCandidate {
	fragments := ParseQuery(query)
	if len(fragments) == 0 {
		return nil
	}

	candidates := make([]RecordCandidate, 0, len(records))
	for _, r := range records {
		score := ScoreRecord(fragments, r)
		if score == 0.0 {
			continue
		}
		candidates = append(candidates, RecordCandidate{Record: r, Score: score})
	}

	slices.SortStableFunc(candidates, func(a, b RecordCandidate) int {
		return cmp.Compare(b.Score, a.Score)
	})

	return candidates
}

func bestFieldScore(frag string, fieldWords []string, weight float64) float64 {
	best := 0.0
	for i, w := range fieldWords {
		if s := scoreFragment(frag, w, i); s > best {
			best = s
		}
	}
	return best * weight
}

// scoreFragment scores a single query fragment against a single word
func scoreFragment(queryFrag, word string, position int) float64 {
	if queryFrag == "" || word == "" {
		return 0.0
	}

	// Exact match
	if queryFrag == word {
		return ScoreExactMatch + calculatePositionBonus(position)
	}

	// Prefix match
	if strings.HasPrefix(word, queryFrag) {
		return ScorePrefixMatch + calculatePositionBonus(position)
	}

	// Substring match
	if idx := strings.Index(word, queryFrag); idx >= 0 {
		// Earlier substring matches get higher score
		substringBonus := ScorePositionBonus * (1.0 - float64(idx)/float64(len(word)))
		return ScoreSubstringMatch + substringBonus
	}

	if utf8.RuneCountInString(queryFrag) < fuzzyMinLen {
		return 0.0
	}

	similarity := calculateSimilarity(queryFrag, word)
	if similarity >= fuzzyThreshold {
		return ScoreFuzzyMatch * similarity
	}

	return 0.0
}

// calculatePositionBonus gives bonus for earlier positions
func calculatePositionBonus(position int) float64 {
	return ScorePositionBonus * math.Exp(-float64(position)*0.3)
}

// calculateSimilarity returns 1 - levenshtein(s1, s2) / max(len), over runes.
// Transposed or scattered letters cost edits, so anagrams score low.
func calculateSimilarity(s1, s2 string) float64 {
	if s1 == "" || s2 == "" {
		return 0.0
	}

	a, b := []rune(s1), []rune(s2)
	longest := max(len(a), len(b))

	return 1.0 - float64(levenshtein(a, b))/float64(longest)
}

// levenshtein computes the edit distance with a single rolling row.
func levenshtein(a, b []rune) int {
	row := make([]int, len(b)+1)
	for j := range row {
		row[j] = j
	}

	for i := 1; i <= len(a); i++ {
		diag := row[0]
		row[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			next := min(row[j]+1, row[j-1]+1, diag+cost)
			diag = row[j]
			row[j] = next
		}
	}

	return row[len(b)]
}

// words splits free text into normalized words.
func words(s string) []string {
	return ParseQuery(s)
}

// phrases flattens a list of tags or skills into normalized words.
func phrases(list []string) []string {
	out := make([]string, 0, len(list)*2)
	for _, p := range list {
		out = append(out, words(p)...)
	}
	return out
}

// splitAndClean splits a string by separator and returns non-empty parts
func splitAndClean(s, sep string) []string {
	parts := strings.Split(s, sep)
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}

// normalizeFragment keeps letters and digits only, lowercased
func normalizeFragment(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, s)
}
