package domain

import (
	"reflect"
	"testing"
)

func testRecord(id, title string, tags, skills []string) Record {
	return Record{
		ID:       id,
		Title:    title,
		Category: CategoryWebApps,
		Tags:     tags,
		Skills:   skills,
	}
}

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "single word",
			input:    "Motion",
			expected: []string{"motion"},
		},
		{
			name:     "extra spaces and punctuation",
			input:    "  motion   graphics! ",
			expected: []string{"motion", "graphics"},
		},
		{
			name:     "punctuation only",
			input:    "!! ??",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseQuery(tt.input)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("ParseQuery(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestScoreRecord(t *testing.T) {
	r := testRecord("studio", "Subtitle Studio", []string{"React 19", "TypeScript"}, []string{"UI/UX Design"})

	tests := []struct {
		name           string
		query          string
		expectPositive bool
	}{
		{name: "exact title word", query: "studio", expectPositive: true},
		{name: "prefix", query: "subt", expectPositive: true},
		{name: "substring", query: "title", expectPositive: true},
		{name: "tag", query: "typescript", expectPositive: true},
		{name: "skill", query: "design", expectPositive: true},
		{name: "all fragments match", query: "react studio", expectPositive: true},
		{name: "one fragment misses", query: "react kubernetes", expectPositive: false},
		{name: "no match", query: "xyz", expectPositive: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := ScoreRecord(ParseQuery(tt.query), r)

			if tt.expectPositive && score <= 0 {
				t.Errorf("Expected positive score, got %f", score)
			}
			if !tt.expectPositive && score > 0 {
				t.Errorf("Expected zero score, got %f", score)
			}
		})
	}
}

func TestScoreRecordFieldWeights(t *testing.T) {
	inTitle := testRecord("a", "Animation Reel", nil, nil)
	inTag := testRecord("b", "Reel", []string{"Animation"}, nil)
	inSkill := testRecord("c", "Reel", nil, []string{"Animation"})

	fragments := ParseQuery("animation")
	title := ScoreRecord(fragments, inTitle)
	tag := ScoreRecord(fragments, inTag)
	skill := ScoreRecord(fragments, inSkill)

	if !(title > tag && tag > skill) {
		t.Errorf("Expected title > tag > skill, got %f, %f, %f", title, tag, skill)
	}
}

func TestScoreRecordExactTitleBonus(t *testing.T) {
	exact := testRecord("a", "Data Viz", nil, nil)
	longer := testRecord("b", "Data Viz Dashboard", nil, nil)

	fragments := ParseQuery("data viz")
	if ScoreRecord(fragments, exact) <= ScoreRecord(fragments, longer)+ScoreExactTitleBonus/2 {
		t.Errorf("Expected whole-title match to get the exact title bonus")
	}
}

func TestRankRecords(t *testing.T) {
	records := []Record{
		testRecord("skill-only", "Reel", nil, []string{"Figma"}),
		testRecord("unrelated", "Documentary", nil, nil),
		testRecord("title", "Figma Design System", nil, nil),
		testRecord("tag", "Healthcare App", []string{"Figma"}, nil),
	}

	ranked := RankRecords("figma", records)

	got := make([]string, len(ranked))
	for i, c := range ranked {
		got[i] = c.Record.ID
	}
	expected := []string{"title", "tag", "skill-only"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("RankRecords() order = %v, want %v", got, expected)
	}
}

func TestRankRecordsKeepsCatalogOrderOnTies(t *testing.T) {
	records := []Record{
		testRecord("first", "Reel", []string{"Go"}, nil),
		testRecord("second", "Reel", []string{"Go"}, nil),
	}

	ranked := RankRecords("go", records)

	if len(ranked) != 2 || ranked[0].Record.ID != "first" || ranked[1].Record.ID != "second" {
		t.Errorf("Expected stable order [first second], got %+v", ranked)
	}
}

func TestRankRecordsEmptyQuery(t *testing.T) {
	if got := RankRecords("   ", []Record{testRecord("a", "A", nil, nil)}); got != nil {
		t.Errorf("Expected nil for empty query, got %v", got)
	}
}

func TestCalculateSimilarity(t *testing.T) {
	tests := []struct {
		s1, s2   string
		expected float64
	}{
		{s1: "abcd", s2: "abcd", expected: 1.0},
		{s1: "abcd", s2: "ab", expected: 0.5},
		{s1: "", s2: "ab", expected: 0.0},
		{s1: "kinetik", s2: "kinetic", expected: 1.0 - 1.0/7.0},
		{s1: "édit", s2: "edit", expected: 0.75},
	}

	for _, tt := range tests {
		if got := calculateSimilarity(tt.s1, tt.s2); got != tt.expected {
			t.Errorf("calculateSimilarity(%q, %q) = %f, want %f", tt.s1, tt.s2, got, tt.expected)
		}
	}
}

func TestCalculateSimilarityIgnoresScatteredLetters(t *testing.T) {
	tests := []struct {
		s1, s2 string
	}{
		{s1: "figma", s2: "campaign"},
		{s1: "figma", s2: "filmmaking"},
		{s1: "edit", s2: "tide"},
	}

	for _, tt := range tests {
		if got := calculateSimilarity(tt.s1, tt.s2); got >= fuzzyThreshold {
			t.Errorf("calculateSimilarity(%q, %q) = %f, want below %f", tt.s1, tt.s2, got, fuzzyThreshold)
		}
	}
}

func TestScoreRecordRejectsAnagramTitleWord(t *testing.T) {
	r := testRecord("campaign", "Viral Animal Welfare Campaign", nil, nil)

	if got := ScoreRecord(ParseQuery("figma"), r); got != 0 {
		t.Errorf("ScoreRecord(figma) = %f, want 0", got)
	}
}
