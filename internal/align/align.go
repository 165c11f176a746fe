// Package align compares a target sentence against a spoken transcript
// word by word. Transcripts arrive from an upstream speech-to-text step
// and carry casing and punctuation noise, so similarity is tiered: exact
// and punctuation-stripped matches are rewarded before falling back to
// edit distance, which would penalize short words disproportionately.
package align

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// MatchThreshold is the minimum similarity a spoken word must reach to
// be claimed for a target word.
const MatchThreshold = 50

// sessionWeight scales one comparison round's mean score into the
// session total. Scores accumulate additively across rounds.
const sessionWeight = 0.05

const punctuation = ".,!?;:"

// ComparisonEntry is the per-target-word result of one comparison round.
type ComparisonEntry struct {
	Target  string `json:"target"`
	Spoken  string `json:"spoken"`
	Score   int    `json:"score"`
	Missing bool   `json:"missing"`
}

// Aligner matches target words to spoken words. The greedy
// implementation below is the production one; the interface exists so an
// optimal bipartite matcher can be swapped in without touching callers.
type Aligner interface {
	Compare(targetSentence, spokenSentence string) []ComparisonEntry
}

// GreedyAligner claims spoken words left to right over the target words.
// An early target word can take a spoken word that would have matched a
// later target word better; accepted approximation.
type GreedyAligner struct{}

// NewGreedyAligner returns the default word aligner.
func NewGreedyAligner() *GreedyAligner {
	return &GreedyAligner{}
}

// WordSimilarity scores two whitespace-trimmed words in [0,100].
// Tiers, first match wins: case-insensitive equality (100), equality
// after stripping punctuation (95), substring containment (80), then a
// normalized Levenshtein ratio.
func WordSimilarity(target, spoken string) int {
	t := strings.ToLower(target)
	s := strings.ToLower(spoken)

	if t == s && t != "" {
		return 100
	}

	tStripped := strings.Trim(t, punctuation)
	sStripped := strings.Trim(s, punctuation)
	if tStripped == sStripped && tStripped != "" {
		return 95
	}

	if t != "" && s != "" && (strings.Contains(t, s) || strings.Contains(s, t)) {
		return 80
	}

	// Rune counts, matching the distance function's unit of work.
	maxLen := len([]rune(t))
	if n := len([]rune(s)); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 0
	}

	dist := matchr.Levenshtein(t, s)
	score := int(float64(maxLen-dist)/float64(maxLen)*100 + 0.5)
	if score < 0 {
		return 0
	}
	return score
}

// Compare aligns every target word against the not-yet-claimed spoken
// words, greedily picking the highest-scoring candidate at or above
// MatchThreshold. Ties go to the earliest spoken word. Output length
// always equals the target word count; unmatched targets are emitted
// with an empty spoken word and Missing set.
func (a *GreedyAligner) Compare(targetSentence, spokenSentence string) []ComparisonEntry {
	targetWords := strings.Fields(targetSentence)
	spokenWords := strings.Fields(spokenSentence)

	claimed := make([]bool, len(spokenWords))
	entries := make([]ComparisonEntry, 0, len(targetWords))

	for _, target := range targetWords {
		bestScore := 0
		bestIndex := -1

		for i, spoken := range spokenWords {
			if claimed[i] {
				continue
			}
			similarity := WordSimilarity(target, spoken)
			if similarity > bestScore && similarity >= MatchThreshold {
				bestScore = similarity
				bestIndex = i
			}
		}

		if bestIndex == -1 {
			entries = append(entries, ComparisonEntry{
				Target:  strings.ToLower(target),
				Spoken:  "",
				Score:   0,
				Missing: true,
			})
			continue
		}

		claimed[bestIndex] = true
		entries = append(entries, ComparisonEntry{
			Target:  strings.ToLower(target),
			Spoken:  strings.ToLower(spokenWords[bestIndex]),
			Score:   bestScore,
			Missing: false,
		})
	}

	return entries
}

// SessionIncrement converts one comparison round into the score delta a
// practice session accumulates: the mean per-word score scaled by a
// fixed 0.05 weight. Repeated rounds keep adding, so a long set can push
// the session total past 100.
func SessionIncrement(entries []ComparisonEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	sum := 0
	for _, e := range entries {
		sum += e.Score
	}
	mean := float64(sum) / float64(len(entries))
	return mean * sessionWeight
}
