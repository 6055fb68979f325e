package matcher

import (
	"cmp"
	"slices"

	"github.com/spigell/resume-matcher/internal/parser"
)

// Match is the fit of one candidate for a job. Index points into the
// candidate slice passed to Rank.
type Match struct {
	Index int     `json:"index"`
	Score float64 `json:"score"`
}

// Rank scores every candidate against the skills the job requires and
// returns the matches ordered from the best fit to the worst. Candidates
// with equal scores keep their original order.
//
// A job without required skills can not be matched and yields an empty slice.
func Rank(job parser.Job, candidates []parser.Candidate) []Match {
	if len(job.SkillsRequired) == 0 {
		return []Match{}
	}

	required := toSet(job.SkillsRequired)
	matches := make([]Match, 0, len(candidates))
	for i, candidate := range candidates {
		matches = append(matches, Match{Index: i, Score: score(required, candidate.Skills)})
	}

	slices.SortStableFunc(matches, func(a, b Match) int {
		return cmp.Compare(b.Score, a.Score)
	})

	return matches
}

// Score is the share of required skills present in skills, in [0, 1].
// It is 0 when either side is empty.
func Score(required, skills []string) float64 {
	if len(required) == 0 {
		return 0
	}
	return score(toSet(required), skills)
}

func score(required map[string]struct{}, skills []string) float64 {
	if len(required) == 0 || len(skills) == 0 {
		return 0
	}

	overlap := 0
	for skill := range toSet(skills) {
		if _, ok := required[skill]; ok {
			overlap++
		}
	}

	return float64(overlap) / float64(len(required))
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
