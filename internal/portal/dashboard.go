package portal

import "github.com/spigell/resume-matcher/internal/parser"

// Dashboard is a snapshot of everything stored together with the rankings.
type Dashboard struct {
	Candidates []parser.Candidate `json:"candidates"`
	Jobs       []parser.Job       `json:"jobs"`
	Matches    []JobMatches       `json:"matches"`
}

// JobMatches holds the candidates ranked for one job, best first.
type JobMatches struct {
	Job    parser.Job        `json:"job"`
	Ranked []RankedCandidate `json:"ranked"`
}

type RankedCandidate struct {
	CandidateID string  `json:"candidate_id"`
	Name        string  `json:"name"`
	Score       float64 `json:"score"`
}
