package store

import (
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/spigell/resume-matcher/internal/parser"
)

// Store keeps parsed candidates and jobs in memory in insertion order.
// It is safe for concurrent use. Records are never updated or removed.
type Store struct {
	mu         sync.RWMutex
	candidates []parser.Candidate
	jobs       []parser.Job
}

func New() *Store {
	return &Store{}
}

// AppendCandidate stores c under a fresh ID and returns the stored copy.
func (s *Store) AppendCandidate(c parser.Candidate) parser.Candidate {
	c.ID = uuid.NewString()
	c.Skills = slices.Clone(c.Skills)

	s.mu.Lock()
	s.candidates = append(s.candidates, c)
	s.mu.Unlock()

	return cloneCandidate(c)
}

// AppendJob stores j under a fresh ID and returns the stored copy.
func (s *Store) AppendJob(j parser.Job) parser.Job {
	j.ID = uuid.NewString()
	j.SkillsRequired = slices.Clone(j.SkillsRequired)

	s.mu.Lock()
	s.jobs = append(s.jobs, j)
	s.mu.Unlock()

	return cloneJob(j)
}

// Candidates returns a snapshot of the stored candidates.
func (s *Store) Candidates() []parser.Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]parser.Candidate, 0, len(s.candidates))
	for _, c := range s.candidates {
		out = append(out, cloneCandidate(c))
	}
	return out
}

// Jobs returns a snapshot of the stored jobs.
func (s *Store) Jobs() []parser.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]parser.Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		out = append(out, cloneJob(j))
	}
	return out
}

func cloneCandidate(c parser.Candidate) parser.Candidate {
	c.Skills = slices.Clone(c.Skills)
	return c
}

func cloneJob(j parser.Job) parser.Job {
	j.SkillsRequired = slices.Clone(j.SkillsRequired)
	return j
}
