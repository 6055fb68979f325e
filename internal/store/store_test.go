package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/resume-matcher/internal/parser"
)

func TestAppendAssignsIDs(t *testing.T) {
	s := New()

	a := s.AppendCandidate(parser.Candidate{Name: "A", ID: "ignored"})
	b := s.AppendCandidate(parser.Candidate{Name: "B"})
	job := s.AppendJob(parser.Job{Title: "Backend"})

	for _, id := range []string{a.ID, b.ID, job.ID} {
		_, err := uuid.Parse(id)
		require.NoError(t, err)
	}
	assert.NotEqual(t, "ignored", a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestSnapshotsKeepInsertionOrder(t *testing.T) {
	s := New()
	s.AppendCandidate(parser.Candidate{Name: "first"})
	s.AppendCandidate(parser.Candidate{Name: "second"})
	s.AppendJob(parser.Job{Title: "one"})
	s.AppendJob(parser.Job{Title: "two"})

	candidates := s.Candidates()
	require.Len(t, candidates, 2)
	assert.Equal(t, "first", candidates[0].Name)
	assert.Equal(t, "second", candidates[1].Name)

	jobs := s.Jobs()
	require.Len(t, jobs, 2)
	assert.Equal(t, "one", jobs[0].Title)
	assert.Equal(t, "two", jobs[1].Title)
}

func TestSnapshotsAreCopies(t *testing.T) {
	s := New()
	skills := []string{"Go"}
	s.AppendCandidate(parser.Candidate{Name: "A", Skills: skills})
	s.AppendJob(parser.Job{Title: "J", SkillsRequired: []string{"Go"}})

	skills[0] = "mutated by caller"
	got := s.Candidates()
	got[0].Name = "changed"
	got[0].Skills[0] = "changed"

	jobs := s.Jobs()
	jobs[0].SkillsRequired[0] = "changed"

	assert.Equal(t, "A", s.Candidates()[0].Name)
	assert.Equal(t, []string{"Go"}, s.Candidates()[0].Skills)
	assert.Equal(t, []string{"Go"}, s.Jobs()[0].SkillsRequired)
}

func TestEmptyStore(t *testing.T) {
	s := New()
	assert.NotNil(t, s.Candidates())
	assert.Empty(t, s.Candidates())
	assert.NotNil(t, s.Jobs())
	assert.Empty(t, s.Jobs())
}

func TestConcurrentAppends(t *testing.T) {
	s := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.AppendCandidate(parser.Candidate{Name: fmt.Sprintf("c%d", i)})
		}()
		go func() {
			defer wg.Done()
			s.AppendJob(parser.Job{Title: fmt.Sprintf("j%d", i)})
			_ = s.Candidates()
		}()
	}
	wg.Wait()

	assert.Len(t, s.Candidates(), 50)
	assert.Len(t, s.Jobs(), 50)
}
