package parser

import (
	"github.com/spigell/resume-matcher/internal/vocabulary"
)

const untitledJob = "Untitled Job"

// Job is the structured form of a job posting.
type Job struct {
	ID             string   `json:"id,omitempty"`
	Title          string   `json:"title"`
	SkillsRequired []string `json:"skills_required"`
	Description    string   `json:"description"`
	Filename       string   `json:"filename,omitempty"`
}

// ParseJob extracts the title and required skills from a job posting.
// The whole text is kept as the description.
func ParseJob(text string, vocab *vocabulary.Vocabulary) Job {
	title, ok := FirstLine(text)
	if !ok {
		title = untitledJob
	}

	return Job{
		Title:          title,
		SkillsRequired: vocab.Scan(text),
		Description:    text,
	}
}
