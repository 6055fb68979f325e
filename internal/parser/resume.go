package parser

import (
	"github.com/spigell/resume-matcher/internal/vocabulary"
)

// Candidate is the structured form of a resume.
type Candidate struct {
	ID         string   `json:"id,omitempty"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Skills     []string `json:"skills"`
	Experience string   `json:"experience"`
	Filename   string   `json:"filename,omitempty"`
}

// ParseResume extracts candidate fields from resume text. Fields that can not
// be found are left empty; Skills is never nil.
func ParseResume(text string, vocab *vocabulary.Vocabulary) Candidate {
	name, _ := FirstLine(text)
	email, _ := Email(text)
	phone, _ := Phone(text)
	experience, _ := Experience(text)

	return Candidate{
		Name:       name,
		Email:      email,
		Phone:      phone,
		Skills:     vocab.Scan(text),
		Experience: experience,
	}
}
