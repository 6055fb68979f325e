package filtering

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/matcher"
)

type requireContactFilter struct {
	enabled bool
}

// NewRequireContact creates a filter that drops candidates with neither an email nor a phone.
// It does nothing unless require-contact is set.
func NewRequireContact() Filter {
	return &requireContactFilter{}
}

func (f *requireContactFilter) Name() string { return "require_contact" }

func (f *requireContactFilter) Disable(string) {}

func (f *requireContactFilter) IsEnabled() bool { return true }

func (f *requireContactFilter) Validate(cfg *Config) error {
	f.enabled = cfg != nil && cfg.RequireContact
	return nil
}

func (f *requireContactFilter) Apply(_ context.Context, deps Deps, matches []matcher.Match) ([]matcher.Match, Step, error) {
	initial := len(matches)
	if !f.enabled {
		return matches, Step{Initial: initial, Left: initial}, nil
	}

	var dropped []string
	matches = slices.DeleteFunc(matches, func(m matcher.Match) bool {
		c, ok := candidateAt(deps, m)
		if ok && (c.Email != "" || c.Phone != "") {
			return false
		}
		dropped = append(dropped, c.Name)
		return true
	})

	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Info("excluding candidates without contacts",
			zap.String("job", deps.Job.Title),
			zap.Strings("excluded_candidates", dropped),
			zap.Int("candidates_left", len(matches)),
		)
	}

	return matches, Step{Initial: initial, Dropped: len(dropped), Left: len(matches)}, nil
}

func (f *requireContactFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: true, Details: map[string]string{"require_contact": strconv.FormatBool(f.enabled)}}
}

type excludedCandidatesFilter struct {
	emails map[string]struct{}
}

// NewExcludedCandidates creates a filter that drops candidates by the emails configured in the config.
func NewExcludedCandidates() Filter {
	return &excludedCandidatesFilter{}
}

func (f *excludedCandidatesFilter) Name() string { return "excluded_candidates" }

func (f *excludedCandidatesFilter) Disable(string) {}

func (f *excludedCandidatesFilter) IsEnabled() bool { return true }

func (f *excludedCandidatesFilter) Validate(cfg *Config) error {
	f.emails = map[string]struct{}{}
	if cfg == nil {
		return nil
	}
	for _, email := range cfg.ExcludeEmails {
		if email = strings.ToLower(strings.TrimSpace(email)); email != "" {
			f.emails[email] = struct{}{}
		}
	}
	return nil
}

func (f *excludedCandidatesFilter) Apply(_ context.Context, deps Deps, matches []matcher.Match) ([]matcher.Match, Step, error) {
	initial := len(matches)
	if len(f.emails) == 0 {
		return matches, Step{Initial: initial, Left: initial}, nil
	}

	var excluded []string
	matches = slices.DeleteFunc(matches, func(m matcher.Match) bool {
		c, ok := candidateAt(deps, m)
		if !ok {
			return false
		}
		if _, found := f.emails[strings.ToLower(c.Email)]; found {
			excluded = append(excluded, c.Email)
			return true
		}
		return false
	})

	if deps.Logger != nil && len(excluded) > 0 {
		deps.Logger.Info("excluding candidates by email",
			zap.String("job", deps.Job.Title),
			zap.Strings("excluded_candidates", excluded),
			zap.Int("candidates_left", len(matches)),
		)
	}

	return matches, Step{Initial: initial, Dropped: len(excluded), Left: len(matches)}, nil
}

func (f *excludedCandidatesFilter) Status() Status {
	emails := make([]string, 0, len(f.emails))
	for email := range f.emails {
		emails = append(emails, email)
	}
	slices.Sort(emails)

	details := map[string]string{}
	if len(emails) > 0 {
		details["emails"] = strings.Join(emails, ",")
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}
