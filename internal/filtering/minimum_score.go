package filtering

import (
	"context"
	"fmt"
	"slices"

	"github.com/spigell/resume-matcher/internal/matcher"
)

type minimumScoreFilter struct {
	disabled bool
	reason   string
	minimum  float64
}

// NewMinimumScore creates a filter that drops matches scoring below the configured minimum.
func NewMinimumScore() Filter {
	return &minimumScoreFilter{}
}

func (f *minimumScoreFilter) Name() string { return "minimum_score" }

func (f *minimumScoreFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *minimumScoreFilter) IsEnabled() bool { return !f.disabled }

func (f *minimumScoreFilter) Validate(cfg *Config) error {
	f.minimum = 0
	if cfg == nil {
		return nil
	}
	if cfg.MinimumScore < 0 || cfg.MinimumScore > 1 {
		return fmt.Errorf("minimum score must be within [0, 1], got %.2f", cfg.MinimumScore)
	}
	f.minimum = cfg.MinimumScore
	return nil
}

func (f *minimumScoreFilter) Apply(_ context.Context, _ Deps, matches []matcher.Match) ([]matcher.Match, Step, error) {
	initial := len(matches)
	if f.minimum == 0 {
		return matches, Step{Initial: initial, Left: initial}, nil
	}

	matches = slices.DeleteFunc(matches, func(m matcher.Match) bool {
		return m.Score < f.minimum
	})

	return matches, Step{Initial: initial, Dropped: initial - len(matches), Left: len(matches)}, nil
}

func (f *minimumScoreFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"minimum_score": fmt.Sprintf("%.2f", f.minimum)},
	}
}
