package filtering

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/matcher"
	"github.com/spigell/resume-matcher/internal/parser"
)

// Filter represents a single step applied to the ranked candidates of a job.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(cfg *Config) error
	Apply(ctx context.Context, deps Deps, matches []matcher.Match) ([]matcher.Match, Step, error)
}

// Deps aggregates dependencies shared across all filtering steps.
type Deps struct {
	Logger *zap.Logger
	Job    parser.Job
	// Candidates is the slice the matches were ranked from.
	Candidates []parser.Candidate
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Config contains configuration settings consumed by the filters.
type Config struct {
	MinimumScore   float64  `mapstructure:"minimum-score"`
	Limit          int      `mapstructure:"limit"`
	RequireContact bool     `mapstructure:"require-contact"`
	ExcludeEmails  []string `mapstructure:"exclude-emails"`
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

// statusProvider is implemented by filters that can supply detailed status information.
type statusProvider interface {
	Status() Status
}

// DecodeConfig builds a Config from a loosely typed map such as the
// "filters" section of the config file. Strings like "0.5" or "true" are accepted.
func DecodeConfig(raw map[string]any) (*Config, error) {
	cfg := &Config{}
	if len(raw) == 0 {
		return cfg, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("create filters decoder: %w", err)
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode filters config: %w", err)
	}

	return cfg, nil
}

// Default returns all filters in the order they are applied.
func Default() []Filter {
	return []Filter{
		NewExcludedCandidates(),
		NewRequireContact(),
		NewMinimumScore(),
		NewLimit(),
	}
}

// DisableByName marks a filter with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Filter, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Run executes the supplied filters sequentially and returns the matches left.
// The input slice is never modified.
func Run(ctx context.Context, cfg *Config, deps Deps, steps []Filter, matches []matcher.Match) ([]matcher.Match, error) {
	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	current := append(make([]matcher.Match, 0, len(matches)), matches...)
	for _, step := range steps {
		if !step.IsEnabled() {
			logger.Debug("filter disabled", zap.String("name", step.Name()))
			continue
		}

		next, info, err := step.Apply(ctx, deps, current)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		logger.Debug("filter step",
			zap.String("name", step.Name()),
			zap.String("job", deps.Job.Title),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		current = next
	}

	return current, nil
}

// Describe returns status entries for the provided filters.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}

// candidateAt resolves a match to its candidate. ok is false when the index
// does not point into candidates.
func candidateAt(deps Deps, m matcher.Match) (parser.Candidate, bool) {
	if m.Index < 0 || m.Index >= len(deps.Candidates) {
		return parser.Candidate{}, false
	}
	return deps.Candidates[m.Index], true
}
