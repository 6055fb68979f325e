package portal

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/extract"
	"github.com/spigell/resume-matcher/internal/filtering"
	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/matcher"
	"github.com/spigell/resume-matcher/internal/parser"
	"github.com/spigell/resume-matcher/internal/store"
	"github.com/spigell/resume-matcher/internal/vocabulary"
)

// ErrNoText is returned by uploads when no text could be extracted from the document.
var ErrNoText = errors.New("failed to extract text")

// Portal ties extraction, parsing, storage and matching together.
type Portal struct {
	vocab     *vocabulary.Vocabulary
	extractor *extract.Extractor
	store     *store.Store
	logger    *zap.Logger

	filters   []filtering.Filter
	filterCfg *filtering.Config
}

// Option configures a Portal.
type Option func(*Portal)

// WithFilters applies steps with cfg to the ranking of every job on the dashboard.
func WithFilters(cfg *filtering.Config, steps ...filtering.Filter) Option {
	return func(p *Portal) {
		p.filterCfg = cfg
		p.filters = steps
	}
}

// WithStore replaces the in-memory store created by New.
func WithStore(s *store.Store) Option {
	return func(p *Portal) {
		if s != nil {
			p.store = s
		}
	}
}

func New(vocab *vocabulary.Vocabulary, extractor *extract.Extractor, log *zap.Logger, opts ...Option) *Portal {
	if log == nil {
		log = zap.NewNop()
	}
	if vocab == nil {
		vocab = vocabulary.New()
	}
	if extractor == nil {
		extractor = extract.New(log)
	}

	p := &Portal{
		vocab:     vocab,
		extractor: extractor,
		store:     store.New(),
		logger:    log,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// UploadResume extracts, parses and stores a resume.
func (p *Portal) UploadResume(ctx context.Context, filename string, data []byte) (parser.Candidate, error) {
	log := logger.WithDocumentFields(p.logger, logger.KindResume, filename)

	text, err := p.text(ctx, filename, data)
	if err != nil {
		log.Warn("resume rejected", zap.Error(err))
		return parser.Candidate{}, err
	}

	c := parser.ParseResume(text, p.vocab)
	c.Filename = filename
	c = p.store.AppendCandidate(c)

	log.Info("resume stored",
		zap.String("id", c.ID),
		zap.String("name", c.Name),
		zap.Strings("skills", c.Skills),
	)

	return c, nil
}

// UploadJob extracts, parses and stores a job posting.
func (p *Portal) UploadJob(ctx context.Context, filename string, data []byte) (parser.Job, error) {
	log := logger.WithDocumentFields(p.logger, logger.KindJob, filename)

	text, err := p.text(ctx, filename, data)
	if err != nil {
		log.Warn("job rejected", zap.Error(err))
		return parser.Job{}, err
	}

	j := parser.ParseJob(text, p.vocab)
	j.Filename = filename
	j = p.store.AppendJob(j)

	log.Info("job stored",
		zap.String("id", j.ID),
		zap.String("title", j.Title),
		zap.Strings("skills_required", j.SkillsRequired),
	)

	return j, nil
}

func (p *Portal) Candidates() []parser.Candidate { return p.store.Candidates() }

func (p *Portal) Jobs() []parser.Job { return p.store.Jobs() }

// Dashboard ranks the stored candidates for every stored job. When jobIDs
// are given only those jobs get rankings; both tables are always complete.
func (p *Portal) Dashboard(ctx context.Context, jobIDs ...string) (*Dashboard, error) {
	candidates := p.store.Candidates()
	jobs := p.store.Jobs()

	d := &Dashboard{
		Candidates: candidates,
		Jobs:       jobs,
		Matches:    make([]JobMatches, 0, len(jobs)),
	}

	for _, job := range jobs {
		if len(jobIDs) > 0 && !slices.Contains(jobIDs, job.ID) {
			continue
		}

		ranked := matcher.Rank(job, candidates)
		if len(p.filters) > 0 {
			deps := filtering.Deps{Logger: p.logger, Job: job, Candidates: candidates}
			filtered, err := filtering.Run(ctx, p.filterCfg, deps, p.filters, ranked)
			if err != nil {
				return nil, fmt.Errorf("filtering matches for job %q: %w", job.Title, err)
			}
			ranked = filtered
		}

		jm := JobMatches{Job: job, Ranked: make([]RankedCandidate, 0, len(ranked))}
		for _, m := range ranked {
			c := candidates[m.Index]
			jm.Ranked = append(jm.Ranked, RankedCandidate{
				CandidateID: c.ID,
				Name:        c.Name,
				Score:       m.Score,
			})
		}
		d.Matches = append(d.Matches, jm)
	}

	p.logger.Debug("dashboard built",
		zap.Int("candidates", len(candidates)),
		zap.Int("jobs", len(jobs)),
		zap.Int("ranked_jobs", len(d.Matches)),
	)

	return d, nil
}

func (p *Portal) text(ctx context.Context, filename string, data []byte) (string, error) {
	res := p.extractor.Extract(ctx, filename, data)
	if res.Status == extract.StatusOK {
		return res.Text, nil
	}

	err := fmt.Errorf("%w from %s (%s)", ErrNoText, filename, res.Status)
	if res.Err != nil {
		err = fmt.Errorf("%w: %w", err, res.Err)
	}
	return "", err
}
