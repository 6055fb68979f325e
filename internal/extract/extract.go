package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/utils"
)

const (
	pdfExt = ".pdf"

	defaultMaxLogLength = 120
)

// Status tells why a Result does or does not carry text.
type Status int

const (
	// StatusOK means the document was decoded and has text.
	StatusOK Status = iota
	// StatusEmpty means the document was decoded but contains no text.
	StatusEmpty
	// StatusFailed means the document could not be decoded.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusEmpty:
		return "empty"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

var ErrNoPDFText = errors.New("no pdf strategy could extract text")

// Result is the outcome of a single extraction. Text is empty unless Status is StatusOK.
type Result struct {
	Text   string
	Status Status
	// Strategy names the decoder that produced the text.
	Strategy string
	Err      error
}

// Strategy extracts the whole text layer of a PDF document.
type Strategy interface {
	Name() string
	Extract(ctx context.Context, data []byte) (string, error)
}

// Extractor converts raw documents to plain text. PDFs are tried with every
// strategy in order until one of them succeeds.
type Extractor struct {
	logger     *zap.Logger
	strategies []Strategy
	maxLogLen  int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithStrategies replaces the PDF strategies.
func WithStrategies(strategies ...Strategy) Option {
	return func(e *Extractor) {
		e.strategies = strategies
	}
}

// WithMaxLogLength sets how much of the extracted text is previewed in debug logs.
func WithMaxLogLength(limit int) Option {
	return func(e *Extractor) {
		if limit > 0 {
			e.maxLogLen = limit
		}
	}
}

// New returns an Extractor that reads PDFs page by page first and falls back
// to whole-document extraction.
func New(logger *zap.Logger, opts ...Option) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}

	e := &Extractor{
		logger:     logger,
		strategies: []Strategy{NewPageStrategy(), NewDocumentStrategy()},
		maxLogLen:  defaultMaxLogLength,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Extract converts data to plain text based on the filename extension.
// It never panics and never returns an error directly; see Result.Status.
func (e *Extractor) Extract(ctx context.Context, filename string, data []byte) Result {
	ext := strings.ToLower(filepath.Ext(filename))

	var res Result
	if ext == pdfExt {
		res = e.extractPDF(ctx, filename, data)
	} else {
		res = finish(decodeText(data), "text", nil)
	}

	fields := []zap.Field{
		zap.String("filename", filename),
		zap.String("status", res.Status.String()),
		zap.String("strategy", res.Strategy),
		zap.Int("text_length", utf8.RuneCountInString(res.Text)),
	}
	if res.Err != nil {
		e.logger.Warn("text extraction failed", append(fields, zap.Error(res.Err))...)
		return res
	}

	e.logger.Debug("text extracted", append(fields,
		zap.String("text_preview", utils.TruncateForLog(res.Text, e.maxLogLen)),
	)...)

	return res
}

// ExtractReader reads the whole stream and rewinds it to the start so the
// caller can read the same content again.
func (e *Extractor) ExtractReader(ctx context.Context, filename string, r io.ReadSeeker) Result {
	data, err := io.ReadAll(r)
	if _, seekErr := r.Seek(0, io.SeekStart); seekErr != nil && err == nil {
		err = fmt.Errorf("rewinding %s: %w", filename, seekErr)
	}
	if err != nil {
		res := Result{Status: StatusFailed, Err: fmt.Errorf("reading %s: %w", filename, err)}
		e.logger.Warn("text extraction failed", zap.String("filename", filename), zap.Error(res.Err))
		return res
	}

	return e.Extract(ctx, filename, data)
}

func (e *Extractor) extractPDF(ctx context.Context, filename string, data []byte) Result {
	var errs []error
	for _, strategy := range e.strategies {
		text, err := safeExtract(ctx, strategy, data)
		if err == nil {
			return finish(text, strategy.Name(), nil)
		}

		e.logger.Debug("pdf strategy failed, trying next one",
			zap.String("filename", filename),
			zap.String("strategy", strategy.Name()),
			zap.Error(err),
		)
		errs = append(errs, fmt.Errorf("%s: %w", strategy.Name(), err))
	}

	return finish("", "", fmt.Errorf("%w: %w", ErrNoPDFText, errors.Join(errs...)))
}

// safeExtract turns a panic inside a PDF decoder into an error.
// Malformed documents are known to make the decoders panic.
func safeExtract(ctx context.Context, strategy Strategy, data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("decoder panic: %v", r)
		}
	}()

	return strategy.Extract(ctx, data)
}

func finish(text, strategy string, err error) Result {
	switch {
	case err != nil:
		return Result{Status: StatusFailed, Strategy: strategy, Err: err}
	case text == "":
		return Result{Status: StatusEmpty, Strategy: strategy}
	default:
		return Result{Text: text, Status: StatusOK, Strategy: strategy}
	}
}

// decodeText reads data as UTF-8 and silently drops invalid bytes.
func decodeText(data []byte) string {
	return strings.ToValidUTF8(string(data), "")
}
