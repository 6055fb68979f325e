package extract

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type stubStrategy struct {
	name  string
	text  string
	err   error
	panic bool
	calls int
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) Extract(context.Context, []byte) (string, error) {
	s.calls++
	if s.panic {
		panic("broken xref table")
	}
	return s.text, s.err
}

func TestExtractPlainText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filename string
		data     []byte
		status   Status
		text     string
	}{
		{name: "utf8 text", filename: "jane.txt", data: []byte("Jane Doe\nPython"), status: StatusOK, text: "Jane Doe\nPython"},
		{name: "unknown extension is text", filename: "job.md", data: []byte("Backend Engineer"), status: StatusOK, text: "Backend Engineer"},
		{name: "invalid bytes are dropped", filename: "cv.txt", data: []byte("Jo\xffhn\xfe"), status: StatusOK, text: "John"},
		{name: "empty file", filename: "empty.txt", data: nil, status: StatusEmpty},
		{name: "only invalid bytes", filename: "bin.txt", data: []byte{0xff, 0xfe}, status: StatusEmpty},
		{name: "whitespace is kept", filename: "blank.txt", data: []byte(" \n "), status: StatusOK, text: " \n "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := New(nil).Extract(context.Background(), tt.filename, tt.data)
			assert.Equal(t, tt.status, res.Status)
			assert.Equal(t, tt.text, res.Text)
			assert.NoError(t, res.Err)
			assert.Equal(t, "text", res.Strategy)
		})
	}
}

func TestExtractMalformedPDF(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	e := New(zap.New(core))

	var res Result
	require.NotPanics(t, func() {
		res = e.Extract(context.Background(), "broken.pdf", []byte("this is definitely not a pdf"))
	})

	assert.Equal(t, StatusFailed, res.Status)
	assert.Empty(t, res.Text)
	require.Error(t, res.Err)
	assert.ErrorIs(t, res.Err, ErrNoPDFText)

	warnings := observed.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "broken.pdf", warnings[0].ContextMap()["filename"])
}

func TestExtractPDFExtensionIsCaseInsensitive(t *testing.T) {
	primary := &stubStrategy{name: "primary", text: "from pdf"}
	e := New(nil, WithStrategies(primary))

	res := e.Extract(context.Background(), "RESUME.PDF", []byte("%PDF-1.4"))
	assert.Equal(t, StatusOK, res.Status)
	assert.Equal(t, "from pdf", res.Text)
	assert.Equal(t, 1, primary.calls)
}

func TestExtractPDFFallback(t *testing.T) {
	t.Run("first strategy wins", func(t *testing.T) {
		primary := &stubStrategy{name: "primary", text: "page text"}
		secondary := &stubStrategy{name: "secondary", text: "document text"}

		res := New(nil, WithStrategies(primary, secondary)).Extract(context.Background(), "a.pdf", nil)
		assert.Equal(t, "page text", res.Text)
		assert.Equal(t, "primary", res.Strategy)
		assert.Equal(t, 0, secondary.calls)
	})

	t.Run("falls back on error", func(t *testing.T) {
		primary := &stubStrategy{name: "primary", err: errors.New("bad page tree")}
		secondary := &stubStrategy{name: "secondary", text: "document text"}

		res := New(nil, WithStrategies(primary, secondary)).Extract(context.Background(), "a.pdf", nil)
		assert.Equal(t, StatusOK, res.Status)
		assert.Equal(t, "document text", res.Text)
		assert.Equal(t, "secondary", res.Strategy)
	})

	t.Run("falls back on panic", func(t *testing.T) {
		primary := &stubStrategy{name: "primary", panic: true}
		secondary := &stubStrategy{name: "secondary", text: "document text"}

		res := New(nil, WithStrategies(primary, secondary)).Extract(context.Background(), "a.pdf", nil)
		assert.Equal(t, StatusOK, res.Status)
		assert.Equal(t, "document text", res.Text)
	})

	t.Run("empty text does not fall back", func(t *testing.T) {
		primary := &stubStrategy{name: "primary"}
		secondary := &stubStrategy{name: "secondary", text: "document text"}

		res := New(nil, WithStrategies(primary, secondary)).Extract(context.Background(), "scan.pdf", nil)
		assert.Equal(t, StatusEmpty, res.Status)
		assert.NoError(t, res.Err)
		assert.Equal(t, 0, secondary.calls)
	})

	t.Run("all strategies fail", func(t *testing.T) {
		primary := &stubStrategy{name: "primary", err: errors.New("bad page tree")}
		secondary := &stubStrategy{name: "secondary", panic: true}

		res := New(nil, WithStrategies(primary, secondary)).Extract(context.Background(), "a.pdf", nil)
		assert.Equal(t, StatusFailed, res.Status)
		assert.ErrorIs(t, res.Err, ErrNoPDFText)
		assert.ErrorContains(t, res.Err, "bad page tree")
		assert.ErrorContains(t, res.Err, "decoder panic")
	})
}

func TestExtractReaderRewinds(t *testing.T) {
	r := bytes.NewReader([]byte("Jane Doe"))

	res := New(nil).ExtractReader(context.Background(), "jane.txt", r)
	require.Equal(t, StatusOK, res.Status)
	assert.Equal(t, "Jane Doe", res.Text)

	again, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", string(again))
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "ok", StatusOK.String())
	assert.Equal(t, "empty", StatusEmpty.String())
	assert.Equal(t, "failed", StatusFailed.String())
	assert.Equal(t, "status(7)", Status(7).String())
}

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

func TestPDFStrategiesReadText(t *testing.T) {
	t.Parallel()

	data := readFixture(t, "resume.pdf")

	tests := []struct {
		name     string
		strategy Strategy
	}{
		{name: "pages", strategy: NewPageStrategy()},
		{name: "document", strategy: NewDocumentStrategy()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			text, err := tt.strategy.Extract(context.Background(), data)
			require.NoError(t, err)
			assert.Equal(t, "Jane Doe Python SQL", strings.TrimSpace(text))
		})
	}
}

func TestExtractRealPDF(t *testing.T) {
	res := New(nil).Extract(context.Background(), "resume.pdf", readFixture(t, "resume.pdf"))

	require.NoError(t, res.Err)
	assert.Equal(t, StatusOK, res.Status)
	assert.Equal(t, "pdf_pages", res.Strategy)
	assert.Contains(t, res.Text, "Jane Doe Python SQL")
}

func TestPageStrategyJoinsPages(t *testing.T) {
	text, err := NewPageStrategy().Extract(context.Background(), readFixture(t, "two_pages.pdf"))
	require.NoError(t, err)

	first := strings.Index(text, "Jane Doe")
	second := strings.Index(text, "Python SQL")
	require.GreaterOrEqual(t, first, 0)
	require.Greater(t, second, first)
	assert.Contains(t, text[first:second], "\n")
}
