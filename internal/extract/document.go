package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	einoParser "github.com/cloudwego/eino/components/document/parser"
)

const defaultDocumentTimeout = 30 * time.Second

var errNoDocuments = errors.New("parser returned no documents")

// DocumentStrategy reads the text layer of the whole document in one pass
// using the eino PDF parser. It copes with files whose page tree the page
// strategy can not walk.
type DocumentStrategy struct {
	timeout time.Duration
}

func NewDocumentStrategy() *DocumentStrategy {
	return &DocumentStrategy{timeout: defaultDocumentTimeout}
}

func (s *DocumentStrategy) Name() string { return "pdf_document" }

func (s *DocumentStrategy) Extract(ctx context.Context, data []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	// ToPages is off: we want the whole document as a single string.
	p, err := pdf.NewPDFParser(ctx, &pdf.Config{ToPages: false})
	if err != nil {
		return "", fmt.Errorf("create pdf parser: %w", err)
	}

	docs, err := p.Parse(ctx, bytes.NewReader(data), einoParser.WithURI(s.Name()))
	if err != nil {
		return "", err
	}
	if len(docs) == 0 {
		return "", errNoDocuments
	}

	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		parts = append(parts, doc.Content)
	}

	return strings.Join(parts, "\n"), nil
}
