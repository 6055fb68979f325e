package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldDocumentKind is the structured log field key for the kind of an uploaded document.
	FieldDocumentKind = "document_kind"
	// FieldFilename is the structured log field key for the name of an uploaded file.
	FieldFilename = "filename"

	KindResume = "resume"
	KindJob    = "job"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches the provided fields to the logger.
// A nil logger is replaced with a no-op one.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// DocumentFields describes an uploaded document. Empty values are skipped.
func DocumentFields(kind, filename string) []zap.Field {
	return StringFields(
		StringField{Key: FieldDocumentKind, Value: kind},
		StringField{Key: FieldFilename, Value: filename},
	)
}

func WithDocumentFields(logger *zap.Logger, kind, filename string) *zap.Logger {
	return WithFields(logger, DocumentFields(kind, filename)...)
}
