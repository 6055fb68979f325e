package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStringFields(t *testing.T) {
	fields := StringFields(
		StringField{Key: "  filename  ", Value: "  cv.pdf  "},
		StringField{Key: "ignored", Value: "   "},
		StringField{Key: "   ", Value: "empty key"},
	)

	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}

	if fields[0].Key != "filename" || fields[0].String != "cv.pdf" {
		t.Fatalf("unexpected filename field: %+v", fields[0])
	}

	if empty := StringFields(); len(empty) != 0 {
		t.Fatalf("expected empty fields, got %d", len(empty))
	}
}

func TestWithFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	enriched := WithFields(zap.New(core), zap.String("foo", "bar"))
	enriched.Info("test log")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	if ctx := entries[0].ContextMap(); ctx["foo"] != "bar" {
		t.Fatalf("expected field to be bar, got %q", ctx["foo"])
	}

	enriched = WithFields(nil, zap.String("baz", "qux"))
	if enriched == nil {
		t.Fatalf("expected fallback logger when nil provided")
	}
	enriched.Info("another log")
}

func TestDocumentFields(t *testing.T) {
	fields := DocumentFields(KindResume, " alice.pdf ")
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}

	if fields[0].Key != FieldDocumentKind || fields[0].String != "resume" {
		t.Fatalf("unexpected kind field: %+v", fields[0])
	}

	if fields[1].Key != FieldFilename || fields[1].String != "alice.pdf" {
		t.Fatalf("unexpected filename field: %+v", fields[1])
	}

	if empty := DocumentFields("", ""); len(empty) != 0 {
		t.Fatalf("expected empty fields, got %d", len(empty))
	}
}

func TestWithDocumentFields(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)

	WithDocumentFields(zap.New(core), KindJob, "backend.txt").Debug("uploaded")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	ctx := entries[0].ContextMap()
	if ctx[FieldDocumentKind] != "job" || ctx[FieldFilename] != "backend.txt" {
		t.Fatalf("unexpected context: %v", ctx)
	}

	WithDocumentFields(nil, KindJob, "x.txt").Info("no panic")
}
