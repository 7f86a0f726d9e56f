package extract

import (
	"errors"
	"testing"

	"go.uber.org/zap"
)

func TestCleanText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "collapses whitespace runs",
			input:  "John  Doe\tSoftware\n\nEngineer",
			expect: "John Doe Software Engineer",
		},
		{
			name:   "strips unsafe characters",
			input:  "C++ {expert} developer <senior>",
			expect: "C++ expert developer senior",
		},
		{
			name:   "keeps allowed punctuation",
			input:  `skills: Go, SQL; 50% faster (approx.) "quoted" [list] #1 a/b-c=d`,
			expect: `skills: Go, SQL; 50% faster (approx.) "quoted" [list] #1 a/b-c=d`,
		},
		{
			name:   "trims edges",
			input:  "   padded resume text   ",
			expect: "padded resume text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := CleanText(tt.input); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestExtractPlainText(t *testing.T) {
	e := NewDocumentExtractor(zap.NewNop())

	got, err := e.ExtractText([]byte("plain resume body"), MIMEText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "plain resume body" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestExtractPlainTextDropsInvalidUTF8(t *testing.T) {
	e := NewDocumentExtractor(zap.NewNop())

	got, err := e.ExtractText([]byte{'o', 'k', 0xff, '!'}, MIMEText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok!" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestExtractUnsupportedMIMEType(t *testing.T) {
	e := NewDocumentExtractor(zap.NewNop())

	_, err := e.ExtractText([]byte("binary"), "image/png")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestExtractInvalidPDFBytes(t *testing.T) {
	e := NewDocumentExtractor(zap.NewNop())

	_, err := e.ExtractText([]byte("definitely not a pdf"), MIMEPDF)
	if err == nil {
		t.Fatal("expected error for invalid pdf bytes")
	}

	var extractionErr *ExtractionError
	if !errors.As(err, &extractionErr) {
		t.Fatalf("expected *ExtractionError, got %T", err)
	}
	if extractionErr.MIMEType != MIMEPDF {
		t.Fatalf("unexpected mime type in error: %q", extractionErr.MIMEType)
	}
}

func TestExtractInvalidDocxBytes(t *testing.T) {
	e := NewDocumentExtractor(zap.NewNop())

	_, err := e.ExtractText([]byte("not a zip archive"), MIMEDocx)

	var extractionErr *ExtractionError
	if !errors.As(err, &extractionErr) {
		t.Fatalf("expected *ExtractionError, got %v", err)
	}
}
