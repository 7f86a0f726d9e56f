package extract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"go.uber.org/zap"
)

// Supported MIME types.
const (
	MIMEPDF  = "application/pdf"
	MIMEDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEText = "text/plain"
)

// ErrUnsupportedFormat is returned when the MIME type is not on the allow-list.
// It reflects a caller contract violation and is the only extraction error that
// maps to a client error upstream.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ExtractionError wraps a failure to parse bytes claimed to be of a supported type.
type ExtractionError struct {
	MIMEType string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting text from %s: %v", e.MIMEType, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Extractor converts raw uploaded bytes of a given MIME type into plain text.
type Extractor interface {
	ExtractText(content []byte, mimeType string) (string, error)
}

// DocumentExtractor extracts text from PDF, DOCX and plain text documents.
type DocumentExtractor struct {
	logger *zap.Logger
}

func NewDocumentExtractor(log *zap.Logger) *DocumentExtractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &DocumentExtractor{logger: log}
}

func (e *DocumentExtractor) ExtractText(content []byte, mimeType string) (string, error) {
	switch mimeType {
	case MIMEText:
		// Invalid UTF-8 sequences are dropped rather than rejected.
		return strings.ToValidUTF8(string(content), ""), nil
	case MIMEPDF:
		text, err := extractPDF(content)
		if err != nil {
			return "", &ExtractionError{MIMEType: mimeType, Err: err}
		}
		e.logger.Debug("extracted pdf text", zap.Int("characters", len(text)))
		return CleanText(text), nil
	case MIMEDocx:
		text, err := extractDocx(content)
		if err != nil {
			return "", &ExtractionError{MIMEType: mimeType, Err: err}
		}
		e.logger.Debug("extracted docx text", zap.Int("characters", len(text)))
		return CleanText(text), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, mimeType)
	}
}

func extractPDF(content []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	var builder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if builder.Len() > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(text)
	}

	return builder.String(), nil
}

func extractDocx(content []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("read docx: %w", err)
	}
	defer doc.Close()

	return doc.Editable().GetContent(), nil
}
