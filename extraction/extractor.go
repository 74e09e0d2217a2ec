package extraction

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"doccompare/types"
)

// ErrUnsupportedFormat is returned when no extractor handles a source.
var ErrUnsupportedFormat = errors.New("unsupported document format")

const (
	MIMEText = "text/plain"
	MIMEHTML = "text/html"
	MIMEPDF  = "application/pdf"
)

// Source is an uploaded file before text extraction
type Source struct {
	Name        string
	ContentType string
	Data        []byte
}

// Extractor turns one kind of source into plain text
type Extractor interface {
	Extract(ctx context.Context, src Source) (types.Document, error)
	SupportedMIMETypes() []string
}

// Registry picks an extractor by MIME type
type Registry struct {
	byMIME map[string]Extractor
}

// NewRegistry registers extractors in order; later ones win on overlap.
func NewRegistry(extractors ...Extractor) *Registry {
	r := &Registry{byMIME: make(map[string]Extractor)}
	for _, e := range extractors {
		for _, m := range e.SupportedMIMETypes() {
			r.byMIME[m] = e
		}
	}
	return r
}

// NewDefaultRegistry handles plain text, HTML and PDF
func NewDefaultRegistry() *Registry {
	return NewRegistry(NewPlainText(), NewHTML(), NewPDF())
}

// Extract detects the source type and runs the matching extractor
func (r *Registry) Extract(ctx context.Context, src Source) (types.Document, error) {
	mt := DetectType(src)
	e, ok := r.byMIME[mt]
	if !ok {
		return types.Document{}, fmt.Errorf("%w: %s (%s)", ErrUnsupportedFormat, src.Name, mt)
	}
	doc, err := e.Extract(ctx, src)
	if err != nil {
		return types.Document{}, fmt.Errorf("extract %s: %w", src.Name, err)
	}
	return doc, nil
}

// DetectType resolves the MIME type of a source: declared content type first,
// then file extension, then content sniffing.
func DetectType(src Source) string {
	if mt := baseType(src.ContentType); mt != "" && mt != "application/octet-stream" {
		return mt
	}
	switch strings.ToLower(filepath.Ext(src.Name)) {
	case ".txt", ".text", ".md":
		return MIMEText
	case ".html", ".htm":
		return MIMEHTML
	case ".pdf":
		return MIMEPDF
	}
	return baseType(http.DetectContentType(src.Data))
}

func baseType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return mt
}

func meta(src Source, contentType string) types.DocumentMeta {
	return types.DocumentMeta{
		Name:        src.Name,
		Size:        int64(len(src.Data)),
		ContentType: contentType,
	}
}
