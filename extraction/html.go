package extraction

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"doccompare/types"

	readability "github.com/go-shiori/go-readability"
)

// HTML extracts the readable body of an HTML page
type HTML struct{}

func NewHTML() *HTML { return &HTML{} }

func (h *HTML) SupportedMIMETypes() []string {
	return []string{MIMEHTML, "application/xhtml+xml"}
}

func (h *HTML) Extract(_ context.Context, src Source) (types.Document, error) {
	pageURL := &url.URL{Scheme: "file", Path: "/" + src.Name}
	article, err := readability.FromReader(bytes.NewReader(src.Data), pageURL)
	if err != nil {
		return types.Document{}, fmt.Errorf("readability extraction failed: %w", err)
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return types.Document{}, fmt.Errorf("readability extraction returned no text")
	}

	m := meta(src, MIMEHTML)
	if article.Title != "" && m.Name == "" {
		m.Name = article.Title
	}
	return types.Document{Meta: m, Text: cleanText(text)}, nil
}
