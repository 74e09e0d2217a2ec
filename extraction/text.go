package extraction

import (
	"bytes"
	"context"

	"doccompare/types"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// PlainText passes text files through, minus a UTF-8 byte order mark.
// Validation of the text itself happens in the comparison engine.
type PlainText struct{}

func NewPlainText() *PlainText { return &PlainText{} }

func (p *PlainText) SupportedMIMETypes() []string {
	return []string{MIMEText, "text/markdown"}
}

func (p *PlainText) Extract(_ context.Context, src Source) (types.Document, error) {
	data := bytes.TrimPrefix(src.Data, utf8BOM)
	return types.Document{Meta: meta(src, MIMEText), Text: string(data)}, nil
}
