package types

// DocumentMeta describes one side of a comparison. The engine passes it
// through untouched apart from the line/char counts and sample.
type DocumentMeta struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type,omitempty"`
	Pages       int    `json:"total_pages,omitempty"`
	Lines       int    `json:"total_lines"`
	Chars       int    `json:"total_chars"`
	Sample      string `json:"sample,omitempty"`
}

// Document is extracted text plus its metadata
type Document struct {
	Meta DocumentMeta
	Text string
}

// DocumentInput is a document submitted as JSON (already extracted text).
// Text is nil when the field is missing or null.
type DocumentInput struct {
	Name  string  `json:"name"`
	Text  *string `json:"text"`
	Pages int     `json:"pages,omitempty"`
}

// ToDocument converts a JSON submission into a Document. Callers check that
// Text is present first.
func (in DocumentInput) ToDocument() Document {
	var text string
	if in.Text != nil {
		text = *in.Text
	}
	return Document{
		Meta: DocumentMeta{
			Name:        in.Name,
			Size:        int64(len(text)),
			ContentType: "text/plain",
			Pages:       in.Pages,
		},
		Text: text,
	}
}

// CompareRequest is the JSON body accepted by the API and the Kafka consumer
type CompareRequest struct {
	Document1           *DocumentInput `json:"document1"`
	Document2           *DocumentInput `json:"document2"`
	GenerateExplanation bool           `json:"generate_explanation"`
}
