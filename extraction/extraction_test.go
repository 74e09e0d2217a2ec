package extraction

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRunner is a test double for CommandRunner.
type mockRunner struct {
	output []byte
	err    error
	name   string
	args   []string
}

func (m *mockRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	m.name = name
	m.args = args
	return m.output, m.err
}

func TestDetectType(t *testing.T) {
	tests := []struct {
		name     string
		src      Source
		expected string
	}{
		{"declared type wins", Source{Name: "a.bin", ContentType: "application/pdf"}, MIMEPDF},
		{"declared with params", Source{Name: "a", ContentType: "text/plain; charset=utf-8"}, MIMEText},
		{"octet stream falls back to extension", Source{Name: "rules.PDF", ContentType: "application/octet-stream"}, MIMEPDF},
		{"html extension", Source{Name: "page.htm"}, MIMEHTML},
		{"sniffed text", Source{Name: "noext", Data: []byte("Article 1: hello")}, MIMEText},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, DetectType(tc.src))
		})
	}
}

func TestPlainTextStripsBOM(t *testing.T) {
	doc, err := NewDefaultRegistry().Extract(context.Background(), Source{
		Name: "a.txt",
		Data: append([]byte{0xEF, 0xBB, 0xBF}, []byte("Article 1")...),
	})
	require.NoError(t, err)
	assert.Equal(t, "Article 1", doc.Text)
	assert.Equal(t, "a.txt", doc.Meta.Name)
	assert.Equal(t, int64(12), doc.Meta.Size)
}

func TestUnsupportedFormat(t *testing.T) {
	_, err := NewDefaultRegistry().Extract(context.Background(), Source{Name: "x.png", ContentType: "image/png"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestPDFExtractWithMockRunner(t *testing.T) {
	runner := &mockRunner{output: []byte("Article 1   Scope\n\n\n\n  body   text  \n\fArticle 2\n\f")}
	p := NewPDFWithRunner(runner, "/opt/bin/pdftotext")

	doc, err := p.Extract(context.Background(), Source{Name: "rules.pdf", Data: []byte("%PDF-1.4")})
	require.NoError(t, err)

	assert.Equal(t, "/opt/bin/pdftotext", runner.name)
	require.Len(t, runner.args, 4)
	assert.Equal(t, "-", runner.args[3])
	assert.Equal(t, "Article 1 Scope\n\nbody text\nArticle 2", doc.Text)
	assert.Equal(t, 2, doc.Meta.Pages)
	assert.Equal(t, MIMEPDF, doc.Meta.ContentType)
}

func TestPDFToolMissing(t *testing.T) {
	p := NewPDFWithRunner(&mockRunner{err: exec.ErrNotFound}, "")
	_, err := p.Extract(context.Background(), Source{Name: "a.pdf"})
	assert.ErrorIs(t, err, ErrPDFToolNotFound)
	assert.Contains(t, ErrPDFToolNotFound.Error(), "pdftotext")
}

func TestPDFToolFailure(t *testing.T) {
	p := NewPDFWithRunner(&mockRunner{err: errors.New("exit status 1")}, "")
	_, err := p.Extract(context.Background(), Source{Name: "a.pdf"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPDFToolNotFound)
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"collapse spaces", "a   b\t c", "a b c"},
		{"trim lines", "  a  \n  b", "a\nb"},
		{"squeeze blanks", "a\n\n\n\nb", "a\n\nb"},
		{"drop edges", "\n\n a \n\n", "a"},
		{"empty", "   ", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, cleanText(tc.in))
		})
	}
}

func TestHTMLExtract(t *testing.T) {
	page := `<html><head><title>Rules</title></head><body>
<article><h1>Rules</h1>
<p>Article 1: The annual fee for every member of the association is ten dollars, payable in January of each year.</p>
<p>Article 2: Members who fail to pay the fee before the end of February lose their voting rights until payment is received.</p>
<p>Article 3: The board may waive the fee for members facing hardship, provided the request is submitted in writing and approved by a majority of the board at its next regular meeting.</p>
<p>Article 4: Fees collected under these rules are used exclusively for the maintenance of common facilities and for the annual general assembly of the association.</p>
</article></body></html>`

	doc, err := NewHTML().Extract(context.Background(), Source{Name: "rules.html", Data: []byte(page)})
	require.NoError(t, err)
	assert.Contains(t, doc.Text, "Article 1: The annual fee")
	assert.Contains(t, doc.Text, "Article 2: Members")
	assert.NotContains(t, doc.Text, "<p>")
}

func TestExtractAllKeepsOrder(t *testing.T) {
	r := NewDefaultRegistry()
	docs, err := r.ExtractAll(context.Background(), []Source{
		{Name: "a.txt", Data: []byte("first")},
		{Name: "b.txt", Data: []byte("second")},
	})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "first", docs[0].Text)
	assert.Equal(t, "second", docs[1].Text)
}

func TestExtractAllReportsError(t *testing.T) {
	r := NewDefaultRegistry()
	_, err := r.ExtractAll(context.Background(), []Source{
		{Name: "a.txt", Data: []byte("ok")},
		{Name: "b.png", ContentType: "image/png"},
	})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
