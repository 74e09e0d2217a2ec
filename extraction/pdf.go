package extraction

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"doccompare/types"
)

// ErrPDFToolNotFound is returned when pdftotext is not installed.
var ErrPDFToolNotFound = errors.New("pdftotext not found: install poppler-utils")

// CommandRunner executes an external command and returns its stdout
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// PDF extracts text with poppler's pdftotext
type PDF struct {
	runner CommandRunner
	tool   string
}

// NewPDF uses the pdftotext binary on PATH
func NewPDF() *PDF {
	return NewPDFAt("pdftotext")
}

// NewPDFAt uses the given pdftotext binary
func NewPDFAt(tool string) *PDF {
	return NewPDFWithRunner(execRunner{}, tool)
}

// NewPDFWithRunner allows injecting a runner and tool path
func NewPDFWithRunner(runner CommandRunner, tool string) *PDF {
	if tool == "" {
		tool = "pdftotext"
	}
	return &PDF{runner: runner, tool: tool}
}

// CheckAvailable reports whether the configured tool can be found
func (p *PDF) CheckAvailable() error {
	if _, err := exec.LookPath(p.tool); err != nil {
		return ErrPDFToolNotFound
	}
	return nil
}

func (p *PDF) SupportedMIMETypes() []string {
	return []string{MIMEPDF}
}

func (p *PDF) Extract(ctx context.Context, src Source) (types.Document, error) {
	tmp, err := os.CreateTemp("", "doccompare-*.pdf")
	if err != nil {
		return types.Document{}, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(src.Data); err != nil {
		tmp.Close()
		return types.Document{}, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return types.Document{}, fmt.Errorf("failed to close temp file: %w", err)
	}

	out, err := p.runner.Run(ctx, p.tool, "-enc", "UTF-8", tmp.Name(), "-")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return types.Document{}, ErrPDFToolNotFound
		}
		return types.Document{}, fmt.Errorf("pdftotext failed: %w", err)
	}

	text, pages := splitPages(string(out))
	m := meta(src, MIMEPDF)
	m.Pages = pages
	return types.Document{Meta: m, Text: text}, nil
}

// splitPages cleans each form-feed separated page and joins them with newlines.
// Pages without text are counted but contribute no lines.
func splitPages(out string) (string, int) {
	raw := strings.Split(out, "\f")
	// pdftotext terminates the last page with a form feed
	if len(raw) > 1 && strings.TrimSpace(raw[len(raw)-1]) == "" {
		raw = raw[:len(raw)-1]
	}

	parts := make([]string, 0, len(raw))
	for _, page := range raw {
		if cleaned := cleanText(page); cleaned != "" {
			parts = append(parts, cleaned)
		}
	}
	return strings.Join(parts, "\n"), len(raw)
}

// cleanText collapses runs of spaces, trims every line and squeezes blank
// lines to one.
func cleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")

	out := make([]string, 0, len(lines))
	prevEmpty := true
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			if !prevEmpty {
				out = append(out, "")
			}
			prevEmpty = true
			continue
		}
		out = append(out, line)
		prevEmpty = false
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}
