// Package extract turns uploaded files into plain text. PDF extraction is
// delegated to the external pdftotext binary; the pipeline itself never
// parses document formats.
package extract

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// TextExtractor extracts plain text from an uploaded file on disk.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (string, error)
	SupportedExtensions() []string
}

// PdftotextExtractor shells out to poppler's pdftotext for .pdf files and
// reads .md/.txt files directly.
type PdftotextExtractor struct {
	Binary string
}

func NewPdftotextExtractor(binary string) *PdftotextExtractor {
	if binary == "" {
		binary = "pdftotext"
	}
	return &PdftotextExtractor{Binary: binary}
}

func (e *PdftotextExtractor) SupportedExtensions() []string {
	return []string{".pdf", ".md", ".txt"}
}

func (e *PdftotextExtractor) Extract(ctx context.Context, path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read document: %w", err)
		}
		return string(data), nil
	case ".pdf":
		// "-" sends the extracted text to stdout
		cmd := exec.CommandContext(ctx, e.Binary, "-layout", path, "-")
		out, err := cmd.Output()
		if err != nil {
			if exitErr, ok := err.(*exec.ExitError); ok {
				return "", fmt.Errorf("pdftotext failed: %s", strings.TrimSpace(string(exitErr.Stderr)))
			}
			return "", fmt.Errorf("run pdftotext: %w", err)
		}
		return string(out), nil
	default:
		return "", fmt.Errorf("unsupported file extension: %s", filepath.Ext(path))
	}
}
