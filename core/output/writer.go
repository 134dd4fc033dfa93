// Package output handles file naming and writing for devmark outputs.
// Filenames are flat and derived from the source: a URL becomes
// host_path (e.g. blog_example_com_my_post.md), a file keeps its base name,
// and standard input becomes "stdin".
package output

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// StdinSource is the source name used for standard input.
const StdinSource = "-"

// Writer writes rendered output to disk, or to Stdout when it is set.
type Writer struct {
	OutputDir string
	Stdout    io.Writer
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// NewStdout creates a Writer that sends everything to out.
func NewStdout(out io.Writer) *Writer {
	return &Writer{Stdout: out}
}

// Write stores data as name+ext and returns the path written,
// or "-" when writing to Stdout.
func (w *Writer) Write(name string, data []byte, ext string) (string, error) {
	if w.Stdout != nil {
		if _, err := w.Stdout.Write(data); err != nil {
			return "", fmt.Errorf("writing to stdout: %w", err)
		}
		return StdinSource, nil
	}

	path := filepath.Join(w.OutputDir, name+ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// FilenameFor derives a flat file name (without extension) from a source.
func FilenameFor(source string) string {
	if source == "" || source == StdinSource {
		return "stdin"
	}
	if parsed, err := url.Parse(source); err == nil && parsed.Host != "" {
		return filenameFromURL(parsed)
	}
	base := filepath.Base(source)
	if name := strings.TrimSuffix(base, filepath.Ext(base)); name != "" {
		return sanitize(name)
	}
	return sanitize(base)
}

// filenameFromURL converts a URL into a flat filename.
// Example: https://example.com/docs/intro.html → example_com_docs_intro
func filenameFromURL(u *url.URL) string {
	parts := []string{sanitize(u.Host)}
	path := strings.Trim(u.Path, "/")
	path = strings.TrimSuffix(path, filepath.Ext(path))
	if path != "" {
		for _, seg := range strings.Split(path, "/") {
			parts = append(parts, sanitize(seg))
		}
	}
	return strings.Join(parts, "_")
}

// sanitize replaces non-alphanumeric characters with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
