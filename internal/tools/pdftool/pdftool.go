// Package pdftool implements the document tool family. Page-level
// manipulation delegates to pdfcpu; text extraction uses the pdf reader
// library.
package pdftool

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/spf13/afero"

	"github.com/convertly/convertly/internal/tools"
	"github.com/convertly/convertly/pkg/logger"
	"github.com/convertly/convertly/pkg/storage"
)

type Tool struct {
	store *storage.Layout
	log   logger.Logger
}

func New(store *storage.Layout, log logger.Logger) *Tool {
	return &Tool{store: store, log: log}
}

// Merge concatenates two or more PDFs in upload order.
func (t *Tool) Merge(ctx context.Context, inputs []tools.Input, opts tools.Options) (*tools.Output, error) {
	if err := tools.RequireInputs(t.store.Fs(), inputs); err != nil {
		return nil, err
	}

	paths := make([]string, len(inputs))
	for i, in := range inputs {
		paths[i] = in.Path
	}

	name := tools.OutputName("merged", "pdf")
	path, err := t.store.OutputPath(name)
	if err != nil {
		return nil, err
	}

	if err := api.MergeCreateFile(paths, path, false, nil); err != nil {
		return nil, fmt.Errorf("failed to merge PDF files: %w", err)
	}

	return &tools.Output{
		Path:    path,
		Name:    name,
		Message: fmt.Sprintf("Successfully merged %d PDF files", len(inputs)),
	}, nil
}

// Split extracts the requested page selection ("1-3,5") into a new PDF.
func (t *Tool) Split(ctx context.Context, inputs []tools.Input, opts tools.Options) (*tools.Output, error) {
	if err := tools.RequireInputs(t.store.Fs(), inputs); err != nil {
		return nil, err
	}
	in := inputs[0]

	pages := strings.TrimSpace(opts.String("pages"))
	if pages == "" {
		return nil, fmt.Errorf("a page selection such as \"1-3,5\" is required")
	}

	name := tools.OutputName("split", "pdf")
	path, err := t.store.OutputPath(name)
	if err != nil {
		return nil, err
	}

	if err := api.TrimFile(in.Path, path, []string{pages}, nil); err != nil {
		return nil, fmt.Errorf("failed to extract pages %q: %w", pages, err)
	}

	count, err := api.PageCountFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect split result: %w", err)
	}

	return &tools.Output{
		Path:    path,
		Name:    name,
		Message: fmt.Sprintf("Extracted %d pages from %s", count, in.OriginalName),
	}, nil
}

// Compress rewrites the PDF with pdfcpu's optimizer and reports the size
// reduction.
func (t *Tool) Compress(ctx context.Context, inputs []tools.Input, opts tools.Options) (*tools.Output, error) {
	if err := tools.RequireInputs(t.store.Fs(), inputs); err != nil {
		return nil, err
	}
	in := inputs[0]

	name := tools.OutputName("compressed", "pdf")
	path, err := t.store.OutputPath(name)
	if err != nil {
		return nil, err
	}

	if err := api.OptimizeFile(in.Path, path, nil); err != nil {
		return nil, fmt.Errorf("failed to compress PDF: %w", err)
	}

	newSize, err := t.store.FileSize(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat compressed PDF: %w", err)
	}
	ratio := tools.CompressionRatio(in.SizeBytes, newSize)

	return &tools.Output{
		Path: path,
		Name: name,
		Message: fmt.Sprintf("PDF compressed by %.1f%% (%.2fMB to %.2fMB)",
			ratio, tools.Megabytes(in.SizeBytes), tools.Megabytes(newSize)),
	}, nil
}

// Watermark stamps every page with the given text.
func (t *Tool) Watermark(ctx context.Context, inputs []tools.Input, opts tools.Options) (*tools.Output, error) {
	if err := tools.RequireInputs(t.store.Fs(), inputs); err != nil {
		return nil, err
	}
	in := inputs[0]

	text := strings.TrimSpace(opts.String("text"))
	if text == "" {
		return nil, fmt.Errorf("watermark text is required")
	}

	name := tools.OutputName("watermarked", "pdf")
	path, err := t.store.OutputPath(name)
	if err != nil {
		return nil, err
	}

	desc := "font:Helvetica, points:48, op:0.3, rot:45, scale:0.9"
	if err := api.AddTextWatermarksFile(in.Path, path, nil, true, text, desc, nil); err != nil {
		return nil, fmt.Errorf("failed to add watermark: %w", err)
	}

	return &tools.Output{
		Path:    path,
		Name:    name,
		Message: fmt.Sprintf("Watermark %q added to all pages", text),
	}, nil
}

// Info writes a small text report about the document (page count, size).
func (t *Tool) Info(ctx context.Context, inputs []tools.Input, opts tools.Options) (*tools.Output, error) {
	if err := tools.RequireInputs(t.store.Fs(), inputs); err != nil {
		return nil, err
	}
	in := inputs[0]

	count, err := api.PageCountFile(in.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF: %w", err)
	}

	name := tools.OutputName("pdfinfo", "txt")
	path, err := t.store.OutputPath(name)
	if err != nil {
		return nil, err
	}

	report := fmt.Sprintf("File: %s\nPages: %d\nSize: %.2fMB\n",
		in.OriginalName, count, tools.Megabytes(in.SizeBytes))
	if err := afero.WriteFile(t.store.Fs(), path, []byte(report), 0644); err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}

	return &tools.Output{
		Path:    path,
		Name:    name,
		Message: fmt.Sprintf("%s has %d pages (%.2fMB)", in.OriginalName, count, tools.Megabytes(in.SizeBytes)),
	}, nil
}

// ToText extracts the embedded text layer into a plain text file, keeping the
// original base name.
func (t *Tool) ToText(ctx context.Context, inputs []tools.Input, opts tools.Options) (*tools.Output, error) {
	if err := tools.RequireInputs(t.store.Fs(), inputs); err != nil {
		return nil, err
	}
	in := inputs[0]

	f, reader, err := pdf.Open(in.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	textReader, err := reader.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}
	content, err := io.ReadAll(textReader)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}

	name := tools.PreservedName(in.OriginalName, "txt")
	path, err := t.store.OutputPath(name)
	if err != nil {
		return nil, err
	}
	if err := afero.WriteFile(t.store.Fs(), path, content, 0644); err != nil {
		return nil, fmt.Errorf("failed to write text file: %w", err)
	}

	return &tools.Output{
		Path:    path,
		Name:    name,
		Message: fmt.Sprintf("Extracted %d characters of text from %s", len(content), in.OriginalName),
	}, nil
}
