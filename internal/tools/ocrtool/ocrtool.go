// Package ocrtool implements optical character recognition over uploaded
// images, and embedded-text extraction for PDFs. Recognition delegates to the
// tesseract engine through gosseract.
package ocrtool

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/ledongthuc/pdf"
	"github.com/otiai10/gosseract/v2"
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

// Image runs OCR over an uploaded image and writes the recognized text,
// reporting the mean word confidence.
func (t *Tool) Image(ctx context.Context, inputs []tools.Input, opts tools.Options) (*tools.Output, error) {
	if err := tools.RequireInputs(t.store.Fs(), inputs); err != nil {
		return nil, err
	}
	in := inputs[0]

	client := gosseract.NewClient()
	defer client.Close()

	if lang := opts.String("language"); lang != "" {
		if err := client.SetLanguage(lang); err != nil {
			return nil, fmt.Errorf("unsupported OCR language %q: %w", lang, err)
		}
	}
	if err := client.SetImage(in.Path); err != nil {
		return nil, fmt.Errorf("failed to load image for OCR: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("text recognition failed: %w", err)
	}

	confidence := 0.0
	if boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD); err == nil && len(boxes) > 0 {
		var total float64
		for _, box := range boxes {
			total += box.Confidence
		}
		confidence = math.Round(total/float64(len(boxes))*10) / 10
	}

	name := tools.PreservedName(in.OriginalName, "txt")
	path, err := t.store.OutputPath(name)
	if err != nil {
		return nil, err
	}
	if err := afero.WriteFile(t.store.Fs(), path, []byte(text), 0644); err != nil {
		return nil, fmt.Errorf("failed to write recognized text: %w", err)
	}

	return &tools.Output{
		Path:    path,
		Name:    name,
		Message: fmt.Sprintf("Recognized %d characters with %.1f%% confidence", len(text), confidence),
	}, nil
}

// PDF extracts the embedded text layer from a PDF. Scanned PDFs without a
// text layer yield a descriptive error rather than empty output.
func (t *Tool) PDF(ctx context.Context, inputs []tools.Input, opts tools.Options) (*tools.Output, error) {
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
	if len(content) == 0 {
		return nil, fmt.Errorf("%s has no embedded text layer; convert pages to images and use image OCR", in.OriginalName)
	}

	name := tools.PreservedName(in.OriginalName, "txt")
	path, err := t.store.OutputPath(name)
	if err != nil {
		return nil, err
	}
	if err := afero.WriteFile(t.store.Fs(), path, content, 0644); err != nil {
		return nil, fmt.Errorf("failed to write extracted text: %w", err)
	}

	return &tools.Output{
		Path:    path,
		Name:    name,
		Message: fmt.Sprintf("Extracted %d characters from %d pages", len(content), reader.NumPage()),
	}, nil
}
