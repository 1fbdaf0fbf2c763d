// Package dispatch routes a validated processing request to the routine
// registered for its tool id and turns the outcome into a typed result or a
// typed error. It also enforces the upload cleanup invariant.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode"

	"github.com/convertly/convertly/internal/registry"
	"github.com/convertly/convertly/internal/tools"
	"github.com/convertly/convertly/pkg/logger"
	"github.com/convertly/convertly/pkg/storage"
)

// Tracker receives every successfully produced artifact so its retention can
// be scheduled outside the routines.
type Tracker interface {
	Track(path string)
}

// Result describes a produced artifact to the envelope layer.
type Result struct {
	FileID          string   `json:"fileId"`
	FileName        string   `json:"fileName"`
	FileSize        int64    `json:"fileSize"`
	Message         string   `json:"message"`
	AdditionalFiles []string `json:"additionalFiles,omitempty"`
}

// Router validates and dispatches processing requests over the closed tool
// registry.
type Router struct {
	reg     *registry.Registry
	store   *storage.Layout
	tracker Tracker
	log     logger.Logger
}

func NewRouter(reg *registry.Registry, store *storage.Layout, tracker Tracker, log logger.Logger) *Router {
	return &Router{reg: reg, store: store, tracker: tracker, log: log}
}

// Process runs one tool invocation end to end. Every uploaded file is deleted
// before Process returns, whatever the outcome.
func (r *Router) Process(ctx context.Context, toolID string, files []tools.Input, rawOptions map[string]string) (*Result, error) {
	// Hard invariant: inputs are request-scoped and die with the request.
	defer func() {
		for _, f := range files {
			if err := r.store.Remove(f.Path); err != nil {
				r.log.Warn("failed to remove uploaded file",
					logger.String("path", f.Path),
					logger.Error(err),
				)
			}
		}
	}()

	entry, ok := r.reg.Entry(toolID)
	if !ok {
		return nil, unsupportedTool(toolID)
	}
	d := entry.Descriptor

	if len(files) < d.MinFiles || len(files) > d.MaxFiles {
		return nil, invalidFileCount(toolID, fileCountMessage(d, len(files)))
	}

	opts, optErr := normalizeOptions(toolID, d.Options, rawOptions)
	if optErr != nil {
		return nil, optErr
	}

	started := time.Now()
	r.log.Info("processing started",
		logger.String("tool", toolID),
		logger.Int("files", len(files)),
	)

	output, err := entry.Run(ctx, files, opts)
	if err != nil {
		var inputErr *tools.InputError
		if errors.As(err, &inputErr) {
			// The request was at fault, not the backend.
			return nil, invalidOption(toolID, toolFailureMessage(d, err))
		}
		r.log.Error("processing failed",
			logger.String("tool", toolID),
			logger.Error(err),
		)
		return nil, processingFailure(toolID, toolFailureMessage(d, err), err)
	}

	size, err := r.store.FileSize(output.Path)
	if err != nil {
		err = fmt.Errorf("artifact missing after processing: %w", err)
		return nil, processingFailure(toolID, toolFailureMessage(d, err), err)
	}

	r.tracker.Track(output.Path)
	for _, extra := range output.Additional {
		if p, err := r.store.ResolveDownload(extra); err == nil {
			r.tracker.Track(p)
		}
	}

	r.log.Info("processing finished",
		logger.String("tool", toolID),
		logger.String("artifact", output.Name),
		logger.Int64("bytes", size),
		logger.Duration("elapsed", time.Since(started)),
	)

	return &Result{
		FileID:          output.Name,
		FileName:        output.Name,
		FileSize:        size,
		Message:         output.Message,
		AdditionalFiles: output.Additional,
	}, nil
}

// fileCountMessage builds the human-readable wrong-count message, preferring
// the tool's own wording.
func fileCountMessage(d registry.ToolDescriptor, got int) string {
	if d.CountMessage != "" {
		return d.CountMessage
	}
	switch {
	case d.MaxFiles == 0:
		return fmt.Sprintf("%s does not accept file uploads", d.Name)
	case d.MinFiles == d.MaxFiles && d.MinFiles == 1:
		return fmt.Sprintf("Exactly 1 file is required for %s, got %d", d.Name, got)
	case d.MinFiles == d.MaxFiles:
		return fmt.Sprintf("Exactly %d files are required for %s, got %d", d.MinFiles, d.Name, got)
	default:
		return fmt.Sprintf("Between %d and %d files are required for %s, got %d", d.MinFiles, d.MaxFiles, d.Name, got)
	}
}

// toolFailureMessage turns a routine error into the client-facing message.
// Routine errors are curated, human-readable sentences; raw library errors
// are wrapped by the routines before they get here, so surfacing the text is
// safe. The tool name prefix keeps the message scoped.
func toolFailureMessage(d registry.ToolDescriptor, err error) string {
	msg := err.Error()
	if msg == "" {
		return fmt.Sprintf("%s failed", d.Name)
	}
	r := []rune(msg)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
