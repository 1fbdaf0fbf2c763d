package dispatch

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a dispatch failure. Every kind maps to exactly one HTTP
// status so the envelope layer never has to inspect messages.
type Kind int

const (
	KindUnsupportedTool Kind = iota
	KindInvalidFileCount
	KindInvalidOption
	KindProcessingFailure
	KindArtifactNotFound
)

// Error is the typed failure every layer above the processing routines sees.
// Cause keeps the underlying library error for logs; Message is what the
// client gets.
type Error struct {
	Kind    Kind
	ToolID  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// HTTPStatus maps the error kind to its response status.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindUnsupportedTool, KindInvalidFileCount, KindInvalidOption:
		return http.StatusBadRequest
	case KindArtifactNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func unsupportedTool(toolID string) *Error {
	return &Error{Kind: KindUnsupportedTool, ToolID: toolID, Message: "Unsupported tool"}
}

func invalidFileCount(toolID, message string) *Error {
	return &Error{Kind: KindInvalidFileCount, ToolID: toolID, Message: message}
}

func invalidOption(toolID, message string) *Error {
	return &Error{Kind: KindInvalidOption, ToolID: toolID, Message: message}
}

func processingFailure(toolID, message string, cause error) *Error {
	return &Error{Kind: KindProcessingFailure, ToolID: toolID, Message: message, Cause: cause}
}

// ArtifactNotFound is the typed miss for download lookups; evicted and
// never-existing artifacts are indistinguishable to the caller.
func ArtifactNotFound(name string) *Error {
	return &Error{
		Kind:    KindArtifactNotFound,
		Message: "File not found",
		Cause:   fmt.Errorf("artifact %q not found", name),
	}
}

// AsError extracts a dispatch *Error from any error chain.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
