// Package tools defines the contract shared by every processing routine:
// a routine is a function of (input files, normalized options) that writes
// one artifact under the output directory and reports its path.
package tools

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cast"
)

// Input is one uploaded file handed to a routine. Routines must never mutate
// the file at Path.
type Input struct {
	OriginalName string
	Path         string
	SizeBytes    int64
	MimeType     string
}

// Options is the normalized option bag produced by the dispatch router.
// Values are already coerced to their declared types; the typed getters exist
// so routine code stays free of casting noise.
type Options map[string]any

func (o Options) String(name string) string { return cast.ToString(o[name]) }
func (o Options) Int(name string) int       { return cast.ToInt(o[name]) }
func (o Options) Float(name string) float64 { return cast.ToFloat64(o[name]) }
func (o Options) Bool(name string) bool     { return cast.ToBool(o[name]) }

// Has reports whether an option was supplied or defaulted.
func (o Options) Has(name string) bool {
	_, ok := o[name]
	return ok
}

// Output describes the artifact a routine produced. Name is the display
// filename; Message is the tool-specific success message shown to the caller.
// Additional lists extra artifact names when one invocation yields several
// files (page splits, for example).
type Output struct {
	Path       string
	Name       string
	Message    string
	Additional []string
}

// RunFunc is the signature every processing routine implements.
type RunFunc func(ctx context.Context, inputs []Input, opts Options) (*Output, error)

// InputError marks a routine failure caused by the request itself, a missing
// or unusable option value, rather than by the processing backend. The
// dispatch layer answers these with a 400-class status instead of 500.
type InputError struct {
	msg string
}

func (e *InputError) Error() string { return e.msg }

// InvalidInputf builds an InputError from a format string.
func InvalidInputf(format string, args ...any) error {
	return &InputError{msg: fmt.Sprintf(format, args...)}
}

// RequireInputs fails fast when any input path is missing on the given
// filesystem.
func RequireInputs(fs afero.Fs, inputs []Input) error {
	for _, in := range inputs {
		if _, err := fs.Stat(in.Path); err != nil {
			return fmt.Errorf("input file %q is not readable: %w", in.OriginalName, err)
		}
	}
	return nil
}
