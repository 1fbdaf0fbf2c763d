// Package texttool implements the plain-text tool family. Tools accept
// either an uploaded .txt file or a "text" option, so they work with zero
// file uploads.
package texttool

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"

	diffmatchpatch "github.com/sergi/go-diff/diffmatchpatch"
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

// source returns the text to operate on: the first uploaded file when
// present, else the "text" option.
func (t *Tool) source(inputs []tools.Input, opts tools.Options) (string, error) {
	if len(inputs) > 0 {
		if err := tools.RequireInputs(t.store.Fs(), inputs); err != nil {
			return "", err
		}
		data, err := afero.ReadFile(t.store.Fs(), inputs[0].Path)
		if err != nil {
			return "", fmt.Errorf("failed to read text file: %w", err)
		}
		return string(data), nil
	}

	text := opts.String("text")
	if strings.TrimSpace(text) == "" {
		return "", tools.InvalidInputf("no text provided")
	}
	return text, nil
}

func (t *Tool) write(operation, content string) (string, string, error) {
	name := tools.OutputName(operation, "txt")
	path, err := t.store.OutputPath(name)
	if err != nil {
		return "", "", err
	}
	if err := afero.WriteFile(t.store.Fs(), path, []byte(content), 0644); err != nil {
		return "", "", fmt.Errorf("failed to write result: %w", err)
	}
	return path, name, nil
}

// Count reports characters, words and lines and writes a small report file.
func (t *Tool) Count(ctx context.Context, inputs []tools.Input, opts tools.Options) (*tools.Output, error) {
	text, err := t.source(inputs, opts)
	if err != nil {
		return nil, err
	}

	chars := len([]rune(text))
	words := len(strings.Fields(text))
	lines := 1 + strings.Count(text, "\n")

	report := fmt.Sprintf("Characters: %d\nWords: %d\nLines: %d\n", chars, words, lines)
	path, name, err := t.write("count", report)
	if err != nil {
		return nil, err
	}

	return &tools.Output{
		Path:    path,
		Name:    name,
		Message: fmt.Sprintf("%d characters, %d words, %d lines", chars, words, lines),
	}, nil
}

// CaseConvert rewrites the text in the requested case.
func (t *Tool) CaseConvert(ctx context.Context, inputs []tools.Input, opts tools.Options) (*tools.Output, error) {
	text, err := t.source(inputs, opts)
	if err != nil {
		return nil, err
	}

	mode := opts.String("mode")
	var converted string
	switch mode {
	case "upper":
		converted = strings.ToUpper(text)
	case "lower":
		converted = strings.ToLower(text)
	case "title":
		converted = titleCase(text)
	case "sentence":
		converted = sentenceCase(text)
	default:
		return nil, tools.InvalidInputf("unsupported case mode %q", mode)
	}

	path, name, err := t.write("case", converted)
	if err != nil {
		return nil, err
	}

	return &tools.Output{
		Path:    path,
		Name:    name,
		Message: fmt.Sprintf("Text converted to %s case", mode),
	}, nil
}

// Sort orders the lines of the text, optionally descending.
func (t *Tool) Sort(ctx context.Context, inputs []tools.Input, opts tools.Options) (*tools.Output, error) {
	text, err := t.source(inputs, opts)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	sort.Strings(lines)
	if opts.Bool("descending") {
		for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
			lines[i], lines[j] = lines[j], lines[i]
		}
	}

	path, name, err := t.write("sorted", strings.Join(lines, "\n")+"\n")
	if err != nil {
		return nil, err
	}

	return &tools.Output{
		Path:    path,
		Name:    name,
		Message: fmt.Sprintf("Sorted %d lines", len(lines)),
	}, nil
}

// Dedupe removes duplicate lines, keeping first occurrences in order.
func (t *Tool) Dedupe(ctx context.Context, inputs []tools.Input, opts tools.Options) (*tools.Output, error) {
	text, err := t.source(inputs, opts)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	seen := make(map[string]struct{}, len(lines))
	unique := lines[:0]
	for _, line := range lines {
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		unique = append(unique, line)
	}
	removed := len(lines) - len(unique)

	path, name, err := t.write("deduped", strings.Join(unique, "\n")+"\n")
	if err != nil {
		return nil, err
	}

	return &tools.Output{
		Path:    path,
		Name:    name,
		Message: fmt.Sprintf("Removed %d duplicate lines, %d lines remain", removed, len(unique)),
	}, nil
}

// Diff compares two uploaded text files and writes a readable diff.
func (t *Tool) Diff(ctx context.Context, inputs []tools.Input, opts tools.Options) (*tools.Output, error) {
	if err := tools.RequireInputs(t.store.Fs(), inputs); err != nil {
		return nil, err
	}

	left, err := afero.ReadFile(t.store.Fs(), inputs[0].Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", inputs[0].OriginalName, err)
	}
	right, err := afero.ReadFile(t.store.Fs(), inputs[1].Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", inputs[1].OriginalName, err)
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(left), string(right), true)
	dmp.DiffCleanupSemantic(diffs)

	var b strings.Builder
	changes := 0
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			changes++
			b.WriteString("+ " + d.Text + "\n")
		case diffmatchpatch.DiffDelete:
			changes++
			b.WriteString("- " + d.Text + "\n")
		default:
			b.WriteString("  " + d.Text + "\n")
		}
	}

	path, name, err := t.write("diff", b.String())
	if err != nil {
		return nil, err
	}

	return &tools.Output{
		Path:    path,
		Name:    name,
		Message: fmt.Sprintf("Found %d differing segments", changes),
	}, nil
}

func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevSpace := true
	for _, r := range s {
		if prevSpace {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteRune(unicode.ToLower(r))
		}
		prevSpace = unicode.IsSpace(r)
	}
	return b.String()
}

func sentenceCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	capitalize := true
	for _, r := range s {
		if capitalize && unicode.IsLetter(r) {
			b.WriteRune(unicode.ToUpper(r))
			capitalize = false
			continue
		}
		if r == '.' || r == '!' || r == '?' || r == '\n' {
			capitalize = true
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
