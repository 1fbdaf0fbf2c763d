// Package videotool implements the video/audio tool family by invoking
// ffmpeg. The binary is treated as a black box: arguments in, output file or
// error out.
package videotool

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	execute "github.com/alexellis/go-execute/v2"
	"github.com/spf13/afero"

	"github.com/convertly/convertly/internal/tools"
	"github.com/convertly/convertly/pkg/logger"
	"github.com/convertly/convertly/pkg/storage"
)

// ffmpegHint is appended to every failure so a missing transcoder binary is
// actionable for the caller.
const ffmpegHint = "Please ensure FFmpeg is installed."

type Tool struct {
	store  *storage.Layout
	log    logger.Logger
	binary string
}

func New(store *storage.Layout, log logger.Logger) *Tool {
	return &Tool{store: store, log: log, binary: "ffmpeg"}
}

// run invokes ffmpeg with -y plus args. Non-zero exit or a missing binary
// both surface as an error carrying stderr context.
func (t *Tool) run(ctx context.Context, args []string) error {
	task := execute.ExecTask{
		Command:     t.binary,
		Args:        append([]string{"-y", "-hide_banner", "-loglevel", "error"}, args...),
		StreamStdio: false,
	}

	res, err := task.Execute(ctx)
	if err != nil {
		return fmt.Errorf("ffmpeg not available: %w", err)
	}
	if res.ExitCode != 0 {
		detail := strings.TrimSpace(res.Stderr)
		if len(detail) > 200 {
			detail = detail[:200]
		}
		return fmt.Errorf("ffmpeg failed: %s", detail)
	}
	return nil
}

// fail logs the underlying ffmpeg error and returns the curated message the
// client sees. Raw ffmpeg output stays in the logs.
func (t *Tool) fail(verb string, err error) error {
	t.log.Error("ffmpeg invocation failed",
		logger.String("operation", verb),
		logger.Error(err),
	)
	return fmt.Errorf("failed to %s. %s", verb, ffmpegHint)
}

// Convert transcodes the input into the requested container format.
func (t *Tool) Convert(ctx context.Context, inputs []tools.Input, opts tools.Options) (*tools.Output, error) {
	if err := tools.RequireInputs(t.store.Fs(), inputs); err != nil {
		return nil, err
	}
	in := inputs[0]

	format := strings.ToLower(opts.String("format"))
	name := tools.PreservedName(in.OriginalName, format)
	path, err := t.store.OutputPath(name)
	if err != nil {
		return nil, err
	}

	if err := t.run(ctx, []string{"-i", in.Path, path}); err != nil {
		return nil, t.fail("convert video", err)
	}

	return &tools.Output{
		Path:    path,
		Name:    name,
		Message: fmt.Sprintf("Video converted to %s", strings.ToUpper(format)),
	}, nil
}

// Compress re-encodes with a CRF chosen by the requested level and reports
// the size reduction.
func (t *Tool) Compress(ctx context.Context, inputs []tools.Input, opts tools.Options) (*tools.Output, error) {
	if err := tools.RequireInputs(t.store.Fs(), inputs); err != nil {
		return nil, err
	}
	in := inputs[0]

	crf := "28"
	switch opts.String("level") {
	case "light":
		crf = "23"
	case "heavy":
		crf = "33"
	}

	name := tools.OutputName("compressed", "mp4")
	path, err := t.store.OutputPath(name)
	if err != nil {
		return nil, err
	}

	args := []string{"-i", in.Path, "-vcodec", "libx264", "-crf", crf, "-preset", "medium", path}
	if err := t.run(ctx, args); err != nil {
		return nil, t.fail("compress video", err)
	}

	newSize, err := t.store.FileSize(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat compressed video: %w", err)
	}
	ratio := tools.CompressionRatio(in.SizeBytes, newSize)

	return &tools.Output{
		Path: path,
		Name: name,
		Message: fmt.Sprintf("Video compressed by %.1f%% (%.2fMB to %.2fMB)",
			ratio, tools.Megabytes(in.SizeBytes), tools.Megabytes(newSize)),
	}, nil
}

// Trim cuts the clip between start and end, given as seconds or HH:MM:SS.
func (t *Tool) Trim(ctx context.Context, inputs []tools.Input, opts tools.Options) (*tools.Output, error) {
	if err := tools.RequireInputs(t.store.Fs(), inputs); err != nil {
		return nil, err
	}
	in := inputs[0]

	start := strings.TrimSpace(opts.String("start"))
	end := strings.TrimSpace(opts.String("end"))
	if start == "" || end == "" {
		return nil, tools.InvalidInputf("both start and end times are required")
	}

	name := tools.OutputName("trimmed", "mp4")
	path, err := t.store.OutputPath(name)
	if err != nil {
		return nil, err
	}

	args := []string{"-i", in.Path, "-ss", start, "-to", end, "-c", "copy", path}
	if err := t.run(ctx, args); err != nil {
		return nil, t.fail("trim video", err)
	}

	return &tools.Output{
		Path:    path,
		Name:    name,
		Message: fmt.Sprintf("Video trimmed from %s to %s", start, end),
	}, nil
}

// Rotate turns the video clockwise by 90, 180 or 270 degrees using the
// transpose filter.
func (t *Tool) Rotate(ctx context.Context, inputs []tools.Input, opts tools.Options) (*tools.Output, error) {
	if err := tools.RequireInputs(t.store.Fs(), inputs); err != nil {
		return nil, err
	}
	in := inputs[0]

	var filter string
	angle := opts.Int("angle")
	switch angle {
	case 90:
		filter = "transpose=1"
	case 180:
		filter = "transpose=1,transpose=1"
	case 270:
		filter = "transpose=2"
	default:
		return nil, tools.InvalidInputf("unsupported rotation angle %d", angle)
	}

	name := tools.OutputName("rotated", "mp4")
	path, err := t.store.OutputPath(name)
	if err != nil {
		return nil, err
	}

	args := []string{"-i", in.Path, "-vf", filter, path}
	if err := t.run(ctx, args); err != nil {
		return nil, t.fail("rotate video", err)
	}

	return &tools.Output{
		Path:    path,
		Name:    name,
		Message: fmt.Sprintf("Video rotated %d degrees clockwise", angle),
	}, nil
}

// Merge concatenates two or more clips into one file using ffmpeg's concat
// demuxer. Inputs should share codec and resolution; ffmpeg rejects the rest.
func (t *Tool) Merge(ctx context.Context, inputs []tools.Input, opts tools.Options) (*tools.Output, error) {
	if err := tools.RequireInputs(t.store.Fs(), inputs); err != nil {
		return nil, err
	}

	name := tools.OutputName("merged", "mp4")
	path, err := t.store.OutputPath(name)
	if err != nil {
		return nil, err
	}

	// The concat demuxer reads its input list from a file.
	var list strings.Builder
	for _, in := range inputs {
		abs, err := filepath.Abs(in.Path)
		if err != nil {
			abs = in.Path
		}
		fmt.Fprintf(&list, "file '%s'\n", abs)
	}
	listPath := filepath.Join(t.store.UploadsDir(), tools.OutputName("concat", "txt"))
	if err := afero.WriteFile(t.store.Fs(), listPath, []byte(list.String()), 0644); err != nil {
		return nil, fmt.Errorf("failed to write concat list: %w", err)
	}
	defer t.store.Remove(listPath)

	args := []string{"-f", "concat", "-safe", "0", "-i", listPath, "-c", "copy", path}
	if err := t.run(ctx, args); err != nil {
		return nil, t.fail("merge videos", err)
	}

	return &tools.Output{
		Path:    path,
		Name:    name,
		Message: fmt.Sprintf("Successfully merged %d video files", len(inputs)),
	}, nil
}

// ExtractAudio strips the audio track into an mp3.
func (t *Tool) ExtractAudio(ctx context.Context, inputs []tools.Input, opts tools.Options) (*tools.Output, error) {
	if err := tools.RequireInputs(t.store.Fs(), inputs); err != nil {
		return nil, err
	}
	in := inputs[0]

	name := tools.PreservedName(in.OriginalName, "mp3")
	path, err := t.store.OutputPath(name)
	if err != nil {
		return nil, err
	}

	args := []string{"-i", in.Path, "-vn", "-acodec", "libmp3lame", "-q:a", "2", path}
	if err := t.run(ctx, args); err != nil {
		return nil, t.fail("extract audio", err)
	}

	return &tools.Output{
		Path:    path,
		Name:    name,
		Message: fmt.Sprintf("Audio extracted from %s", in.OriginalName),
	}, nil
}

// ToGIF renders an animated GIF from the first seconds of the clip.
func (t *Tool) ToGIF(ctx context.Context, inputs []tools.Input, opts tools.Options) (*tools.Output, error) {
	if err := tools.RequireInputs(t.store.Fs(), inputs); err != nil {
		return nil, err
	}
	in := inputs[0]

	duration := opts.Int("duration")
	if duration <= 0 {
		duration = 5
	}
	width := opts.Int("width")
	if width <= 0 {
		width = 480
	}

	name := tools.OutputName("animated", "gif")
	path, err := t.store.OutputPath(name)
	if err != nil {
		return nil, err
	}

	filter := fmt.Sprintf("fps=12,scale=%d:-1:flags=lanczos", width)
	args := []string{"-i", in.Path, "-t", fmt.Sprintf("%d", duration), "-vf", filter, path}
	if err := t.run(ctx, args); err != nil {
		return nil, t.fail("create GIF", err)
	}

	return &tools.Output{
		Path:    path,
		Name:    name,
		Message: fmt.Sprintf("Created a %d second GIF from %s", duration, in.OriginalName),
	}, nil
}
