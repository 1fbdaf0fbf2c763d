package videotool

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/convertly/convertly/internal/tools"
	"github.com/convertly/convertly/pkg/logger"
	"github.com/convertly/convertly/pkg/storage"
)

func newTestTool(t *testing.T) (*Tool, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	store := storage.NewLayout(fs, "uploads", "output", 50<<20, logger.NewTestLogger())
	tool := New(store, logger.NewTestLogger())
	// a binary that cannot exist, so every invocation fails fast
	tool.binary = "ffmpeg-test-binary-that-does-not-exist"
	return tool, fs
}

func writeInput(t *testing.T, fs afero.Fs, name string) tools.Input {
	t.Helper()
	path := "uploads/" + name
	require.NoError(t, afero.WriteFile(fs, path, []byte("fake video bytes"), 0644))
	return tools.Input{OriginalName: name, Path: path, SizeBytes: 16}
}

func TestConvertMissingFFmpegMessage(t *testing.T) {
	tool, fs := newTestTool(t)
	in := writeInput(t, fs, "clip.mov")

	_, err := tool.Convert(context.Background(), []tools.Input{in},
		tools.Options{"format": "mp4"})
	require.Error(t, err)
	assert.Equal(t, "failed to convert video. Please ensure FFmpeg is installed.", err.Error())
}

func TestCompressMissingFFmpegMessage(t *testing.T) {
	tool, fs := newTestTool(t)
	in := writeInput(t, fs, "clip.mp4")

	_, err := tool.Compress(context.Background(), []tools.Input{in},
		tools.Options{"level": "medium"})
	require.Error(t, err)
	assert.Equal(t, "failed to compress video. Please ensure FFmpeg is installed.", err.Error())
}

func TestTrimRequiresBounds(t *testing.T) {
	tool, fs := newTestTool(t)
	in := writeInput(t, fs, "clip.mp4")

	_, err := tool.Trim(context.Background(), []tools.Input{in}, tools.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start and end")
}

func TestRotateRejectsOddAngles(t *testing.T) {
	tool, fs := newTestTool(t)
	in := writeInput(t, fs, "clip.mp4")

	_, err := tool.Rotate(context.Background(), []tools.Input{in},
		tools.Options{"angle": 45})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported rotation angle")
}

func TestMissingInputFailsFast(t *testing.T) {
	tool, _ := newTestTool(t)
	in := tools.Input{OriginalName: "ghost.mp4", Path: "uploads/ghost.mp4"}

	_, err := tool.Convert(context.Background(), []tools.Input{in},
		tools.Options{"format": "mp4"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not readable")
}

func TestMergeMissingFFmpegMessage(t *testing.T) {
	tool, fs := newTestTool(t)
	ins := []tools.Input{
		writeInput(t, fs, "part1.mp4"),
		writeInput(t, fs, "part2.mp4"),
	}

	_, err := tool.Merge(context.Background(), ins, tools.Options{})
	require.Error(t, err)
	assert.Equal(t, "failed to merge videos. Please ensure FFmpeg is installed.", err.Error())

	// the concat list is a scratch file and must not outlive the call
	entries, readErr := afero.ReadDir(fs, "uploads")
	require.NoError(t, readErr)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), "concat", "leftover concat list %q", e.Name())
	}
}
