package registry

import "github.com/convertly/convertly/internal/tools/videotool"

var videoFormats = []string{"mp4", "mov", "avi", "mkv", "webm"}

func registerVideoTools(r *Registry, t *videotool.Tool) {
	r.register(ToolDescriptor{
		ID:              "video-convert",
		Name:            "Video Convert",
		Category:        CategoryVideo,
		Description:     "Transcode a video into another container format",
		AcceptedFormats: videoFormats,
		MinFiles:        1,
		MaxFiles:        1,
		Options: []OptionSpec{
			{Name: "format", Label: "Target format", Type: OptionSelect, Options: []string{"mp4", "mov", "avi", "mkv", "webm"}, Default: "mp4"},
		},
	}, t.Convert)

	r.register(ToolDescriptor{
		ID:              "video-compress",
		Name:            "Video Compress",
		Category:        CategoryVideo,
		Description:     "Re-encode a video at a lower bitrate to save space",
		AcceptedFormats: videoFormats,
		MinFiles:        1,
		MaxFiles:        1,
		Options: []OptionSpec{
			{Name: "level", Label: "Compression level", Type: OptionSelect, Options: []string{"light", "medium", "heavy"}, Default: "medium"},
		},
	}, t.Compress)

	r.register(ToolDescriptor{
		ID:              "video-trim",
		Name:            "Video Trim",
		Category:        CategoryVideo,
		Description:     "Cut a clip between a start and end time",
		AcceptedFormats: videoFormats,
		MinFiles:        1,
		MaxFiles:        1,
		Options: []OptionSpec{
			{Name: "start", Label: "Start (seconds or HH:MM:SS)", Type: OptionText, Required: true},
			{Name: "end", Label: "End (seconds or HH:MM:SS)", Type: OptionText, Required: true},
		},
	}, t.Trim)

	r.register(ToolDescriptor{
		ID:              "video-rotate",
		Name:            "Video Rotate",
		Category:        CategoryVideo,
		Description:     "Rotate a video clockwise in 90 degree steps",
		AcceptedFormats: videoFormats,
		MinFiles:        1,
		MaxFiles:        1,
		Options: []OptionSpec{
			{Name: "angle", Label: "Angle", Type: OptionSelect, Options: []string{"90", "180", "270"}, Default: "90"},
		},
	}, t.Rotate)

	r.register(ToolDescriptor{
		ID:              "video-merge",
		Name:            "Video Merge",
		Category:        CategoryVideo,
		Description:     "Concatenate two or more clips of the same codec into one video",
		AcceptedFormats: videoFormats,
		MinFiles:        2,
		MaxFiles:        10,
		CountMessage:    "At least 2 video files are required for merging",
	}, t.Merge)

	r.register(ToolDescriptor{
		ID:              "video-extract-audio",
		Name:            "Extract Audio",
		Category:        CategoryVideo,
		Description:     "Strip the audio track of a video into an MP3",
		AcceptedFormats: videoFormats,
		MinFiles:        1,
		MaxFiles:        1,
	}, t.ExtractAudio)

	r.register(ToolDescriptor{
		ID:              "video-to-gif",
		Name:            "Video to GIF",
		Category:        CategoryVideo,
		Description:     "Render an animated GIF from the start of a video",
		AcceptedFormats: videoFormats,
		MinFiles:        1,
		MaxFiles:        1,
		Options: []OptionSpec{
			{Name: "duration", Label: "Duration (seconds)", Type: OptionNumber, Default: 5, Min: fp(1), Max: fp(30)},
			{Name: "width", Label: "Width (px)", Type: OptionNumber, Default: 480, Min: fp(64), Max: fp(1920)},
		},
	}, t.ToGIF)
}
