package registry

import "github.com/convertly/convertly/internal/tools/imagetool"

var imageFormats = []string{"jpg", "jpeg", "png", "gif", "tiff", "bmp"}

func registerImageTools(r *Registry, t *imagetool.Tool) {
	r.register(ToolDescriptor{
		ID:              "image-resize",
		Name:            "Image Resize",
		Category:        CategoryImage,
		Description:     "Resize an image to exact dimensions or by width with aspect ratio kept",
		AcceptedFormats: imageFormats,
		MinFiles:        1,
		MaxFiles:        1,
		Options: []OptionSpec{
			{Name: "width", Label: "Width (px)", Type: OptionNumber, Required: true, Min: fp(1), Max: fp(10000)},
			{Name: "height", Label: "Height (px, 0 keeps aspect ratio)", Type: OptionNumber, Default: 0, Min: fp(0), Max: fp(10000)},
		},
	}, t.Resize)

	r.register(ToolDescriptor{
		ID:              "image-crop",
		Name:            "Image Crop",
		Category:        CategoryImage,
		Description:     "Cut a rectangular region out of an image",
		AcceptedFormats: imageFormats,
		MinFiles:        1,
		MaxFiles:        1,
		Options: []OptionSpec{
			{Name: "x", Label: "Left offset (px)", Type: OptionNumber, Default: 0, Min: fp(0)},
			{Name: "y", Label: "Top offset (px)", Type: OptionNumber, Default: 0, Min: fp(0)},
			{Name: "width", Label: "Width (px)", Type: OptionNumber, Required: true, Min: fp(1)},
			{Name: "height", Label: "Height (px)", Type: OptionNumber, Required: true, Min: fp(1)},
		},
	}, t.Crop)

	r.register(ToolDescriptor{
		ID:              "image-rotate",
		Name:            "Image Rotate",
		Category:        CategoryImage,
		Description:     "Rotate an image clockwise in 90 degree steps",
		AcceptedFormats: imageFormats,
		MinFiles:        1,
		MaxFiles:        1,
		Options: []OptionSpec{
			{Name: "angle", Label: "Angle", Type: OptionSelect, Options: []string{"90", "180", "270"}, Default: "90"},
		},
	}, t.Rotate)

	r.register(ToolDescriptor{
		ID:              "image-compress",
		Name:            "Image Compress",
		Category:        CategoryImage,
		Description:     "Re-encode an image at a lower quality to save space",
		AcceptedFormats: imageFormats,
		MinFiles:        1,
		MaxFiles:        1,
		Options: []OptionSpec{
			{Name: "level", Label: "Compression level", Type: OptionSelect, Options: []string{"light", "medium", "heavy"}, Default: "medium"},
		},
	}, t.Compress)

	r.register(ToolDescriptor{
		ID:              "image-convert",
		Name:            "Image Convert",
		Category:        CategoryImage,
		Description:     "Convert an image to another format",
		AcceptedFormats: imageFormats,
		MinFiles:        1,
		MaxFiles:        1,
		Options: []OptionSpec{
			{Name: "format", Label: "Target format", Type: OptionSelect, Options: []string{"jpg", "png", "gif", "tiff", "bmp"}, Default: "png"},
		},
	}, t.Convert)

	r.register(ToolDescriptor{
		ID:              "image-color-adjust",
		Name:            "Image Color Adjust",
		Category:        CategoryImage,
		Description:     "Adjust the brightness, contrast and saturation of an image",
		AcceptedFormats: imageFormats,
		MinFiles:        1,
		MaxFiles:        1,
		Options: []OptionSpec{
			{Name: "brightness", Label: "Brightness (%)", Type: OptionRange, Default: 0, Min: fp(-100), Max: fp(100)},
			{Name: "contrast", Label: "Contrast (%)", Type: OptionRange, Default: 0, Min: fp(-100), Max: fp(100)},
			{Name: "saturation", Label: "Saturation (%)", Type: OptionRange, Default: 0, Min: fp(-100), Max: fp(100)},
		},
	}, t.ColorAdjust)

	r.register(ToolDescriptor{
		ID:              "image-grayscale",
		Name:            "Image Grayscale",
		Category:        CategoryImage,
		Description:     "Convert an image to shades of gray",
		AcceptedFormats: imageFormats,
		MinFiles:        1,
		MaxFiles:        1,
	}, t.Grayscale)

	r.register(ToolDescriptor{
		ID:              "image-flip",
		Name:            "Image Flip",
		Category:        CategoryImage,
		Description:     "Mirror an image horizontally or vertically",
		AcceptedFormats: imageFormats,
		MinFiles:        1,
		MaxFiles:        1,
		Options: []OptionSpec{
			{Name: "direction", Label: "Direction", Type: OptionSelect, Options: []string{"horizontal", "vertical"}, Default: "horizontal"},
		},
	}, t.Flip)
}
