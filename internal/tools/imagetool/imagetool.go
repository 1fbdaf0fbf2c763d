// Package imagetool implements the raster image tool family on top of the
// imaging library. Every routine reads the input image, applies one
// transform, and writes a fresh artifact; inputs are never touched.
package imagetool

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/convertly/convertly/internal/tools"
	"github.com/convertly/convertly/pkg/logger"
	"github.com/convertly/convertly/pkg/storage"
)

// Compression presets map the user-facing level to a JPEG quality.
var compressionQuality = map[string]int{
	"light":  85,
	"medium": 70,
	"heavy":  50,
}

type Tool struct {
	store *storage.Layout
	log   logger.Logger
}

func New(store *storage.Layout, log logger.Logger) *Tool {
	return &Tool{store: store, log: log}
}

func (t *Tool) open(in tools.Input) (image.Image, error) {
	img, err := imaging.Open(in.Path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open image %q: %w", in.OriginalName, err)
	}
	return img, nil
}

func (t *Tool) save(img image.Image, name string, opts ...imaging.EncodeOption) (string, error) {
	path, err := t.store.OutputPath(name)
	if err != nil {
		return "", err
	}
	if err := imaging.Save(img, path, opts...); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}
	return path, nil
}

func ext(in tools.Input) string {
	e := strings.TrimPrefix(strings.ToLower(filepath.Ext(in.OriginalName)), ".")
	if e == "" || e == "jpeg" {
		e = "jpg"
	}
	return e
}

// Resize scales the image to the requested dimensions. Height 0 keeps the
// aspect ratio.
func (t *Tool) Resize(ctx context.Context, inputs []tools.Input, opts tools.Options) (*tools.Output, error) {
	if err := tools.RequireInputs(t.store.Fs(), inputs); err != nil {
		return nil, err
	}
	in := inputs[0]
	img, err := t.open(in)
	if err != nil {
		return nil, err
	}

	width := opts.Int("width")
	height := opts.Int("height")
	resized := imaging.Resize(img, width, height, imaging.Lanczos)

	name := tools.OutputName("resized", ext(in))
	path, err := t.save(resized, name)
	if err != nil {
		return nil, err
	}

	bounds := resized.Bounds()
	return &tools.Output{
		Path:    path,
		Name:    name,
		Message: fmt.Sprintf("Image resized to %dx%d pixels", bounds.Dx(), bounds.Dy()),
	}, nil
}

// Crop cuts the rectangle (x, y, x+width, y+height) out of the image.
func (t *Tool) Crop(ctx context.Context, inputs []tools.Input, opts tools.Options) (*tools.Output, error) {
	if err := tools.RequireInputs(t.store.Fs(), inputs); err != nil {
		return nil, err
	}
	in := inputs[0]
	img, err := t.open(in)
	if err != nil {
		return nil, err
	}

	x := opts.Int("x")
	y := opts.Int("y")
	width := opts.Int("width")
	height := opts.Int("height")

	rect := image.Rect(x, y, x+width, y+height)
	if !rect.In(img.Bounds()) {
		return nil, tools.InvalidInputf("crop region %dx%d at (%d,%d) exceeds image bounds %dx%d",
			width, height, x, y, img.Bounds().Dx(), img.Bounds().Dy())
	}

	cropped := imaging.Crop(img, rect)
	name := tools.OutputName("cropped", ext(in))
	path, err := t.save(cropped, name)
	if err != nil {
		return nil, err
	}

	return &tools.Output{
		Path:    path,
		Name:    name,
		Message: fmt.Sprintf("Image cropped to %dx%d pixels", width, height),
	}, nil
}

// Rotate turns the image clockwise by 90, 180 or 270 degrees.
func (t *Tool) Rotate(ctx context.Context, inputs []tools.Input, opts tools.Options) (*tools.Output, error) {
	if err := tools.RequireInputs(t.store.Fs(), inputs); err != nil {
		return nil, err
	}
	in := inputs[0]
	img, err := t.open(in)
	if err != nil {
		return nil, err
	}

	var rotated image.Image
	angle := opts.Int("angle")
	switch angle {
	case 90:
		rotated = imaging.Rotate270(img)
	case 180:
		rotated = imaging.Rotate180(img)
	case 270:
		rotated = imaging.Rotate90(img)
	default:
		return nil, tools.InvalidInputf("unsupported rotation angle %d", angle)
	}

	name := tools.OutputName("rotated", ext(in))
	path, err := t.save(rotated, name)
	if err != nil {
		return nil, err
	}

	return &tools.Output{
		Path:    path,
		Name:    name,
		Message: fmt.Sprintf("Image rotated %d degrees clockwise", angle),
	}, nil
}

// Compress re-encodes the image as JPEG at a preset quality and reports the
// achieved size reduction.
func (t *Tool) Compress(ctx context.Context, inputs []tools.Input, opts tools.Options) (*tools.Output, error) {
	if err := tools.RequireInputs(t.store.Fs(), inputs); err != nil {
		return nil, err
	}
	in := inputs[0]
	img, err := t.open(in)
	if err != nil {
		return nil, err
	}

	level := opts.String("level")
	quality, ok := compressionQuality[level]
	if !ok {
		quality = compressionQuality["medium"]
	}

	name := tools.OutputName("compressed", "jpg")
	path, err := t.save(img, name, imaging.JPEGQuality(quality))
	if err != nil {
		return nil, err
	}

	newSize, err := t.store.FileSize(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat compressed image: %w", err)
	}
	ratio := tools.CompressionRatio(in.SizeBytes, newSize)

	return &tools.Output{
		Path: path,
		Name: name,
		Message: fmt.Sprintf("Image compressed by %.1f%% (%.2fMB to %.2fMB)",
			ratio, tools.Megabytes(in.SizeBytes), tools.Megabytes(newSize)),
	}, nil
}

// Convert re-encodes the image in another format, keeping the original base
// name.
func (t *Tool) Convert(ctx context.Context, inputs []tools.Input, opts tools.Options) (*tools.Output, error) {
	if err := tools.RequireInputs(t.store.Fs(), inputs); err != nil {
		return nil, err
	}
	in := inputs[0]
	img, err := t.open(in)
	if err != nil {
		return nil, err
	}

	format := strings.ToLower(opts.String("format"))
	name := tools.PreservedName(in.OriginalName, format)
	path, err := t.save(img, name)
	if err != nil {
		return nil, err
	}

	return &tools.Output{
		Path:    path,
		Name:    name,
		Message: fmt.Sprintf("Image converted to %s", strings.ToUpper(format)),
	}, nil
}

// Grayscale drops the image to shades of gray.
func (t *Tool) Grayscale(ctx context.Context, inputs []tools.Input, opts tools.Options) (*tools.Output, error) {
	if err := tools.RequireInputs(t.store.Fs(), inputs); err != nil {
		return nil, err
	}
	in := inputs[0]
	img, err := t.open(in)
	if err != nil {
		return nil, err
	}

	name := tools.OutputName("grayscale", ext(in))
	path, err := t.save(imaging.Grayscale(img), name)
	if err != nil {
		return nil, err
	}

	return &tools.Output{
		Path:    path,
		Name:    name,
		Message: "Image converted to grayscale",
	}, nil
}

// ColorAdjust tweaks brightness, contrast and saturation. Each value is a
// percentage between -100 and 100; zero leaves that channel untouched.
func (t *Tool) ColorAdjust(ctx context.Context, inputs []tools.Input, opts tools.Options) (*tools.Output, error) {
	if err := tools.RequireInputs(t.store.Fs(), inputs); err != nil {
		return nil, err
	}
	in := inputs[0]
	img, err := t.open(in)
	if err != nil {
		return nil, err
	}

	brightness := opts.Float("brightness")
	contrast := opts.Float("contrast")
	saturation := opts.Float("saturation")

	adjusted := img
	if brightness != 0 {
		adjusted = imaging.AdjustBrightness(adjusted, brightness)
	}
	if contrast != 0 {
		adjusted = imaging.AdjustContrast(adjusted, contrast)
	}
	if saturation != 0 {
		adjusted = imaging.AdjustSaturation(adjusted, saturation)
	}

	name := tools.OutputName("adjusted", ext(in))
	path, err := t.save(adjusted, name)
	if err != nil {
		return nil, err
	}

	return &tools.Output{
		Path: path,
		Name: name,
		Message: fmt.Sprintf("Image adjusted (brightness %+.0f%%, contrast %+.0f%%, saturation %+.0f%%)",
			brightness, contrast, saturation),
	}, nil
}

// Flip mirrors the image horizontally or vertically.
func (t *Tool) Flip(ctx context.Context, inputs []tools.Input, opts tools.Options) (*tools.Output, error) {
	if err := tools.RequireInputs(t.store.Fs(), inputs); err != nil {
		return nil, err
	}
	in := inputs[0]
	img, err := t.open(in)
	if err != nil {
		return nil, err
	}

	var flipped image.Image
	direction := opts.String("direction")
	if direction == "vertical" {
		flipped = imaging.FlipV(img)
	} else {
		direction = "horizontal"
		flipped = imaging.FlipH(img)
	}

	name := tools.OutputName("flipped", ext(in))
	path, err := t.save(flipped, name)
	if err != nil {
		return nil, err
	}

	return &tools.Output{
		Path:    path,
		Name:    name,
		Message: fmt.Sprintf("Image flipped %sly", direction),
	}, nil
}
