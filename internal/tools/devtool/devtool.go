// Package devtool implements the developer utility family: hashing,
// encodings, QR codes, identifier generation, and small unit conversions.
// Most of these take no file input and emit a text artifact.
package devtool

import (
	"context"
	"crypto/md5"
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"hash"
	"math/big"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
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

func (t *Tool) write(operation, ext, content string) (string, string, error) {
	name := tools.OutputName(operation, ext)
	path, err := t.store.OutputPath(name)
	if err != nil {
		return "", "", err
	}
	if err := afero.WriteFile(t.store.Fs(), path, []byte(content), 0644); err != nil {
		return "", "", fmt.Errorf("failed to write result: %w", err)
	}
	return path, name, nil
}

// Hash digests the uploaded file or the "text" option with the selected
// algorithm.
func (t *Tool) Hash(ctx context.Context, inputs []tools.Input, opts tools.Options) (*tools.Output, error) {
	var data []byte
	var subject string
	if len(inputs) > 0 {
		if err := tools.RequireInputs(t.store.Fs(), inputs); err != nil {
			return nil, err
		}
		var err error
		data, err = afero.ReadFile(t.store.Fs(), inputs[0].Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read input file: %w", err)
		}
		subject = inputs[0].OriginalName
	} else {
		text := opts.String("text")
		if text == "" {
			return nil, tools.InvalidInputf("no file or text provided to hash")
		}
		data = []byte(text)
		subject = "text input"
	}

	algorithm := opts.String("algorithm")
	var h hash.Hash
	switch algorithm {
	case "md5":
		h = md5.New()
	case "sha1":
		h = sha1.New()
	case "sha512":
		h = sha512.New()
	default:
		algorithm = "sha256"
		h = sha256.New()
	}
	h.Write(data)
	digest := hex.EncodeToString(h.Sum(nil))

	path, name, err := t.write("hash", "txt", fmt.Sprintf("%s  %s\n", digest, subject))
	if err != nil {
		return nil, err
	}

	return &tools.Output{
		Path:    path,
		Name:    name,
		Message: fmt.Sprintf("%s digest: %s", strings.ToUpper(algorithm), digest),
	}, nil
}

// Base64 encodes or decodes the "text" option.
func (t *Tool) Base64(ctx context.Context, inputs []tools.Input, opts tools.Options) (*tools.Output, error) {
	text := opts.String("text")
	if text == "" {
		return nil, tools.InvalidInputf("no text provided")
	}

	var result, verb string
	if opts.String("mode") == "decode" {
		decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(text))
		if err != nil {
			return nil, tools.InvalidInputf("input is not valid base64: %v", err)
		}
		result, verb = string(decoded), "decoded"
	} else {
		result, verb = base64.StdEncoding.EncodeToString([]byte(text)), "encoded"
	}

	path, name, err := t.write("base64", "txt", result)
	if err != nil {
		return nil, err
	}

	return &tools.Output{
		Path:    path,
		Name:    name,
		Message: fmt.Sprintf("Text %s with base64 (%d bytes)", verb, len(result)),
	}, nil
}

// URLCodec percent-encodes or decodes the "text" option.
func (t *Tool) URLCodec(ctx context.Context, inputs []tools.Input, opts tools.Options) (*tools.Output, error) {
	text := opts.String("text")
	if text == "" {
		return nil, tools.InvalidInputf("no text provided")
	}

	var result, verb string
	if opts.String("mode") == "decode" {
		decoded, err := url.QueryUnescape(text)
		if err != nil {
			return nil, tools.InvalidInputf("input is not valid URL encoding: %v", err)
		}
		result, verb = decoded, "decoded"
	} else {
		result, verb = url.QueryEscape(text), "encoded"
	}

	path, name, err := t.write("url", "txt", result)
	if err != nil {
		return nil, err
	}

	return &tools.Output{
		Path:    path,
		Name:    name,
		Message: fmt.Sprintf("Text URL-%s", verb),
	}, nil
}

// QR renders the "content" option as a PNG QR code.
func (t *Tool) QR(ctx context.Context, inputs []tools.Input, opts tools.Options) (*tools.Output, error) {
	content := opts.String("content")
	if content == "" {
		return nil, tools.InvalidInputf("QR content is required")
	}

	size := opts.Int("size")
	if size <= 0 {
		size = 256
	}

	name := tools.OutputName("qrcode", "png")
	path, err := t.store.OutputPath(name)
	if err != nil {
		return nil, err
	}

	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	if err := afero.WriteFile(t.store.Fs(), path, png, 0644); err != nil {
		return nil, fmt.Errorf("failed to write QR code: %w", err)
	}

	return &tools.Output{
		Path:    path,
		Name:    name,
		Message: fmt.Sprintf("QR code generated at %dx%d pixels", size, size),
	}, nil
}

// UUIDs generates the requested number of random UUIDs, one per line.
func (t *Tool) UUIDs(ctx context.Context, inputs []tools.Input, opts tools.Options) (*tools.Output, error) {
	count := opts.Int("count")
	if count <= 0 {
		count = 1
	}

	var b strings.Builder
	for i := 0; i < count; i++ {
		b.WriteString(uuid.NewString())
		b.WriteByte('\n')
	}

	path, name, err := t.write("uuids", "txt", b.String())
	if err != nil {
		return nil, err
	}

	return &tools.Output{
		Path:    path,
		Name:    name,
		Message: fmt.Sprintf("Generated %d UUIDs", count),
	}, nil
}

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const passwordSymbols = "!@#$%^&*()-_=+[]{}"

// Password generates a random password of the requested length.
func (t *Tool) Password(ctx context.Context, inputs []tools.Input, opts tools.Options) (*tools.Output, error) {
	length := opts.Int("length")
	if length <= 0 {
		length = 16
	}

	alphabet := passwordAlphabet
	if opts.Bool("symbols") {
		alphabet += passwordSymbols
	}

	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			return nil, fmt.Errorf("failed to gather randomness: %w", err)
		}
		b.WriteByte(alphabet[n.Int64()])
	}

	path, name, err := t.write("password", "txt", b.String()+"\n")
	if err != nil {
		return nil, err
	}

	return &tools.Output{
		Path:    path,
		Name:    name,
		Message: fmt.Sprintf("Generated a %d character password", length),
	}, nil
}

// BaseConvert converts the "value" option between number bases.
func (t *Tool) BaseConvert(ctx context.Context, inputs []tools.Input, opts tools.Options) (*tools.Output, error) {
	value := strings.TrimSpace(opts.String("value"))
	if value == "" {
		return nil, tools.InvalidInputf("a value to convert is required")
	}

	fromBase := opts.Int("from")
	toBase := opts.Int("to")
	if fromBase < 2 || fromBase > 36 || toBase < 2 || toBase > 36 {
		return nil, tools.InvalidInputf("bases must be between 2 and 36")
	}

	n, err := strconv.ParseInt(value, fromBase, 64)
	if err != nil {
		return nil, tools.InvalidInputf("%q is not a valid base-%d number", value, fromBase)
	}
	converted := strconv.FormatInt(n, toBase)

	path, name, err := t.write("baseconv", "txt",
		fmt.Sprintf("%s (base %d) = %s (base %d)\n", value, fromBase, converted, toBase))
	if err != nil {
		return nil, err
	}

	return &tools.Output{
		Path:    path,
		Name:    name,
		Message: fmt.Sprintf("%s in base %d is %s in base %d", value, fromBase, converted, toBase),
	}, nil
}

// ColorConvert translates a hex color into RGB and HSL notations.
func (t *Tool) ColorConvert(ctx context.Context, inputs []tools.Input, opts tools.Options) (*tools.Output, error) {
	value := strings.TrimPrefix(strings.TrimSpace(opts.String("value")), "#")
	if len(value) != 6 {
		return nil, tools.InvalidInputf("expected a 6-digit hex color such as #1a2b3c")
	}

	rgb := make([]int64, 3)
	for i := 0; i < 3; i++ {
		n, err := strconv.ParseInt(value[i*2:i*2+2], 16, 16)
		if err != nil {
			return nil, tools.InvalidInputf("%q is not a valid hex color", value)
		}
		rgb[i] = n
	}

	h, s, l := rgbToHSL(float64(rgb[0])/255, float64(rgb[1])/255, float64(rgb[2])/255)
	report := fmt.Sprintf("hex: #%s\nrgb: rgb(%d, %d, %d)\nhsl: hsl(%.0f, %.0f%%, %.0f%%)\n",
		strings.ToLower(value), rgb[0], rgb[1], rgb[2], h, s*100, l*100)

	path, name, err := t.write("color", "txt", report)
	if err != nil {
		return nil, err
	}

	return &tools.Output{
		Path:    path,
		Name:    name,
		Message: fmt.Sprintf("#%s = rgb(%d, %d, %d)", strings.ToLower(value), rgb[0], rgb[1], rgb[2]),
	}, nil
}

// UnitConvert converts between a small fixed set of length, weight and
// temperature units.
func (t *Tool) UnitConvert(ctx context.Context, inputs []tools.Input, opts tools.Options) (*tools.Output, error) {
	value := opts.Float("value")
	from := opts.String("from")
	to := opts.String("to")

	result, err := convertUnit(value, from, to)
	if err != nil {
		return nil, err
	}

	line := fmt.Sprintf("%g %s = %g %s\n", value, from, result, to)
	path, name, err := t.write("unitconv", "txt", line)
	if err != nil {
		return nil, err
	}

	return &tools.Output{
		Path:    path,
		Name:    name,
		Message: strings.TrimSpace(line),
	}, nil
}

// TimestampConvert renders a unix timestamp as UTC and local time, or parses
// an RFC3339 string into a unix timestamp.
func (t *Tool) TimestampConvert(ctx context.Context, inputs []tools.Input, opts tools.Options) (*tools.Output, error) {
	value := strings.TrimSpace(opts.String("value"))
	if value == "" {
		return nil, tools.InvalidInputf("a timestamp value is required")
	}

	var report, message string
	if secs, err := strconv.ParseInt(value, 10, 64); err == nil {
		ts := time.Unix(secs, 0).UTC()
		report = fmt.Sprintf("unix: %d\nutc: %s\n", secs, ts.Format(time.RFC3339))
		message = fmt.Sprintf("%d is %s", secs, ts.Format(time.RFC3339))
	} else {
		ts, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return nil, tools.InvalidInputf("%q is neither a unix timestamp nor an RFC3339 time", value)
		}
		report = fmt.Sprintf("time: %s\nunix: %d\n", value, ts.Unix())
		message = fmt.Sprintf("%s is unix timestamp %d", value, ts.Unix())
	}

	path, name, err := t.write("timestamp", "txt", report)
	if err != nil {
		return nil, err
	}

	return &tools.Output{Path: path, Name: name, Message: message}, nil
}

// unitFactors normalizes each unit to a base unit per dimension (meters,
// grams). Temperature is handled separately because it is affine.
var unitFactors = map[string]float64{
	"mm": 0.001, "cm": 0.01, "m": 1, "km": 1000,
	"in": 0.0254, "ft": 0.3048, "yd": 0.9144, "mi": 1609.344,
	"mg": 0.001, "g": 1, "kg": 1000, "lb": 453.59237, "oz": 28.349523125,
}

var unitDimensions = map[string]string{
	"mm": "length", "cm": "length", "m": "length", "km": "length",
	"in": "length", "ft": "length", "yd": "length", "mi": "length",
	"mg": "weight", "g": "weight", "kg": "weight", "lb": "weight", "oz": "weight",
	"c": "temperature", "f": "temperature", "k": "temperature",
}

func convertUnit(value float64, from, to string) (float64, error) {
	from = strings.ToLower(from)
	to = strings.ToLower(to)

	fromDim, ok := unitDimensions[from]
	if !ok {
		return 0, tools.InvalidInputf("unknown unit %q", from)
	}
	toDim, ok := unitDimensions[to]
	if !ok {
		return 0, tools.InvalidInputf("unknown unit %q", to)
	}
	if fromDim != toDim {
		return 0, tools.InvalidInputf("cannot convert %s to %s", from, to)
	}

	if fromDim == "temperature" {
		return convertTemperature(value, from, to)
	}
	return value * unitFactors[from] / unitFactors[to], nil
}

func convertTemperature(value float64, from, to string) (float64, error) {
	var celsius float64
	switch from {
	case "c":
		celsius = value
	case "f":
		celsius = (value - 32) * 5 / 9
	case "k":
		celsius = value - 273.15
	}
	switch to {
	case "c":
		return celsius, nil
	case "f":
		return celsius*9/5 + 32, nil
	case "k":
		return celsius + 273.15, nil
	}
	return 0, tools.InvalidInputf("unknown temperature unit %q", to)
}

func rgbToHSL(r, g, b float64) (h, s, l float64) {
	max := r
	if g > max {
		max = g
	}
	if b > max {
		max = b
	}
	min := r
	if g < min {
		min = g
	}
	if b < min {
		min = b
	}

	l = (max + min) / 2
	if max == min {
		return 0, 0, l
	}

	d := max - min
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}

	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	case b:
		h = (r-g)/d + 4
	}
	h *= 60
	return h, s, l
}
