package registry

import "github.com/convertly/convertly/internal/tools/devtool"

func registerDeveloperTools(r *Registry, t *devtool.Tool) {
	r.register(ToolDescriptor{
		ID:              "hash-generator",
		Name:            "Hash Generator",
		Category:        CategoryDeveloper,
		Description:     "Compute a cryptographic digest of a file or text",
		AcceptedFormats: nil,
		MinFiles:        0,
		MaxFiles:        1,
		Options: []OptionSpec{
			{Name: "text", Label: "Text", Type: OptionTextarea},
			{Name: "algorithm", Label: "Algorithm", Type: OptionSelect, Options: []string{"md5", "sha1", "sha256", "sha512"}, Default: "sha256"},
		},
	}, t.Hash)

	r.register(ToolDescriptor{
		ID:          "base64-codec",
		Name:        "Base64 Encoder/Decoder",
		Category:    CategoryDeveloper,
		Description: "Encode text to base64 or decode it back",
		MinFiles:    0,
		MaxFiles:    0,
		Options: []OptionSpec{
			{Name: "text", Label: "Text", Type: OptionTextarea, Required: true},
			{Name: "mode", Label: "Mode", Type: OptionSelect, Options: []string{"encode", "decode"}, Default: "encode"},
		},
	}, t.Base64)

	r.register(ToolDescriptor{
		ID:          "url-codec",
		Name:        "URL Encoder/Decoder",
		Category:    CategoryDeveloper,
		Description: "Percent-encode text for URLs or decode it back",
		MinFiles:    0,
		MaxFiles:    0,
		Options: []OptionSpec{
			{Name: "text", Label: "Text", Type: OptionTextarea, Required: true},
			{Name: "mode", Label: "Mode", Type: OptionSelect, Options: []string{"encode", "decode"}, Default: "encode"},
		},
	}, t.URLCodec)

	r.register(ToolDescriptor{
		ID:          "qr-generator",
		Name:        "QR Code Generator",
		Category:    CategoryDeveloper,
		Description: "Render text or a URL as a QR code image",
		MinFiles:    0,
		MaxFiles:    0,
		Options: []OptionSpec{
			{Name: "content", Label: "Content", Type: OptionTextarea, Required: true},
			{Name: "size", Label: "Size (px)", Type: OptionNumber, Default: 256, Min: fp(64), Max: fp(1024)},
		},
	}, t.QR)

	r.register(ToolDescriptor{
		ID:          "uuid-generator",
		Name:        "UUID Generator",
		Category:    CategoryDeveloper,
		Description: "Generate random UUIDs",
		MinFiles:    0,
		MaxFiles:    0,
		Options: []OptionSpec{
			{Name: "count", Label: "How many", Type: OptionNumber, Default: 1, Min: fp(1), Max: fp(1000)},
		},
	}, t.UUIDs)

	r.register(ToolDescriptor{
		ID:          "password-generator",
		Name:        "Password Generator",
		Category:    CategoryDeveloper,
		Description: "Generate a strong random password",
		MinFiles:    0,
		MaxFiles:    0,
		Options: []OptionSpec{
			{Name: "length", Label: "Length", Type: OptionNumber, Default: 16, Min: fp(8), Max: fp(128)},
			{Name: "symbols", Label: "Include symbols", Type: OptionCheckbox, Default: true},
		},
	}, t.Password)

	r.register(ToolDescriptor{
		ID:          "number-base-convert",
		Name:        "Number Base Converter",
		Category:    CategoryDeveloper,
		Description: "Convert numbers between bases 2 through 36",
		MinFiles:    0,
		MaxFiles:    0,
		Options: []OptionSpec{
			{Name: "value", Label: "Value", Type: OptionText, Required: true},
			{Name: "from", Label: "From base", Type: OptionNumber, Default: 10, Min: fp(2), Max: fp(36)},
			{Name: "to", Label: "To base", Type: OptionNumber, Default: 16, Min: fp(2), Max: fp(36)},
		},
	}, t.BaseConvert)

	r.register(ToolDescriptor{
		ID:          "color-convert",
		Name:        "Color Converter",
		Category:    CategoryDeveloper,
		Description: "Translate a hex color into RGB and HSL",
		MinFiles:    0,
		MaxFiles:    0,
		Options: []OptionSpec{
			{Name: "value", Label: "Hex color (e.g. #1a2b3c)", Type: OptionText, Required: true},
		},
	}, t.ColorConvert)

	r.register(ToolDescriptor{
		ID:          "unit-convert",
		Name:        "Unit Converter",
		Category:    CategoryDeveloper,
		Description: "Convert between length, weight and temperature units",
		MinFiles:    0,
		MaxFiles:    0,
		Options: []OptionSpec{
			{Name: "value", Label: "Value", Type: OptionNumber, Required: true},
			{Name: "from", Label: "From unit", Type: OptionSelect, Options: []string{"mm", "cm", "m", "km", "in", "ft", "yd", "mi", "mg", "g", "kg", "lb", "oz", "c", "f", "k"}, Default: "m"},
			{Name: "to", Label: "To unit", Type: OptionSelect, Options: []string{"mm", "cm", "m", "km", "in", "ft", "yd", "mi", "mg", "g", "kg", "lb", "oz", "c", "f", "k"}, Default: "ft"},
		},
	}, t.UnitConvert)

	r.register(ToolDescriptor{
		ID:          "timestamp-convert",
		Name:        "Timestamp Converter",
		Category:    CategoryDeveloper,
		Description: "Convert between unix timestamps and RFC3339 times",
		MinFiles:    0,
		MaxFiles:    0,
		Options: []OptionSpec{
			{Name: "value", Label: "Timestamp or RFC3339 time", Type: OptionText, Required: true},
		},
	}, t.TimestampConvert)
}
