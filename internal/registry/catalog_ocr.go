package registry

import "github.com/convertly/convertly/internal/tools/ocrtool"

func registerOCRTools(r *Registry, t *ocrtool.Tool) {
	r.register(ToolDescriptor{
		ID:              "ocr-image",
		Name:            "Image OCR",
		Category:        CategoryOCR,
		Description:     "Recognize text in an image and report confidence",
		AcceptedFormats: []string{"jpg", "jpeg", "png", "tiff", "bmp"},
		MinFiles:        1,
		MaxFiles:        1,
		Options: []OptionSpec{
			{Name: "language", Label: "Language", Type: OptionSelect, Options: []string{"eng", "deu", "fra", "spa", "chi_sim"}, Default: "eng"},
		},
	}, t.Image)

	r.register(ToolDescriptor{
		ID:              "ocr-pdf",
		Name:            "PDF Text Extraction",
		Category:        CategoryOCR,
		Description:     "Extract the embedded text layer of a PDF document",
		AcceptedFormats: []string{"pdf"},
		MinFiles:        1,
		MaxFiles:        1,
	}, t.PDF)
}
