package registry

import "github.com/convertly/convertly/internal/tools/pdftool"

func registerPDFTools(r *Registry, t *pdftool.Tool) {
	r.register(ToolDescriptor{
		ID:              "pdf-merge",
		Name:            "PDF Merge",
		Category:        CategoryPDF,
		Description:     "Combine two or more PDF files into one document",
		AcceptedFormats: []string{"pdf"},
		MinFiles:        2,
		MaxFiles:        10,
		CountMessage:    "At least 2 PDF files are required for merging",
	}, t.Merge)

	r.register(ToolDescriptor{
		ID:              "pdf-split",
		Name:            "PDF Split",
		Category:        CategoryPDF,
		Description:     "Extract a page selection from a PDF into a new file",
		AcceptedFormats: []string{"pdf"},
		MinFiles:        1,
		MaxFiles:        1,
		Options: []OptionSpec{
			{Name: "pages", Label: "Pages (e.g. 1-3,5)", Type: OptionText, Required: true},
		},
	}, t.Split)

	r.register(ToolDescriptor{
		ID:              "pdf-compress",
		Name:            "PDF Compress",
		Category:        CategoryPDF,
		Description:     "Reduce the size of a PDF file",
		AcceptedFormats: []string{"pdf"},
		MinFiles:        1,
		MaxFiles:        1,
	}, t.Compress)

	r.register(ToolDescriptor{
		ID:              "pdf-watermark",
		Name:            "PDF Watermark",
		Category:        CategoryPDF,
		Description:     "Stamp every page of a PDF with custom text",
		AcceptedFormats: []string{"pdf"},
		MinFiles:        1,
		MaxFiles:        1,
		Options: []OptionSpec{
			{Name: "text", Label: "Watermark text", Type: OptionText, Required: true},
		},
	}, t.Watermark)

	r.register(ToolDescriptor{
		ID:              "pdf-info",
		Name:            "PDF Info",
		Category:        CategoryPDF,
		Description:     "Report page count and size of a PDF document",
		AcceptedFormats: []string{"pdf"},
		MinFiles:        1,
		MaxFiles:        1,
	}, t.Info)

	r.register(ToolDescriptor{
		ID:              "pdf-to-text",
		Name:            "PDF to Text",
		Category:        CategoryPDF,
		Description:     "Extract the embedded text layer of a PDF into a text file",
		AcceptedFormats: []string{"pdf"},
		MinFiles:        1,
		MaxFiles:        1,
	}, t.ToText)
}
