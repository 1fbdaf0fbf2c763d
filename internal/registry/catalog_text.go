package registry

import "github.com/convertly/convertly/internal/tools/texttool"

func registerTextTools(r *Registry, t *texttool.Tool) {
	r.register(ToolDescriptor{
		ID:              "text-counter",
		Name:            "Text Counter",
		Category:        CategoryText,
		Description:     "Count characters, words and lines in text",
		AcceptedFormats: []string{"txt"},
		MinFiles:        0,
		MaxFiles:        1,
		Options: []OptionSpec{
			{Name: "text", Label: "Text", Type: OptionTextarea},
		},
	}, t.Count)

	r.register(ToolDescriptor{
		ID:              "text-case-convert",
		Name:            "Case Converter",
		Category:        CategoryText,
		Description:     "Convert text to upper, lower, title or sentence case",
		AcceptedFormats: []string{"txt"},
		MinFiles:        0,
		MaxFiles:        1,
		Options: []OptionSpec{
			{Name: "text", Label: "Text", Type: OptionTextarea},
			{Name: "mode", Label: "Case", Type: OptionSelect, Options: []string{"upper", "lower", "title", "sentence"}, Default: "upper"},
		},
	}, t.CaseConvert)

	r.register(ToolDescriptor{
		ID:              "text-sort",
		Name:            "Line Sorter",
		Category:        CategoryText,
		Description:     "Sort the lines of a text alphabetically",
		AcceptedFormats: []string{"txt"},
		MinFiles:        0,
		MaxFiles:        1,
		Options: []OptionSpec{
			{Name: "text", Label: "Text", Type: OptionTextarea},
			{Name: "descending", Label: "Descending", Type: OptionCheckbox, Default: false},
		},
	}, t.Sort)

	r.register(ToolDescriptor{
		ID:              "text-dedupe",
		Name:            "Duplicate Line Remover",
		Category:        CategoryText,
		Description:     "Remove duplicate lines, keeping the first occurrence",
		AcceptedFormats: []string{"txt"},
		MinFiles:        0,
		MaxFiles:        1,
		Options: []OptionSpec{
			{Name: "text", Label: "Text", Type: OptionTextarea},
		},
	}, t.Dedupe)

	r.register(ToolDescriptor{
		ID:              "text-diff",
		Name:            "Text Diff",
		Category:        CategoryText,
		Description:     "Compare two text files and highlight the differences",
		AcceptedFormats: []string{"txt"},
		MinFiles:        2,
		MaxFiles:        2,
		CountMessage:    "Exactly 2 text files are required for comparison",
	}, t.Diff)
}
