package registry

import "github.com/convertly/convertly/internal/tools/convtool"

var delimiterOption = OptionSpec{
	Name: "delimiter", Label: "Delimiter", Type: OptionSelect,
	Options: []string{"comma", "semicolon", "tab"}, Default: "comma",
}

func registerConverterTools(r *Registry, t *convtool.Tool) {
	r.register(ToolDescriptor{
		ID:              "csv-to-excel",
		Name:            "CSV to Excel",
		Category:        CategoryConverter,
		Description:     "Convert a CSV file into an Excel workbook",
		AcceptedFormats: []string{"csv", "tsv", "txt"},
		MinFiles:        1,
		MaxFiles:        1,
		Options:         []OptionSpec{delimiterOption},
	}, t.CSVToExcel)

	r.register(ToolDescriptor{
		ID:              "excel-to-csv",
		Name:            "Excel to CSV",
		Category:        CategoryConverter,
		Description:     "Flatten the first sheet of an Excel workbook into CSV",
		AcceptedFormats: []string{"xlsx", "xlsm"},
		MinFiles:        1,
		MaxFiles:        1,
		Options:         []OptionSpec{delimiterOption},
	}, t.ExcelToCSV)

	r.register(ToolDescriptor{
		ID:              "csv-to-json",
		Name:            "CSV to JSON",
		Category:        CategoryConverter,
		Description:     "Convert a CSV with a header row into a JSON array",
		AcceptedFormats: []string{"csv", "tsv", "txt"},
		MinFiles:        1,
		MaxFiles:        1,
		Options:         []OptionSpec{delimiterOption},
	}, t.CSVToJSON)

	r.register(ToolDescriptor{
		ID:              "json-to-csv",
		Name:            "JSON to CSV",
		Category:        CategoryConverter,
		Description:     "Convert a JSON array of objects into CSV",
		AcceptedFormats: []string{"json"},
		MinFiles:        1,
		MaxFiles:        1,
		Options:         []OptionSpec{delimiterOption},
	}, t.JSONToCSV)

	r.register(ToolDescriptor{
		ID:              "xml-to-json",
		Name:            "XML to JSON",
		Category:        CategoryConverter,
		Description:     "Convert an XML document into JSON",
		AcceptedFormats: []string{"xml"},
		MinFiles:        1,
		MaxFiles:        1,
	}, t.XMLToJSON)
}
