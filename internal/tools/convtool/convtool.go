// Package convtool implements the tabular/markup conversion family:
// CSV, Excel, JSON and XML shuttling.
package convtool

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/clbanning/mxj/v2"
	"github.com/spf13/afero"
	"github.com/xuri/excelize/v2"

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

func delimiter(opts tools.Options) rune {
	switch opts.String("delimiter") {
	case "semicolon":
		return ';'
	case "tab":
		return '\t'
	default:
		return ','
	}
}

func (t *Tool) readCSV(in tools.Input, opts tools.Options) ([][]string, error) {
	data, err := afero.ReadFile(t.store.Fs(), in.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", in.OriginalName, err)
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delimiter(opts)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV file %q is empty", in.OriginalName)
	}
	return records, nil
}

// CSVToExcel converts a delimiter-separated file into an xlsx workbook.
func (t *Tool) CSVToExcel(ctx context.Context, inputs []tools.Input, opts tools.Options) (*tools.Output, error) {
	if err := tools.RequireInputs(t.store.Fs(), inputs); err != nil {
		return nil, err
	}
	in := inputs[0]

	records, err := t.readCSV(in, opts)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()
	for i, record := range records {
		row := make([]interface{}, len(record))
		for j, v := range record {
			row[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, fmt.Errorf("failed to address row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	name := tools.PreservedName(in.OriginalName, "xlsx")
	path, err := t.store.OutputPath(name)
	if err != nil {
		return nil, err
	}
	if err := f.SaveAs(path); err != nil {
		return nil, fmt.Errorf("failed to save workbook: %w", err)
	}

	return &tools.Output{
		Path:    path,
		Name:    name,
		Message: fmt.Sprintf("Converted %d rows to Excel", len(records)),
	}, nil
}

// ExcelToCSV flattens the first sheet of a workbook into CSV.
func (t *Tool) ExcelToCSV(ctx context.Context, inputs []tools.Input, opts tools.Options) (*tools.Output, error) {
	if err := tools.RequireInputs(t.store.Fs(), inputs); err != nil {
		return nil, err
	}
	in := inputs[0]

	f, err := excelize.OpenFile(in.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = delimiter(opts)
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to encode CSV: %w", err)
	}

	name := tools.PreservedName(in.OriginalName, "csv")
	path, err := t.store.OutputPath(name)
	if err != nil {
		return nil, err
	}
	if err := afero.WriteFile(t.store.Fs(), path, buf.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV: %w", err)
	}

	return &tools.Output{
		Path:    path,
		Name:    name,
		Message: fmt.Sprintf("Converted %d rows from sheet %q to CSV", len(rows), sheet),
	}, nil
}

// CSVToJSON converts a CSV with a header row into an array of objects.
func (t *Tool) CSVToJSON(ctx context.Context, inputs []tools.Input, opts tools.Options) (*tools.Output, error) {
	if err := tools.RequireInputs(t.store.Fs(), inputs); err != nil {
		return nil, err
	}
	in := inputs[0]

	records, err := t.readCSV(in, opts)
	if err != nil {
		return nil, err
	}

	header := records[0]
	objects := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		obj := make(map[string]string, len(header))
		for i, key := range header {
			if i < len(record) {
				obj[key] = record[i]
			} else {
				obj[key] = ""
			}
		}
		objects = append(objects, obj)
	}

	data, err := json.MarshalIndent(objects, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}

	name := tools.PreservedName(in.OriginalName, "json")
	path, err := t.store.OutputPath(name)
	if err != nil {
		return nil, err
	}
	if err := afero.WriteFile(t.store.Fs(), path, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write JSON: %w", err)
	}

	return &tools.Output{
		Path:    path,
		Name:    name,
		Message: fmt.Sprintf("Converted %d records to JSON", len(objects)),
	}, nil
}

// JSONToCSV converts an array of flat objects into CSV with a sorted header.
func (t *Tool) JSONToCSV(ctx context.Context, inputs []tools.Input, opts tools.Options) (*tools.Output, error) {
	if err := tools.RequireInputs(t.store.Fs(), inputs); err != nil {
		return nil, err
	}
	in := inputs[0]

	data, err := afero.ReadFile(t.store.Fs(), in.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", in.OriginalName, err)
	}

	var objects []map[string]any
	if err := json.Unmarshal(data, &objects); err != nil {
		return nil, fmt.Errorf("expected a JSON array of objects: %w", err)
	}
	if len(objects) == 0 {
		return nil, fmt.Errorf("JSON array is empty")
	}

	keySet := make(map[string]struct{})
	for _, obj := range objects {
		for k := range obj {
			keySet[k] = struct{}{}
		}
	}
	header := make([]string, 0, len(keySet))
	for k := range keySet {
		header = append(header, k)
	}
	sort.Strings(header)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = delimiter(opts)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to encode CSV: %w", err)
	}
	for _, obj := range objects {
		row := make([]string, len(header))
		for i, k := range header {
			if v, ok := obj[k]; ok && v != nil {
				row[i] = fmt.Sprintf("%v", v)
			}
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to encode CSV: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to encode CSV: %w", err)
	}

	name := tools.PreservedName(in.OriginalName, "csv")
	path, err := t.store.OutputPath(name)
	if err != nil {
		return nil, err
	}
	if err := afero.WriteFile(t.store.Fs(), path, buf.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV: %w", err)
	}

	return &tools.Output{
		Path:    path,
		Name:    name,
		Message: fmt.Sprintf("Converted %d records to CSV", len(objects)),
	}, nil
}

// XMLToJSON converts an XML document into JSON, preserving element order
// semantics as mxj maps them.
func (t *Tool) XMLToJSON(ctx context.Context, inputs []tools.Input, opts tools.Options) (*tools.Output, error) {
	if err := tools.RequireInputs(t.store.Fs(), inputs); err != nil {
		return nil, err
	}
	in := inputs[0]

	data, err := afero.ReadFile(t.store.Fs(), in.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", in.OriginalName, err)
	}

	m, err := mxj.NewMapXml(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}
	out, err := m.JsonIndent("", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}

	name := tools.PreservedName(in.OriginalName, "json")
	path, err := t.store.OutputPath(name)
	if err != nil {
		return nil, err
	}
	if err := afero.WriteFile(t.store.Fs(), path, out, 0644); err != nil {
		return nil, fmt.Errorf("failed to write JSON: %w", err)
	}

	return &tools.Output{
		Path:    path,
		Name:    name,
		Message: fmt.Sprintf("Converted %s to JSON", in.OriginalName),
	}, nil
}
