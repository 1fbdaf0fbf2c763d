// Package registry holds the static, closed catalog of tools: descriptors,
// option schemas, localization overlays and the handler bound to each tool
// identifier. Content is built once at startup and never mutated.
package registry

import (
	"fmt"

	"github.com/convertly/convertly/internal/tools"
	"github.com/convertly/convertly/internal/tools/convtool"
	"github.com/convertly/convertly/internal/tools/devtool"
	"github.com/convertly/convertly/internal/tools/imagetool"
	"github.com/convertly/convertly/internal/tools/ocrtool"
	"github.com/convertly/convertly/internal/tools/pdftool"
	"github.com/convertly/convertly/internal/tools/texttool"
	"github.com/convertly/convertly/internal/tools/videotool"
	"github.com/convertly/convertly/pkg/logger"
	"github.com/convertly/convertly/pkg/storage"
)

// Category groups tools for catalog display.
type Category string

const (
	CategoryPDF       Category = "pdf"
	CategoryImage     Category = "image"
	CategoryVideo     Category = "video"
	CategoryText      Category = "text"
	CategoryDeveloper Category = "developer"
	CategoryConverter Category = "converter"
	CategoryOCR       Category = "ocr"
)

// OptionType enumerates the declared option kinds.
type OptionType string

const (
	OptionText     OptionType = "text"
	OptionTextarea OptionType = "textarea"
	OptionNumber   OptionType = "number"
	OptionRange    OptionType = "range"
	OptionSelect   OptionType = "select"
	OptionCheckbox OptionType = "checkbox"
	OptionDatetime OptionType = "datetime"
)

// OptionSpec declares one configurable parameter of a tool.
type OptionSpec struct {
	Name     string     `json:"name"`
	Label    string     `json:"label"`
	Type     OptionType `json:"type"`
	Options  []string   `json:"options,omitempty"`
	Default  any        `json:"default,omitempty"`
	Min      *float64   `json:"min,omitempty"`
	Max      *float64   `json:"max,omitempty"`
	Required bool       `json:"required,omitempty"`
}

// ToolDescriptor identifies one tool and its input contract.
type ToolDescriptor struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Category        Category     `json:"category"`
	Description     string       `json:"description"`
	AcceptedFormats []string     `json:"acceptedFormats"`
	MinFiles        int          `json:"minFiles"`
	MaxFiles        int          `json:"maxFiles"`
	Options         []OptionSpec `json:"options"`

	// CountMessage overrides the generic wrong-file-count message.
	CountMessage string `json:"-"`
}

// Summary is the lightweight catalog entry.
type Summary struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Description string   `json:"description"`
}

// Entry binds a descriptor to its processing routine.
type Entry struct {
	Descriptor ToolDescriptor
	Run        tools.RunFunc
}

// Registry is the closed tool catalog. It is immutable after New returns.
type Registry struct {
	order   []string
	entries map[string]Entry
}

// New builds the full catalog, wiring every tool family against the storage
// layout.
func New(store *storage.Layout, log logger.Logger) *Registry {
	r := &Registry{entries: make(map[string]Entry)}

	registerPDFTools(r, pdftool.New(store, log))
	registerImageTools(r, imagetool.New(store, log))
	registerVideoTools(r, videotool.New(store, log))
	registerTextTools(r, texttool.New(store, log))
	registerDeveloperTools(r, devtool.New(store, log))
	registerConverterTools(r, convtool.New(store, log))
	registerOCRTools(r, ocrtool.New(store, log))

	return r
}

// register adds one entry. Catalog mistakes are programmer errors, so
// violations panic at startup rather than surfacing per request.
func (r *Registry) register(d ToolDescriptor, run tools.RunFunc) {
	if d.ID == "" || run == nil {
		panic(fmt.Sprintf("registry: invalid entry %q", d.ID))
	}
	if _, exists := r.entries[d.ID]; exists {
		panic(fmt.Sprintf("registry: duplicate tool id %q", d.ID))
	}
	if d.MinFiles < 0 || d.MaxFiles < d.MinFiles {
		panic(fmt.Sprintf("registry: tool %q has invalid file bounds %d..%d", d.ID, d.MinFiles, d.MaxFiles))
	}
	for _, opt := range d.Options {
		if opt.Type == OptionSelect {
			if len(opt.Options) == 0 {
				panic(fmt.Sprintf("registry: select option %q of tool %q has no values", opt.Name, d.ID))
			}
			if opt.Default != nil && !contains(opt.Options, fmt.Sprintf("%v", opt.Default)) {
				panic(fmt.Sprintf("registry: default %v of option %q is not in its value set", opt.Default, opt.Name))
			}
		}
	}

	r.order = append(r.order, d.ID)
	r.entries[d.ID] = Entry{Descriptor: d, Run: run}
}

// Describe returns the descriptor for a tool id.
func (r *Registry) Describe(id string) (ToolDescriptor, bool) {
	e, ok := r.entries[id]
	return e.Descriptor, ok
}

// Entry returns the full entry (descriptor plus handler) for a tool id.
func (r *Registry) Entry(id string) (Entry, bool) {
	e, ok := r.entries[id]
	return e, ok
}

// List returns summaries in registration order.
func (r *Registry) List() []Summary {
	out := make([]Summary, 0, len(r.order))
	for _, id := range r.order {
		d := r.entries[id].Descriptor
		out = append(out, Summary{
			ID:          d.ID,
			Name:        d.Name,
			Category:    d.Category,
			Description: d.Description,
		})
	}
	return out
}

// Len reports the number of registered tools.
func (r *Registry) Len() int { return len(r.order) }

func contains(values []string, v string) bool {
	for _, item := range values {
		if item == v {
			return true
		}
	}
	return false
}

// fp is a shorthand for optional numeric bounds in catalog definitions.
func fp(v float64) *float64 { return &v }
