package registry

import "strings"

// DefaultLanguage is the fallback when no translation matches.
const DefaultLanguage = "en"

// Translation overrides the display strings of one tool for one language.
// Zero-value fields keep the untranslated text.
type Translation struct {
	Name        string
	Description string
	Labels      map[string]string // option name -> label
}

// translations is keyed by language tag, then tool id. Tools without an entry
// fall back to the untranslated descriptor.
var translations = map[string]map[string]Translation{
	"es": {
		"pdf-merge": {
			Name:        "Unir PDF",
			Description: "Combina dos o más archivos PDF en un solo documento",
		},
		"pdf-split": {
			Name:        "Dividir PDF",
			Description: "Extrae una selección de páginas de un PDF a un archivo nuevo",
			Labels:      map[string]string{"pages": "Páginas (p. ej. 1-3,5)"},
		},
		"pdf-compress": {
			Name:        "Comprimir PDF",
			Description: "Reduce el tamaño de un archivo PDF",
		},
		"image-resize": {
			Name:        "Redimensionar imagen",
			Description: "Cambia el tamaño de una imagen",
			Labels:      map[string]string{"width": "Ancho (px)", "height": "Alto (px, 0 mantiene la proporción)"},
		},
		"image-compress": {
			Name:        "Comprimir imagen",
			Description: "Reduce la calidad de una imagen para ahorrar espacio",
			Labels:      map[string]string{"level": "Nivel de compresión"},
		},
		"text-counter": {
			Name:        "Contador de texto",
			Description: "Cuenta caracteres, palabras y líneas",
			Labels:      map[string]string{"text": "Texto"},
		},
	},
	"zh": {
		"pdf-merge": {
			Name:        "PDF 合并",
			Description: "将两个或多个 PDF 文件合并为一个文档",
		},
		"pdf-compress": {
			Name:        "PDF 压缩",
			Description: "减小 PDF 文件的体积",
		},
		"image-resize": {
			Name:        "图片缩放",
			Description: "将图片调整为指定尺寸",
			Labels:      map[string]string{"width": "宽度 (px)", "height": "高度 (px，0 保持比例)"},
		},
		"ocr-image": {
			Name:        "图片文字识别",
			Description: "识别图片中的文字并报告置信度",
			Labels:      map[string]string{"language": "语言"},
		},
	},
}

// ResolveLanguage picks the language tag for a request: the explicit query
// value first, then the first Accept-Language segment, else the default.
// Region subtags are stripped ("es-MX" matches "es").
func ResolveLanguage(queryLang, acceptLanguage string) string {
	if tag := normalizeTag(queryLang); tag != "" {
		return tag
	}
	if acceptLanguage != "" {
		first := strings.TrimSpace(strings.Split(acceptLanguage, ",")[0])
		first = strings.Split(first, ";")[0]
		if tag := normalizeTag(first); tag != "" {
			return tag
		}
	}
	return DefaultLanguage
}

func normalizeTag(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return ""
	}
	if i := strings.IndexAny(tag, "-_"); i > 0 {
		tag = tag[:i]
	}
	return tag
}

// DescribeLocalized returns a copy of the descriptor with any translation for
// the language applied. Unknown languages and untranslated tools fall back
// cleanly to the default descriptor.
func (r *Registry) DescribeLocalized(id, lang string) (ToolDescriptor, bool) {
	d, ok := r.Describe(id)
	if !ok {
		return ToolDescriptor{}, false
	}

	table, ok := translations[normalizeTag(lang)]
	if !ok {
		return d, true
	}
	tr, ok := table[id]
	if !ok {
		return d, true
	}

	if tr.Name != "" {
		d.Name = tr.Name
	}
	if tr.Description != "" {
		d.Description = tr.Description
	}
	if len(tr.Labels) > 0 {
		localized := make([]OptionSpec, len(d.Options))
		copy(localized, d.Options)
		for i := range localized {
			if label, ok := tr.Labels[localized[i].Name]; ok {
				localized[i].Label = label
			}
		}
		d.Options = localized
	}
	return d, true
}
