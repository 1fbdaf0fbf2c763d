package dispatch

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/convertly/convertly/internal/registry"
	"github.com/convertly/convertly/internal/tools"
)

// normalizeOptions runs the single generic coercion pass over the raw option
// bag, driven by the tool's declared OptionSpec list. Unknown raw keys are
// dropped; declared options are coerced, defaulted, and range/enum checked.
func normalizeOptions(toolID string, specs []registry.OptionSpec, raw map[string]string) (tools.Options, *Error) {
	opts := make(tools.Options, len(specs))

	for _, spec := range specs {
		value, present := raw[spec.Name]
		if present && strings.TrimSpace(value) == "" {
			present = false
		}

		switch spec.Type {
		case registry.OptionNumber, registry.OptionRange:
			var n float64
			if present {
				parsed, err := cast.ToFloat64E(strings.TrimSpace(value))
				if err != nil {
					if spec.Required {
						return nil, invalidOption(toolID,
							fmt.Sprintf("Option %q must be a number, got %q", spec.Name, value))
					}
					// Unparseable optional numbers fall back to the default.
					present = false
				} else {
					n = parsed
				}
			}
			if !present {
				if spec.Required {
					return nil, invalidOption(toolID, fmt.Sprintf("Option %q is required", spec.Name))
				}
				if spec.Default == nil {
					continue
				}
				n = cast.ToFloat64(spec.Default)
			}
			if spec.Min != nil && n < *spec.Min {
				return nil, invalidOption(toolID,
					fmt.Sprintf("Option %q must be at least %g, got %g", spec.Name, *spec.Min, n))
			}
			if spec.Max != nil && n > *spec.Max {
				return nil, invalidOption(toolID,
					fmt.Sprintf("Option %q must be at most %g, got %g", spec.Name, *spec.Max, n))
			}
			opts[spec.Name] = n

		case registry.OptionCheckbox:
			if !present {
				if spec.Default != nil {
					opts[spec.Name] = cast.ToBool(spec.Default)
				} else {
					opts[spec.Name] = false
				}
				continue
			}
			// HTML checkboxes submit "on"; everything else goes through the
			// usual coercion.
			v := strings.ToLower(strings.TrimSpace(value))
			opts[spec.Name] = v == "on" || cast.ToBool(v)

		case registry.OptionSelect:
			if !present {
				if spec.Required && spec.Default == nil {
					return nil, invalidOption(toolID, fmt.Sprintf("Option %q is required", spec.Name))
				}
				if spec.Default != nil {
					opts[spec.Name] = cast.ToString(spec.Default)
				}
				continue
			}
			v := strings.TrimSpace(value)
			if !containsValue(spec.Options, v) {
				return nil, invalidOption(toolID,
					fmt.Sprintf("Option %q must be one of %s, got %q",
						spec.Name, strings.Join(spec.Options, ", "), v))
			}
			opts[spec.Name] = v

		default: // text, textarea, datetime
			if !present {
				if spec.Required {
					return nil, invalidOption(toolID, fmt.Sprintf("Option %q is required", spec.Name))
				}
				if spec.Default != nil {
					opts[spec.Name] = cast.ToString(spec.Default)
				}
				continue
			}
			opts[spec.Name] = value
		}
	}

	return opts, nil
}

func containsValue(values []string, v string) bool {
	for _, item := range values {
		if item == v {
			return true
		}
	}
	return false
}
