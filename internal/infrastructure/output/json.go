package output

import (
	"encoding/json"
	"io"

	"github.com/espm-dev/espm/internal/application/dto"
)

// JSONFormatter formats plug-ins as JSON.
type JSONFormatter struct {
	writer io.Writer
	indent bool
}

// NewJSONFormatter creates a new JSON formatter.
// If indent is true, the output will be pretty-printed with indentation.
func NewJSONFormatter(w io.Writer, indent bool) *JSONFormatter {
	return &JSONFormatter{
		writer: w,
		indent: indent,
	}
}

// FormatList writes the plug-ins as a JSON array.
func (f *JSONFormatter) FormatList(views []dto.PluginView) error {
	if views == nil {
		views = []dto.PluginView{}
	}
	return f.encode(views)
}

// FormatDetail writes one plug-in as a JSON object.
func (f *JSONFormatter) FormatDetail(view dto.PluginView) error {
	return f.encode(view)
}

func (f *JSONFormatter) encode(v any) error {
	enc := json.NewEncoder(f.writer)
	if f.indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
