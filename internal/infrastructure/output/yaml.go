package output

import (
	"io"

	"github.com/espm-dev/espm/internal/application/dto"
	"github.com/goccy/go-yaml"
)

// YAMLFormatter formats plug-ins as YAML.
type YAMLFormatter struct {
	writer io.Writer
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(w io.Writer) *YAMLFormatter {
	return &YAMLFormatter{writer: w}
}

// FormatList writes the plug-ins as a YAML sequence.
func (f *YAMLFormatter) FormatList(views []dto.PluginView) error {
	if views == nil {
		views = []dto.PluginView{}
	}
	return f.encode(views)
}

// FormatDetail writes one plug-in as a YAML mapping.
func (f *YAMLFormatter) FormatDetail(view dto.PluginView) error {
	return f.encode(view)
}

func (f *YAMLFormatter) encode(v any) error {
	encoder := yaml.NewEncoder(f.writer, yaml.Indent(2))

	if err := encoder.Encode(v); err != nil {
		return err
	}

	return encoder.Close()
}
