// Package export serialises assembled reports and writes them to stdout, a
// local directory or an S3 bucket.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Format is an output encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

// ParseFormat accepts json, yaml (or yml) and csv
func ParseFormat(s string) (Format, error) {
	switch s {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "csv":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// Ext returns the file extension without the dot
func (f Format) Ext() string {
	return string(f)
}

// ContentType returns the MIME type stored alongside uploaded objects
func (f Format) ContentType() string {
	switch f {
	case FormatYAML:
		return "application/yaml"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	}
	return "application/json"
}

// Encode writes report to w in the given format. CSV is only available for
// tabular reports; see ErrNotTabular.
func Encode(w io.Writer, format Format, report any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case FormatYAML:
		return encodeYAML(w, report)
	case FormatCSV:
		return encodeCSV(w, report)
	}
	return fmt.Errorf("unsupported export format %q", format)
}

// encodeYAML goes through the JSON form so both encodings share field names,
// embedded-struct flattening and decimal rendering.
func encodeYAML(w io.Writer, report any) error {
	raw, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("convert report: %w", err)
	}
	blockStyle(&doc)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return err
	}
	return enc.Close()
}

// blockStyle drops the flow and quoting styles inherited from JSON. The
// encoder re-quotes any string that would otherwise read as another type.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

// Bytes encodes report into memory
func Bytes(format Format, report any) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, format, report); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
