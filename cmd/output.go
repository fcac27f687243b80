package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

var validOutputFormats = map[string]bool{
	"table": true, "json": true, "yaml": true,
}

func validateOutput(format string) error {
	if !validOutputFormats[format] {
		return fmt.Errorf("invalid output format: %s (valid: table, json, yaml)", format)
	}
	return nil
}

// writeOutput encodes v as json or yaml, or calls table for the table format.
func writeOutput(w io.Writer, format string, v any, table func(io.Writer) error) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return table(w)
	}
}
