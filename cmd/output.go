package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func normalizeFormat(format string) (string, error) {
	switch normalized := strings.ToLower(strings.TrimSpace(format)); normalized {
	case "", formatText:
		return formatText, nil
	case formatJSON, formatYAML:
		return normalized, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want text, json or yaml)", format)
	}
}

func writeOutput(cmd *cobra.Command, format string, value any, renderText func() (string, error)) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(value)
	case formatYAML:
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(value); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		rendered, err := renderText()
		if err != nil {
			return fmt.Errorf("render output: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
		return err
	}
}
