package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

type result struct {
	Title      string   `json:"title" yaml:"title"`
	TestCode   string   `json:"test_code" yaml:"test_code"`
	Assertions []string `json:"assertions" yaml:"assertions"`
	LastAction string   `json:"last_action,omitempty" yaml:"last_action,omitempty"`
}

func validFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want text, json, or yaml)", format)
	}
}

func render(w io.Writer, format string, results []result) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(results)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return err
		}
		return enc.Close()
	default:
		return renderText(w, results)
	}
}

func renderText(w io.Writer, results []result) error {
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if r.Title != "" {
			fmt.Fprintln(w, r.Title)
		}
		fmt.Fprintln(w, "Recommended test case:")
		if r.TestCode != "" {
			fmt.Fprintln(w, r.TestCode)
		} else {
			fmt.Fprintln(w, "No test case generated (API failure)")
		}

		fmt.Fprintln(w, "\nRecommended assertions:")
		data, err := json.MarshalIndent(r.Assertions, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
	}
	return nil
}
