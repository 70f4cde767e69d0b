package internal

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/misterram/mediacore/internal/dom"
)

// Output formats
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// ProgressBar returns an ASCII progress bar string for the given percentage.
// The width parameter specifies the inner width of the bar (excluding brackets).
// Percentage values are clamped to 0-100.
//
// Example: ProgressBar(50, 20) returns "[==========          ]"
func ProgressBar(percent float64, width int) string {
	if math.IsNaN(percent) || percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	if width < 0 {
		width = 0
	}

	filled := int(percent * float64(width) / 100)

	var sb strings.Builder
	sb.WriteString("[")
	sb.WriteString(strings.Repeat("=", filled))
	sb.WriteString(strings.Repeat(" ", width-filled))
	sb.WriteString("]")

	return sb.String()
}

// State is the printable result of a render.
type State struct {
	Value     float64       `yaml:"value"`
	Target    float64       `yaml:"target"`
	Fitted    bool          `yaml:"fitted"`
	FillWidth float64       `yaml:"fill_width,omitempty"`
	Element   dom.Snapshot  `yaml:"element"`
	Label     *dom.Snapshot `yaml:"label,omitempty"`
}

// WriteState prints state in the requested format.
func WriteState(w io.Writer, state State, format string) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(state); err != nil {
			return fmt.Errorf("encode state: %w", err)
		}
		return enc.Close()
	case FormatText, "":
		_, err := io.WriteString(w, FormatStateText(state))
		return err
	default:
		return fmt.Errorf("unknown output format %q (want text or yaml)", format)
	}
}

// FormatStateText renders state as aligned key/value lines.
func FormatStateText(state State) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s %s\n", ProgressBar(state.Value, 30), state.Element.Attributes[dom.AttrTitle])
	fmt.Fprintf(&sb, "value:     %s\n", formatFloat(state.Value))
	fmt.Fprintf(&sb, "target:    %s\n", formatFloat(state.Target))
	if state.Fitted {
		fmt.Fprintf(&sb, "fitted:    yes (fill width %spx)\n", formatFloat(state.FillWidth))
	} else {
		sb.WriteString("fitted:    no\n")
	}

	keys := make([]string, 0, len(state.Element.Styles))
	for k := range state.Element.Styles {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&sb, "style:     %s: %s\n", k, state.Element.Styles[k])
	}

	if state.Label != nil {
		fmt.Fprintf(&sb, "label:     %s\n", state.Label.Text)
	}

	return sb.String()
}

func formatFloat(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
