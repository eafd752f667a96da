package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/briangreenhill/pokedex/internal/catalog"
)

type renderer func(w io.Writer, v any) error

func rendererFor(format string) (renderer, error) {
	switch format {
	case "text", "":
		return renderText, nil
	case "json":
		return renderJSON, nil
	case "yaml":
		return renderYAML, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
	}
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderYAML goes through the JSON encoding so keys keep their wire names
// and order.
func renderYAML(w io.Writer, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return err
	}
	blockStyle(&doc)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return err
	}
	return enc.Close()
}

func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, child := range n.Content {
		blockStyle(child)
	}
}

func renderText(w io.Writer, v any) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	switch v := v.(type) {
	case *catalog.EntityDetail:
		writeDetail(tw, v)
	case []catalog.EntitySummary:
		writeSummaries(tw, v)
	default:
		return fmt.Errorf("no text rendering for %T", v)
	}
	return tw.Flush()
}

func writeSummaries(w io.Writer, list []catalog.EntitySummary) {
	fmt.Fprintln(w, "ID\tNAME\tTYPES")
	for _, e := range list {
		types := strings.Join(e.Types, ", ")
		if types == "" {
			types = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", e.ID, e.Name, types)
	}
}

func writeDetail(w io.Writer, d *catalog.EntityDetail) {
	fmt.Fprintf(w, "#%d %s\n", d.ID, d.Name)
	fmt.Fprintf(w, "Types:\t%s\n", strings.Join(d.Types, ", "))
	fmt.Fprintf(w, "Height:\t%d\n", d.Height)
	fmt.Fprintf(w, "Weight:\t%d\n", d.Weight)
	fmt.Fprintf(w, "Base experience:\t%s\n", optional(d.BaseExperience))

	fmt.Fprintln(w, "\nStats:")
	for _, s := range d.Stats {
		fmt.Fprintf(w, "  %s\t%d\n", s.Name, s.Value)
	}

	fmt.Fprintln(w, "\nAbilities:")
	for _, a := range d.Abilities {
		name := a.Name
		if a.IsHidden {
			name += " (hidden)"
		}
		fmt.Fprintf(w, "  %s\t%s\n", name, a.Effect)
	}

	if len(d.EvolutionChain) > 0 {
		steps := make([]string, 0, len(d.EvolutionChain))
		for _, n := range d.EvolutionChain {
			step := n.Name
			if n.MinLevel != nil {
				step += " (lv " + strconv.Itoa(*n.MinLevel) + ")"
			}
			steps = append(steps, step)
		}
		fmt.Fprintf(w, "\nEvolution:\t%s\n", strings.Join(steps, " -> "))
	}

	fmt.Fprintf(w, "\nMoves (%d):\t%s\n", len(d.Moves), strings.Join(d.Moves, ", "))
}

func optional(n *int) string {
	if n == nil {
		return "-"
	}
	return strconv.Itoa(*n)
}
