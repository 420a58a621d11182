package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dynsig/dynsig/pkg/digraph"
	"github.com/dynsig/dynsig/pkg/graphio"
	"github.com/dynsig/dynsig/pkg/netspec"
	"github.com/dynsig/dynsig/pkg/pipeline"
	"github.com/dynsig/dynsig/pkg/render/nodelink"
)

// renderCommand creates the render command for drawing networks and
// graph files as node-link diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	var formats string
	var output string

	cmd := &cobra.Command{
		Use:   "render <spec-file|graph.json>",
		Short: "Render a network or graph file as a diagram",
		Long: `Render draws the regulation digraph of a network spec (or any graph
JSON file) as a node-link diagram. Repression edges get tee arrowheads.

Supported formats: dot, svg, png.

Examples:
  dynsig render network.txt                # network.svg
  dynsig render network.json -f dot,png    # network.dot and network.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph(args[0])
			if err != nil {
				return err
			}

			requested := parseRenderFormats(formats)
			dot := nodelink.ToDOT(g, nodelink.Options{EdgeLabels: true, Regulation: true})

			base := defaultBase(args[0])
			if output != "" {
				base = output
			}
			for _, format := range requested {
				var data []byte
				switch format {
				case pipeline.FormatDOT:
					data = []byte(dot)
				case pipeline.FormatSVG:
					if data, err = nodelink.RenderSVG(cmd.Context(), dot); err != nil {
						return err
					}
				case pipeline.FormatPNG:
					if data, err = nodelink.RenderPNG(cmd.Context(), dot); err != nil {
						return err
					}
				default:
					return fmt.Errorf("unsupported render format: %q (must be dot, svg, or png)", format)
				}

				path := base + "." + format
				if err := os.WriteFile(path, data, 0644); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
				printFile(path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&formats, "formats", "f", "svg", "comma-separated formats: dot,svg,png")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path base (input name if empty)")
	return cmd
}

// loadGraph reads either a graph JSON file or a network spec, detected by
// extension.
func loadGraph(path string) (*digraph.Graph, error) {
	if filepath.Ext(path) == ".json" {
		g, _, err := graphio.ReadGraphFile(path)
		return g, err
	}
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	network, err := netspec.Decode(string(text))
	if err != nil {
		return nil, err
	}
	return network.Graph, nil
}

func parseRenderFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}
