package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dynsig/dynsig/pkg/graphio"
	"github.com/dynsig/dynsig/pkg/netspec"
)

// specCommand creates the spec command for converting between network
// spec text and graph JSON.
func (c *CLI) specCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spec",
		Short: "Convert between network spec text and graph JSON",
	}

	cmd.AddCommand(c.specDecodeCommand())
	cmd.AddCommand(c.specEncodeCommand())

	return cmd
}

// specDecodeCommand creates the "spec decode" subcommand.
func (c *CLI) specDecodeCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "decode <spec-file>",
		Short: "Decode a network spec into graph JSON",
		Long: `Decode parses a regulatory network spec into its labeled regulation
digraph and writes it as graph JSON. Vertex ids follow declaration order;
edges carry "a" (activation) or "r" (repression) labels.

Example:
  dynsig spec decode network.txt -o network.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			network, err := netspec.Decode(string(text))
			if err != nil {
				return err
			}

			out, err := openOutput(output)
			if err != nil {
				return err
			}
			defer out.Close()
			if err := graphio.WriteGraph(network.Graph, network.Essential, out); err != nil {
				return err
			}
			if output != "" {
				printSuccess("Decoded %d nodes, %d edges", network.Graph.VertexCount(), network.Graph.EdgeCount())
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}

// specEncodeCommand creates the "spec encode" subcommand.
func (c *CLI) specEncodeCommand() *cobra.Command {
	var output string
	var essential bool

	cmd := &cobra.Command{
		Use:   "encode <graph.json>",
		Short: "Encode graph JSON back into network spec text",
		Long: `Encode serializes a graph JSON file into network spec text. With
--essential every node is marked essential regardless of the flags stored
in the input, which is the conventional starting point for perturbation
studies.

Example:
  dynsig spec encode network.json --essential -o essential.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, flags, err := graphio.ReadGraphFile(args[0])
			if err != nil {
				return err
			}
			if essential {
				flags = make([]bool, g.VertexCount())
				for i := range flags {
					flags[i] = true
				}
			}

			text, err := netspec.Encode(&netspec.Network{Graph: g, Essential: flags})
			if err != nil {
				return err
			}

			out, err := openOutput(output)
			if err != nil {
				return err
			}
			defer out.Close()
			if _, err := out.Write([]byte(text)); err != nil {
				return err
			}
			if output != "" {
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&essential, "essential", false, "mark every node essential")
	return cmd
}
