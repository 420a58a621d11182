package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dynsig/dynsig/pkg/events"
)

// eventsCommand creates the events command: extremum event series in,
// pattern artifacts out.
func (c *CLI) eventsCommand() *cobra.Command {
	opts := buildOpts{}

	cmd := &cobra.Command{
		Use:   "events <events.json>",
		Short: "Build the pattern graph for an extremum event series",
		Long: `Events reads a JSON array of labeled extremum intervals, builds the
precedence digraph (event i precedes event j when i's interval ends no
later than j's begins), and runs the same poset and pattern enumeration
as build.

The input format is a list of [label, [start, end]] pairs:

  [["X", [0.0, 1.5]], ["Y", [2.0, 3.0]], ["X", [3.5, 4.0]]]

Examples:
  dynsig events series.json                    # Pattern record to stdout
  dynsig events series.json -f svg -o pattern  # pattern.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var series []events.Event
			if err := json.Unmarshal(data, &series); err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			popts := opts.pipelineOptions()
			popts.Events = series
			return c.runPipeline(cmd, popts, &opts, defaultBase(args[0]))
		},
	}

	opts.register(cmd)
	return cmd
}
