package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dynsig/dynsig/pkg/pipeline"
)

// buildOpts holds the command-line flags shared by the build and events
// commands.
type buildOpts struct {
	label      uint64 // explicit final-state descriptor
	decreasing []int  // variables decreasing in the final state
	increasing []int  // variables increasing in the final state
	formats    string // comma-separated output formats
	output     string // output path base (stdout for single json if empty)
	noCache    bool   // disable the cache entirely
	refresh    bool   // bypass cache reads
}

func (o *buildOpts) register(cmd *cobra.Command) {
	cmd.Flags().Uint64Var(&o.label, "label", 0, "bit-encoded final-state descriptor (overrides --decreasing/--increasing)")
	cmd.Flags().IntSliceVar(&o.decreasing, "decreasing", nil, "variable indices decreasing in the final state")
	cmd.Flags().IntSliceVar(&o.increasing, "increasing", nil, "variable indices increasing in the final state")
	cmd.Flags().StringVarP(&o.formats, "formats", "f", "", "comma-separated output formats: json,dot,svg,png (default json)")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output path base (single json goes to stdout if empty)")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "bypass cache reads and recompute")
}

func (o *buildOpts) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		Label:      o.label,
		Decreasing: o.decreasing,
		Increasing: o.increasing,
		Formats:    parseFormats(o.formats),
		Refresh:    o.refresh,
	}
}

// buildCommand creates the build command: network spec in, pattern
// artifacts out.
func (c *CLI) buildCommand() *cobra.Command {
	opts := buildOpts{}

	cmd := &cobra.Command{
		Use:   "build <spec-file|directory>",
		Short: "Build the pattern graph for a network spec",
		Long: `Build decodes a regulatory network spec, derives the poset of its
regulation digraph, enumerates the pattern graph, and writes the pattern
record plus any requested diagram formats.

Given a directory, an interactive picker lists the spec files inside it.

Examples:
  dynsig build network.txt                     # Pattern record to stdout
  dynsig build network.txt -f json,svg -o out  # out.json and out.svg
  dynsig build specs/                          # Pick a spec interactively`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveSpecPath(args[0])
			if err != nil {
				return err
			}
			text, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			popts := opts.pipelineOptions()
			popts.Spec = string(text)
			return c.runPipeline(cmd, popts, &opts, defaultBase(path))
		},
	}

	opts.register(cmd)
	return cmd
}

// runPipeline executes the pipeline with a spinner and writes the
// resulting artifacts.
func (c *CLI) runPipeline(cmd *cobra.Command, popts pipeline.Options, opts *buildOpts, base string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	popts.Logger = logger

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spin := newSpinnerWithContext(ctx, "Enumerating pattern graph...")
	spin.Start()
	result, err := runner.Execute(ctx, popts)
	if err != nil {
		spin.StopWithError("Pipeline failed")
		return err
	}
	spin.Stop()

	printSuccess("Built pattern graph with %d antichains (dimension %d)",
		result.Stats.PatternSize, result.Record.Dimension)
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.PatternHit)

	return writeArtifacts(result.Artifacts, popts.Formats, opts.output, base)
}

// writeArtifacts writes rendered outputs. A single json artifact with no
// output path goes to stdout; everything else lands in <base>.<format>
// files.
func writeArtifacts(artifacts map[string][]byte, formats []string, output, base string) error {
	if output == "" && len(formats) == 1 && formats[0] == pipeline.FormatJSON {
		out, err := openOutput("")
		if err != nil {
			return err
		}
		defer out.Close()
		_, err = out.Write(append(artifacts[pipeline.FormatJSON], '\n'))
		return err
	}

	if output != "" {
		base = output
	}
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := base + "." + format
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

// resolveSpecPath returns the path itself for files and runs the
// interactive picker for directories.
func resolveSpecPath(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return path, nil
	}
	return pickSpecFile(path)
}

// defaultBase derives the artifact base name from the input path:
// "specs/network.txt" becomes "network".
func defaultBase(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
