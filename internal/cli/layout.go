package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/umlkit/pkg/pipeline"
	"github.com/matzehuels/umlkit/pkg/report"
)

// layoutCommand creates the layout command for computing diagram geometry.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output   string
		toStdout bool
		refresh  bool
	)

	cmd := &cobra.Command{
		Use:   "layout [file]",
		Short: "Compute node bounds and edge anchors",
		Long: `Compute the bounds of every node and the anchor points of every edge
and write them as a JSON report.

Node and edge ids in the report match the ids of the canonical document, so
the report can be joined to the output of 'format'.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var w io.Writer
			if toStdout {
				w = cmd.OutOrStdout()
			}
			return c.runLayout(cmd.Context(), args[0], output, refresh, w)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "write the report to standard output")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if a cached layout exists")
	cmd.MarkFlagsMutuallyExclusive("output", "stdout")

	return cmd
}

// runLayout loads the document, computes the layout, and writes the report.
func (c *CLI) runLayout(ctx context.Context, input, output string, refresh bool, w io.Writer) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(cfg)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	d, err := runner.Load(ctx, input)
	if err != nil {
		return err
	}

	opts := pipeline.Options{Config: cfg, Refresh: refresh}
	l, cacheHit, err := runner.LayoutWithCacheInfo(ctx, d, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	rep := report.Build(d, l)

	if w != nil {
		data, err := report.Marshal(rep)
		if err != nil {
			return err
		}
		_, err = w.Write(append(data, '\n'))
		return err
	}

	path := outputPath(output, input, ".layout.json")
	if err := report.WriteFile(rep, path); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}

	printSuccess("Layout complete")
	printFile(path)
	printStats(d.NodeCount(), d.EdgeCount(), cacheHit)
	printNewline()
	printNextStep("Render", appName+" render "+input)
	return nil
}
