package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/umlkit/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file path
	format   string // "dot" or "svg"; empty uses the config
	toStdout bool
	refresh  bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Export a diagram to Graphviz DOT or SVG",
		Long: `Export a diagram with every node pinned at its computed position.

DOT output can be fed to 'neato -n'. SVG output is produced with the
embedded Graphviz engine and cached locally.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var w io.Writer
			if opts.toStdout {
				w = cmd.OutOrStdout()
			}
			return c.runRender(cmd.Context(), args[0], opts, w)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <input>.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: dot, svg (default from config)")
	cmd.Flags().BoolVar(&opts.toStdout, "stdout", false, "write to standard output")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached layouts and exports")
	cmd.MarkFlagsMutuallyExclusive("output", "stdout")
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{pipeline.FormatDOT, pipeline.FormatSVG}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// runRender runs the whole pipeline and writes the export.
func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts, w io.Writer) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	format := opts.format
	if format == "" {
		format = cfg.Output.Format
	}
	if format != pipeline.FormatDOT && format != pipeline.FormatSVG {
		return fmt.Errorf("invalid format %q: must be dot or svg", format)
	}

	runner, err := c.newRunner(cfg)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", format))
	spinner.Start()
	result, err := runner.Execute(ctx, input, pipeline.Options{
		Config:  cfg,
		Format:  format,
		Refresh: opts.refresh,
	})
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if w != nil {
		_, err := w.Write(result.Artifact)
		return err
	}

	path := outputPath(opts.output, input, "."+format)
	if err := os.WriteFile(path, result.Artifact, 0644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}

	printSuccess("Rendered %s", input)
	printFile(path)
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.LayoutHit)
	return nil
}
