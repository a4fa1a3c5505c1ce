package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

type formatOpts struct {
	output  string
	indent  string
	compact bool
	write   bool
}

// formatCommand creates the format command.
func (c *CLI) formatCommand() *cobra.Command {
	var opts formatOpts

	cmd := &cobra.Command{
		Use:   "format [file]",
		Short: "Rewrite a document in canonical form",
		Long: `Decode a document and encode it again in canonical form: nodes in
pre-order with fresh ids, edges after them, fields in a fixed order.

The result goes to standard output unless -o or -w is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFormat(cmd.Context(), args[0], opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file")
	cmd.Flags().StringVar(&opts.indent, "indent", "", "indentation (default from config)")
	cmd.Flags().BoolVar(&opts.compact, "compact", false, "write without whitespace")
	cmd.Flags().BoolVarP(&opts.write, "write", "w", false, "rewrite the input file in place")
	cmd.MarkFlagsMutuallyExclusive("output", "write")
	cmd.MarkFlagsMutuallyExclusive("indent", "compact")

	return cmd
}

func (c *CLI) runFormat(ctx context.Context, input string, opts formatOpts, w io.Writer) error {
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

	indent := cfg.Output.Indent
	switch {
	case opts.compact:
		indent = ""
	case opts.indent != "":
		indent = opts.indent
	}
	data, err := runner.Format(ctx, d, indent)
	if err != nil {
		return err
	}

	path := opts.output
	if opts.write {
		path = input
	}
	if path == "" {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	printSuccess("Formatted %s", input)
	printFile(path)
	return nil
}
