package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/umlkit/pkg/errors"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]...",
		Short: "Check that documents decode and reference only existing nodes",
		Long: `Decode each document and report its node and edge counts.

Every failure is reported with its error code; the command fails if any
document is invalid.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd.Context(), args)
		},
	}
}

func (c *CLI) runValidate(ctx context.Context, paths []string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(cfg)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx))
	failed := 0
	for _, path := range paths {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		d, err := runner.Load(ctx, path)
		if err != nil {
			failed++
			printError("%s: %s", path, describeError(err))
			continue
		}
		printSuccess("%s", path)
		printDetail("%d nodes · %d edges", d.NodeCount(), d.EdgeCount())
	}
	prog.done(fmt.Sprintf("Validated %d documents", len(paths)))

	if failed > 0 {
		return fmt.Errorf("%d of %d documents invalid", failed, len(paths))
	}
	return nil
}

// describeError renders err with its code when it carries one.
func describeError(err error) string {
	if code := errs.GetCode(err); code != "" {
		return fmt.Sprintf("[%s] %s", code, errs.UserMessage(err))
	}
	return err.Error()
}
