package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/precice/config-format/pkg/canon"
	errs "github.com/precice/config-format/pkg/errors"
)

// checkCommand creates the check command.
func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [files...]",
		Short: "Report files that are not formatted without changing them",
		Long: `Report files that are not formatted without changing them.

Exits with 2 if any file would be reformatted and 1 if any file fails,
which makes it suitable for CI jobs and pre-commit hooks.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFormat(cmd, args, true)
		},
	}
}

// runFormat formats (or checks) every file and reports the outcome. Per-file
// failures are printed and turned into the batch exit status; they never
// stop the remaining files.
func (c *CLI) runFormat(cmd *cobra.Command, paths []string, check bool) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(cfg)
	if err != nil {
		return err
	}
	defer runner.Close()

	opts := pipelineOptions(cfg)
	opts.Check = check

	prog := newProgress(logger)
	summary := runner.FormatFiles(ctx, paths, opts)
	prog.done(fmt.Sprintf("Formatted %d files", len(paths)))

	if err := ctx.Err(); err != nil {
		return err
	}
	c.report(&summary, check)

	if code := summary.ExitCode(); code != canon.ExitUnchanged {
		return &ExitError{Code: code}
	}
	return nil
}

func (c *CLI) report(summary *canon.Summary, check bool) {
	for _, o := range summary.Outcomes {
		switch o.Status {
		case canon.Rewritten:
			if check {
				c.printWarning("Would reformat file: %q", o.Path)
			} else {
				c.printSuccess("Reformatted file: %q", o.Path)
			}
		case canon.Failed:
			c.printError("Failed to format file: %q", o.Path)
			c.printDetail("%s", errs.UserMessage(o.Err))
		}
	}

	rewritten := summary.Count(canon.Rewritten)
	if len(summary.Outcomes) > 1 {
		verb := "reformatted"
		if check {
			verb = "to reformat"
		}
		c.printInfo("%d files: %d %s, %d unchanged, %d failed",
			len(summary.Outcomes), rewritten, verb,
			summary.Count(canon.Unchanged), summary.Count(canon.Failed))
	}
	if check && rewritten > 0 {
		var files []string
		for _, o := range summary.Outcomes {
			if o.Status == canon.Rewritten {
				files = append(files, o.Path)
			}
		}
		c.printNextStep("Fix with", appName+" "+strings.Join(files, " "))
	}
}
