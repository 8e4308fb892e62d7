package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd(c *Command) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file ...]",
		Short: "check that documents decode against a message",
		Long: `validate decodes each document against --message and reports the first
issue found in each one. Issue messages follow --lang. The exit status is 1
when any document fails.
`,
		RunE: mkRunE(c, runValidate),
	}
}

func runValidate(c *Command, args []string) error {
	md, err := c.message()
	if err != nil {
		return err
	}
	failed := 0
	names := inputs(args)
	for _, name := range names {
		if _, err := c.decodeFile(md, name); err != nil {
			c.reportIssues(c.ErrOrStderr(), name, err)
			failed++
			continue
		}
		fmt.Fprintf(c.OutOrStdout(), "%s: ok\n", name)
	}
	c.log.Info().Int("documents", len(names)).Int("failed", failed).Msg("validated")
	if failed > 0 {
		return ErrPrintedError
	}
	return nil
}
