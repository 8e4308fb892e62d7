package cmd

import (
	"fmt"

	j "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/reoring/pbjson/jsonschema"
)

func newJSONSchemaCmd(c *Command) *cobra.Command {
	return &cobra.Command{
		Use:   "jsonschema",
		Short: "print a JSON Schema describing the canonical encoding of --message",
		RunE:  mkRunE(c, runJSONSchema),
	}
}

func runJSONSchema(c *Command, _ []string) error {
	md, err := c.message()
	if err != nil {
		return err
	}
	b, err := j.MarshalIndent(jsonschema.FromMessage(md), "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintf(c.OutOrStdout(), "%s\n", b)
	return nil
}
