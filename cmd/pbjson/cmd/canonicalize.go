package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reoring/pbjson"
)

func newCanonicalizeCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "canonicalize [file ...]",
		Short: "rewrite documents in canonical proto3 JSON",
		Long: `canonicalize decodes each document against --message and writes it back
in canonical form: camelCase keys in declaration order, defaults omitted,
64-bit integers as strings, standard base64 bytes and enum names.

With --preserve, keys present in the input are written even when they hold
the default value, and keys that were null are written as null.

Output is one JSON document per line, or a YAML stream with --output yaml.
`,
		RunE: mkRunE(c, runCanonicalize),
	}
	cmd.Flags().StringP("output", "o", "json", "output format: json or yaml")
	cmd.Flags().Bool("preserve", false, "keep keys seen in the input even when they hold defaults")
	return cmd
}

func runCanonicalize(c *Command, args []string) error {
	md, err := c.message()
	if err != nil {
		return err
	}
	format, _ := c.Flags().GetString("output")
	preserve, _ := c.Flags().GetBool("preserve")
	if format != "json" && format != "yaml" {
		return fmt.Errorf("unknown output format %q", format)
	}
	mode := pbjson.EncodeCanonical
	if preserve {
		mode = pbjson.EncodePreserve
	}

	var yw *yamlWriter
	if format == "yaml" {
		yw = newYAMLWriter(c.OutOrStdout())
		defer yw.Close()
	}
	failed := false
	for _, name := range inputs(args) {
		d, err := c.decodeFile(md, name)
		if err != nil {
			c.reportIssues(c.ErrOrStderr(), name, err)
			failed = true
			continue
		}
		out, err := pbjson.EncodeWithDecoded(c.Context(), d, mode, c.cfg.EncodeOpt())
		if err != nil {
			return err
		}
		if yw == nil {
			fmt.Fprintf(c.OutOrStdout(), "%s\n", out)
			continue
		}
		n, err := jsonToYAML(out)
		if err != nil {
			return err
		}
		if err := yw.write(n); err != nil {
			return err
		}
	}
	if failed {
		return ErrPrintedError
	}
	return nil
}
