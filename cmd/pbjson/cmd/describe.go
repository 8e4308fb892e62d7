package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/reoring/pbjson/schema"
)

func newDescribeCmd(c *Command) *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "list loaded messages, or the fields of --message",
		RunE:  mkRunE(c, runDescribe),
	}
}

func runDescribe(c *Command, _ []string) error {
	out := c.OutOrStdout()
	if c.cfg.Message == "" {
		fmt.Fprintf(out, "fingerprint %s\n", c.reg.Fingerprint())
		for _, e := range c.reg.Enums() {
			fmt.Fprintf(out, "enum %s (%d values)\n", e.FullName, len(e.Values))
		}
		for _, m := range c.reg.Messages() {
			fmt.Fprintf(out, "message %s (%d fields)\n", m.FullName, len(m.Fields))
		}
		return nil
	}
	md, err := c.message()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "message %s\n", md.FullName)
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tJSON\tTYPE\tLABEL\tONEOF")
	for _, f := range md.Fields {
		oneof := "-"
		if f.Oneof != nil {
			oneof = f.Oneof.Name
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", f.Name, f.JSONName, f.Type, label(f), oneof)
	}
	return tw.Flush()
}

func label(f *schema.Field) string {
	switch {
	case f.IsList():
		return "repeated"
	case f.IsMap():
		return "map"
	case f.Presence == schema.Optional:
		return "optional"
	}
	return "-"
}
