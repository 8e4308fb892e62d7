package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/reoring/pbjson"
	"github.com/reoring/pbjson/schema"
	"github.com/reoring/pbjson/value"
)

// decodeFile decodes one named input against md, always collecting presence.
func (c *Command) decodeFile(md *schema.Message, name string) (pbjson.Decoded[*value.Instance], error) {
	in, err := c.open(name)
	if err != nil {
		return pbjson.Decoded[*value.Instance]{}, err
	}
	defer in.rc.Close()
	src, err := c.source(in)
	if err != nil {
		return pbjson.Decoded[*value.Instance]{}, err
	}
	d, err := pbjson.DecodeWithMeta(c.Context(), md, src, c.cfg.DecodeOpt())
	if err != nil {
		return pbjson.Decoded[*value.Instance]{}, err
	}
	c.log.Debug().Str("input", name).Int("present", len(d.Presence)).Msg("decoded")
	return d, nil
}

// reportIssues prints err for input name, localized when it carries Issues.
func (c *Command) reportIssues(w io.Writer, name string, err error) {
	iss, ok := pbjson.AsIssues(err)
	if !ok {
		fmt.Fprintf(w, "%s: %v\n", name, err)
		return
	}
	for _, it := range iss {
		fmt.Fprintf(w, "%s: %s: %s [%s]\n", name, it.Path, it.Localized(), it.Code)
	}
}

func newDecodeCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode [file ...]",
		Short: "decode documents and print their value with presence metadata as YAML",
		Long: `decode reads each document (stdin when no file is given), decodes it
against --message and prints a YAML document holding the canonical value and
the presence metadata recorded for every key in the input:

	message: babylon.checkpointing.v1.RawCheckpoint
	value:
	  epochNum: "12"
	presence:
	  /: seen
	  /epochNum: seen|wire-name
`,
		RunE: mkRunE(c, runDecode),
	}
	return cmd
}

func runDecode(c *Command, args []string) error {
	md, err := c.message()
	if err != nil {
		return err
	}
	yw := newYAMLWriter(c.OutOrStdout())
	defer yw.Close()
	failed := false
	for _, name := range inputs(args) {
		d, err := c.decodeFile(md, name)
		if err != nil {
			c.reportIssues(c.ErrOrStderr(), name, err)
			failed = true
			continue
		}
		out, err := pbjson.Encode(c.Context(), d.Value, c.cfg.EncodeOpt())
		if err != nil {
			return err
		}
		v, err := jsonToYAML(out)
		if err != nil {
			return err
		}
		if err := yw.write(mapping(
			scalar("message"), scalar(md.FullName),
			scalar("value"), v,
			scalar("presence"), presenceNode(d.Presence),
		)); err != nil {
			return err
		}
	}
	if failed {
		return ErrPrintedError
	}
	return nil
}

func presenceNode(pm pbjson.PresenceMap) *yaml.Node {
	keys := make([]string, 0, len(pm))
	for k := range pm {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	n := mapping()
	for _, k := range keys {
		n.Content = append(n.Content, scalar(k), scalar(pm[k].String()))
	}
	return n
}
