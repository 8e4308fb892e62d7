// Package cmd implements the pbjson command tree.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/reoring/pbjson"
	"github.com/reoring/pbjson/schema"
	"github.com/reoring/pbjson/source/gojson"
)

// ErrPrintedError is returned when a command already reported its failure.
var ErrPrintedError = errors.New("terminating because of errors")

// Command carries the state shared by all subcommands for one invocation.
type Command struct {
	*cobra.Command

	root  *cobra.Command
	flags *globalFlags
	cfg   Config
	log   zerolog.Logger
	reg   *schema.Registry
}

type runFunction func(c *Command, args []string) error

func mkRunE(c *Command, f runFunction) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c.Command = cmd
		return f(c, args)
	}
}

func newRootCmd() *Command {
	cmd := &cobra.Command{
		Use:   "pbjson",
		Short: "pbjson decodes and canonicalizes proto3 JSON documents.",
		Long: `pbjson reads JSON documents and checks them against message schemas
loaded from YAML or JSONC schema files (--schema). Documents are decoded with
the proto3 JSON rules: both field spellings are accepted, 64-bit integers may be
strings, bytes are base64 and enums are names. Output is canonical JSON with
camelCase keys in declaration order, or YAML.

Settings can also come from a TOML file (--config); flags win over the file.`,
		SilenceUsage:  true,
		SilenceErrors: true,

		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}

	c := &Command{Command: cmd, root: cmd, flags: &globalFlags{}}
	c.flags.register(cmd.PersistentFlags())
	cmd.PersistentPreRunE = mkRunE(c, (*Command).setup)

	for _, sub := range []*cobra.Command{
		newCanonicalizeCmd(c),
		newDecodeCmd(c),
		newValidateCmd(c),
		newDescribeCmd(c),
		newJSONSchemaCmd(c),
	} {
		cmd.AddCommand(sub)
	}
	return c
}

// Main runs the command with os.Args and returns the process exit code.
func Main() int {
	err := mainErr(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		if !errors.Is(err, ErrPrintedError) {
			fmt.Fprintln(os.Stderr, "pbjson:", err)
		}
		return 1
	}
	return 0
}

func mainErr(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	c := newRootCmd()
	c.root.SetArgs(args)
	c.root.SetIn(stdin)
	c.root.SetOut(stdout)
	c.root.SetErr(stderr)
	return c.root.ExecuteContext(ctx)
}

// setup resolves configuration, logging, the JSON driver and the schema
// registry before any subcommand runs.
func (c *Command) setup(_ []string) error {
	if c.Name() == "help" {
		return nil
	}
	cfg, err := LoadConfig(c.flags.config)
	if err != nil {
		return err
	}
	c.flags.apply(c.root.PersistentFlags(), &cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	c.log = newLogger(c.ErrOrStderr(), cfg.LogLevel)
	applyLanguage(cfg.Lang)

	switch cfg.Driver {
	case gojson.Name:
		pbjson.SetJSONDriver(gojson.Driver())
	default:
		pbjson.UseDefaultJSONDriver()
	}
	c.log.Debug().Str("driver", pbjson.CurrentJSONDriver().Name()).Str("lang", cfg.Lang).Msg("configured")

	if len(cfg.Schemas) == 0 {
		return errors.New("no schema files given (use --schema or the config file)")
	}
	reg, err := loadRegistry(cfg.Schemas)
	if err != nil {
		return err
	}
	c.reg = reg
	c.log.Debug().
		Strs("schemas", cfg.Schemas).
		Int("messages", len(reg.Messages())).
		Str("fingerprint", reg.Fingerprint()).
		Msg("schema registry loaded")
	return nil
}

// message resolves the --message flag.
func (c *Command) message() (*schema.Message, error) {
	name := c.cfg.Message
	if name == "" {
		return nil, errors.New("--message is required")
	}
	md, ok := c.reg.Describe(name)
	if !ok {
		return nil, fmt.Errorf("message %q not found in schema registry", name)
	}
	return md, nil
}
