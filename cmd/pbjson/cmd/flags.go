package cmd

import (
	"github.com/spf13/pflag"
)

const (
	flagConfig          = "config"
	flagSchema          = "schema"
	flagMessage         = "message"
	flagDriver          = "driver"
	flagLang            = "lang"
	flagLogLevel        = "log-level"
	flagStrict          = "strict"
	flagRejectDupKeys   = "reject-duplicate-keys"
	flagMaxDepth        = "max-depth"
	flagMaxBytes        = "max-bytes"
	flagEmitUnpopulated = "emit-unpopulated"
	flagProtoNames      = "proto-names"
	flagIndent          = "indent"
	flagJSONC           = "jsonc"
)

// globalFlags holds the persistent flags. Only flags the user set replace
// values from the config file.
type globalFlags struct {
	config   string
	schemas  []string
	message  string
	driver   string
	lang     string
	logLevel string

	strict        bool
	rejectDupKeys bool
	maxDepth      int
	maxBytes      int64

	emitUnpopulated bool
	protoNames      bool
	indent          string

	jsonc bool
}

func (g *globalFlags) register(f *pflag.FlagSet) {
	f.StringVar(&g.config, flagConfig, "", "TOML config file")
	f.StringArrayVarP(&g.schemas, flagSchema, "s", nil, "schema file (.yaml, .yml, .json, .jsonc); repeatable")
	f.StringVarP(&g.message, flagMessage, "m", "", "fully qualified message name")
	f.StringVar(&g.driver, flagDriver, "", "JSON tokenizer: go-json or encoding/json")
	f.StringVar(&g.lang, flagLang, "", "language for issue messages (en, ja)")
	f.StringVar(&g.logLevel, flagLogLevel, "", "log level: trace, debug, info, warn, error, disabled (env "+EnvLogLevel+")")

	f.BoolVar(&g.strict, flagStrict, false, "reject unknown fields")
	f.BoolVar(&g.rejectDupKeys, flagRejectDupKeys, false, "reject duplicate keys anywhere in the input, including unknown subtrees")
	f.IntVar(&g.maxDepth, flagMaxDepth, 0, "maximum nesting depth (0 = unlimited)")
	f.Int64Var(&g.maxBytes, flagMaxBytes, 0, "maximum input size in bytes (0 = unlimited)")

	f.BoolVar(&g.emitUnpopulated, flagEmitUnpopulated, false, "write zero-valued fields without presence")
	f.BoolVar(&g.protoNames, flagProtoNames, false, "write snake_case field names")
	f.StringVar(&g.indent, flagIndent, "", "indent for pretty-printed JSON output")

	f.BoolVar(&g.jsonc, flagJSONC, false, "strip comments and trailing commas from input documents")
}

func (g *globalFlags) apply(f *pflag.FlagSet, cfg *Config) {
	set := func(name string, fn func()) {
		if f.Changed(name) {
			fn()
		}
	}
	set(flagSchema, func() { cfg.Schemas = append(cfg.Schemas, g.schemas...) })
	set(flagMessage, func() { cfg.Message = g.message })
	set(flagDriver, func() { cfg.Driver = g.driver })
	set(flagLang, func() { cfg.Lang = g.lang })
	set(flagLogLevel, func() { cfg.LogLevel = g.logLevel })
	if !f.Changed(flagLogLevel) {
		if lvl := envLogLevel(); lvl != "" {
			cfg.LogLevel = lvl
		}
	}

	set(flagStrict, func() { cfg.Decode.Strict = g.strict })
	set(flagRejectDupKeys, func() { cfg.Decode.RejectDuplicateKeys = g.rejectDupKeys })
	set(flagMaxDepth, func() { cfg.Decode.MaxDepth = g.maxDepth })
	set(flagMaxBytes, func() { cfg.Decode.MaxBytes = g.maxBytes })

	set(flagEmitUnpopulated, func() { cfg.Encode.EmitUnpopulated = g.emitUnpopulated })
	set(flagProtoNames, func() { cfg.Encode.ProtoNames = g.protoNames })
	set(flagIndent, func() { cfg.Encode.Indent = g.indent })
}
