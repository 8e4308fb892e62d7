package cmd

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/reoring/pbjson"
	"github.com/reoring/pbjson/i18n"
	"github.com/reoring/pbjson/source/gojson"
)

// Config is the on-disk TOML configuration. Flags override it field by field.
//
//	schemas   = ["proto/checkpointing.yaml"]
//	message   = "babylon.checkpointing.v1.RawCheckpoint"
//	driver    = "go-json"
//	lang      = "en"
//	log_level = "warn"
//
//	[decode]
//	strict                = true
//	reject_duplicate_keys = true
//	max_depth             = 64
//	max_bytes             = 1048576
//
//	[encode]
//	emit_unpopulated = false
//	proto_names      = false
//	indent           = "  "
type Config struct {
	Schemas  []string     `toml:"schemas"`
	Message  string       `toml:"message"`
	Driver   string       `toml:"driver"`
	Lang     string       `toml:"lang"`
	LogLevel string       `toml:"log_level"`
	Decode   DecodeConfig `toml:"decode"`
	Encode   EncodeConfig `toml:"encode"`
}

type DecodeConfig struct {
	Strict              bool  `toml:"strict"`
	RejectDuplicateKeys bool  `toml:"reject_duplicate_keys"`
	MaxDepth            int   `toml:"max_depth"`
	MaxBytes            int64 `toml:"max_bytes"`
}

type EncodeConfig struct {
	EmitUnpopulated bool   `toml:"emit_unpopulated"`
	ProtoNames      bool   `toml:"proto_names"`
	Indent          string `toml:"indent"`
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() Config {
	return Config{
		Driver:   gojson.Name,
		Lang:     "en",
		LogLevel: "warn",
	}
}

// LoadConfig reads path over DefaultConfig. An empty path returns the
// defaults. Keys the Config does not declare are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("config parse failed (%s): unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

func (cfg Config) Validate() error {
	if cfg.Driver != gojson.Name && cfg.Driver != "encoding/json" {
		return fmt.Errorf("unknown driver %q (want go-json or encoding/json)", cfg.Driver)
	}
	if !slices.Contains(i18n.Languages(), cfg.Lang) {
		return fmt.Errorf("unknown language %q (want one of %s)", cfg.Lang, strings.Join(i18n.Languages(), ", "))
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return err
	}
	if cfg.Decode.MaxDepth < 0 || cfg.Decode.MaxBytes < 0 {
		return fmt.Errorf("decode limits must not be negative")
	}
	return nil
}

// DecodeOpt converts the decode section to codec options.
func (cfg Config) DecodeOpt() pbjson.DecodeOpt {
	opt := pbjson.DecodeOpt{
		MaxDepth: cfg.Decode.MaxDepth,
		MaxBytes: cfg.Decode.MaxBytes,
	}
	if cfg.Decode.Strict {
		opt.Unknown = pbjson.UnknownStrict
	}
	if cfg.Decode.RejectDuplicateKeys {
		opt.Strictness.OnDuplicateKey = pbjson.Error
	}
	return opt
}

// EncodeOpt converts the encode section to codec options.
func (cfg Config) EncodeOpt() pbjson.EncodeOpt {
	return pbjson.EncodeOpt{
		EmitUnpopulated: cfg.Encode.EmitUnpopulated,
		UseProtoNames:   cfg.Encode.ProtoNames,
		Indent:          cfg.Encode.Indent,
	}
}

func applyLanguage(lang string) { i18n.SetLanguage(lang) }
