package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/tidwall/jsonc"

	"github.com/reoring/pbjson"
	"github.com/reoring/pbjson/schema"
	"github.com/reoring/pbjson/schemafile"
)

func loadRegistry(paths []string) (*schema.Registry, error) {
	reg, err := schemafile.Load(paths...)
	if err != nil {
		return nil, fmt.Errorf("loading schemas: %w", err)
	}
	return reg, nil
}

// input is one document named on the command line; "-" is stdin.
type input struct {
	name string
	rc   io.ReadCloser
}

func inputs(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}

// open returns a reader over the decompressed document. Compression is
// chosen by extension: .gz and .zst.
func (c *Command) open(name string) (*input, error) {
	var rc io.ReadCloser
	if name == "-" {
		rc = io.NopCloser(c.InOrStdin())
	} else {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		rc = f
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		zr, err := gzip.NewReader(rc)
		if err != nil {
			rc.Close()
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		rc = stackedCloser{Reader: zr, closers: []io.Closer{zr, rc}}
	case ".zst", ".zstd":
		zr, err := zstd.NewReader(rc)
		if err != nil {
			rc.Close()
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		rc = stackedCloser{Reader: zr, closers: []io.Closer{zstdCloser{zr}, rc}}
	}
	c.log.Debug().Str("input", name).Msg("opened")
	return &input{name: name, rc: rc}, nil
}

// source wraps the input for the configured JSON driver. With --jsonc the
// document is read fully and comments are stripped first.
func (c *Command) source(in *input) (pbjson.Source, error) {
	if !c.flags.jsonc {
		return pbjson.JSONReader(in.rc), nil
	}
	data, err := io.ReadAll(in.rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", in.name, err)
	}
	return pbjson.JSONReader(bytes.NewReader(jsonc.ToJSON(data))), nil
}

type stackedCloser struct {
	io.Reader
	closers []io.Closer
}

func (s stackedCloser) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

type zstdCloser struct{ d *zstd.Decoder }

func (z zstdCloser) Close() error { z.d.Close(); return nil }
