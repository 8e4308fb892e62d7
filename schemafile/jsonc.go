package schemafile

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	j "github.com/goccy/go-json"
	"github.com/tidwall/jsonc"

	"github.com/reoring/pbjson"
)

// ParseJSONC decodes JSON with comments and trailing commas. The document is
// either one File object or an array of them. Duplicate keys and unknown keys
// are errors.
func ParseJSONC(data []byte) ([]File, error) {
	plain := jsonc.ToJSON(data)
	if err := checkJSONDuplicates(plain); err != nil {
		return nil, err
	}
	dec := j.NewDecoder(bytes.NewReader(plain))
	dec.DisallowUnknownFields()
	trimmed := bytes.TrimSpace(plain)
	var files []File
	switch {
	case len(trimmed) == 0:
		return nil, nil
	case trimmed[0] == '[':
		if err := dec.Decode(&files); err != nil {
			return nil, err
		}
	default:
		var f File
		if err := dec.Decode(&f); err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// checkJSONDuplicates streams the document through the token engine with
// duplicate keys turned into errors.
func checkJSONDuplicates(data []byte) error {
	src := pbjson.EnforceSource(pbjson.JSONBytes(data), pbjson.DecodeOpt{
		Strictness: pbjson.Strictness{OnDuplicateKey: pbjson.Error},
	})
	for {
		_, err := src.NextToken()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			if iss, ok := pbjson.AsIssues(err); ok {
				return fmt.Errorf("%s at %s", iss.First().Message, iss.First().Path)
			}
			return err
		}
	}
}
