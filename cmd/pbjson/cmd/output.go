package cmd

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// jsonToYAML converts canonical JSON into a YAML node tree. Key order is kept
// and string scalars that look like numbers stay quoted.
func jsonToYAML(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("converting to yaml: %w", err)
	}
	blockStyle(&doc)
	if doc.Kind == yaml.DocumentNode && len(doc.Content) == 1 {
		return doc.Content[0], nil
	}
	return &doc, nil
}

func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func mapping(kv ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: kv}
}

type yamlWriter struct {
	enc *yaml.Encoder
}

func newYAMLWriter(w io.Writer) *yamlWriter {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	return &yamlWriter{enc: enc}
}

func (y *yamlWriter) write(n *yaml.Node) error { return y.enc.Encode(n) }

func (y *yamlWriter) Close() error { return y.enc.Close() }
