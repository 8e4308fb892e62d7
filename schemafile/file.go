package schemafile

// File is one schema document. Type names without a dot are qualified with
// Package; names starting with a dot are taken as fully qualified.
type File struct {
	Package  string        `yaml:"package" json:"package"`
	Enums    []EnumDecl    `yaml:"enums" json:"enums"`
	Messages []MessageDecl `yaml:"messages" json:"messages"`
}

type EnumDecl struct {
	Name   string          `yaml:"name" json:"name"`
	Values []EnumValueDecl `yaml:"values" json:"values"`
}

type EnumValueDecl struct {
	Name   string `yaml:"name" json:"name"`
	Number int32  `yaml:"number" json:"number"`
}

type MessageDecl struct {
	Name   string      `yaml:"name" json:"name"`
	Fields []FieldDecl `yaml:"fields" json:"fields"`
}

// FieldDecl declares a field. Type is a scalar name (uint64, bytes,
// timestamp, ...), a message or enum name, or "map<key, value>". Label is
// empty, "optional" or "repeated".
type FieldDecl struct {
	Name     string `yaml:"name" json:"name"`
	Type     string `yaml:"type" json:"type"`
	JSONName string `yaml:"json_name" json:"json_name"`
	Label    string `yaml:"label" json:"label"`
	Oneof    string `yaml:"oneof" json:"oneof"`
}
