package jsonschema

// Schema is a minimal JSON Schema (2020-12) representation used for export.
type Schema struct {
	SchemaURI   string `json:"$schema,omitempty"`
	Ref         string `json:"$ref,omitempty"`
	Comment     string `json:"$comment,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	// Core
	Type            string `json:"type,omitempty"`
	Format          string `json:"format,omitempty"`
	Pattern         string `json:"pattern,omitempty"`
	ContentEncoding string `json:"contentEncoding,omitempty"`
	Enum            []any  `json:"enum,omitempty"`
	Minimum         *int64 `json:"minimum,omitempty"`
	Maximum         *int64 `json:"maximum,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	PropertyNames        *Schema            `json:"propertyNames,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty"`

	Defs map[string]*Schema `json:"$defs,omitempty"`
}
