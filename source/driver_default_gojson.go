// Package source switches the default JSON driver to goccy/go-json when
// imported for its side effect:
//
//	import _ "github.com/reoring/pbjson/source"
package source

import (
	"github.com/reoring/pbjson"
	"github.com/reoring/pbjson/source/gojson"
)

// The root package cannot import gojson directly without a cycle.
func init() { pbjson.SetJSONDriver(gojson.Driver()) }
