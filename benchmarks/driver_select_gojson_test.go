//go:build gojson

package benchmarks_test

import (
	"github.com/reoring/pbjson"
	drv "github.com/reoring/pbjson/source/gojson"
)

func init() {
	pbjson.SetJSONDriver(drv.Driver())
}
