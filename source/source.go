// Package source switches the process-wide JSON driver to go-json when
// imported for side effects:
//
//	import _ "github.com/reoring/tableopts/source"
package source

import (
	"github.com/reoring/tableopts"
	"github.com/reoring/tableopts/source/gojson"
)

// init lives here rather than in the root package to avoid an import cycle.
func init() { tableopts.SetJSONDriver(gojson.Driver()) }
