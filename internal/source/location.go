// Package source carries the minimal source-location information attached
// to expression nodes for diagnostics.
package source

import "fmt"

// Location is a line/column pair within the text the embedding analyzer
// parsed. The HOF core never interprets a Location itself; it only carries
// it through to error messages.
type Location struct {
	Line   int
	Column int
}

// NoLocation is used by expressions synthesized by the binder (lambda
// variables, default finish lambdas) that have no corresponding source
// text.
var NoLocation = Location{Line: -1, Column: -1}

func (l Location) String() string {
	if l == NoLocation {
		return "<generated>"
	}
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}
