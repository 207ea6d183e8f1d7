package driver

import (
	"scopekit/internal/scope"
)

// DefaultExt is the source file extension picked up by directory runs.
const DefaultExt = ".sk"

type Options struct {
	MaxDiagnostics int
	Jobs           int    // parallel files in ParseDir; 0 = GOMAXPROCS
	Ext            string // ParseDir file filter; "" = DefaultExt
	// Prelude replaces the built-in type names; nil keeps the defaults.
	Prelude []scope.PreludeEntry
	// SkipBind stops after parsing, leaving top-level references unbound.
	SkipBind bool
}

func (o Options) ext() string {
	if o.Ext == "" {
		return DefaultExt
	}
	return o.Ext
}
