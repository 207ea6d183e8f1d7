//go:build scopekit_debug

package scope

const debugChecks = true
