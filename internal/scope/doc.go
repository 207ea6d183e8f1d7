// Package scope tracks lexical scopes while the parser descends into
// nested constructs and answers the name lookups the parser needs to build
// an unambiguous tree.
//
// One Info belongs to one parse session. It owns:
//
//   - an explicit stack of open scopes; the current scope is the top;
//   - two scoped tables, one for values and one for type names, whose
//     bindings disappear when the scope that introduced them closes;
//   - the append-only list of type names referenced before their
//     definition, each with the placeholder declaration standing in for it.
//
// Scopes are acquired and released in strict LIFO order:
//
//	sc := info.Open()
//	defer sc.Close()
//
// Closing anything but the current scope, or touching a scope after it was
// closed, is a bug in the caller and panics with *ContractError. Building
// with -tags scopekit_debug additionally re-verifies table invariants after
// every close.
//
// Value lookups ignore bindings at depth 0: top-level value names may be
// overloaded and are bound after parsing by internal/namebind. Type lookups
// see every depth.
package scope
