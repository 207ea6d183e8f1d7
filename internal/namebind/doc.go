// Package namebind finishes name resolution once a file is fully parsed.
//
// The parser binds local names on the fly but leaves top-level values to
// this pass, because a top-level name may be overloaded and its overload
// set is only complete at the end of the file. Type placeholders that were
// never reconciled during parsing get one more chance against the file's
// top-level type aliases before they are reported.
package namebind
