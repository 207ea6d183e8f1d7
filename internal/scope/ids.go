package scope

// ScopeID identifies a scope within one Info. IDs are never reused, so a
// closed scope keeps its ID and its place in the ancestry records.
type ScopeID uint32

// NoScopeID marks the absence of a scope.
const NoScopeID ScopeID = 0

func (id ScopeID) IsValid() bool { return id != NoScopeID }

// record survives the scope it describes; placeholders use it to find
// out which scope they were created in.
type record struct {
	parent ScopeID
	depth  uint32
}
