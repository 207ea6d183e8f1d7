package scope

// Scope is the handle for one open nesting level. It is only valid until
// Close; afterwards every method panics.
type Scope struct {
	info   *Info
	id     ScopeID
	depth  uint32
	closed bool
}

// Close pops the scope. It must be the current scope.
func (s *Scope) Close() {
	if s.closed {
		violation("Scope.Close", "scope #%d closed twice", s.id)
	}
	s.info.close(s)
}

// Depth is 0 for the root scope and parent depth + 1 otherwise.
func (s *Scope) Depth() uint32 {
	s.checkOpen("Scope.Depth")
	return s.depth
}

func (s *Scope) ID() ScopeID {
	s.checkOpen("Scope.ID")
	return s.id
}

// IsCurrent reports whether s is the top of the stack.
func (s *Scope) IsCurrent() bool {
	s.checkOpen("Scope.IsCurrent")
	return s.info.top() == s
}

func (s *Scope) checkOpen(op string) {
	if s.closed {
		violation(op, "scope #%d used after close", s.id)
	}
}
