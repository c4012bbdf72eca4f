package asm

// symbolTable is an insertion-only label -> byte-address map. Once a label
// is inserted its address is immutable; re-definition is an error.
type symbolTable struct {
	addr map[string]uint32
}

func newSymbolTable() *symbolTable {
	return &symbolTable{addr: make(map[string]uint32)}
}

// insert records name -> address, failing if name is already present.
func (s *symbolTable) insert(name string, address uint32, line int) error {
	if _, ok := s.addr[name]; ok {
		return newError(KindDuplicateLabel, line, "Label already defined")
	}
	s.addr[name] = address
	return nil
}

// lookup returns the address bound to name, and whether it was found.
func (s *symbolTable) lookup(name string) (uint32, bool) {
	a, ok := s.addr[name]
	return a, ok
}

// isValidLabel reports whether name satisfies the label grammar: ASCII only,
// first character alphanumeric, remaining characters alphanumeric, '_', or '$'.
func isValidLabel(name string) bool {
	if name == "" {
		return false
	}
	isAlnum := func(c byte) bool {
		return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
	}
	if !isAlnum(name[0]) {
		return false
	}
	for i := 1; i < len(name); i++ {
		if c := name[i]; !isAlnum(c) && c != '_' && c != '$' {
			return false
		}
	}
	return true
}
