package asm

import "encoding/binary"

// runPass2 walks the provisional code segment built by pass 1, resolving
// deferred records against the now-complete symbol table, and assembles
// the final image: header ‖ data ‖ code.
func runPass2(a *assembler) ([]byte, error) {
	code := make([]byte, 0, len(a.code)*instructionSize)
	for _, entry := range a.code {
		if entry.deferred != nil {
			encoded, err := entry.deferred.resolve(a.syms)
			if err != nil {
				return nil, err
			}
			code = append(code, encoded[:]...)
			continue
		}
		code = append(code, entry.encoded[:]...)
	}

	out := make([]byte, 0, 4+len(a.data)+len(code))
	var header [4]byte
	binary.LittleEndian.PutUint32(header[:], a.entry)
	out = append(out, header[:]...)
	out = append(out, a.data...)
	out = append(out, code...)
	return out, nil
}
