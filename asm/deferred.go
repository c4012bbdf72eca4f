package asm

// deferredRecord is the tagged-variant family:
// a placeholder for an instruction whose 8-byte encoding depends on a
// label's address, resolved during pass 2. Fully-resolved instructions
// never need a deferredRecord; they are appended to the code segment as
// [8]byte directly.
type deferredRecord interface {
	// resolve looks up the record's label and returns the final 8-byte
	// encoding, or an error if the label is undefined.
	resolve(syms *symbolTable) ([instructionSize]byte, error)
	line() int
}

// jmpLikeRecord covers `jmp <label>` and `call <label>`: the label address
// goes entirely into the immediate field, all operand bytes are zero.
type jmpLikeRecord struct {
	op        Opcode
	label     string
	sourceLine int
}

func (r jmpLikeRecord) resolve(syms *symbolTable) ([instructionSize]byte, error) {
	addr, ok := syms.lookup(r.label)
	if !ok {
		return [instructionSize]byte{}, newError(KindUndefinedLabel, r.sourceLine, "Second pass: Undefined label")
	}
	return encodeInstruction(r.op, 0, 0, 0, addr), nil
}

func (r jmpLikeRecord) line() int { return r.sourceLine }

// branchLikeRecord covers `bnz`/`bgt`/`blt`/`brz`, `reg, label`: the
// register goes in operand1, the label address in the immediate field.
type branchLikeRecord struct {
	op         Opcode
	label      string
	reg        byte
	sourceLine int
}

func (r branchLikeRecord) resolve(syms *symbolTable) ([instructionSize]byte, error) {
	addr, ok := syms.lookup(r.label)
	if !ok {
		return [instructionSize]byte{}, newError(KindUndefinedLabel, r.sourceLine, "Second pass: Undefined label")
	}
	return encodeInstruction(r.op, r.reg, 0, 0, addr), nil
}

func (r branchLikeRecord) line() int { return r.sourceLine }

// memLikeRecord covers lda/str/ldr/stb/ldb/allc, `reg, label`: identical
// encoding shape to branchLikeRecord but kept as a distinct type — the
// shapes are named separately because they read from/write to memory
// rather than branch control flow.
type memLikeRecord struct {
	op         Opcode
	label      string
	reg        byte
	sourceLine int
}

func (r memLikeRecord) resolve(syms *symbolTable) ([instructionSize]byte, error) {
	addr, ok := syms.lookup(r.label)
	if !ok {
		return [instructionSize]byte{}, newError(KindUndefinedLabel, r.sourceLine, "Second pass: Undefined label")
	}
	return encodeInstruction(r.op, r.reg, 0, 0, addr), nil
}

func (r memLikeRecord) line() int { return r.sourceLine }

// codeEntry is one slot in the provisional code segment produced by pass 1:
// either a fully-resolved 8-byte instruction or a deferred record awaiting
// pass 2.
type codeEntry struct {
	encoded  [instructionSize]byte
	deferred deferredRecord
}

func resolvedEntry(b [instructionSize]byte) codeEntry {
	return codeEntry{encoded: b}
}

func deferredEntry(d deferredRecord) codeEntry {
	return codeEntry{deferred: d}
}
