package asm

import (
	"encoding/binary"
	"strings"
)

// assembler holds all mutable state for one assembly run: symbol table,
// data buffer, code segment list, and address counters threaded explicitly
// through pass 1 and pass 2 rather than held in package-level globals.
type assembler struct {
	syms *symbolTable
	data []byte
	code []codeEntry

	dataAddr uint32
	codeAddr uint32
	entry    uint32
	sawCode  bool
}

func newAssembler() *assembler {
	return &assembler{syms: newSymbolTable(), dataAddr: 4}
}

// branchOpcodes dispatches reg-label shaped opcodes to branchLikeRecord;
// everything else with that shape (lda/str/ldr/stb/ldb/allc) goes to
// memLikeRecord.
var branchOpcodes = map[Opcode]bool{Bnz: true, Bgt: true, Blt: true, Brz: true}

// splitLabel classifies a logical line's leading token: a directive token
// (starts with '.') or a known opcode mnemonic is never a label, so
// anything else in that position must be a label per the grammar
// `line := [label] (directive | instruction | ε)`.
func splitLabel(tokens []string) (label string, headIdx int) {
	first := tokens[0]
	if strings.HasPrefix(first, ".") {
		return "", 0
	}
	if _, ok := lookupOpcode(first); ok {
		return "", 0
	}
	return first, 1
}

// runPass1 walks the normalized source once, determining whether the file
// opens with a data segment via the peek rule, populating the symbol
// table, and producing the data segment bytes plus a provisional code
// segment of resolved and deferred entries.
func runPass1(lines []sourceLine) (*assembler, error) {
	a := newAssembler()
	if len(lines) == 0 {
		return nil, newError(KindMissingMain, 0, "No code found in file")
	}

	label, headIdx := splitLabel(lines[0].tokens)
	var headTok string
	if headIdx < len(lines[0].tokens) {
		headTok = lines[0].tokens[headIdx]
	}
	_, peekIsOpcode := lookupOpcode(headTok)

	inCode := peekIsOpcode
	if inCode {
		a.entry = 4
		a.codeAddr = 4
	}
	_ = label // the peek line is reprocessed uniformly by the loop below

	for i := 0; i < len(lines); i++ {
		ln := lines[i]
		label, headIdx := splitLabel(ln.tokens)
		var head string
		if headIdx < len(ln.tokens) {
			head = ln.tokens[headIdx]
		}

		if head == "" {
			// bare label line: binds to the current address, no bytes emitted.
			if label == "" {
				continue
			}
			addr := a.dataAddr
			if inCode {
				addr = a.codeAddr
			}
			if !isValidLabel(label) {
				return nil, newError(KindInvalidLabel, ln.num, "Invalid label name")
			}
			if err := a.syms.insert(label, addr, ln.num); err != nil {
				return nil, err
			}
			continue
		}

		if !inCode {
			if strings.HasPrefix(head, ".") {
				if err := a.processDataDirective(ln, label, head, ln.tokens[headIdx+1:]); err != nil {
					return nil, err
				}
				continue
			}

			op, isOpcode := lookupOpcode(head)
			if !isOpcode {
				return nil, newError(KindInvalidDirective, ln.num, "Unknown directive")
			}
			operands := ln.tokens[headIdx+1:]
			if op != Jmp || len(operands) != 1 {
				return nil, newError(KindMissingJmpMain, ln.num, "Expected 'jmp' to start code segment")
			}
			a.entry = a.dataAddr
			a.codeAddr = a.entry
			inCode = true
			// fall through: this line is the first code-mode instruction.
		}

		if strings.HasPrefix(head, ".") {
			return nil, newError(KindInvalidDirective, ln.num, "Directive not allowed in code segment")
		}
		op, isOpcode := lookupOpcode(head)
		if !isOpcode {
			return nil, newError(KindInvalidOpcode, ln.num, "Unknown opcode")
		}
		if label != "" {
			if !isValidLabel(label) {
				return nil, newError(KindInvalidLabel, ln.num, "Invalid label name")
			}
			if err := a.syms.insert(label, a.codeAddr, ln.num); err != nil {
				return nil, err
			}
		}
		entry, err := a.encodeCodeLine(ln, op, ln.tokens[headIdx+1:])
		if err != nil {
			return nil, err
		}
		a.code = append(a.code, entry)
		a.codeAddr += instructionSize
		a.sawCode = true
	}

	if !a.sawCode {
		return nil, newError(KindMissingMain, 0, "No code found in file")
	}
	return a, nil
}

// processDataDirective handles .int/.byt/.bts/.str, binding a leading label
// to the directive's starting address before appending bytes.
func (a *assembler) processDataDirective(ln sourceLine, label, directive string, rest []string) error {
	if label != "" {
		if !isValidLabel(label) {
			return newError(KindInvalidLabel, ln.num, "Invalid label name")
		}
		if err := a.syms.insert(label, a.dataAddr, ln.num); err != nil {
			return err
		}
	}

	switch strings.ToLower(directive) {
	case ".int":
		var v int64
		if len(rest) > 0 {
			tok := strings.Join(rest, " ")
			n, err := parseImmediate(tok, ln.num)
			if err != nil {
				return err
			}
			v = n
		}
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(v))
		a.data = append(a.data, b[:]...)
		a.dataAddr += 4
		return nil

	case ".byt":
		var v byte
		if len(rest) > 0 {
			tok := strings.Join(rest, " ")
			n, err := parseGenericImmediate(tok, ln.num)
			if err != nil {
				return err
			}
			if n < 0 || n > 255 {
				return newError(KindInvalidDirective, ln.num, "Byte value out of range")
			}
			v = byte(n)
		}
		a.data = append(a.data, v)
		a.dataAddr++
		return nil

	case ".bts":
		if len(rest) == 0 {
			return newError(KindInvalidDirective, ln.num, "'.bts' requires a size operand")
		}
		tok := strings.Join(rest, " ")
		n, err := parseImmediate(tok, ln.num)
		if err != nil {
			return err
		}
		if n < 0 || n > 255 {
			return newError(KindInvalidDirective, ln.num, "'.bts' size out of range")
		}
		a.data = append(a.data, make([]byte, n)...)
		a.dataAddr += uint32(n)
		return nil

	case ".str":
		if len(rest) == 0 {
			return newError(KindInvalidDirective, ln.num, "'.str' requires an operand")
		}
		tok := strings.Join(rest, " ")
		if strings.HasPrefix(tok, "\"") {
			bytes, err := parseString(tok, ln.num)
			if err != nil {
				return err
			}
			a.data = append(a.data, bytes...)
			a.dataAddr += uint32(len(bytes))
			return nil
		}
		// reserve form: "#n" zero-filled bytes, corrected n+2 sizing.
		n, err := parseImmediate(tok, ln.num)
		if err != nil {
			return err
		}
		if n < 0 || n > 255 {
			return newError(KindInvalidDirective, ln.num, "'.str' reserve size out of range")
		}
		out := make([]byte, 0, n+2)
		out = append(out, byte(n))
		out = append(out, make([]byte, n)...)
		out = append(out, 0)
		a.data = append(a.data, out...)
		a.dataAddr += uint32(len(out))
		return nil

	default:
		return newError(KindInvalidDirective, ln.num, "Unknown directive")
	}
}

// encodeCodeLine dispatches an instruction line to the operand shape its
// opcode requires, returning a resolved or deferred entry.
func (a *assembler) encodeCodeLine(ln sourceLine, op Opcode, rest []string) (codeEntry, error) {
	operandText := strings.Join(rest, " ")
	operands := splitOperands(operandText)

	want := 0
	switch op.shape() {
	case shapeLabel, shapeReg, shapeImm:
		want = 1
	case shapeRegLabel, shapeRegReg, shapeRegImm:
		want = 2
	case shapeRegRegReg, shapeRegRegImm:
		want = 3
	case shapeNone:
		want = 0
	}
	if len(operands) != want {
		return codeEntry{}, newError(KindInvalidOperands, ln.num, "Wrong number of operands for '%s'", op)
	}

	switch op.shape() {
	case shapeLabel:
		return deferredEntry(jmpLikeRecord{op: op, label: operands[0], sourceLine: ln.num}), nil

	case shapeReg:
		r, err := parseRegister(operands[0], ln.num)
		if err != nil {
			return codeEntry{}, err
		}
		return resolvedEntry(encodeInstruction(op, byte(r), 0, 0, 0)), nil

	case shapeRegLabel:
		r, err := parseRegister(operands[0], ln.num)
		if err != nil {
			return codeEntry{}, err
		}
		if branchOpcodes[op] {
			return deferredEntry(branchLikeRecord{op: op, label: operands[1], reg: byte(r), sourceLine: ln.num}), nil
		}
		return deferredEntry(memLikeRecord{op: op, label: operands[1], reg: byte(r), sourceLine: ln.num}), nil

	case shapeRegReg:
		r1, err := parseRegister(operands[0], ln.num)
		if err != nil {
			return codeEntry{}, err
		}
		r2, err := parseRegister(operands[1], ln.num)
		if err != nil {
			return codeEntry{}, err
		}
		return resolvedEntry(encodeInstruction(op, byte(r1), byte(r2), 0, 0)), nil

	case shapeRegImm:
		r, err := parseRegister(operands[0], ln.num)
		if err != nil {
			return codeEntry{}, err
		}
		imm, err := parseGenericImmediate(operands[1], ln.num)
		if err != nil {
			return codeEntry{}, err
		}
		return resolvedEntry(encodeInstruction(op, byte(r), 0, 0, uint32(imm))), nil

	case shapeRegRegReg:
		r1, err := parseRegister(operands[0], ln.num)
		if err != nil {
			return codeEntry{}, err
		}
		r2, err := parseRegister(operands[1], ln.num)
		if err != nil {
			return codeEntry{}, err
		}
		r3, err := parseRegister(operands[2], ln.num)
		if err != nil {
			return codeEntry{}, err
		}
		return resolvedEntry(encodeInstruction(op, byte(r1), byte(r2), byte(r3), 0)), nil

	case shapeRegRegImm:
		r1, err := parseRegister(operands[0], ln.num)
		if err != nil {
			return codeEntry{}, err
		}
		r2, err := parseRegister(operands[1], ln.num)
		if err != nil {
			return codeEntry{}, err
		}
		imm, err := parseGenericImmediate(operands[2], ln.num)
		if err != nil {
			return codeEntry{}, err
		}
		return resolvedEntry(encodeInstruction(op, byte(r1), byte(r2), 0, uint32(imm))), nil

	case shapeImm:
		imm, err := parseGenericImmediate(operands[0], ln.num)
		if err != nil {
			return codeEntry{}, err
		}
		return resolvedEntry(encodeInstruction(op, 0, 0, 0, uint32(imm))), nil

	default: // shapeNone (ret)
		return resolvedEntry(encodeInstruction(op, 0, 0, 0, 0)), nil
	}
}
