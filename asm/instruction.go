package asm

import "encoding/binary"

// instructionSize is the fixed width of every VM4380 instruction: opcode
// byte, three operand bytes, and a 4-byte little-endian immediate/address.
const instructionSize = 8

// encodeInstruction packs one instruction into its 8-byte wire form:
// opcode byte, three operand bytes, little-endian 32-bit immediate.
func encodeInstruction(op Opcode, a, b, c byte, imm uint32) [instructionSize]byte {
	var out [instructionSize]byte
	out[0] = byte(op)
	out[1] = a
	out[2] = b
	out[3] = c
	binary.LittleEndian.PutUint32(out[4:], imm)
	return out
}
