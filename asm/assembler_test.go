package asm

import (
	"encoding/binary"
	"testing"
)

func assembleLines(t *testing.T, src string) []byte {
	t.Helper()
	lines := splitSourceForTest(src)
	out, err := AssembleSource(lines)
	assertNoError(t, err)
	return out
}

// splitSourceForTest mirrors how AssembleFile splits a file's contents on
// newlines before handing them to the lexer.
func splitSourceForTest(src string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			lines = append(lines, src[start:i])
			start = i + 1
		}
	}
	lines = append(lines, src[start:])
	return lines
}

func TestDegenerateHello(t *testing.T) {
	out := assembleLines(t, "trp #0\n")
	assertEqual(t, len(out), 12)
	assertBytesEqual(t, out[:4], []byte{0x04, 0, 0, 0})
	assertBytesEqual(t, out[4:], []byte{0x1F, 0, 0, 0, 0, 0, 0, 0})
}

func TestDataThenCode(t *testing.T) {
	out := assembleLines(t, "V .INT #42\njmp MAIN\nMAIN trp #0\n")
	assertEqual(t, len(out), 4+4+16)
	assertBytesEqual(t, out[:4], []byte{0x08, 0, 0, 0})
	assertBytesEqual(t, out[4:8], []byte{0x2A, 0, 0, 0})
	assertBytesEqual(t, out[8:16], []byte{0x01, 0, 0, 0, 0x10, 0, 0, 0})
	assertBytesEqual(t, out[16:24], []byte{0x1F, 0, 0, 0, 0, 0, 0, 0})
}

func TestStringDirective(t *testing.T) {
	out := assembleLines(t, "S .STR \"Hi\"\njmp M\nM trp #0\n")
	assertBytesEqual(t, out[:4], []byte{0x08, 0, 0, 0})
	assertBytesEqual(t, out[4:8], []byte{0x02, 'H', 'i', 0})
}

func TestByteDirective(t *testing.T) {
	out := assembleLines(t, "B .BYT #65\njmp M\nM trp #0\n")
	// dataAddr starts at 4, .byt advances it by 1: entry/jmp at 5, M at 13.
	assertEqual(t, len(out), 4+1+8+8)
	assertBytesEqual(t, out[:4], []byte{5, 0, 0, 0})
	assertBytesEqual(t, out[4:5], []byte{65})
	assertBytesEqual(t, out[5:13], []byte{0x01, 0, 0, 0, 13, 0, 0, 0})
	assertBytesEqual(t, out[13:21], []byte{0x1F, 0, 0, 0, 0, 0, 0, 0})
}

func TestBytesDirective(t *testing.T) {
	out := assembleLines(t, "B .BTS #3\njmp M\nM trp #0\n")
	// .bts reserves 3 zero-filled bytes: entry/jmp at 7, M at 15.
	assertEqual(t, len(out), 4+3+8+8)
	assertBytesEqual(t, out[:4], []byte{7, 0, 0, 0})
	assertBytesEqual(t, out[4:7], []byte{0, 0, 0})
	assertBytesEqual(t, out[7:15], []byte{0x01, 0, 0, 0, 15, 0, 0, 0})
	assertBytesEqual(t, out[15:23], []byte{0x1F, 0, 0, 0, 0, 0, 0, 0})
}

func TestStringReserveForm(t *testing.T) {
	out := assembleLines(t, "B .STR #5\njmp M\nM trp #0\n")
	// corrected n+2 sizing: [len byte, n zero bytes, terminator] = 7 bytes
	// for n=5, not the legacy tool's undercounted n.
	assertEqual(t, len(out), 4+7+8+8)
	assertBytesEqual(t, out[:4], []byte{11, 0, 0, 0})
	assertBytesEqual(t, out[4:11], []byte{5, 0, 0, 0, 0, 0, 0})
	assertBytesEqual(t, out[11:19], []byte{0x01, 0, 0, 0, 19, 0, 0, 0})
	assertBytesEqual(t, out[19:27], []byte{0x1F, 0, 0, 0, 0, 0, 0, 0})
}

func TestDuplicateLabel(t *testing.T) {
	_, err := AssembleSource(splitSourceForTest("X .INT #1\nX .INT #2\njmp M\nM trp #0\n"))
	assertError(t, err)
	ae := err.(*Error)
	assertEqual(t, ae.Kind, KindDuplicateLabel)
	assertEqual(t, ae.Line, 2)
	assertEqual(t, ae.ExitCode(), 2)
}

func TestForwardBranch(t *testing.T) {
	out := assembleLines(t, "jmp MAIN\nMAIN bnz r3, END\nEND trp #0\n")
	// entry=4 (pure code, rule 1): jmp MAIN at 4, MAIN's bnz at 12, END's trp at 20.
	bnz := out[12:20]
	assertEqual(t, Opcode(bnz[0]), Bnz)
	assertEqual(t, bnz[1], byte(3))
	assertEqual(t, binary.LittleEndian.Uint32(bnz[4:]), uint32(20))
}

func TestMissingMain(t *testing.T) {
	_, err := AssembleSource(splitSourceForTest("X .INT #1\nY .INT #2\n"))
	assertError(t, err)
	assertEqual(t, err.(*Error).Kind, KindMissingMain)
}

func TestUndefinedLabel(t *testing.T) {
	_, err := AssembleSource(splitSourceForTest("jmp NOWHERE\n"))
	assertError(t, err)
	assertEqual(t, err.(*Error).Kind, KindUndefinedLabel)
}

func TestMissingJmpMain(t *testing.T) {
	_, err := AssembleSource(splitSourceForTest("V .INT #1\ntrp #0\n"))
	assertError(t, err)
	assertEqual(t, err.(*Error).Kind, KindMissingJmpMain)
}

func TestInvalidOperandsArity(t *testing.T) {
	_, err := AssembleSource(splitSourceForTest("mov r1\n"))
	assertError(t, err)
	assertEqual(t, err.(*Error).Kind, KindInvalidOperands)
}

func TestDeterministicOutput(t *testing.T) {
	src := "V .INT #42\njmp MAIN\nMAIN trp #0\n"
	a := assembleLines(t, src)
	b := assembleLines(t, src)
	assertBytesEqual(t, a, b)
}

func TestOutputPath(t *testing.T) {
	out, ok := OutputPath("prog.asm")
	assertEqual(t, ok, true)
	assertEqual(t, out, "prog.bin")

	_, ok = OutputPath("prog.txt")
	assertEqual(t, ok, false)
}
