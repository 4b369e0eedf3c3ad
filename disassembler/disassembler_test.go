package disassembler_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/Urethramancer/mips/assembler"
	"github.com/Urethramancer/mips/cpu"
	"github.com/Urethramancer/mips/disassembler"
)

func TestDecodeSyntaxes(t *testing.T) {
	tests := []struct {
		word     cpu.Word
		pc       uint32
		mnemonic string
		operands string
	}{
		{cpu.EncodeR(cpu.OPSPECIAL, 2, 3, 1, 0, cpu.FNADD), cpu.TextStart, "add", "$1, $2, $3"},
		{cpu.EncodeR(cpu.OPSPECIAL, 0, 3, 2, 4, cpu.FNSLL), cpu.TextStart, "sll", "$2, $3, 4"},
		{cpu.EncodeR(cpu.OPSPECIAL, 31, 0, 0, 0, cpu.FNJR), cpu.TextStart, "jr", "$31"},
		{cpu.EncodeI(cpu.OPADDIU, 3, 2, 0xFFFF), cpu.TextStart, "addiu", "$2, $3, -1"},
		{cpu.EncodeI(cpu.OPORI, 4, 4, 0xF0F0), cpu.TextStart, "ori", "$4, $4, 0xf0f0"},
		{cpu.EncodeI(cpu.OPLUI, 0, 8, 0x1001), cpu.TextStart, "lui", "$8, 0x1001"},
		{cpu.EncodeI(cpu.OPSW, 29, 9, 0xFFF8), cpu.TextStart, "sw", "$9, -8($29)"},
		{cpu.EncodeI(cpu.OPBEQ, 8, 9, 0xFFFD), 0x00400010, "beq", "$8, $9, 0x00400008"},
		{cpu.EncodeI(cpu.OPBNE, 8, 9, 0xFFFE), 0x00400010, "bne", "$8, $9, 0x00400008"},
		{cpu.EncodeJ(cpu.OPJ, 0x100007), cpu.TextStart, "j", "0x00400020"},
	}
	for _, tt := range tests {
		mn, ops, err := disassembler.Decode(tt.word, tt.pc)
		if err != nil {
			t.Errorf("%s: %v", tt.mnemonic, err)
			continue
		}
		if mn != tt.mnemonic || ops != tt.operands {
			t.Errorf("got %s %s, want %s %s", mn, ops, tt.mnemonic, tt.operands)
		}
	}
}

func TestDecodeUnknown(t *testing.T) {
	if _, _, err := disassembler.Decode(cpu.Word(0xFC000000), cpu.TextStart); err == nil {
		t.Error("expected an error for opcode 0x3f")
	}
}

const program = `.data
n:	.word 5
out:	.word 0
.text
main:
	la $8, n
	lw $9, 0($8)
	jal sum
	sw $10, 4($8)
	j done
sum:
	addu $10, $0, $0
loop:
	addu $10, $10, $9
	addiu $9, $9, -1
	bne $9, $0, loop
	beq $0, $0, back
back:
	jr $31
done:
`

// Reassembling a disassembly must give back the identical object.
func TestRoundTrip(t *testing.T) {
	obj, err := assembler.New().Assemble(program)
	if err != nil {
		t.Fatalf("assemble failed: %v", err)
	}
	text, err := disassembler.Disassemble(obj)
	if err != nil {
		t.Fatalf("disassemble failed: %v", err)
	}
	again, err := assembler.New().Assemble(text)
	if err != nil {
		t.Fatalf("reassemble failed: %v\n%s", err, text)
	}
	if !reflect.DeepEqual(obj, again) {
		t.Errorf("round trip mismatch\n%s\ngot  %v\nwant %v", text,
			cpu.WordsToBits(again.Text), cpu.WordsToBits(obj.Text))
	}

	for _, want := range []string{"sub_00400014:", "loc_00400018:", "loc_00400028:", "loc_0040002c:", "\tjal sub_00400014"} {
		if !strings.Contains(text, want) {
			t.Errorf("missing %q in\n%s", want, text)
		}
	}
}
