package assembler_test

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/Urethramancer/mips/assembler"
)

func expandProgram(t *testing.T, src string) *assembler.Assembler {
	t.Helper()
	asm := assembler.New()
	if _, err := asm.Assemble(src); err != nil {
		t.Fatalf("failed to assemble:\n%s\nerror: %v", src, err)
	}
	return asm
}

func TestLaSplit(t *testing.T) {
	// 0x4000 words put "far" at 0x10010000.
	far := ".data\n" + strings.Repeat("\t.word 0\n", 0x4000) + "far:\t.word 1\n"

	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			"UpperOnly",
			far + ".text\n\tla $t0, far\n",
			[]string{"lui $t0, 0x1001"},
		},
		{
			"LowerOnly",
			".text\n\tla $t1, 4\n",
			[]string{"ori $t1, $t1, 0x4"},
		},
		{
			"BothHalves",
			".data\na:\t.word 1\nb:\t.word 2\n.text\n\tla $8, b\n",
			[]string{"lui $8, 0x1000", "ori $8, $8, 0x4"},
		},
		{
			"BothZero",
			".text\n\tla $8, 0\n",
			[]string{"ori $8, $8, 0x0"},
		},
		{
			"DataBase",
			".data\na:\t.word 1\n.text\n\tla $a0, a\n",
			[]string{"lui $a0, 0x1000"},
		},
		{
			"LabelNamedLikeRegister",
			".data\nt0:\t.word 1\nt00:\t.word 2\n.text\n\tla $t0, t00\n",
			[]string{"lui $t0, 0x1000", "ori $t0, $t0, 0x4"},
		},
	}
	for _, tc := range tests {
		asm := expandProgram(t, tc.src)
		if got := asm.Program(); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("[%s] expanded to %q, want %q", tc.name, got, tc.want)
		}
		if asm.TextSize() != uint32(4*len(tc.want)) {
			t.Errorf("[%s] text size %d, want %d", tc.name, asm.TextSize(), 4*len(tc.want))
		}
	}
}

func TestLaShiftsLabels(t *testing.T) {
	src := `.data
a:	.word 1
b:	.word 2
.text
main:
	la $8, b
	beq $8, $9, main
end:
	jr $31
`
	asm := expandProgram(t, src)
	want := []string{
		"lui $8, 0x1000",
		"ori $8, $8, 0x4",
		"beq $8, $9, main",
		"jr $31",
	}
	if got := asm.Program(); !reflect.DeepEqual(got, want) {
		t.Errorf("expanded to %q, want %q", got, want)
	}
	if sym, _ := asm.Lookup("end"); sym.Address != 0x0040000c {
		t.Errorf("end = 0x%08x, want 0x0040000c", sym.Address)
	}
	if asm.TextSize() != 16 {
		t.Errorf("text size = %d, want 16", asm.TextSize())
	}
}

func TestLaOfMovingTextLabel(t *testing.T) {
	// end starts at 0x00400008, moves to 0x0040000c once the first la grows;
	// main sits on 0x00400000 and needs only a lui.
	src := `.text
main:
	la $4, end
	la $5, main
end:
	jr $31
`
	asm := expandProgram(t, src)
	want := []string{
		"lui $4, 0x40",
		"ori $4, $4, 0xc",
		"lui $5, 0x40",
		"jr $31",
	}
	if got := asm.Program(); !reflect.DeepEqual(got, want) {
		t.Errorf("expanded to %q, want %q", got, want)
	}
	if sym, _ := asm.Lookup("end"); sym.Address != 0x0040000c {
		t.Errorf("end = 0x%08x, want 0x0040000c", sym.Address)
	}
}

func TestHeaderMatchesBody(t *testing.T) {
	src := `.data
x:	.word 1, 2
.text
	la $8, x
	lw $9, 4($8)
	la $10, 0x10000000
	jr $31
`
	asm := expandProgram(t, src)
	obj, err := asm.Assemble(src)
	if err != nil {
		t.Fatalf("assemble failed: %v", err)
	}
	if obj.TextSize() != asm.TextSize() || obj.TextSize() != uint32(4*len(obj.Text)) {
		t.Errorf("text size %d vs %d words", asm.TextSize(), len(obj.Text))
	}
	if obj.DataSize() != asm.DataSize() || obj.DataSize() != 8 {
		t.Errorf("data size %d vs %d words", asm.DataSize(), len(obj.Data))
	}
	if len(obj.Text) != 4 {
		t.Errorf("text words = %d, want 4", len(obj.Text))
	}
}

func TestLaAcrossHalfBoundary(t *testing.T) {
	// As one word the la would leave L at 0x0040fffc, which needs two. Two
	// words push L to 0x00410000, which needs only a lui; the la keeps its
	// second word and the layout settles.
	src := ".text\n" + strings.Repeat("\tsll $0, $0, 0\n", 0x3FFE) + "\tla $1, L\nL:\n\tjr $31\n"
	asm := expandProgram(t, src)

	if sym, _ := asm.Lookup("L"); sym.Address != 0x00410000 {
		t.Errorf("L = 0x%08x, want 0x00410000", sym.Address)
	}
	if asm.TextSize() != 0x10004 {
		t.Errorf("text size = 0x%x, want 0x10004", asm.TextSize())
	}
	prog := asm.Program()
	if len(prog) != 0x3FFE+3 {
		t.Fatalf("expanded to %d instructions, want %d", len(prog), 0x3FFE+3)
	}
	want := []string{"lui $1, 0x41", "ori $1, $1, 0x0", "jr $31"}
	if got := prog[len(prog)-3:]; !reflect.DeepEqual(got, want) {
		t.Errorf("tail expanded to %q, want %q", got, want)
	}
}

func TestLaRunAcrossHalfBoundary(t *testing.T) {
	// Forty la instructions whose targets start below 0x00410000 and end
	// above it once every la has grown.
	const n = 40
	var sb strings.Builder
	sb.WriteString(".text\n")
	sb.WriteString(strings.Repeat("\tsll $0, $0, 0\n", 0x3FFE-n))
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, "\tla $1, L%d\nL%d:\n", i+1, i)
	}
	fmt.Fprintf(&sb, "L%d:\n\tjr $31\n", n)

	asm := expandProgram(t, sb.String())
	want := uint32((0x3FFE-n)*4 + n*8 + 4)
	if asm.TextSize() != want {
		t.Errorf("text size = 0x%x, want 0x%x", asm.TextSize(), want)
	}
	last, _ := asm.Lookup(fmt.Sprintf("L%d", n))
	if last.Address != 0x00400000+want-4 {
		t.Errorf("L%d = 0x%08x, want 0x%08x", n, last.Address, 0x00400000+want-4)
	}
	if got := len(asm.Program()); got != 0x3FFE-n+2*n+1 {
		t.Errorf("expanded to %d instructions, want %d", got, 0x3FFE-n+2*n+1)
	}
}
