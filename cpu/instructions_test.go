package cpu_test

import (
	"testing"

	"github.com/Urethramancer/mips/cpu"
)

func TestInstructionTable(t *testing.T) {
	if len(cpu.Instructions) != 22 {
		t.Fatalf("table has %d entries, want 22", len(cpu.Instructions))
	}
	for i := range cpu.Instructions {
		d := &cpu.Instructions[i]
		got, ok := cpu.Lookup(d.Name)
		if !ok || got != d {
			t.Errorf("Lookup(%q) = %v, %v", d.Name, got, ok)
		}

		var w cpu.Word
		switch d.Format {
		case cpu.FormatR:
			w = cpu.EncodeR(d.Opcode, 1, 2, 3, 4, d.Funct)
		case cpu.FormatI:
			w = cpu.EncodeI(d.Opcode, 1, 2, 3)
		case cpu.FormatJ:
			w = cpu.EncodeJ(d.Opcode, 5)
		}
		back, ok := cpu.LookupWord(w)
		if !ok || back != d {
			t.Errorf("LookupWord(%s) = %v, %v", w, back, ok)
		}
	}
	if _, ok := cpu.Lookup("la"); ok {
		t.Error("la is a pseudo-instruction and must not be in the table")
	}
}

func TestFieldRoundTrip(t *testing.T) {
	r := cpu.EncodeR(cpu.OPSPECIAL, 17, 18, 19, 31, cpu.FNNOR)
	if r.Opcode() != 0 || r.Rs() != 17 || r.Rt() != 18 || r.Rd() != 19 || r.Shamt() != 31 || r.Funct() != cpu.FNNOR {
		t.Errorf("R fields: op=%d rs=%d rt=%d rd=%d shamt=%d funct=%d",
			r.Opcode(), r.Rs(), r.Rt(), r.Rd(), r.Shamt(), r.Funct())
	}

	i := cpu.EncodeI(cpu.OPSW, 29, 9, 0xFFF8)
	if i.Opcode() != cpu.OPSW || i.Rs() != 29 || i.Rt() != 9 || i.Imm() != 0xFFF8 || i.SignedImm() != -8 {
		t.Errorf("I fields: op=%d rs=%d rt=%d imm=%04x", i.Opcode(), i.Rs(), i.Rt(), i.Imm())
	}

	j := cpu.EncodeJ(cpu.OPJAL, 0x3FFFFFF)
	if j.Opcode() != cpu.OPJAL || j.Target() != 0x3FFFFFF {
		t.Errorf("J fields: op=%d target=%x", j.Opcode(), j.Target())
	}
}

func TestBits(t *testing.T) {
	tests := []struct {
		v     uint32
		width int
		want  string
	}{
		{5, 8, "00000101"},
		{0, 4, "0000"},
		{uint32(0xFFFFFFFD), 16, "1111111111111101"},
		{0x100007, 26, "00000100000000000000000111"},
		{0x80000001, 32, "10000000000000000000000000000001"},
	}
	for _, tt := range tests {
		if got := cpu.Bits(tt.v, tt.width); got != tt.want {
			t.Errorf("Bits(%x, %d) = %s, want %s", tt.v, tt.width, got, tt.want)
		}
		back, err := cpu.ParseBits(tt.want)
		if err != nil {
			t.Errorf("ParseBits(%s): %v", tt.want, err)
			continue
		}
		if mask := uint32(1<<uint(tt.width) - 1); tt.width < 32 && back != tt.v&mask {
			t.Errorf("ParseBits(%s) = %x", tt.want, back)
		}
	}

	for _, bad := range []string{"", "012", "1111111111111111111111111111111111"} {
		if _, err := cpu.ParseBits(bad); err == nil {
			t.Errorf("ParseBits(%q) should fail", bad)
		}
	}
}

func TestRanges(t *testing.T) {
	if !cpu.FitsSigned(-32768, 16) || cpu.FitsSigned(32768, 16) {
		t.Error("FitsSigned 16")
	}
	if !cpu.FitsUnsigned(65535, 16) || cpu.FitsUnsigned(-1, 16) {
		t.Error("FitsUnsigned 16")
	}
	if !cpu.FitsEither(65535, 16) || !cpu.FitsEither(-1, 16) || cpu.FitsEither(65536, 16) {
		t.Error("FitsEither 16")
	}
}

func TestFlowArithmetic(t *testing.T) {
	if d := cpu.BranchDisplacement(cpu.OPBEQ, 0x00400010, 0x00400008); d != -3 {
		t.Errorf("beq displacement = %d, want -3", d)
	}
	if d := cpu.BranchDisplacement(cpu.OPBNE, 0x00400010, 0x00400008); d != -2 {
		t.Errorf("bne displacement = %d, want -2", d)
	}
	beq := cpu.EncodeI(cpu.OPBEQ, 0, 0, uint16(0xFFFD))
	if got := cpu.BranchTarget(beq, 0x00400010); got != 0x00400008 {
		t.Errorf("beq target = %08x", got)
	}
	bne := cpu.EncodeI(cpu.OPBNE, 0, 0, uint16(0xFFFE))
	if got := cpu.BranchTarget(bne, 0x00400010); got != 0x00400008 {
		t.Errorf("bne target = %08x", got)
	}
	if f := cpu.JumpField(0x00400020); f != 0x100007 {
		t.Errorf("jump field = %x, want 100007", f)
	}
	if got := cpu.JumpTarget(cpu.EncodeJ(cpu.OPJ, 0x100007)); got != 0x00400020 {
		t.Errorf("jump target = %08x", got)
	}
}

func TestRegisterNames(t *testing.T) {
	tests := map[string]uint8{"zero": 0, "at": 1, "t0": 8, "s8": 30, "fp": 30, "sp": 29, "ra": 31}
	for name, want := range tests {
		if got, ok := cpu.RegisterNumber(name); !ok || got != want {
			t.Errorf("RegisterNumber(%s) = %d, %v", name, got, ok)
		}
	}
	if _, ok := cpu.RegisterNumber("t10"); ok {
		t.Error("t10 is not a register")
	}
}
