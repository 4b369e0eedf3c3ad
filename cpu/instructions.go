package cpu

// Format is the bit layout of an encoded instruction.
type Format int

const (
	// FormatR is the register layout: op|rs|rt|rd|shamt|funct.
	FormatR Format = iota
	// FormatI is the immediate layout: op|rs|rt|imm.
	FormatI
	// FormatJ is the jump layout: op|target.
	FormatJ
)

func (f Format) String() string {
	switch f {
	case FormatR:
		return "R"
	case FormatI:
		return "I"
	case FormatJ:
		return "J"
	}
	return "?"
}

// Syntax identifies the operand layout an instruction is written with.
type Syntax int

const (
	// SyntaxRdRsRt is "op $rd, $rs, $rt".
	SyntaxRdRsRt Syntax = iota
	// SyntaxRdRtShamt is "op $rd, $rt, shamt".
	SyntaxRdRtShamt
	// SyntaxRs is "op $rs".
	SyntaxRs
	// SyntaxBranch is "op $rs, $rt, target".
	SyntaxBranch
	// SyntaxRtImm is "op $rt, imm".
	SyntaxRtImm
	// SyntaxRtOffsetBase is "op $rt, imm($rs)".
	SyntaxRtOffsetBase
	// SyntaxRtRsImm is "op $rt, $rs, imm".
	SyntaxRtRsImm
	// SyntaxTarget is "op target".
	SyntaxTarget
)

// Operands returns the number of comma separated operands the syntax takes.
func (s Syntax) Operands() int {
	switch s {
	case SyntaxRdRsRt, SyntaxRdRtShamt, SyntaxBranch, SyntaxRtRsImm:
		return 3
	case SyntaxRtImm, SyntaxRtOffsetBase:
		return 2
	}
	return 1
}

// Descriptor is the static description of one mnemonic.
type Descriptor struct {
	Name   string
	Opcode uint8
	Format Format
	Funct  uint8
	Syntax Syntax
}

// Opcodes.
const (
	OPSPECIAL = 0x00 // all R-format instructions
	OPJ       = 0x02
	OPJAL     = 0x03
	OPBEQ     = 0x04
	OPBNE     = 0x05
	OPADDIU   = 0x09
	OPSLTIU   = 0x0B
	OPANDI    = 0x0C
	OPORI     = 0x0D
	OPLUI     = 0x0F
	OPLW      = 0x23
	OPSW      = 0x2B
)

// Function codes for OPSPECIAL.
const (
	FNSLL  = 0x00
	FNSRL  = 0x02
	FNJR   = 0x08
	FNADD  = 0x20
	FNADDU = 0x21
	FNSUB  = 0x22
	FNSUBU = 0x23
	FNAND  = 0x24
	FNOR   = 0x25
	FNNOR  = 0x27
	FNSLTU = 0x2B
)

// Instructions is the complete table of supported mnemonics.
var Instructions = [...]Descriptor{
	{"add", OPSPECIAL, FormatR, FNADD, SyntaxRdRsRt},
	{"sub", OPSPECIAL, FormatR, FNSUB, SyntaxRdRsRt},
	{"addiu", OPADDIU, FormatI, 0, SyntaxRtRsImm},
	{"addu", OPSPECIAL, FormatR, FNADDU, SyntaxRdRsRt},
	{"and", OPSPECIAL, FormatR, FNAND, SyntaxRdRsRt},
	{"andi", OPANDI, FormatI, 0, SyntaxRtRsImm},
	{"beq", OPBEQ, FormatI, 0, SyntaxBranch},
	{"bne", OPBNE, FormatI, 0, SyntaxBranch},
	{"j", OPJ, FormatJ, 0, SyntaxTarget},
	{"jal", OPJAL, FormatJ, 0, SyntaxTarget},
	{"jr", OPSPECIAL, FormatR, FNJR, SyntaxRs},
	{"lui", OPLUI, FormatI, 0, SyntaxRtImm},
	{"lw", OPLW, FormatI, 0, SyntaxRtOffsetBase},
	{"nor", OPSPECIAL, FormatR, FNNOR, SyntaxRdRsRt},
	{"or", OPSPECIAL, FormatR, FNOR, SyntaxRdRsRt},
	{"ori", OPORI, FormatI, 0, SyntaxRtRsImm},
	{"sltiu", OPSLTIU, FormatI, 0, SyntaxRtRsImm},
	{"sltu", OPSPECIAL, FormatR, FNSLTU, SyntaxRdRsRt},
	{"sll", OPSPECIAL, FormatR, FNSLL, SyntaxRdRtShamt},
	{"srl", OPSPECIAL, FormatR, FNSRL, SyntaxRdRtShamt},
	{"sw", OPSW, FormatI, 0, SyntaxRtOffsetBase},
	{"subu", OPSPECIAL, FormatR, FNSUBU, SyntaxRdRsRt},
}

var (
	byName   = make(map[string]*Descriptor, len(Instructions))
	byOpcode = make(map[uint16]*Descriptor, len(Instructions))
)

func init() {
	for i := range Instructions {
		d := &Instructions[i]
		byName[d.Name] = d
		byOpcode[opKey(d.Opcode, d.Funct, d.Format)] = d
	}
}

func opKey(opcode, funct uint8, f Format) uint16 {
	if f != FormatR {
		funct = 0
	}
	return uint16(opcode)<<8 | uint16(funct)
}

// Lookup returns the descriptor for a lower-case mnemonic.
func Lookup(name string) (*Descriptor, bool) {
	d, ok := byName[name]
	return d, ok
}

// LookupWord returns the descriptor matching an encoded word's opcode and,
// for R-format words, its function code.
func LookupWord(w Word) (*Descriptor, bool) {
	op := w.Opcode()
	if op == OPSPECIAL {
		d, ok := byOpcode[opKey(op, w.Funct(), FormatR)]
		return d, ok
	}
	d, ok := byOpcode[opKey(op, 0, FormatI)]
	return d, ok
}
