package cpu

// Word is one encoded 32-bit instruction or data word.
type Word uint32

// Field widths and masks.
const (
	RegisterBits  = 5
	ShamtBits     = 5
	ImmediateBits = 16
	TargetBits    = 26

	regMask    = 1<<RegisterBits - 1
	immMask    = 1<<ImmediateBits - 1
	targetMask = 1<<TargetBits - 1
	sixMask    = 0x3F
)

// EncodeR packs an R-format word. Fields wider than their slot are masked.
func EncodeR(opcode, rs, rt, rd, shamt, funct uint8) Word {
	return Word(uint32(opcode&sixMask)<<26 |
		uint32(rs&regMask)<<21 |
		uint32(rt&regMask)<<16 |
		uint32(rd&regMask)<<11 |
		uint32(shamt&regMask)<<6 |
		uint32(funct&sixMask))
}

// EncodeI packs an I-format word.
func EncodeI(opcode, rs, rt uint8, imm uint16) Word {
	return Word(uint32(opcode&sixMask)<<26 |
		uint32(rs&regMask)<<21 |
		uint32(rt&regMask)<<16 |
		uint32(imm))
}

// EncodeJ packs a J-format word.
func EncodeJ(opcode uint8, target uint32) Word {
	return Word(uint32(opcode&sixMask)<<26 | target&targetMask)
}

// Opcode returns bits 31..26.
func (w Word) Opcode() uint8 { return uint8(w >> 26) }

// Rs returns bits 25..21.
func (w Word) Rs() uint8 { return uint8(w>>21) & regMask }

// Rt returns bits 20..16.
func (w Word) Rt() uint8 { return uint8(w>>16) & regMask }

// Rd returns bits 15..11.
func (w Word) Rd() uint8 { return uint8(w>>11) & regMask }

// Shamt returns bits 10..6.
func (w Word) Shamt() uint8 { return uint8(w>>6) & regMask }

// Funct returns bits 5..0.
func (w Word) Funct() uint8 { return uint8(w) & sixMask }

// Imm returns the low 16 bits.
func (w Word) Imm() uint16 { return uint16(w & immMask) }

// SignedImm returns the low 16 bits sign-extended.
func (w Word) SignedImm() int32 { return int32(int16(w.Imm())) }

// Target returns the low 26 bits.
func (w Word) Target() uint32 { return uint32(w) & targetMask }

// FitsSigned reports whether v is representable as a width-bit two's
// complement number.
func FitsSigned(v int64, width uint) bool {
	lim := int64(1) << (width - 1)
	return v >= -lim && v < lim
}

// FitsUnsigned reports whether v is representable in width bits.
func FitsUnsigned(v int64, width uint) bool {
	return v >= 0 && v < int64(1)<<width
}

// FitsEither reports whether v fits width bits as either a signed or an
// unsigned number, the range immediates are accepted in.
func FitsEither(v int64, width uint) bool {
	return FitsSigned(v, width) || FitsUnsigned(v, width)
}
