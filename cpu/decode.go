package cpu

import (
	"fmt"
)

// DecodedInstruction holds the fields of one fetched word.
type DecodedInstruction struct {
	Handler func(*CPU, *DecodedInstruction) error
	Desc    *Descriptor
	Word    Word
	Rs      uint8
	Rt      uint8
	Rd      uint8
	Shamt   uint8
	Imm     uint16
}

var handlers = map[string]func(*CPU, *DecodedInstruction) error{
	"add":   (*CPU).opADDU,
	"addu":  (*CPU).opADDU,
	"sub":   (*CPU).opSUBU,
	"subu":  (*CPU).opSUBU,
	"and":   (*CPU).opAND,
	"or":    (*CPU).opOR,
	"nor":   (*CPU).opNOR,
	"sltu":  (*CPU).opSLTU,
	"sll":   (*CPU).opSLL,
	"srl":   (*CPU).opSRL,
	"jr":    (*CPU).opJR,
	"addiu": (*CPU).opADDIU,
	"andi":  (*CPU).opANDI,
	"ori":   (*CPU).opORI,
	"sltiu": (*CPU).opSLTIU,
	"lui":   (*CPU).opLUI,
	"lw":    (*CPU).opLW,
	"sw":    (*CPU).opSW,
	"beq":   (*CPU).opBranch,
	"bne":   (*CPU).opBranch,
	"j":     (*CPU).opJump,
	"jal":   (*CPU).opJump,
}

// Decode splits a word into its fields and picks the handler for it.
func Decode(w Word) (*DecodedInstruction, error) {
	d, ok := LookupWord(w)
	if !ok {
		return nil, fmt.Errorf("%08x: %w", uint32(w), ErrUnknownOpcode)
	}
	return &DecodedInstruction{
		Handler: handlers[d.Name],
		Desc:    d,
		Word:    w,
		Rs:      w.Rs(),
		Rt:      w.Rt(),
		Rd:      w.Rd(),
		Shamt:   w.Shamt(),
		Imm:     w.Imm(),
	}, nil
}
