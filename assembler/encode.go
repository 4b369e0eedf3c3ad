package assembler

import (
	"fmt"

	"github.com/golang/glog"

	"github.com/Urethramancer/mips/cpu"
)

// Encode packs parsed operands into a word for the instruction at pc.
func Encode(d *cpu.Descriptor, ops Operands, pc uint32) (cpu.Word, error) {
	switch d.Format {
	case cpu.FormatR:
		return cpu.EncodeR(d.Opcode, ops.Rs, ops.Rt, ops.Rd, ops.Shamt, d.Funct), nil

	case cpu.FormatI:
		imm := ops.Imm
		if d.Syntax == cpu.SyntaxBranch {
			if ops.Target%cpu.BytesPerWord != 0 {
				return 0, fmt.Errorf("%w: branch target 0x%08x is not word aligned", ErrValueOutOfRange, ops.Target)
			}
			imm = cpu.BranchDisplacement(d.Opcode, pc, ops.Target)
			if !cpu.FitsSigned(imm, cpu.ImmediateBits) {
				return 0, fmt.Errorf("%w: branch displacement %d", ErrValueOutOfRange, imm)
			}
		} else if !cpu.FitsEither(imm, cpu.ImmediateBits) {
			return 0, fmt.Errorf("%w: immediate %d does not fit 16 bits", ErrValueOutOfRange, imm)
		}
		return cpu.EncodeI(d.Opcode, ops.Rs, ops.Rt, uint16(imm)), nil

	case cpu.FormatJ:
		if ops.Target%cpu.BytesPerWord != 0 {
			return 0, fmt.Errorf("%w: jump target 0x%08x is not word aligned", ErrValueOutOfRange, ops.Target)
		}
		field := cpu.JumpField(ops.Target)
		if !cpu.FitsUnsigned(field, cpu.TargetBits) {
			return 0, fmt.Errorf("%w: jump target 0x%08x", ErrValueOutOfRange, ops.Target)
		}
		return cpu.EncodeJ(d.Opcode, uint32(field)), nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownInstruction, d.Name)
}

// generateInstructionCode parses and encodes one expanded text node.
func (asm *Assembler) generateInstructionCode(n *Node) (cpu.Word, error) {
	d, ops, err := asm.ParseInstruction(n)
	if err != nil {
		return 0, err
	}
	w, err := Encode(d, ops, n.Address)
	if err != nil {
		return 0, err
	}
	glog.V(2).Infof("0x%08x: %-24s %s", n.Address, n, w)
	return w, nil
}
