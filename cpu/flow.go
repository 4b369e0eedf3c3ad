package cpu

// Branch and jump target arithmetic. The assembler, the disassembler and the
// interpreter all go through these so that an encoded branch always lands on
// the label it was assembled against.
//
// beq counts its displacement from the following instruction, bne from the
// branch itself. Jumps store target/4 - 1.

// BranchDisplacement returns the word displacement to encode for a branch at
// pc to target. The caller range-checks the result.
func BranchDisplacement(opcode uint8, pc, target uint32) int64 {
	words := (int64(target) - int64(pc)) / 4
	if opcode == OPBEQ {
		return words - 1
	}
	return words
}

// BranchTarget is the inverse of BranchDisplacement for an encoded word.
func BranchTarget(w Word, pc uint32) uint32 {
	disp := int64(w.SignedImm())
	if w.Opcode() == OPBEQ {
		disp++
	}
	return uint32(int64(pc) + disp*4)
}

// JumpField returns the J-format field for an absolute target address. The
// field holds the target's absolute word index minus one, not an offset from
// the jump, so j 0x00400020 encodes 0x100007.
func JumpField(target uint32) int64 {
	return int64(target/4) - 1
}

// JumpTarget is the inverse of JumpField for an encoded word.
func JumpTarget(w Word) uint32 {
	return (w.Target() + 1) * 4
}

// opBranch handles BEQ and BNE.
func (c *CPU) opBranch(inst *DecodedInstruction) error {
	equal := c.R[inst.Rs] == c.R[inst.Rt]
	if equal == (inst.Desc.Opcode == OPBEQ) {
		c.PC = BranchTarget(inst.Word, c.PC-BytesPerWord)
	}
	return nil
}

// opJump handles J and JAL. JAL links the address of the next instruction.
func (c *CPU) opJump(inst *DecodedInstruction) error {
	if inst.Desc.Opcode == OPJAL {
		c.R[RegRA] = c.PC
	}
	c.PC = JumpTarget(inst.Word)
	return nil
}

// opJR handles JR. Returning to an address outside the text segment halts.
func (c *CPU) opJR(inst *DecodedInstruction) error {
	c.PC = c.R[inst.Rs]
	return nil
}
