package cpu

// Overflow traps are not modelled: ADD and SUB behave like ADDU and SUBU.

func (c *CPU) opADDU(inst *DecodedInstruction) error {
	c.R[inst.Rd] = c.R[inst.Rs] + c.R[inst.Rt]
	return nil
}

func (c *CPU) opSUBU(inst *DecodedInstruction) error {
	c.R[inst.Rd] = c.R[inst.Rs] - c.R[inst.Rt]
	return nil
}

func (c *CPU) opAND(inst *DecodedInstruction) error {
	c.R[inst.Rd] = c.R[inst.Rs] & c.R[inst.Rt]
	return nil
}

func (c *CPU) opOR(inst *DecodedInstruction) error {
	c.R[inst.Rd] = c.R[inst.Rs] | c.R[inst.Rt]
	return nil
}

func (c *CPU) opNOR(inst *DecodedInstruction) error {
	c.R[inst.Rd] = ^(c.R[inst.Rs] | c.R[inst.Rt])
	return nil
}

func (c *CPU) opSLTU(inst *DecodedInstruction) error {
	c.R[inst.Rd] = boolWord(c.R[inst.Rs] < c.R[inst.Rt])
	return nil
}

func (c *CPU) opSLL(inst *DecodedInstruction) error {
	c.R[inst.Rd] = c.R[inst.Rt] << inst.Shamt
	return nil
}

func (c *CPU) opSRL(inst *DecodedInstruction) error {
	c.R[inst.Rd] = c.R[inst.Rt] >> inst.Shamt
	return nil
}

// opADDIU sign-extends its immediate.
func (c *CPU) opADDIU(inst *DecodedInstruction) error {
	c.R[inst.Rt] = c.R[inst.Rs] + signExtend(inst.Imm)
	return nil
}

// opANDI zero-extends its immediate.
func (c *CPU) opANDI(inst *DecodedInstruction) error {
	c.R[inst.Rt] = c.R[inst.Rs] & uint32(inst.Imm)
	return nil
}

// opORI zero-extends its immediate.
func (c *CPU) opORI(inst *DecodedInstruction) error {
	c.R[inst.Rt] = c.R[inst.Rs] | uint32(inst.Imm)
	return nil
}

// opSLTIU sign-extends the immediate, then compares unsigned.
func (c *CPU) opSLTIU(inst *DecodedInstruction) error {
	c.R[inst.Rt] = boolWord(c.R[inst.Rs] < signExtend(inst.Imm))
	return nil
}

func signExtend(imm uint16) uint32 {
	return uint32(int32(int16(imm)))
}

func boolWord(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
