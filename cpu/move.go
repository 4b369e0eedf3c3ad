package cpu

// opLUI loads the immediate into the upper half and clears the lower half.
func (c *CPU) opLUI(inst *DecodedInstruction) error {
	c.R[inst.Rt] = uint32(inst.Imm) << 16
	return nil
}

// opLW handles LW rt, imm(rs).
func (c *CPU) opLW(inst *DecodedInstruction) error {
	v, err := c.ReadWord(c.R[inst.Rs] + signExtend(inst.Imm))
	if err != nil {
		return err
	}
	c.R[inst.Rt] = v
	return nil
}

// opSW handles SW rt, imm(rs).
func (c *CPU) opSW(inst *DecodedInstruction) error {
	return c.WriteWord(c.R[inst.Rs]+signExtend(inst.Imm), c.R[inst.Rt])
}
