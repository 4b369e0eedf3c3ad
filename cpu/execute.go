package cpu

import (
	"fmt"

	"github.com/golang/glog"
)

// Execute fetches, decodes, and executes a single instruction.
func (c *CPU) Execute() error {
	if !c.Running {
		return nil
	}
	if c.PC < TextStart || c.PC >= c.textEnd {
		c.Running = false
		return nil
	}

	// Fetch
	raw, err := c.ReadWord(c.PC)
	if err != nil {
		return err
	}

	// Decode
	inst, err := Decode(Word(raw))
	if err != nil {
		return fmt.Errorf("decode failed at %08x: %w", c.PC, err)
	}
	glog.V(3).Infof("%08x: %s rs=%d rt=%d rd=%d imm=%04x", c.PC, inst.Desc.Name, inst.Rs, inst.Rt, inst.Rd, inst.Imm)

	// Execute
	pc := c.PC
	c.PC += BytesPerWord
	if err := inst.Handler(c, inst); err != nil {
		return fmt.Errorf("execution failed at %08x: %w", pc, err)
	}
	c.R[RegZero] = 0
	c.Steps++
	return nil
}
