package cpu

import (
	"errors"
	"fmt"
)

// Segment base addresses.
const (
	TextStart    = 0x00400000
	DataStart    = 0x10000000
	BytesPerWord = 4
	// StackTop is the initial $sp. The stack grows down from here.
	StackTop     = 0x7FFFEFFC
)

var (
	// ErrUnaligned is returned for word accesses off a 4-byte boundary.
	ErrUnaligned = errors.New("unaligned word access")
	// ErrStepLimit is returned by Run when the program does not halt in time.
	ErrStepLimit = errors.New("step limit reached")
	// ErrUnknownOpcode is returned when a fetched word matches no descriptor.
	ErrUnknownOpcode = errors.New("unknown opcode")
)

// CPU memory and registers.
type CPU struct {
	// R is the general purpose register file. R[0] always reads zero.
	R [32]uint32
	// PC is the program counter.
	PC uint32

	// Mem is word addressed sparse memory, keyed by byte address.
	Mem map[uint32]uint32

	// textEnd is one past the last loaded instruction. Execution halts when
	// the PC leaves [TextStart, textEnd).
	textEnd uint32

	// Steps counts executed instructions.
	Steps int
	// Running or not.
	Running bool
}

// New creates a CPU with empty memory and $sp at StackTop.
func New() *CPU {
	c := &CPU{
		Mem: make(map[uint32]uint32),
	}
	c.R[RegSP] = StackTop
	return c
}

// LoadText places instructions at TextStart and points the PC at the first one.
func (c *CPU) LoadText(words []Word) {
	addr := uint32(TextStart)
	for _, w := range words {
		c.Mem[addr] = uint32(w)
		addr += BytesPerWord
	}
	c.textEnd = addr
	c.PC = TextStart
	c.Running = len(words) > 0
}

// LoadData places data words at DataStart.
func (c *CPU) LoadData(words []Word) {
	addr := uint32(DataStart)
	for _, w := range words {
		c.Mem[addr] = uint32(w)
		addr += BytesPerWord
	}
}

// ReadWord loads the word at addr.
func (c *CPU) ReadWord(addr uint32) (uint32, error) {
	if addr%BytesPerWord != 0 {
		return 0, fmt.Errorf("read %08x: %w", addr, ErrUnaligned)
	}
	return c.Mem[addr], nil
}

// WriteWord stores v at addr.
func (c *CPU) WriteWord(addr, v uint32) error {
	if addr%BytesPerWord != 0 {
		return fmt.Errorf("write %08x: %w", addr, ErrUnaligned)
	}
	c.Mem[addr] = v
	return nil
}

// Run executes until the PC leaves the text segment or maxSteps instructions
// have run.
func (c *CPU) Run(maxSteps int) error {
	for c.Running {
		if c.Steps >= maxSteps {
			return fmt.Errorf("after %d instructions: %w", c.Steps, ErrStepLimit)
		}
		if err := c.Execute(); err != nil {
			return err
		}
	}
	return nil
}
