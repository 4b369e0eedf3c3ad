package assembler

import (
	"fmt"

	"github.com/golang/glog"

	"github.com/Urethramancer/mips/cpu"
)

// minLayoutPasses is the floor of the layout pass limit. An la only ever grows,
// so each pass either grows at least one la or settles, and real programs
// settle in two or three.
const minLayoutPasses = 32

// expand rewrites pseudo-instructions into real ones. Text label addresses
// are re-derived from the top of the section on every pass until neither a
// label nor an la size changes.
func (asm *Assembler) expand() error {
	limit := minLayoutPasses
	for _, n := range asm.text {
		if n.Mnemonic == "la" {
			limit++
		}
	}

	settled := false
	for pass := 1; pass <= limit; pass++ {
		changed, err := asm.layoutText()
		if err != nil {
			return err
		}
		glog.V(1).Infof("layout pass %d: text %d bytes, changed=%v", pass, asm.textSize, changed)
		if !changed {
			settled = true
			break
		}
	}
	if !settled {
		return fmt.Errorf("%w after %d passes", ErrLayoutUnstable, limit)
	}

	asm.program = asm.program[:0]
	for _, n := range asm.text {
		switch {
		case n.Type != NodeInstruction:
			continue
		case n.Mnemonic == "la":
			expanded, err := asm.expandLa(n)
			if err != nil {
				return fmt.Errorf("line %d: %w", n.Line, err)
			}
			asm.program = append(asm.program, expanded...)
		default:
			asm.program = append(asm.program, n)
		}
	}
	return nil
}

// layoutText assigns addresses to the text stream using the current symbol
// table and reports whether anything moved.
func (asm *Assembler) layoutText() (bool, error) {
	changed := false
	pc := uint32(cpu.TextStart)
	for _, n := range asm.text {
		if n.Type == NodeLabel {
			if asm.symbols.move(n.Label, pc) {
				glog.V(2).Infof("%s moved to 0x%08x", n.Label, pc)
				changed = true
			}
			n.Address = pc
			continue
		}

		size := uint32(cpu.BytesPerWord)
		if n.Mnemonic == "la" {
			addr, err := asm.laTarget(n)
			if err != nil {
				return false, fmt.Errorf("line %d: %w", n.Line, err)
			}
			size *= uint32(len(splitAddress(addr)))
			// Never shrink. A label pushed onto a 64 KiB boundary by its own
			// la would otherwise pull itself back on the next pass.
			size = max(size, n.Size)
		}
		if n.Size != size {
			changed = true
		}
		n.Address = pc
		n.Size = size
		pc += size
	}
	asm.textSize = pc - cpu.TextStart
	return changed, nil
}

func (asm *Assembler) laTarget(n *Node) (uint32, error) {
	if len(n.Operands) != 2 {
		return 0, fmt.Errorf("%w: la takes 2 operands, got %d", ErrMalformedOperand, len(n.Operands))
	}
	if _, err := parseRegister(n.Operands[0]); err != nil {
		return 0, err
	}
	return asm.resolveAddress(n.Operands[1])
}

// half is one instruction of an la expansion.
type half struct {
	mnemonic string
	value    uint32
}

// splitAddress applies the la split: lui for a non-zero upper half, ori for a
// non-zero lower half, and a lone ori when both halves are zero.
func splitAddress(addr uint32) []half {
	hi, lo := addr>>16, addr&0xFFFF
	var out []half
	if hi != 0 {
		out = append(out, half{"lui", hi})
	}
	if lo != 0 || hi == 0 {
		out = append(out, half{"ori", lo})
	}
	return out
}

// expandLa builds the real instructions for "la $reg, target".
func (asm *Assembler) expandLa(n *Node) ([]*Node, error) {
	addr, err := asm.laTarget(n)
	if err != nil {
		return nil, err
	}
	reg := n.Operands[0]
	pc := n.Address
	halves := splitAddress(addr)
	if n.Size == 2*cpu.BytesPerWord && len(halves) == 1 {
		// Sized for two words on an earlier pass.
		halves = []half{{"lui", addr >> 16}, {"ori", addr & 0xFFFF}}
	}
	var out []*Node
	for _, h := range halves {
		imm := fmt.Sprintf("0x%x", h.value)
		ops := []string{reg, imm}
		if h.mnemonic == "ori" {
			ops = []string{reg, reg, imm}
		}
		out = append(out, &Node{
			Type:     NodeInstruction,
			Line:     n.Line,
			Mnemonic: h.mnemonic,
			Operands: ops,
			Address:  pc,
			Size:     cpu.BytesPerWord,
		})
		pc += cpu.BytesPerWord
	}
	glog.V(2).Infof("la %s, 0x%08x -> %d instructions", reg, addr, len(out))
	return out, nil
}
