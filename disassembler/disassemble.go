package disassembler

import (
	"fmt"
	"strings"

	"github.com/Urethramancer/mips/assembler"
	"github.com/Urethramancer/mips/cpu"
)

// LabelType defines the context of a label.
type LabelType int

const (
	// JumpTarget is for a branch or J target.
	JumpTarget LabelType = iota
	// SubroutineEntry is for a JAL target.
	SubroutineEntry
)

// Instruction represents a single decoded instruction at a specific address.
type Instruction struct {
	Address  uint32
	Word     cpu.Word
	Desc     *cpu.Descriptor
	Mnemonic string
	Operands string
	// Target is the branch or jump destination, when HasTarget is set.
	Target    uint32
	HasTarget bool
}

// Disassemble turns an object back into source the assembler accepts.
// Branch and jump targets inside the text section get generated labels.
func Disassemble(obj *assembler.Object) (string, error) {
	// --- STAGE 1: Linear Sweep ---
	instructions := make([]*Instruction, 0, len(obj.Text))
	for i, w := range obj.Text {
		addr := uint32(cpu.TextStart + i*cpu.BytesPerWord)
		inst, err := decodeAt(w, addr)
		if err != nil {
			return "", err
		}
		instructions = append(instructions, inst)
	}

	// --- STAGE 2: Label Targets ---
	textEnd := uint32(cpu.TextStart) + obj.TextSize()
	labelTargets := make(map[uint32]LabelType)
	for _, inst := range instructions {
		if !inst.HasTarget || inst.Target < cpu.TextStart || inst.Target > textEnd || inst.Target%cpu.BytesPerWord != 0 {
			continue
		}
		if inst.Desc.Opcode == cpu.OPJAL {
			labelTargets[inst.Target] = SubroutineEntry
		} else if _, exists := labelTargets[inst.Target]; !exists {
			labelTargets[inst.Target] = JumpTarget
		}
	}

	// --- STAGE 3: Render Final Output ---
	var out strings.Builder
	if len(obj.Data) > 0 {
		out.WriteString(".data\n")
		for _, w := range obj.Data {
			fmt.Fprintf(&out, "\t.word 0x%08x\n", uint32(w))
		}
	}
	out.WriteString(".text\n")
	for _, inst := range instructions {
		if labelType, exists := labelTargets[inst.Address]; exists {
			fmt.Fprintf(&out, "%s:\n", labelName(inst.Address, labelType))
		}
		operands := inst.Operands
		if inst.HasTarget {
			if labelType, exists := labelTargets[inst.Target]; exists {
				operands = replaceTarget(operands, labelName(inst.Target, labelType))
			}
		}
		fmt.Fprintf(&out, "\t%s %s\n", inst.Mnemonic, operands)
	}
	if labelType, exists := labelTargets[textEnd]; exists {
		fmt.Fprintf(&out, "%s:\n", labelName(textEnd, labelType))
	}
	return out.String(), nil
}

// Decode returns the mnemonic and operand text of a word located at pc.
func Decode(w cpu.Word, pc uint32) (string, string, error) {
	inst, err := decodeAt(w, pc)
	if err != nil {
		return "", "", err
	}
	return inst.Mnemonic, inst.Operands, nil
}

func decodeAt(w cpu.Word, pc uint32) (*Instruction, error) {
	d, ok := cpu.LookupWord(w)
	if !ok {
		return nil, fmt.Errorf("0x%08x: %w: %08x", pc, cpu.ErrUnknownOpcode, uint32(w))
	}
	inst := &Instruction{Address: pc, Word: w, Desc: d, Mnemonic: d.Name}

	switch d.Syntax {
	case cpu.SyntaxRdRsRt:
		inst.Operands = fmt.Sprintf("$%d, $%d, $%d", w.Rd(), w.Rs(), w.Rt())
	case cpu.SyntaxRdRtShamt:
		inst.Operands = fmt.Sprintf("$%d, $%d, %d", w.Rd(), w.Rt(), w.Shamt())
	case cpu.SyntaxRs:
		inst.Operands = fmt.Sprintf("$%d", w.Rs())
	case cpu.SyntaxBranch:
		inst.Target, inst.HasTarget = cpu.BranchTarget(w, pc), true
		inst.Operands = fmt.Sprintf("$%d, $%d, 0x%08x", w.Rs(), w.Rt(), inst.Target)
	case cpu.SyntaxRtImm:
		inst.Operands = fmt.Sprintf("$%d, 0x%x", w.Rt(), w.Imm())
	case cpu.SyntaxRtOffsetBase:
		inst.Operands = fmt.Sprintf("$%d, %d($%d)", w.Rt(), w.SignedImm(), w.Rs())
	case cpu.SyntaxRtRsImm:
		if signedImmediate(d) {
			inst.Operands = fmt.Sprintf("$%d, $%d, %d", w.Rt(), w.Rs(), w.SignedImm())
		} else {
			inst.Operands = fmt.Sprintf("$%d, $%d, 0x%x", w.Rt(), w.Rs(), w.Imm())
		}
	case cpu.SyntaxTarget:
		inst.Target, inst.HasTarget = cpu.JumpTarget(w), true
		inst.Operands = fmt.Sprintf("0x%08x", inst.Target)
	}
	return inst, nil
}

// signedImmediate reports whether the CPU sign-extends the instruction's
// immediate, which decides how it reads best.
func signedImmediate(d *cpu.Descriptor) bool {
	return d.Opcode == cpu.OPADDIU || d.Opcode == cpu.OPSLTIU
}

// replaceTarget swaps the trailing numeric target of an operand list for a label.
func replaceTarget(operands, label string) string {
	i := strings.LastIndex(operands, "0x")
	if i == -1 {
		return operands
	}
	return operands[:i] + label
}

func labelName(addr uint32, t LabelType) string {
	if t == SubroutineEntry {
		return fmt.Sprintf("sub_%08x", addr)
	}
	return fmt.Sprintf("loc_%08x", addr)
}
