package assembler

import (
	"strings"

	"github.com/Urethramancer/mips/cpu"
)

// Section identifies the segment a line belongs to.
type Section int

const (
	// SectionNone is the state before the first section directive.
	SectionNone Section = iota
	// SectionData holds initialised words.
	SectionData
	// SectionText holds instructions.
	SectionText
)

// Base returns the first address of the section.
func (s Section) Base() uint32 {
	if s == SectionData {
		return cpu.DataStart
	}
	return cpu.TextStart
}

func (s Section) String() string {
	switch s {
	case SectionData:
		return ".data"
	case SectionText:
		return ".text"
	}
	return "none"
}

// NodeType defines the type of an assembly node.
type NodeType int

const (
	// NodeInstruction type.
	NodeInstruction NodeType = iota
	// NodeLabel type.
	NodeLabel
	// NodeData type, a .word item.
	NodeData
)

// Node represents one logical line of a section stream.
type Node struct {
	Type     NodeType
	Line     int // 1-based source line
	Label    string
	Mnemonic string
	Operands []string
	Address  uint32
	Size     uint32 // bytes; changes for la while the text layout settles
}

// String renders an item the way it would be written in source.
func (n *Node) String() string {
	switch n.Type {
	case NodeLabel:
		return n.Label + ":"
	case NodeData:
		return ".word " + strings.Join(n.Operands, ", ")
	}
	if len(n.Operands) == 0 {
		return n.Mnemonic
	}
	return n.Mnemonic + " " + strings.Join(n.Operands, ", ")
}
