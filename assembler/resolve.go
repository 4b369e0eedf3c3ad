package assembler

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/golang/glog"

	"github.com/Urethramancer/mips/cpu"
)

var reLabel = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

// resolve walks the source once, splitting it into the data and text streams
// and binding every label to the address of the next item in its section.
func (asm *Assembler) resolve(lines []string) error {
	glog.V(1).Infof("resolving %d lines", len(lines))
	for i, raw := range lines {
		if err := asm.resolveLine(i+1, raw); err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
	}
	asm.textSize = asm.used(SectionText)
	asm.dataSize = asm.used(SectionData)
	glog.V(1).Infof("resolved %d symbols, text %d bytes, data %d bytes", asm.symbols.Len(), asm.textSize, asm.dataSize)
	return nil
}

func (asm *Assembler) resolveLine(num int, line string) error {
	if i := strings.IndexByte(line, '#'); i != -1 {
		line = line[:i]
	}
	line = strings.TrimRight(line, " \t\r\n")
	if strings.TrimSpace(line) == "" {
		return nil
	}

	indented := line[0] == ' ' || line[0] == '\t'
	body := strings.TrimSpace(line)

	if !indented && strings.HasPrefix(body, ".") {
		handled, err := asm.sectionDirective(body)
		if handled || err != nil {
			return err
		}
	}

	if !indented {
		if colon := strings.IndexByte(body, ':'); colon != -1 {
			name := strings.TrimSpace(body[:colon])
			if !reLabel.MatchString(name) {
				return fmt.Errorf("%w: invalid label %q", ErrMalformedOperand, name)
			}
			if err := asm.defineLabel(num, name); err != nil {
				return err
			}
			body = strings.TrimSpace(body[colon+1:])
			if body == "" {
				return nil
			}
		}
	}

	return asm.addItem(num, body)
}

// sectionDirective handles line-initial directives. It reports false for
// directives that are section items, such as .word.
func (asm *Assembler) sectionDirective(body string) (bool, error) {
	fields := strings.Fields(body)
	switch strings.ToLower(fields[0]) {
	case ".data", ".text":
		if len(fields) > 1 {
			return true, fmt.Errorf("%w: %s takes no arguments", ErrMalformedOperand, fields[0])
		}
		if strings.EqualFold(fields[0], ".data") {
			asm.enter(SectionData)
		} else {
			asm.enter(SectionText)
		}
		return true, nil
	case ".globl", ".global":
		return true, nil
	case ".word":
		return false, nil
	}
	return true, fmt.Errorf("%w: %s", ErrUnknownDirective, fields[0])
}

// enter switches sections. The first visit starts the running address at the
// section base; later visits continue where the section left off.
func (asm *Assembler) enter(sec Section) {
	asm.section = sec
	if _, ok := asm.pc[sec]; !ok {
		asm.pc[sec] = sec.Base()
	}
	glog.V(2).Infof("enter %s at 0x%08x", sec, asm.pc[sec])
}

// used returns the number of bytes emitted into sec so far.
func (asm *Assembler) used(sec Section) uint32 {
	pc, ok := asm.pc[sec]
	if !ok {
		return 0
	}
	return pc - sec.Base()
}

func (asm *Assembler) defineLabel(num int, name string) error {
	if asm.section == SectionNone {
		return fmt.Errorf("%w: label %s", ErrSectionNotSet, name)
	}
	addr := asm.pc[asm.section]
	if err := asm.symbols.Add(name, addr, asm.section); err != nil {
		return err
	}
	glog.V(2).Infof("%s: 0x%08x", name, addr)

	n := &Node{Type: NodeLabel, Line: num, Label: name, Address: addr}
	asm.stream(asm.section, n)
	return nil
}

func (asm *Assembler) addItem(num int, body string) error {
	if asm.section == SectionNone {
		return fmt.Errorf("%w: %q", ErrSectionNotSet, body)
	}

	var mnemonic, operandStr string
	if sp := strings.IndexAny(body, " \t"); sp == -1 {
		mnemonic = body
	} else {
		mnemonic = body[:sp]
		operandStr = strings.TrimSpace(body[sp:])
	}

	n := &Node{Line: num, Address: asm.pc[asm.section]}
	if asm.section == SectionData {
		n.Type = NodeData
		n.Mnemonic = ".word"
		if strings.EqualFold(mnemonic, ".word") {
			n.Operands = splitOperands(operandStr)
		} else {
			n.Operands = splitOperands(body)
		}
		if len(n.Operands) == 0 {
			return fmt.Errorf("%w: .word needs at least one value", ErrMalformedOperand)
		}
	} else {
		n.Type = NodeInstruction
		n.Mnemonic = strings.ToLower(mnemonic)
		n.Operands = splitOperands(operandStr)
	}
	n.Size = uint32(len(n.Operands)) * cpu.BytesPerWord
	if n.Type == NodeInstruction {
		n.Size = cpu.BytesPerWord
	}

	asm.stream(asm.section, n)
	asm.pc[asm.section] += n.Size
	return nil
}

func (asm *Assembler) stream(sec Section, n *Node) {
	if sec == SectionData {
		asm.data = append(asm.data, n)
	} else {
		asm.text = append(asm.text, n)
	}
}

// splitOperands splits an operand string by commas, but ignores commas inside parentheses.
func splitOperands(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	var result []string
	parenLevel := 0
	last := 0
	for i, r := range s {
		switch r {
		case '(':
			parenLevel++
		case ')':
			parenLevel--
		case ',':
			if parenLevel == 0 {
				result = append(result, strings.TrimSpace(s[last:i]))
				last = i + 1
			}
		}
	}
	result = append(result, strings.TrimSpace(s[last:]))
	return result
}
