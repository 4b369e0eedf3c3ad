package assembler

import (
	"fmt"
	"io"
	"strings"

	"github.com/golang/glog"

	"github.com/Urethramancer/mips/cpu"
)

// Assembler holds the state for one assembly run.
type Assembler struct {
	symbols *SymbolTable

	// Section streams as read from the source, labels included.
	text []*Node
	data []*Node
	// program is the text stream after pseudo-instruction expansion.
	program []*Node

	section  Section
	pc       map[Section]uint32
	textSize uint32
	dataSize uint32
}

// New creates a new Assembler instance.
func New() *Assembler {
	asm := &Assembler{}
	asm.reset()
	return asm
}

// reset drops everything from a previous run.
func (asm *Assembler) reset() {
	asm.symbols = NewSymbolTable()
	asm.text = nil
	asm.data = nil
	asm.program = nil
	asm.section = SectionNone
	asm.pc = make(map[Section]uint32)
	asm.textSize = 0
	asm.dataSize = 0
}

// Assemble takes MIPS assembly source and returns the assembled object.
func (asm *Assembler) Assemble(src string) (*Object, error) {
	lines := strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")
	obj := &Object{}
	err := asm.run(lines, func(sec Section, w cpu.Word) error {
		if sec == SectionText {
			obj.Text = append(obj.Text, w)
		} else {
			obj.Data = append(obj.Data, w)
		}
		return nil
	}, nil)
	if err != nil {
		return nil, err
	}
	return obj, nil
}

// AssembleLines assembles the given source lines and streams the object to w
// as each word is encoded. On error the output written so far is incomplete
// and must be discarded.
func (asm *Assembler) AssembleLines(lines []string, w io.Writer) error {
	ow := newObjectWriter(w)
	err := asm.run(lines, func(_ Section, word cpu.Word) error {
		return ow.word(word)
	}, ow.header)
	if err != nil {
		return err
	}
	return ow.flush()
}

// run drives the pipeline: resolve, expand, then encode text and data in
// order, handing each word to emit. header, when set, receives the final
// section sizes before the first word.
func (asm *Assembler) run(lines []string, emit func(Section, cpu.Word) error, header func(text, data uint32) error) error {
	asm.reset()
	if err := asm.resolve(lines); err != nil {
		return fmt.Errorf("parsing error: %w", err)
	}
	if err := asm.expand(); err != nil {
		return fmt.Errorf("expansion error: %w", err)
	}
	if header != nil {
		if err := header(asm.textSize, asm.dataSize); err != nil {
			return err
		}
	}

	glog.V(1).Infof("encoding %d instructions, %d data bytes", len(asm.program), asm.dataSize)
	for _, n := range asm.program {
		w, err := asm.generateInstructionCode(n)
		if err != nil {
			return fmt.Errorf("line %d: error generating code for '%v': %w", n.Line, n, err)
		}
		if err := emit(SectionText, w); err != nil {
			return err
		}
	}
	for _, n := range asm.data {
		if n.Type != NodeData {
			continue
		}
		words, err := generateDataCode(n)
		if err != nil {
			return fmt.Errorf("line %d: error generating data for '%v': %w", n.Line, n, err)
		}
		for _, w := range words {
			if err := emit(SectionData, w); err != nil {
				return err
			}
		}
	}
	return nil
}

// Symbols returns the symbol table of the last run in definition order.
func (asm *Assembler) Symbols() []Symbol {
	return asm.symbols.Symbols()
}

// Lookup returns a symbol from the last run.
func (asm *Assembler) Lookup(name string) (Symbol, bool) {
	return asm.symbols.Lookup(name)
}

// Program returns the expanded text of the last run, one real instruction
// per entry, in source form.
func (asm *Assembler) Program() []string {
	out := make([]string, len(asm.program))
	for i, n := range asm.program {
		out[i] = n.String()
	}
	return out
}

// TextSize returns the text section size of the last run in bytes.
func (asm *Assembler) TextSize() uint32 { return asm.textSize }

// DataSize returns the data section size of the last run in bytes.
func (asm *Assembler) DataSize() uint32 { return asm.dataSize }
