package assembler

import (
	"fmt"
)

// Symbol is a label bound to a word-aligned address.
type Symbol struct {
	Name    string
	Address uint32
	Section Section
}

// SymbolTable maps label names to addresses, remembering definition order.
type SymbolTable struct {
	order []*Symbol
	index map[string]*Symbol
}

// NewSymbolTable returns an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{index: make(map[string]*Symbol)}
}

// Add defines a new symbol. Names must be unique across sections.
func (t *SymbolTable) Add(name string, addr uint32, sec Section) error {
	if prev, ok := t.index[name]; ok {
		return fmt.Errorf("%w: %s (already defined in %s at 0x%08x)", ErrDuplicateSymbol, name, prev.Section, prev.Address)
	}
	s := &Symbol{Name: name, Address: addr, Section: sec}
	t.order = append(t.order, s)
	t.index[name] = s
	return nil
}

// Lookup returns the symbol called name.
func (t *SymbolTable) Lookup(name string) (Symbol, bool) {
	s, ok := t.index[name]
	if !ok {
		return Symbol{}, false
	}
	return *s, true
}

// move rebinds an existing symbol and reports whether its address changed.
func (t *SymbolTable) move(name string, addr uint32) bool {
	s := t.index[name]
	if s.Address == addr {
		return false
	}
	s.Address = addr
	return true
}

// Len returns the number of symbols.
func (t *SymbolTable) Len() int {
	return len(t.order)
}

// Symbols returns a copy of all symbols in definition order.
func (t *SymbolTable) Symbols() []Symbol {
	out := make([]Symbol, len(t.order))
	for i, s := range t.order {
		out[i] = *s
	}
	return out
}
