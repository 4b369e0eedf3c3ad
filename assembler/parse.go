package assembler

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Urethramancer/mips/cpu"
)

// Operands holds the parsed fields of one real instruction. Which fields are
// meaningful depends on the descriptor's syntax.
type Operands struct {
	Rs, Rt, Rd uint8
	Shamt      uint8
	Imm        int64
	Target     uint32
}

var (
	reRegisterNumber = regexp.MustCompile(`^\$([0-9]+)$`)
	reRegisterName   = regexp.MustCompile(`^\$([a-z][a-z0-9]*)$`)
	reOffsetBase     = regexp.MustCompile(`^([^()]*)\(\s*(\$[^()\s]+)\s*\)$`)
	reNumber         = regexp.MustCompile(`^-?(0[xX][0-9a-fA-F]+|[0-9]+)$`)
)

// ParseInstruction looks up the mnemonic of n and extracts its operands.
func (asm *Assembler) ParseInstruction(n *Node) (*cpu.Descriptor, Operands, error) {
	var ops Operands
	d, ok := cpu.Lookup(n.Mnemonic)
	if !ok {
		return nil, ops, fmt.Errorf("%w: %s", ErrUnknownInstruction, n.Mnemonic)
	}
	if want := d.Syntax.Operands(); len(n.Operands) != want {
		return d, ops, fmt.Errorf("%w: %s takes %d operands, got %d", ErrMalformedOperand, d.Name, want, len(n.Operands))
	}

	var err error
	o := n.Operands
	switch d.Syntax {
	case cpu.SyntaxRdRsRt:
		err = parseRegisters(o, &ops.Rd, &ops.Rs, &ops.Rt)
	case cpu.SyntaxRdRtShamt:
		if err = parseRegisters(o[:2], &ops.Rd, &ops.Rt); err == nil {
			ops.Shamt, err = parseShamt(o[2])
		}
	case cpu.SyntaxRs:
		err = parseRegisters(o, &ops.Rs)
	case cpu.SyntaxBranch:
		if err = parseRegisters(o[:2], &ops.Rs, &ops.Rt); err == nil {
			ops.Target, err = asm.resolveAddress(o[2])
		}
	case cpu.SyntaxRtImm:
		if err = parseRegisters(o[:1], &ops.Rt); err == nil {
			ops.Imm, err = parseConstant(o[1])
		}
	case cpu.SyntaxRtOffsetBase:
		if err = parseRegisters(o[:1], &ops.Rt); err == nil {
			ops.Imm, ops.Rs, err = parseOffsetBase(o[1])
		}
	case cpu.SyntaxRtRsImm:
		if err = parseRegisters(o[:2], &ops.Rt, &ops.Rs); err == nil {
			ops.Imm, err = parseConstant(o[2])
		}
	case cpu.SyntaxTarget:
		ops.Target, err = asm.resolveAddress(o[0])
	}
	return d, ops, err
}

func parseRegisters(src []string, dst ...*uint8) error {
	for i, s := range src {
		r, err := parseRegister(s)
		if err != nil {
			return err
		}
		*dst[i] = r
	}
	return nil
}

// parseRegister accepts "$n" with n in 0-31, or a conventional name like "$t0".
func parseRegister(s string) (uint8, error) {
	s = strings.TrimSpace(s)
	if m := reRegisterNumber.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil || n > 31 {
			return 0, fmt.Errorf("%w: register %s", ErrValueOutOfRange, s)
		}
		return uint8(n), nil
	}
	if m := reRegisterName.FindStringSubmatch(strings.ToLower(s)); m != nil {
		if r, ok := cpu.RegisterNumber(m[1]); ok {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: register %q", ErrMalformedOperand, s)
}

func parseShamt(s string) (uint8, error) {
	v, err := parseConstant(s)
	if err != nil {
		return 0, err
	}
	if !cpu.FitsUnsigned(v, cpu.ShamtBits) {
		return 0, fmt.Errorf("%w: shift amount %d", ErrValueOutOfRange, v)
	}
	return uint8(v), nil
}

// parseOffsetBase handles "imm($reg)". An empty offset means zero.
func parseOffsetBase(s string) (int64, uint8, error) {
	m := reOffsetBase.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, 0, fmt.Errorf("%w: expected offset($reg), got %q", ErrMalformedOperand, s)
	}
	base, err := parseRegister(m[2])
	if err != nil {
		return 0, 0, err
	}
	var off int64
	if strings.TrimSpace(m[1]) != "" {
		if off, err = parseConstant(m[1]); err != nil {
			return 0, 0, err
		}
	}
	return off, base, nil
}

// parseConstant converts a decimal or 0x-prefixed hexadecimal literal, with an
// optional leading minus sign.
func parseConstant(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if !reNumber.MatchString(s) {
		return 0, fmt.Errorf("%w: invalid number %q", ErrMalformedOperand, s)
	}

	neg := strings.HasPrefix(s, "-")
	digits := strings.TrimPrefix(s, "-")
	base := 10
	if strings.HasPrefix(strings.ToLower(digits), "0x") {
		digits = digits[2:]
		base = 16
	}

	val, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrValueOutOfRange, s)
	}
	if neg {
		val = -val
	}
	return val, nil
}

// resolveValue returns the address of a label, or the value of a literal.
func (asm *Assembler) resolveValue(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if reLabel.MatchString(s) {
		sym, ok := asm.symbols.Lookup(s)
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUndefinedSymbol, s)
		}
		return int64(sym.Address), nil
	}
	return parseConstant(s)
}

// resolveAddress is resolveValue restricted to the 32-bit address space.
func (asm *Assembler) resolveAddress(s string) (uint32, error) {
	v, err := asm.resolveValue(s)
	if err != nil {
		return 0, err
	}
	if !cpu.FitsUnsigned(v, 32) {
		return 0, fmt.Errorf("%w: address %s", ErrValueOutOfRange, s)
	}
	return uint32(v), nil
}
