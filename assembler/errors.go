package assembler

import "errors"

// Errors reported by the assembler. They are wrapped with line context, so
// match them with errors.Is.
var (
	// ErrSectionNotSet is returned for an item or label before any .data or .text line.
	ErrSectionNotSet = errors.New("section not set")
	// ErrDuplicateSymbol is returned when a label is defined twice.
	ErrDuplicateSymbol = errors.New("duplicate symbol")
	// ErrUndefinedSymbol is returned when an operand names an unknown label.
	ErrUndefinedSymbol = errors.New("undefined symbol")
	// ErrUnknownInstruction is returned for a mnemonic outside the instruction table.
	ErrUnknownInstruction = errors.New("unknown instruction")
	// ErrMalformedOperand is returned when operand text does not fit the instruction's syntax.
	ErrMalformedOperand = errors.New("malformed operand")
	// ErrValueOutOfRange is returned when a value does not fit its field.
	ErrValueOutOfRange = errors.New("value out of range")
	// ErrUnknownDirective is returned for directives other than .data, .text, .globl and .word.
	ErrUnknownDirective = errors.New("unknown directive")
	// ErrLayoutUnstable is returned when la expansion keeps moving text labels.
	ErrLayoutUnstable = errors.New("text layout did not settle")
	// ErrMalformedObject is returned by ReadObject for input that is not an object.
	ErrMalformedObject = errors.New("malformed object")
)
