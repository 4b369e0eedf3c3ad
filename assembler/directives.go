package assembler

import (
	"fmt"

	"github.com/Urethramancer/mips/cpu"
)

// generateDataCode encodes the values of one .word item. Values are literals
// only; labels are not substituted in the data section.
func generateDataCode(n *Node) ([]cpu.Word, error) {
	words := make([]cpu.Word, 0, len(n.Operands))
	for _, s := range n.Operands {
		v, err := parseConstant(s)
		if err != nil {
			return nil, err
		}
		if !cpu.FitsEither(v, 32) {
			return nil, fmt.Errorf("%w: %s does not fit 32 bits", ErrValueOutOfRange, s)
		}
		words = append(words, cpu.Word(uint32(v)))
	}
	return words, nil
}
