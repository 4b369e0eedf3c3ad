package assembler

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/Urethramancer/mips/cpu"
)

// Object is an assembled unit: text words followed by data words.
type Object struct {
	Text []cpu.Word
	Data []cpu.Word
}

// TextSize returns the text section size in bytes.
func (o *Object) TextSize() uint32 {
	return uint32(len(o.Text)) * cpu.BytesPerWord
}

// DataSize returns the data section size in bytes.
func (o *Object) DataSize() uint32 {
	return uint32(len(o.Data)) * cpu.BytesPerWord
}

// WriteTo writes the object in its bit-string form.
func (o *Object) WriteTo(w io.Writer) (int64, error) {
	ow := newObjectWriter(w)
	if err := ow.header(o.TextSize(), o.DataSize()); err != nil {
		return ow.n, err
	}
	for _, word := range o.Text {
		if err := ow.word(word); err != nil {
			return ow.n, err
		}
	}
	for _, word := range o.Data {
		if err := ow.word(word); err != nil {
			return ow.n, err
		}
	}
	return ow.n, ow.flush()
}

// objectWriter streams one 32-digit line per word.
type objectWriter struct {
	bw *bufio.Writer
	n  int64
}

func newObjectWriter(w io.Writer) *objectWriter {
	return &objectWriter{bw: bufio.NewWriter(w)}
}

func (ow *objectWriter) header(textSize, dataSize uint32) error {
	if err := ow.word(cpu.Word(textSize)); err != nil {
		return err
	}
	return ow.word(cpu.Word(dataSize))
}

func (ow *objectWriter) word(w cpu.Word) error {
	n, err := ow.bw.WriteString(w.String() + "\n")
	ow.n += int64(n)
	return err
}

func (ow *objectWriter) flush() error {
	return ow.bw.Flush()
}

// ReadObject parses the bit-string form written by WriteTo.
func ReadObject(r io.Reader) (*Object, error) {
	var words []cpu.Word
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		if s == "" {
			continue
		}
		if len(s) != 32 {
			return nil, fmt.Errorf("%w: line %d has %d digits, want 32", ErrMalformedObject, line, len(s))
		}
		v, err := cpu.ParseBits(s)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedObject, line, err)
		}
		words = append(words, cpu.Word(v))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if len(words) < 2 {
		return nil, fmt.Errorf("%w: missing size header", ErrMalformedObject)
	}
	textSize, dataSize := uint32(words[0]), uint32(words[1])
	if textSize%cpu.BytesPerWord != 0 || dataSize%cpu.BytesPerWord != 0 {
		return nil, fmt.Errorf("%w: section sizes %d/%d are not word multiples", ErrMalformedObject, textSize, dataSize)
	}
	body := words[2:]
	nText := int(textSize / cpu.BytesPerWord)
	nData := int(dataSize / cpu.BytesPerWord)
	if nText+nData != len(body) {
		return nil, fmt.Errorf("%w: header declares %d words, body has %d", ErrMalformedObject, nText+nData, len(body))
	}
	return &Object{
		Text: body[:nText:nText],
		Data: body[nText:],
	}, nil
}
