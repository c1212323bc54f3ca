package domain

import (
	"fmt"
	"unicode/utf8"
)

// BlankValue is the character used for the Blank tape symbol.
const BlankValue = "#"

// Blank is the reserved tape symbol of uninitialized cells.
// It never belongs to an input alphabet.
var Blank = TapeSymbol{Symbol{r: '#'}}

// Symbol is a single character of a machine alphabet.
// Symbols are values: two symbols are equal when their characters are equal.
type Symbol struct {
	r rune
}

// NewSymbol creates a Symbol from a one-character string.
func NewSymbol(value string) (Symbol, error) {
	if utf8.RuneCountInString(value) != 1 {
		return Symbol{}, fmt.Errorf("%w: %q", ErrInvalidSymbol, value)
	}
	r, _ := utf8.DecodeRuneInString(value)
	return Symbol{r: r}, nil
}

// Value returns the symbol as a string.
func (s Symbol) Value() string {
	return string(s.r)
}

// Rune returns the symbol character.
func (s Symbol) Rune() rune {
	return s.r
}

// IsZero reports whether the symbol was never initialized.
func (s Symbol) IsZero() bool {
	return s.r == 0
}

func (s Symbol) String() string {
	return s.Value()
}

// MarshalText implements encoding.TextMarshaler.
func (s Symbol) MarshalText() ([]byte, error) {
	return []byte(s.Value()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Symbol) UnmarshalText(text []byte) error {
	sym, err := NewSymbol(string(text))
	if err != nil {
		return err
	}
	*s = sym
	return nil
}

// TapeSymbol is a symbol that may be written to the tape.
type TapeSymbol struct {
	Symbol
}

// NewTapeSymbol creates a TapeSymbol from a one-character string.
func NewTapeSymbol(value string) (TapeSymbol, error) {
	sym, err := NewSymbol(value)
	if err != nil {
		return TapeSymbol{}, err
	}
	return TapeSymbol{sym}, nil
}

// IsBlank reports whether the symbol is the Blank symbol.
func (s TapeSymbol) IsBlank() bool {
	return s == Blank
}

// InputSymbol is a tape symbol that belongs to the input alphabet.
type InputSymbol struct {
	TapeSymbol
}

// NewInputSymbol creates an InputSymbol from a one-character string.
func NewInputSymbol(value string) (InputSymbol, error) {
	sym, err := NewTapeSymbol(value)
	if err != nil {
		return InputSymbol{}, err
	}
	return InputSymbol{sym}, nil
}

// MustInputSymbol is like NewInputSymbol but panics on error.
// It is meant for package-level alphabets and tests.
func MustInputSymbol(value string) InputSymbol {
	sym, err := NewInputSymbol(value)
	if err != nil {
		panic(err)
	}
	return sym
}

// Tape widens the input symbol to a tape symbol.
func (s InputSymbol) Tape() TapeSymbol {
	return s.TapeSymbol
}

// DefaultInputAlphabet returns the binary alphabet {0, 1}.
func DefaultInputAlphabet() []InputSymbol {
	return []InputSymbol{MustInputSymbol("0"), MustInputSymbol("1")}
}

// TapeAlphabet derives the tape alphabet from an input alphabet: input ∪ {Blank}.
func TapeAlphabet(input []InputSymbol) []TapeSymbol {
	out := make([]TapeSymbol, 0, len(input)+1)
	for _, s := range input {
		out = append(out, s.Tape())
	}
	return append(out, Blank)
}
