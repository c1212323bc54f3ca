package domain

import (
	"fmt"
	"strings"
)

// Cell holds exactly one tape symbol.
// Cells are compared by identity: two cells holding equal symbols are different positions.
type Cell struct {
	symbol TapeSymbol
}

// NewCell creates a cell holding sym.
func NewCell(sym TapeSymbol) *Cell {
	return &Cell{symbol: sym}
}

// Symbol returns the symbol held by the cell.
func (c *Cell) Symbol() TapeSymbol {
	return c.symbol
}

// SetSymbol replaces the symbol held by the cell.
func (c *Cell) SetSymbol(sym TapeSymbol) {
	c.symbol = sym
}

// Tape is a sequence of cells, infinite in both directions.
// Stepping past either end inserts a fresh Blank cell. The tape never shrinks.
type Tape struct {
	cells []*Cell
}

// NewTape creates a tape holding symbols in order.
// An empty tape starts with a single Blank cell.
func NewTape(symbols ...TapeSymbol) *Tape {
	if len(symbols) == 0 {
		symbols = []TapeSymbol{Blank}
	}
	cells := make([]*Cell, len(symbols))
	for i, s := range symbols {
		cells[i] = NewCell(s)
	}
	return &Tape{cells: cells}
}

// InitialHeadCell returns the first cell of the tape.
func (t *Tape) InitialHeadCell() *Cell {
	return t.cells[0]
}

// Step returns the neighbour of cell in the given direction, growing the tape if needed.
// Stay returns cell itself. It panics if cell is not on this tape.
func (t *Tape) Step(cell *Cell, dir Direction) *Cell {
	if dir == Stay {
		return cell
	}

	idx := t.Index(cell)
	if idx < 0 {
		panic("domain: cell does not belong to tape")
	}

	switch dir {
	case Right:
		if idx == len(t.cells)-1 {
			t.cells = append(t.cells, NewCell(Blank))
		}
		return t.cells[idx+1]
	case Left:
		if idx == 0 {
			t.cells = append([]*Cell{NewCell(Blank)}, t.cells...)
			idx++
		}
		return t.cells[idx-1]
	default:
		panic(fmt.Sprintf("domain: invalid direction %v", dir))
	}
}

// Index returns the position of cell on the tape, or -1.
func (t *Tape) Index(cell *Cell) int {
	for i, c := range t.cells {
		if c == cell {
			return i
		}
	}
	return -1
}

// Len returns the number of materialized cells.
func (t *Tape) Len() int {
	return len(t.cells)
}

// Cells returns a copy of the cell sequence.
func (t *Tape) Cells() []*Cell {
	out := make([]*Cell, len(t.cells))
	copy(out, t.cells)
	return out
}

// Symbols returns the symbols of all cells in order.
func (t *Tape) Symbols() []TapeSymbol {
	out := make([]TapeSymbol, len(t.cells))
	for i, c := range t.cells {
		out[i] = c.symbol
	}
	return out
}

// String returns the tape contents, blanks included.
func (t *Tape) String() string {
	var sb strings.Builder
	for _, c := range t.cells {
		sb.WriteString(c.symbol.Value())
	}
	return sb.String()
}

// Trimmed returns the tape contents without leading and trailing blanks.
func (t *Tape) Trimmed() string {
	return strings.Trim(t.String(), BlankValue)
}
