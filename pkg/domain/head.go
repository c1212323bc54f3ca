package domain

// Head is the read/write position on a tape.
// It borrows the tape; moving it is delegated to Tape.Step.
type Head struct {
	tape     *Tape
	position *Cell
}

// NewHead places a head on the initial cell of tape.
func NewHead(tape *Tape) *Head {
	return &Head{
		tape:     tape,
		position: tape.InitialHeadCell(),
	}
}

// Position returns the cell under the head.
func (h *Head) Position() *Cell {
	return h.position
}

// Tape returns the tape the head is bound to.
func (h *Head) Tape() *Tape {
	return h.tape
}

// Index returns the position of the head on the tape.
func (h *Head) Index() int {
	return h.tape.Index(h.position)
}

// Read returns the symbol under the head.
func (h *Head) Read() TapeSymbol {
	return h.position.Symbol()
}

// Write replaces the symbol under the head.
func (h *Head) Write(sym TapeSymbol) {
	h.position.SetSymbol(sym)
}

// Move steps the head one cell in dir.
func (h *Head) Move(dir Direction) {
	h.position = h.tape.Step(h.position, dir)
}
