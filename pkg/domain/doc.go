/*
Package domain contains the core data model of the Turing machine engine.

It defines the alphabet, the control states, the tape and its head, the
machine configuration, and the transition table. This package is kept pure
and free of external dependencies like I/O or persistence, following
Hexagonal Architecture principles.

# Key Entities

  - Symbol, TapeSymbol, InputSymbol: single-character alphabet values. Blank is the reserved tape symbol.
  - State: an identity-bearing control state with a process-unique sequential ID.
  - Tape: an ordered sequence of cells that grows lazily in both directions.
  - Head: a cursor bound to one cell of a Tape.
  - Config / NextConfig: the (state, symbol) pair under the head, and a transition outcome with a move direction.
  - TransitionTable: the machine's program, keyed by structural equality of (state, symbol).
  - Snapshot: an immutable copy of the machine's read surface, handed to observers.
*/
package domain
