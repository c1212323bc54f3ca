/*
Package dsl provides a Go DSL for programmatically constructing Turing machines.

It allows developers to define machines with a type-safe, fluent builder
instead of relying on external YAML or JSON definitions. This is useful for
tests and for generating machines in code.

Example usage:

	b := dsl.New().Tape("11")

	b.State("q0").
		Right("0", "0", "q0").
		Right("1", "1", "q0").
		Left("#", "#", "q1")

	b.State("q1").
		Left("1", "0", "q1").
		Stay("0", "1", "f").
		Stay("#", "1", "f")

	b.State("f").Accept()

	m, err := b.Build()
	// ... m.Step() until !m.Running()
*/
package dsl
