/*
Package turing is a single-tape deterministic Turing machine engine.

A machine is a finite set of states, a transition table keyed by (state, symbol),
and a tape that grows in both directions as the head moves past either end. Each
step looks up the current configuration, writes a symbol, moves the head and
switches state. A configuration without a rule is applied as an idle self-loop,
and the machine halts as soon as a step leaves the configuration unchanged. It
accepts when it halts in an accepting state.

# Usage

Machines are described as YAML or JSON (see package schema), built from a preset,
or assembled in Go with package dsl.

	eng, err := turing.New("add-one.yaml")
	if err != nil {
		log.Fatal(err)
	}

	res, err := eng.Run(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(res.Tape, res.Verdict)

Observers receive an immutable Snapshot after every step, which is how the CLI
animates the tape and how the trace stores record runs:

	unsubscribe := eng.Subscribe(turing.ObserverFunc(func(s turing.Snapshot) {
		fmt.Println(s.State, s.Contents())
	}))
	defer unsubscribe()
*/
package turing
