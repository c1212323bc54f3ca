package turing_test

import (
	"context"
	"fmt"

	"github.com/hashpad/turing"
	"github.com/hashpad/turing/pkg/presets"
)

func Example() {
	eng, err := turing.FromPreset(presets.AddOne, turing.WithTape("1011"))
	if err != nil {
		panic(err)
	}

	res, err := eng.Run(context.Background())
	if err != nil {
		panic(err)
	}
	fmt.Println(res.Tape, res.Verdict)
	// Output: 1100 accepted
}

func ExampleEngine_Subscribe() {
	eng, err := turing.FromPreset(presets.AddOne, turing.WithTape("1"))
	if err != nil {
		panic(err)
	}

	unsubscribe := eng.Subscribe(turing.ObserverFunc(func(s turing.Snapshot) {
		fmt.Printf("%d %s %s\n", s.Steps, s.State, s.Contents())
	}))
	defer unsubscribe()

	if _, err := eng.Run(context.Background()); err != nil {
		panic(err)
	}
	// Output:
	// 0 s 1
	// 1 q1 1#
	// 2 q2 1#
	// 3 q2 #0#
	// 4 f #10#
	// 5 f #10#
}
