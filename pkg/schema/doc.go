// Package schema defines the serializable machine format and its validation.
//
// A definition is usually written in YAML:
//
//	name: add one
//	tape: "11"
//	states: [q0, q1, f]
//	accept: [f]
//	transitions:
//	  - {state: q0, read: "*", write: "*", move: R, next: q0}
//	  - {state: q0, read: "#", write: "#", move: L, next: q1}
//	  - {state: q1, read: "1", write: "0", move: L, next: q1}
//	  - {state: q1, read: "*", write: "1", move: N, next: f}
//
// Read and write values outside the input alphabet stand for the blank symbol.
// A "*" read matches every symbol the state has no explicit rule for, and a "*"
// write writes back the symbol that was read.
//
// Validate reports every problem at once as an *AggregateError of
// *ValidationError values; Build turns a valid definition into a machine:
//
//	def, err := schema.Load("add-one.yaml")
//	if err != nil {
//	    return err
//	}
//	m, err := def.Build(logger)
//	if err != nil {
//	    for _, e := range schema.ValidationErrors(err) {
//	        fmt.Println(e)
//	    }
//	}
package schema
