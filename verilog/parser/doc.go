// Package parser provides a streaming parser for Verilog and SystemVerilog
// source text, following the grammar of IEEE 1800-2017 Annex A.
//
// # Overview
//
// Every syntactic category is a production: a function that inspects a prefix
// of the unconsumed input and reports one of three outcomes.
//
//	func(in Input) (T, Input, error)
//
//	┌───────────────┐   node, rest, nil              ┌───────────────┐
//	│    Input      │───────────────────────────────▶│  Parsed       │
//	│ (immutable    │   nil, in, *IncompleteError    ├───────────────┤
//	│  text view)   │───────────────────────────────▶│  Needs input  │
//	│               │   nil, in, *Error              ├───────────────┤
//	└───────────────┘───────────────────────────────▶│  Failed       │
//	                                                 └───────────────┘
//
// A production never mutates its input. On success the returned Input is the
// unconsumed suffix, and the consumed prefix joined with it reproduces the
// original text byte for byte. On failure the returned Input is the one that
// was passed in, so an ordered choice (see Alt) can try the next alternative
// without rewinding.
//
// # Streaming Interface
//
// An Input does not claim to hold the whole source unless it was created with
// WithEndOfSource. When a production reaches the end of a non-final Input
// while a longer match is still possible, it returns an *IncompleteError
// carrying a lower bound on the number of bytes required to make progress.
// The caller refills and retries:
//
//	s := parser.NewSourceTextStream(parser.NewSource("top.sv"))
//	s.Write(chunk1) // parses as far as possible, keeps the undecided tail
//	s.Write(chunk2) // resumes from the last committed item
//	tree, err := s.Close()
//
// Drive implements the blocking read-then-retry loop over an io.Reader.
//
// # Error Taxonomy
//
// Failures are reported with three disjoint error types:
//
//   - *Error: the input cannot begin the attempted production. Kind names the
//     production; Loc spans the bytes examined before the failure was certain.
//   - *IncompleteError: the input is a valid but truncated prefix.
//   - *UnimplementedError: the production has no grammar body yet.
//
// The parser never repairs input. Parsing stops at the first failure.
//
// # Traceability
//
// Each node type cites the Annex A clause it implements in its documentation
// as "<Section Header> DEF: <index>", where index is the zero-based position
// of the definition within that section.
package parser
