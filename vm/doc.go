// Package vm implements the Kapila execution core.
//
// This package contains:
//   - Tagged value representation (Integer, Float, Boolean, Text, List)
//   - The fixed-capacity operand stack
//   - The allocation arena tracking every Text buffer and List for bulk release
//   - Primitive operations: arithmetic, comparison, logic, stack shuffling,
//     text, lists, and I/O
//   - Recorded-program replay with a word dictionary
//
// A Session ties these together for one initialize-to-finalize lifetime. An
// external driver pushes values and invokes primitives against it; nothing in
// this package parses or compiles source text.
package vm
