// Package transform maps between the canonical text form and the
// expression tree.
//
// Decoding walks a syntax parse tree bottom-up and validates each composite
// against the node-type table: list, dict, attr, subscript, call, if,
// lambda, the operator symbols, and the LINQ operator names. Encoding
// renders a tree back to text, applying the canonical literal policies.
//
// The symbols + and - are both unary and binary. Field count alone picks
// the meaning: one field is a UnaryOp, two fields a BinaryOp.
package transform
