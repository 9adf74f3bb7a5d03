// Package ast defines the expression tree shared by every translation stage.
//
// SEALED UNION:
//
// Expr is a sealed interface using the marker method pattern. Only the node
// types in this package implement it, and only through pointer receivers, so
// a type switch over *Identifier, *NumericLiteral, ... , *LINQ covers every
// variant. Adding a variant means updating each switch in transform, linq,
// columns and dump; each of those has a default branch that fails loudly.
//
// OWNERSHIP:
//
// Nodes are built by the canonical decoder, the host front end, or the LINQ
// expander and are never mutated afterwards. Each node is owned by exactly
// one parent. Rewrites return new parents and reuse unchanged children.
//
// LINQ NODES:
//
// Query operators (Where, Select, ...) are a single *LINQ node carrying an
// OperatorKind and its operands in the fixed order given by the operator
// table (see Operators). NewLINQ validates operand count and lambda arity.
package ast
