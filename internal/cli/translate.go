package cli

import (
	"fmt"

	"github.com/iris-hep/qastle/internal/ast"
	"github.com/iris-hep/qastle/internal/dump"
)

// TranslationResult is the structured payload of decode, encode and expand.
type TranslationResult struct {
	Text string `json:"text" yaml:"text"`
	Node string `json:"node,omitempty" yaml:"node,omitempty"`
	Hash string `json:"hash" yaml:"hash"`
	AST  any    `json:"ast,omitempty" yaml:"ast,omitempty"`
}

// translation reports canonical text together with the tree it encodes.
// Text output prints the record, followed by the tree dump when withAST.
func (f *OutputFormatter) translation(text string, e ast.Expr, withAST bool) error {
	v, err := dump.FromExpr(e)
	if err != nil {
		return f.Fail(ExitFailure, ErrCodeInternal, err)
	}
	hash, err := dump.Hash(e)
	if err != nil {
		return f.Fail(ExitFailure, ErrCodeInternal, err)
	}
	f.VerboseLog("node=%s hash=%s", ast.TypeName(e), hash)

	if !f.Structured() {
		fmt.Fprintln(f.Writer, text)
		if withAST {
			data, err := dump.Marshal(v)
			if err != nil {
				return f.Fail(ExitFailure, ErrCodeInternal, err)
			}
			fmt.Fprintln(f.Writer, string(data))
		}
		return nil
	}

	result := TranslationResult{Text: text, Hash: hash}
	if e != nil {
		result.Node = ast.TypeName(e)
	}
	if withAST {
		payload, err := f.dumpPayload(v)
		if err != nil {
			return f.Fail(ExitFailure, ErrCodeInternal, err)
		}
		result.AST = payload
	}
	return f.Success(result)
}
