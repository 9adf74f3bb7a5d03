package dump

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/iris-hep/qastle/internal/ast"
)

// Domain prefixes for content hashes. The version suffix allows the
// algorithm to change without colliding with stored hashes.
const (
	DomainExpr   = "qastle/expr/v1"
	DomainRecord = "qastle/record/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data) as hex.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Hash returns the content hash of e's canonical JSON.
func Hash(e ast.Expr) (string, error) {
	data, err := Expr(e)
	if err != nil {
		return "", fmt.Errorf("hash: %w", err)
	}
	return hashWithDomain(DomainExpr, data), nil
}

// RecordHash returns the content hash of a canonical text record.
func RecordHash(text string) string {
	data, _ := Marshal(String(text))
	return hashWithDomain(DomainRecord, data)
}
