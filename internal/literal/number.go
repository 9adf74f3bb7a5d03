// Package literal converts numeric and string literals between their
// textual spellings and values.
//
// Number rendering follows the shortest round-tripping form: integers have
// no decimal point, floats always carry one unless written in exponent
// notation. String rendering prefers single quotes and switches to double
// quotes only when that avoids escaping.
package literal

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/iris-hep/qastle/internal/ast"
)

// ParseNumber parses a numeric literal with an optional sign, digits, an
// optional fraction and an optional exponent. A leading '+' is dropped and
// a leading '-' yields a negative value.
func ParseNumber(text string) (*ast.NumericLiteral, error) {
	body := text
	negative := false
	if body != "" && (body[0] == '+' || body[0] == '-') {
		negative = body[0] == '-'
		body = body[1:]
	}
	if !isNumberBody(body) {
		return nil, fmt.Errorf("invalid numeric literal %q", text)
	}

	var n *ast.NumericLiteral
	if strings.ContainsAny(body, ".eE") {
		f, err := strconv.ParseFloat(body, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid numeric literal %q: %w", text, err)
		}
		n, err = ast.NewFloat(f)
		if err != nil {
			return nil, err
		}
	} else {
		i, ok := new(big.Int).SetString(body, 10)
		if !ok {
			return nil, fmt.Errorf("invalid numeric literal %q", text)
		}
		n = &ast.NumericLiteral{Int: i}
	}
	if negative {
		n = n.Negate()
	}
	return n, nil
}

// isNumberBody checks digits, optional fraction, optional exponent.
// At least one mantissa digit is required.
func isNumberBody(s string) bool {
	i, digits := 0, 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		start := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i == start {
			return false
		}
	}
	return i == len(s)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// FormatNumber renders n in canonical form.
func FormatNumber(n *ast.NumericLiteral) (string, error) {
	if !n.IsFloat {
		if n.Int == nil {
			return "", fmt.Errorf("integer literal has no value")
		}
		return n.Int.String(), nil
	}
	return FormatFloat(n.Float)
}

// FormatFloat renders f as its shortest round-tripping repr: fixed notation
// with at least one fractional digit when the decimal exponent lies in
// [-4, 16), exponent notation with a two-digit minimum exponent otherwise.
func FormatFloat(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("numeric literal must be finite, got %v", f)
	}
	if f == 0 {
		if math.Signbit(f) {
			return "-0.0", nil
		}
		return "0.0", nil
	}

	// 'e' with -1 precision yields the shortest digits, e.g. "5.6e+23".
	sci := strconv.FormatFloat(f, 'e', -1, 64)
	mant, expPart, _ := strings.Cut(sci, "e")
	exp, err := strconv.Atoi(expPart)
	if err != nil {
		return "", fmt.Errorf("formatting %v: %w", f, err)
	}
	if exp < -4 || exp >= 16 {
		sign := "+"
		if exp < 0 {
			sign = "-"
			exp = -exp
		}
		return fmt.Sprintf("%se%s%02d", mant, sign, exp), nil
	}

	fixed := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(fixed, ".") {
		fixed += ".0"
	}
	return fixed, nil
}
