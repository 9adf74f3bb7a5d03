package literal

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Unquote decodes a quoted string literal delimited by ' or ".
func Unquote(quoted string) (string, error) {
	if len(quoted) < 2 {
		return "", fmt.Errorf("invalid string literal %q", quoted)
	}
	q := quoted[0]
	if (q != '\'' && q != '"') || quoted[len(quoted)-1] != q {
		return "", fmt.Errorf("invalid string literal %q", quoted)
	}
	return UnescapeBody(quoted[1:len(quoted)-1], q)
}

// UnescapeBody resolves backslash escapes in the body of a string literal
// delimited by quote. An unescaped delimiter inside the body is an error.
// Unknown escapes keep their backslash. The body must be valid UTF-8.
func UnescapeBody(body string, quote byte) (string, error) {
	if !utf8.ValidString(body) {
		return "", fmt.Errorf("string literal is not valid UTF-8")
	}
	if !strings.ContainsRune(body, '\\') {
		if strings.IndexByte(body, quote) >= 0 {
			return "", fmt.Errorf("unescaped %c inside string literal", quote)
		}
		return body, nil
	}

	var sb strings.Builder
	sb.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c == quote {
			return "", fmt.Errorf("unescaped %c inside string literal", quote)
		}
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		if i+1 >= len(body) {
			return "", fmt.Errorf("string literal ends with a lone backslash")
		}
		i++
		switch e := body[i]; e {
		case '\n':
			// line continuation
		case '\\', '\'', '"':
			sb.WriteByte(e)
		case 'a':
			sb.WriteByte('\a')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'v':
			sb.WriteByte('\v')
		case '0', '1', '2', '3', '4', '5', '6', '7':
			j := i
			for j < len(body) && j < i+3 && body[j] >= '0' && body[j] <= '7' {
				j++
			}
			v, _ := strconv.ParseUint(body[i:j], 8, 32)
			sb.WriteRune(rune(v))
			i = j - 1
		case 'x', 'u', 'U':
			width := map[byte]int{'x': 2, 'u': 4, 'U': 8}[e]
			if i+1+width > len(body) {
				return "", fmt.Errorf("truncated \\%c escape", e)
			}
			hex := body[i+1 : i+1+width]
			v, err := strconv.ParseUint(hex, 16, 32)
			if err != nil {
				return "", fmt.Errorf("invalid \\%c escape %q", e, hex)
			}
			if v > unicode.MaxRune || (v >= 0xD800 && v <= 0xDFFF) {
				return "", fmt.Errorf("escape \\%c%s is not a valid code point", e, hex)
			}
			sb.WriteRune(rune(v))
			i += width
		default:
			sb.WriteByte('\\')
			sb.WriteByte(e)
		}
	}
	return sb.String(), nil
}

// Quote renders s as a string literal. Single quotes are used unless s
// contains a single quote and no double quote. s should be valid UTF-8;
// invalid bytes are rendered as U+FFFD.
func Quote(s string) string {
	q := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}

	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte(q)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		switch {
		case r == '\\':
			sb.WriteString(`\\`)
		case r == rune(q):
			sb.WriteByte('\\')
			sb.WriteByte(q)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\r':
			sb.WriteString(`\r`)
		case r == '\t':
			sb.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&sb, `\x%02x`, r)
		case r < 0x80 || unicode.IsPrint(r):
			sb.WriteRune(r)
		case r <= 0xff:
			fmt.Fprintf(&sb, `\x%02x`, r)
		case r <= 0xffff:
			fmt.Fprintf(&sb, `\u%04x`, r)
		default:
			fmt.Fprintf(&sb, `\U%08x`, r)
		}
	}
	sb.WriteByte(q)
	return sb.String()
}
