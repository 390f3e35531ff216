package mpd

import "strings"

// Tokenize splits one request line into a command token followed by zero or
// more argument tokens. Whitespace separates unquoted tokens. A token
// starting with `"` runs to the next unescaped `"`; inside a quoted token
// `\"` and `\\` decode to `"` and `\`. An unterminated quoted token, or a
// backslash at the very end of the line, is an Arg error.
func Tokenize(line string) ([]string, error) {
	var tokens []string
	i := 0
	n := len(line)

	for i < n {
		for i < n && isSpace(line[i]) {
			i++
		}
		if i >= n {
			break
		}

		if line[i] == '"' {
			tok, next, err := scanQuoted(line, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			i = next
			continue
		}

		start := i
		for i < n && !isSpace(line[i]) {
			i++
		}
		if i == n && line[n-1] == '\\' {
			return nil, ArgError("", "incorrect arguments")
		}
		tokens = append(tokens, line[start:i])
	}

	return tokens, nil
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}

// scanQuoted reads a double-quoted token starting at line[start] == '"' and
// returns the decoded token plus the index just past its closing quote.
func scanQuoted(line string, start int) (string, int, error) {
	var b strings.Builder
	i := start + 1
	n := len(line)

	for i < n {
		c := line[i]
		switch c {
		case '"':
			return b.String(), i + 1, nil
		case '\\':
			if i+1 >= n {
				return "", 0, ArgError("", "incorrect arguments")
			}
			esc := line[i+1]
			switch esc {
			case '"', '\\':
				b.WriteByte(esc)
			default:
				b.WriteByte('\\')
				b.WriteByte(esc)
			}
			i += 2
		default:
			b.WriteByte(c)
			i++
		}
	}

	return "", 0, ArgError("", "incorrect arguments")
}
