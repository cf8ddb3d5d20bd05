package phparray

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// SyntaxError points at the first construct the evaluator could not handle.
type SyntaxError struct {
	Line   int
	Column int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Msg)
}

// Parse evaluates src and returns the value of its return statement. A script
// without a return statement evaluates to an empty array.
func Parse(src []byte) (any, error) {
	p := &parser{src: string(src)}
	return p.script()
}

type parser struct {
	src string
	pos int
}

func (p *parser) script() (any, error) {
	p.skipOpenTag()

	for {
		p.skipSpace()
		if p.eof() || p.hasPrefix("?>") {
			return NewArray(), nil
		}

		word := p.peekIdent()
		switch strings.ToLower(word) {
		case "return":
			p.pos += len(word)
			value, err := p.expression()
			if err != nil {
				return nil, err
			}
			p.skipSpace()
			if !p.eof() && !p.consume(";") && !p.hasPrefix("?>") {
				return nil, p.errorf("expected ';' after return value")
			}
			return value, nil
		case "declare":
			p.pos += len(word)
			p.skipSpace()
			if !p.consume("(") {
				return nil, p.errorf("expected '(' after declare")
			}
			if err := p.skipParens(); err != nil {
				return nil, err
			}
			p.skipSpace()
			if !p.consume(";") {
				return nil, p.errorf("expected ';' after declare")
			}
		case "namespace", "use":
			p.pos += len(word)
			if err := p.skipStatement(); err != nil {
				return nil, err
			}
		default:
			return nil, p.errorf("unsupported statement, only 'return' of a literal array is evaluated")
		}
	}
}

func (p *parser) skipOpenTag() {
	if strings.HasPrefix(p.src, "\xef\xbb\xbf") {
		p.pos = 3
	}
	if strings.HasPrefix(p.src[p.pos:], "#!") {
		for !p.eof() && p.src[p.pos] != '\n' {
			p.pos++
		}
	}
	p.skipWhitespace()
	if len(p.src)-p.pos >= 5 && strings.EqualFold(p.src[p.pos:p.pos+5], "<?php") {
		p.pos += len("<?php")
	}
}

func (p *parser) skipStatement() error {
	for !p.eof() {
		p.skipSpace()
		if p.eof() {
			break
		}
		if p.consume(";") {
			return nil
		}
		p.pos++
	}
	return p.errorf("unexpected end of file, expected ';'")
}

// skipParens moves past the ')' matching an already consumed '('.
func (p *parser) skipParens() error {
	depth := 1
	for !p.eof() {
		switch p.src[p.pos] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				p.pos++
				return nil
			}
		}
		p.pos++
	}
	return p.errorf("unexpected end of file, expected ')'")
}

// expression handles string concatenation, the only operator translation
// files use in practice.
func (p *parser) expression() (any, error) {
	left, err := p.primary()
	if err != nil {
		return nil, err
	}

	for {
		p.skipSpace()
		if p.eof() || p.src[p.pos] != '.' || p.hasPrefix("...") || p.hasPrefix(".=") {
			return left, nil
		}
		p.pos++
		right, err := p.primary()
		if err != nil {
			return nil, err
		}
		leftStr, err := p.toString(left)
		if err != nil {
			return nil, err
		}
		rightStr, err := p.toString(right)
		if err != nil {
			return nil, err
		}
		left = leftStr + rightStr
	}
}

func (p *parser) primary() (any, error) {
	p.skipSpace()
	if p.eof() {
		return nil, p.errorf("unexpected end of file, expected a value")
	}

	c := p.src[p.pos]
	switch {
	case c == '[':
		p.pos++
		return p.elements("]")
	case c == '(':
		p.pos++
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if !p.consume(")") {
			return nil, p.errorf("expected ')'")
		}
		return value, nil
	case c == '\'':
		return p.singleQuoted()
	case c == '"':
		return p.doubleQuoted()
	case p.hasPrefix("<<<"):
		return p.heredoc()
	case c == '-' || c == '+':
		p.pos++
		value, err := p.primary()
		if err != nil {
			return nil, err
		}
		return p.applySign(c, value)
	case isDigit(c) || (c == '.' && p.pos+1 < len(p.src) && isDigit(p.src[p.pos+1])):
		return p.number()
	case isIdentStart(c) || c == '\\':
		return p.keyword()
	}

	return nil, p.errorf("unexpected character %q", c)
}

func (p *parser) keyword() (any, error) {
	p.consume("\\")
	word := p.peekIdent()
	lower := strings.ToLower(word)
	switch lower {
	case "true":
		p.pos += len(word)
		return true, nil
	case "false":
		p.pos += len(word)
		return false, nil
	case "null":
		p.pos += len(word)
		return nil, nil
	case "array":
		p.pos += len(word)
		p.skipSpace()
		if !p.consume("(") {
			return nil, p.errorf("expected '(' after array")
		}
		return p.elements(")")
	}

	return nil, p.errorf("unsupported expression %q, only literal values are evaluated", word)
}

func (p *parser) elements(closing string) (any, error) {
	array := NewArray()
	for {
		p.skipSpace()
		if p.consume(closing) {
			return array, nil
		}
		if p.eof() {
			return nil, p.errorf("unexpected end of file, expected '%s'", closing)
		}

		first, err := p.expression()
		if err != nil {
			return nil, err
		}

		p.skipSpace()
		if p.consume("=>") {
			value, err := p.expression()
			if err != nil {
				return nil, err
			}
			if _, isArray := first.(*Array); isArray {
				return nil, p.errorf("illegal offset type: arrays cannot be used as keys")
			}
			array.Set(first, value)
		} else {
			array.Append(first)
		}

		p.skipSpace()
		if p.consume(",") {
			continue
		}
		if p.consume(closing) {
			return array, nil
		}
		return nil, p.errorf("expected ',' or '%s'", closing)
	}
}

func (p *parser) singleQuoted() (any, error) {
	p.pos++
	var sb strings.Builder
	for !p.eof() {
		c := p.src[p.pos]
		switch {
		case c == '\'':
			p.pos++
			return sb.String(), nil
		case c == '\\' && p.pos+1 < len(p.src) && (p.src[p.pos+1] == '\'' || p.src[p.pos+1] == '\\'):
			sb.WriteByte(p.src[p.pos+1])
			p.pos += 2
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}
	return nil, p.errorf("unterminated string")
}

func (p *parser) doubleQuoted() (any, error) {
	start := p.pos
	p.pos++
	for !p.eof() {
		switch p.src[p.pos] {
		case '\\':
			p.pos += 2
		case '"':
			body := p.src[start+1 : p.pos]
			p.pos++
			return p.unescape(body, '"')
		default:
			p.pos++
		}
	}
	p.pos = start
	return nil, p.errorf("unterminated string")
}

func (p *parser) heredoc() (any, error) {
	p.pos += len("<<<")
	for !p.eof() && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}

	quote := byte(0)
	if !p.eof() && (p.src[p.pos] == '\'' || p.src[p.pos] == '"') {
		quote = p.src[p.pos]
		p.pos++
	}
	label := p.peekIdent()
	if label == "" {
		return nil, p.errorf("missing heredoc identifier")
	}
	p.pos += len(label)
	if quote != 0 && !p.consume(string(quote)) {
		return nil, p.errorf("unterminated heredoc identifier")
	}
	if !p.consume("\r\n") && !p.consume("\n") {
		return nil, p.errorf("expected newline after heredoc identifier")
	}

	bodyStart := p.pos
	lines := []string{}
	for !p.eof() {
		end := strings.IndexByte(p.src[p.pos:], '\n')
		line := p.src[p.pos:]
		if end >= 0 {
			line = p.src[p.pos : p.pos+end]
		}
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, label) && !startsWithIdentChar(trimmed[len(label):]) {
			indent := line[:len(line)-len(trimmed)]
			p.pos += len(indent) + len(label)
			body, err := dedent(lines, indent)
			if err != nil {
				p.pos = bodyStart
				return nil, p.errorf("%s", err)
			}
			if quote == '\'' {
				return body, nil
			}
			return p.unescape(body, 0)
		}
		lines = append(lines, strings.TrimSuffix(line, "\r"))
		if end < 0 {
			break
		}
		p.pos += end + 1
	}

	p.pos = bodyStart
	return nil, p.errorf("unterminated heredoc, missing closing %q", label)
}

func dedent(lines []string, indent string) (string, error) {
	if indent == "" {
		return strings.Join(lines, "\n"), nil
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			out[i] = strings.TrimPrefix(line, indent)
			continue
		}
		if !strings.HasPrefix(line, indent) {
			return "", fmt.Errorf("invalid body indentation level in heredoc")
		}
		out[i] = line[len(indent):]
	}
	return strings.Join(out, "\n"), nil
}

// unescape resolves the escape sequences of double quoted strings and
// heredocs. Variable interpolation is rejected.
func (p *parser) unescape(body string, quote byte) (any, error) {
	var sb strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c == '$' && i+1 < len(body) && (isIdentStart(body[i+1]) || body[i+1] == '{') {
			return nil, p.errorf("string interpolation is not supported")
		}
		if c == '{' && i+1 < len(body) && body[i+1] == '$' {
			return nil, p.errorf("string interpolation is not supported")
		}
		if c != '\\' || i+1 >= len(body) {
			sb.WriteByte(c)
			continue
		}

		next := body[i+1]
		switch next {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case 'v':
			sb.WriteByte('\v')
		case 'e':
			sb.WriteByte(0x1b)
		case 'f':
			sb.WriteByte('\f')
		case '\\':
			sb.WriteByte('\\')
		case '$':
			sb.WriteByte('$')
		case '"':
			if quote == '"' {
				sb.WriteByte('"')
			} else {
				sb.WriteString(`\"`)
			}
		case 'x':
			j := i + 2
			for j < len(body) && j < i+4 && isHex(body[j]) {
				j++
			}
			if j == i+2 {
				sb.WriteString(`\x`)
				break
			}
			value, _ := strconv.ParseUint(body[i+2:j], 16, 8)
			sb.WriteByte(byte(value))
			i = j - 2
		case 'u':
			if i+2 >= len(body) || body[i+2] != '{' {
				sb.WriteString(`\u`)
				break
			}
			end := strings.IndexByte(body[i+2:], '}')
			if end < 0 {
				return nil, p.errorf("invalid UTF-8 codepoint escape sequence")
			}
			codepoint, err := strconv.ParseUint(body[i+3:i+2+end], 16, 32)
			if err != nil || codepoint > utf8.MaxRune {
				return nil, p.errorf("invalid UTF-8 codepoint escape sequence")
			}
			sb.WriteRune(rune(codepoint))
			i = i + 2 + end - 1
		default:
			if next >= '0' && next <= '7' {
				j := i + 1
				for j < len(body) && j < i+4 && body[j] >= '0' && body[j] <= '7' {
					j++
				}
				value, _ := strconv.ParseUint(body[i+1:j], 8, 16)
				sb.WriteByte(byte(value))
				i = j - 2
				break
			}
			sb.WriteByte('\\')
			sb.WriteByte(next)
		}
		i++
	}
	return sb.String(), nil
}

func (p *parser) number() (any, error) {
	start := p.pos
	lower := strings.ToLower(p.src[p.pos:min(p.pos+2, len(p.src))])

	base := 10
	switch {
	case strings.HasPrefix(lower, "0x"):
		base = 16
		p.pos += 2
	case strings.HasPrefix(lower, "0b"):
		base = 2
		p.pos += 2
	case strings.HasPrefix(lower, "0o"):
		base = 8
		p.pos += 2
	}

	isFloat := false
scan:
	for !p.eof() {
		c := p.src[p.pos]
		switch {
		case c == '_' || isDigit(c) || (base == 16 && isHex(c)):
			p.pos++
		case base == 10 && c == '.' && !isFloat && p.pos+1 < len(p.src) && p.src[p.pos+1] != '.':
			isFloat = true
			p.pos++
		case base == 10 && (c == 'e' || c == 'E'):
			isFloat = true
			p.pos++
			if !p.eof() && (p.src[p.pos] == '+' || p.src[p.pos] == '-') {
				p.pos++
			}
		default:
			break scan
		}
	}

	literal := strings.ReplaceAll(p.src[start:p.pos], "_", "")
	if isFloat {
		value, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			p.pos = start
			return nil, p.errorf("invalid number %q", literal)
		}
		return value, nil
	}

	digits := literal
	if base != 10 {
		digits = literal[2:]
	} else if len(literal) > 1 && literal[0] == '0' {
		base = 8
		digits = literal[1:]
	}
	value, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		// Integers beyond int64 become floats, as in PHP.
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			unsigned, uerr := strconv.ParseUint(digits, base, 64)
			if uerr == nil {
				return float64(unsigned), nil
			}
			return math.Inf(1), nil
		}
		p.pos = start
		return nil, p.errorf("invalid number %q", literal)
	}
	return value, nil
}

func (p *parser) applySign(sign byte, value any) (any, error) {
	switch v := value.(type) {
	case int64:
		if sign == '-' {
			return -v, nil
		}
		return v, nil
	case float64:
		if sign == '-' {
			return -v, nil
		}
		return v, nil
	}
	return nil, p.errorf("unary %c is only supported on numbers", sign)
}

func (p *parser) toString(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'G', 14, 64), nil
	case bool:
		if v {
			return "1", nil
		}
		return "", nil
	case nil:
		return "", nil
	}
	return "", p.errorf("cannot concatenate an array")
}

func (p *parser) skipSpace() {
	for !p.eof() {
		c := p.src[p.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v':
			p.pos++
		case c == '#' && !p.hasPrefix("#["), p.hasPrefix("//"):
			for !p.eof() && p.src[p.pos] != '\n' && !p.hasPrefix("?>") {
				p.pos++
			}
		case p.hasPrefix("/*"):
			end := strings.Index(p.src[p.pos+2:], "*/")
			if end < 0 {
				p.pos = len(p.src)
				return
			}
			p.pos += end + 4
		default:
			return
		}
	}
}

func (p *parser) skipWhitespace() {
	for !p.eof() && strings.IndexByte(" \t\r\n", p.src[p.pos]) >= 0 {
		p.pos++
	}
}

func (p *parser) peekIdent() string {
	end := p.pos
	for end < len(p.src) && (isIdentStart(p.src[end]) || (end > p.pos && isDigit(p.src[end]))) {
		end++
	}
	return p.src[p.pos:end]
}

func (p *parser) consume(token string) bool {
	if p.hasPrefix(token) {
		p.pos += len(token)
		return true
	}
	return false
}

func (p *parser) hasPrefix(token string) bool {
	return strings.HasPrefix(p.src[p.pos:], token)
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) errorf(format string, args ...any) error {
	consumed := p.src[:min(p.pos, len(p.src))]
	line := 1 + strings.Count(consumed, "\n")
	column := len(consumed) - strings.LastIndexByte(consumed, '\n')
	return &SyntaxError{Line: line, Column: column, Msg: fmt.Sprintf(format, args...)}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHex(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func startsWithIdentChar(s string) bool {
	return s != "" && (isIdentStart(s[0]) || isDigit(s[0]))
}
