package msgformat

import (
	"fmt"
	"strconv"
	"unicode"
)

const offsetKeyword = "offset:"

// Parse compiles a pattern into its AST. Malformed input yields a *ParseError.
func Parse(pattern string) (AST, error) {
	p := &parser{input: []rune(pattern)}
	nodes, err := p.parseMessage(false)
	if err != nil {
		return nil, err
	}
	return AST(nodes), nil
}

type parser struct {
	input []rune
	pos   int
}

func (p *parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *parser) peek() rune {
	return p.input[p.pos]
}

func (p *parser) errorf(pos int, format string, args ...interface{}) error {
	return &ParseError{Message: fmt.Sprintf(format, args...), Position: pos}
}

// parseMessage reads until EOF, or until an unconsumed '}' when inBranch is set.
func (p *parser) parseMessage(inBranch bool) ([]Node, error) {
	var nodes []Node
	for !p.eof() {
		switch ch := p.peek(); {
		case ch == '}' && inBranch:
			return mergeText(nodes), nil
		case ch == '{':
			start := p.pos
			p.pos++
			node, err := p.parseArgument(start)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
		case ch == '}':
			return nil, p.errorf(p.pos, "unexpected '}'")
		case ch == '\'':
			nodes = append(nodes, p.parseQuote())
		default:
			nodes = append(nodes, p.parseText())
		}
	}
	return mergeText(nodes), nil
}

func (p *parser) parseText() Node {
	start := p.pos
	for !p.eof() {
		ch := p.peek()
		if ch == '{' || ch == '}' || ch == '\'' {
			break
		}
		p.pos++
	}
	return Text{Value: string(p.input[start:p.pos])}
}

func (p *parser) parseQuote() Node {
	p.pos++
	if p.eof() {
		return Text{Value: "'"}
	}
	switch p.peek() {
	case '\'':
		p.pos++
		return Text{Value: "'"}
	case '{', '}':
		start := p.pos
		for !p.eof() && p.peek() != '\'' {
			p.pos++
		}
		text := string(p.input[start:p.pos])
		if !p.eof() {
			p.pos++
		}
		return Text{Value: text}
	default:
		return Text{Value: "'"}
	}
}

// parseArgument is entered just past the '{' found at open.
func (p *parser) parseArgument(open int) (Node, error) {
	p.skipWhitespace()
	name, err := p.parseIdentifier(open)
	if err != nil {
		return nil, err
	}
	p.skipWhitespace()
	if p.eof() {
		return nil, p.unterminated(open)
	}
	switch p.peek() {
	case '}':
		p.pos++
		return Argument{Name: name}, nil
	case ',':
		p.pos++
		p.skipWhitespace()
		return p.parseTypedArgument(open, name)
	default:
		return nil, p.errorf(p.pos, "expected ',' or '}' in argument")
	}
}

func (p *parser) parseTypedArgument(open int, name string) (Node, error) {
	typeStart := p.pos
	kind, err := p.parseIdentifier(open)
	if err != nil {
		return nil, err
	}
	p.skipWhitespace()

	switch kind {
	case "number":
		style, err := p.parseStyle(open)
		if err != nil {
			return nil, err
		}
		return NumberFormat{Name: name, Style: style}, nil
	case "date":
		style, err := p.parseStyle(open)
		if err != nil {
			return nil, err
		}
		return DateFormat{Name: name, Style: style}, nil
	case "time":
		style, err := p.parseStyle(open)
		if err != nil {
			return nil, err
		}
		return TimeFormat{Name: name, Style: style}, nil
	case "plural":
		offset, branches, err := p.parseBranchArgument(open, true)
		if err != nil {
			return nil, err
		}
		return Plural{Name: name, Offset: offset, Branches: branches}, nil
	case "selectordinal":
		offset, branches, err := p.parseBranchArgument(open, true)
		if err != nil {
			return nil, err
		}
		return SelectOrdinal{Name: name, Offset: offset, Branches: branches}, nil
	case "select":
		_, branches, err := p.parseBranchArgument(open, false)
		if err != nil {
			return nil, err
		}
		return Select{Name: name, Branches: branches}, nil
	default:
		return nil, p.errorf(typeStart, "unknown argument type '%s'", kind)
	}
}

// parseStyle reads the optional ", style" tail of number/date/time and the closing brace.
func (p *parser) parseStyle(open int) (string, error) {
	if p.eof() {
		return "", p.unterminated(open)
	}
	if p.peek() == '}' {
		p.pos++
		return "", nil
	}
	if err := p.expect(',', open); err != nil {
		return "", err
	}
	p.skipWhitespace()
	style, err := p.parseIdentifier(open)
	if err != nil {
		return "", err
	}
	p.skipWhitespace()
	if err := p.expect('}', open); err != nil {
		return "", err
	}
	return style, nil
}

func (p *parser) parseBranchArgument(open int, allowOffset bool) (int, Branches, error) {
	if err := p.expect(',', open); err != nil {
		return 0, Branches{}, err
	}
	p.skipWhitespace()

	offset := 0
	if allowOffset && p.hasPrefix(offsetKeyword) {
		p.pos += len([]rune(offsetKeyword))
		p.skipWhitespace()
		n, err := p.parseInteger(open)
		if err != nil {
			return 0, Branches{}, err
		}
		offset = int(n)
		p.skipWhitespace()
	}

	branches, err := p.parseBranches(open)
	if err != nil {
		return 0, Branches{}, err
	}
	if err := p.expect('}', open); err != nil {
		return 0, Branches{}, err
	}
	return offset, branches, nil
}

func (p *parser) parseBranches(open int) (Branches, error) {
	var pairs []Branch
	for {
		p.skipWhitespace()
		if p.eof() {
			return Branches{}, p.unterminated(open)
		}
		if p.peek() == '}' {
			break
		}
		key, err := p.parseBranchKey(open)
		if err != nil {
			return Branches{}, err
		}
		p.skipWhitespace()
		bodyOpen := p.pos
		if err := p.expect('{', open); err != nil {
			return Branches{}, err
		}
		body, err := p.parseMessage(true)
		if err != nil {
			return Branches{}, err
		}
		if err := p.expect('}', bodyOpen); err != nil {
			return Branches{}, err
		}
		pairs = append(pairs, Branch{Key: key, Body: body})
	}
	if len(pairs) == 0 {
		return Branches{}, p.errorf(p.pos, "expected at least one branch")
	}
	return NewBranches(pairs...), nil
}

func (p *parser) parseBranchKey(open int) (BranchKey, error) {
	if p.peek() == '=' {
		p.pos++
		n, err := p.parseInteger(open)
		if err != nil {
			return "", err
		}
		return ExactKey(n), nil
	}
	id, err := p.parseIdentifier(open)
	if err != nil {
		return "", err
	}
	return BranchKey(id), nil
}

func (p *parser) parseIdentifier(open int) (string, error) {
	start := p.pos
	for !p.eof() && isIdentifierRune(p.peek()) {
		p.pos++
	}
	if p.pos == start {
		if p.eof() {
			return "", p.unterminated(open)
		}
		return "", p.errorf(start, "expected identifier")
	}
	return string(p.input[start:p.pos]), nil
}

func (p *parser) parseInteger(open int) (int64, error) {
	start := p.pos
	if !p.eof() && p.peek() == '-' {
		p.pos++
	}
	digits := p.pos
	for !p.eof() && p.peek() >= '0' && p.peek() <= '9' {
		p.pos++
	}
	if p.pos == digits {
		if p.eof() {
			return 0, p.unterminated(open)
		}
		return 0, p.errorf(start, "expected number")
	}
	n, err := strconv.ParseInt(string(p.input[start:p.pos]), 10, 64)
	if err != nil {
		return 0, p.errorf(start, "number out of range")
	}
	return n, nil
}

// expect consumes want. Running out of input is reported against open, the
// brace that is still waiting to be closed.
func (p *parser) expect(want rune, open int) error {
	if p.eof() {
		return p.unterminated(open)
	}
	if p.peek() != want {
		return p.errorf(p.pos, "expected '%c'", want)
	}
	p.pos++
	return nil
}

func (p *parser) unterminated(open int) error {
	return p.errorf(open, "unterminated argument")
}

func (p *parser) hasPrefix(prefix string) bool {
	i := p.pos
	for _, r := range prefix {
		if i >= len(p.input) || p.input[i] != r {
			return false
		}
		i++
	}
	return true
}

func (p *parser) skipWhitespace() {
	for !p.eof() && unicode.IsSpace(p.peek()) {
		p.pos++
	}
}

func isIdentifierRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
