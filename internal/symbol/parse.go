package symbol

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode"
)

// Normalize rewrites raw user input into canonical parser input:
// unicode minus and multiplication glyphs become ASCII operators, whitespace
// is stripped, a standalone identifier `e` becomes the Euler constant token
// `E`, implicit multiplication gets an explicit `*`, and an `=` equation is
// rewritten as (left)-(right).
func Normalize(raw string) string {
	s := strings.ReplaceAll(raw, "−", "-")
	s = strings.ReplaceAll(s, "×", "*")
	s = strings.Join(strings.Fields(s), "")

	// Standalone e is the Euler constant. Leave it alone inside identifiers
	// (exp, ceil) and inside scientific literals (1e2).
	b := []byte(s)
	for i := 0; i < len(b); i++ {
		if b[i] != 'e' {
			continue
		}
		prevAlpha := i > 0 && isAlpha(b[i-1])
		nextAlnum := i+1 < len(b) && (isAlpha(b[i+1]) || isDigit(b[i+1]))
		if !prevAlpha && !nextAlnum && !isScientificMarker(s, i) {
			b[i] = 'E'
		}
	}
	s = string(b)

	// Implicit multiplication: a letter directly after a digit or a closing
	// parenthesis means a product (2x, 3sin(x), (x+1)y). Scientific-notation
	// exponent markers are kept intact.
	var out strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if i > 0 && isAlpha(c) && (isDigit(s[i-1]) || s[i-1] == ')') {
			if !isScientificMarker(s, i) {
				out.WriteByte('*')
			}
		}
		out.WriteByte(c)
	}
	s = out.String()

	if idx := strings.Index(s, "="); idx >= 0 {
		s = "(" + s[:idx] + ")-(" + s[idx+1:] + ")"
	}
	return s
}

// isScientificMarker reports whether s[i] is the exponent marker of a numeric
// literal like 1e2 or 3E-5.
func isScientificMarker(s string, i int) bool {
	if s[i] != 'e' && s[i] != 'E' {
		return false
	}
	if i == 0 || !isDigit(s[i-1]) {
		return false
	}
	j := i + 1
	if j < len(s) && (s[j] == '+' || s[j] == '-') {
		j++
	}
	return j < len(s) && isDigit(s[j])
}

func isAlpha(c byte) bool { return unicode.IsLetter(rune(c)) }
func isDigit(c byte) bool { return unicode.IsDigit(rune(c)) }

// Parse turns canonical input into an expression tree. Callers normalize
// first; Parse itself is strict about the character set.
func Parse(input string) (Expr, error) {
	p := &Parser{tokenizer: NewTokenizer(input)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.current.Type != TokenEOF {
		return nil, fmt.Errorf("unexpected token: %s", p.current.Value)
	}
	return expr.Simplify(), nil
}

// Token types for algebraic expressions
type TokenType int

const (
	TokenNumber TokenType = iota
	TokenIdent
	TokenPlus
	TokenMinus
	TokenMultiply
	TokenDivide
	TokenPower
	TokenOpenParen
	TokenCloseParen
	TokenEOF
)

type Token struct {
	Type  TokenType
	Value string
}

type Tokenizer struct {
	input string
	pos   int
}

func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{input: input, pos: 0}
}

func (t *Tokenizer) NextToken() (Token, error) {
	for t.pos < len(t.input) && unicode.IsSpace(rune(t.input[t.pos])) {
		t.pos++
	}

	if t.pos >= len(t.input) {
		return Token{TokenEOF, ""}, nil
	}

	char := t.input[t.pos]

	switch char {
	case '+':
		t.pos++
		return Token{TokenPlus, "+"}, nil
	case '-':
		t.pos++
		return Token{TokenMinus, "-"}, nil
	case '*':
		t.pos++
		// ** is an alternate power spelling
		if t.pos < len(t.input) && t.input[t.pos] == '*' {
			t.pos++
			return Token{TokenPower, "**"}, nil
		}
		return Token{TokenMultiply, "*"}, nil
	case '/':
		t.pos++
		return Token{TokenDivide, "/"}, nil
	case '^':
		t.pos++
		return Token{TokenPower, "^"}, nil
	case '(':
		t.pos++
		return Token{TokenOpenParen, "("}, nil
	case ')':
		t.pos++
		return Token{TokenCloseParen, ")"}, nil
	}

	if isDigit(char) || char == '.' {
		return t.readNumber(), nil
	}
	if isAlpha(char) {
		return t.readIdent(), nil
	}
	return Token{}, fmt.Errorf("invalid character %q", char)
}

func (t *Tokenizer) readNumber() Token {
	start := t.pos
	hasDot := false

	for t.pos < len(t.input) {
		char := t.input[t.pos]
		if isDigit(char) {
			t.pos++
		} else if char == '.' && !hasDot {
			hasDot = true
			t.pos++
		} else if isScientificMarker(t.input, t.pos) {
			t.pos++
			if t.input[t.pos] == '+' || t.input[t.pos] == '-' {
				t.pos++
			}
		} else {
			break
		}
	}

	return Token{TokenNumber, t.input[start:t.pos]}
}

func (t *Tokenizer) readIdent() Token {
	start := t.pos
	for t.pos < len(t.input) && (isAlpha(t.input[t.pos]) || isDigit(t.input[t.pos])) {
		t.pos++
	}
	return Token{TokenIdent, t.input[start:t.pos]}
}

// Parser with operator precedence
type Parser struct {
	tokenizer *Tokenizer
	current   Token
}

func (p *Parser) advance() error {
	tok, err := p.tokenizer.NextToken()
	if err != nil {
		return err
	}
	p.current = tok
	return nil
}

// Parse addition and subtraction (lowest precedence)
func (p *Parser) parseExpression() (Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for p.current.Type == TokenPlus || p.current.Type == TokenMinus {
		op := p.current.Type
		if err := p.advance(); err != nil {
			return nil, err
		}

		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}

		if op == TokenPlus {
			left = AddOf(left, right)
		} else {
			left = AddOf(left, MulOf(N(-1), right))
		}
	}

	return left, nil
}

// Parse multiplication and division (higher precedence)
func (p *Parser) parseTerm() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		switch p.current.Type {
		case TokenMultiply, TokenDivide:
			op := p.current.Type
			if err := p.advance(); err != nil {
				return nil, err
			}

			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}

			if op == TokenMultiply {
				left = MulOf(left, right)
			} else {
				left = MulOf(left, PowOf(right, N(-1)))
			}
		case TokenNumber, TokenIdent, TokenOpenParen:
			// Implicit multiplication: 2(x+1), (x+1)(x-1)
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = MulOf(left, right)
		default:
			return left, nil
		}
	}
}

// Parse unary minus, then exponentiation (right associative)
func (p *Parser) parseUnary() (Expr, error) {
	if p.current.Type == TokenMinus {
		if err := p.advance(); err != nil {
			return nil, err
		}
		value, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return MulOf(N(-1), value), nil
	}
	return p.parsePower()
}

func (p *Parser) parsePower() (Expr, error) {
	base, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	if p.current.Type == TokenPower {
		if err := p.advance(); err != nil {
			return nil, err
		}
		// Right associative, and 2^-3 is allowed.
		exp, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return PowOf(base, exp), nil
	}
	return base, nil
}

// knownFuncs is the set of callable function names the tree supports.
var knownFuncs = map[string]bool{
	"sin": true, "cos": true, "tan": true, "cot": true,
	"asin": true, "acos": true, "atan": true, "acot": true,
	"sinh": true, "cosh": true, "tanh": true,
	"exp": true, "ln": true, "log": true, "sqrt": true, "abs": true,
}

// Parse numbers, identifiers, function calls, and parentheses
func (p *Parser) parseFactor() (Expr, error) {
	switch p.current.Type {
	case TokenNumber:
		value := p.current.Value
		if err := p.advance(); err != nil {
			return nil, err
		}
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number: %s", value)
		}
		return NFloat(f), nil

	case TokenIdent:
		name := p.current.Value
		if err := p.advance(); err != nil {
			return nil, err
		}

		if p.current.Type == TokenOpenParen {
			if !knownFuncs[name] {
				return nil, fmt.Errorf("unknown function %q", name)
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if p.current.Type != TokenCloseParen {
				return nil, fmt.Errorf("expected closing parenthesis")
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
			switch name {
			case "sqrt":
				return PowOf(arg, &Num{val: big.NewRat(1, 2)}), nil
			case "log":
				// Natural log, sympy convention.
				return LnOf(arg), nil
			}
			return FuncOf(name, arg), nil
		}

		switch name {
		case "E":
			return NFloat(math.E), nil
		case "pi", "Pi", "PI":
			return NFloat(math.Pi), nil
		}
		return S(name), nil

	case TokenOpenParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		result, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if p.current.Type != TokenCloseParen {
			return nil, fmt.Errorf("expected closing parenthesis")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return result, nil
	}

	return nil, fmt.Errorf("unexpected token: %s", p.current.Value)
}
