package types

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// Parse reads the textual form of a data type. Keywords are case-insensitive
// and whitespace between tokens is ignored. A syntactically valid map type whose
// key type is forbidden yields an InvalidMapKeyError.
func Parse(text string) (DataType, error) {
	p := &parser{text: text}
	if err := p.tokenize(); err != nil {
		return DataType{}, err
	}
	out, err := p.parseType()
	if err != nil {
		return DataType{}, err
	}
	if !p.done() {
		return DataType{}, p.fail("unexpected trailing '%s'", p.peek().text)
	}
	if !out.validMapKeys() {
		return DataType{}, errors.WithStack(&InvalidMapKeyError{From: text})
	}
	return out, nil
}

// MustParse is like Parse but panics on error. It's meant for static type literals.
func MustParse(text string) DataType {
	out, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return out
}

type tokenKind int

const (
	tokenIdent tokenKind = iota
	tokenNumber
	tokenPunct
)

type token struct {
	kind tokenKind
	text string
}

type parser struct {
	text   string
	tokens []token
	pos    int
}

func (p *parser) tokenize() error {
	runes := []rune(p.text)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '<' || r == '>' || r == '(' || r == ')' || r == ',':
			p.tokens = append(p.tokens, token{kind: tokenPunct, text: string(r)})
			i++
		case unicode.IsDigit(r):
			start := i
			for i < len(runes) && unicode.IsDigit(runes[i]) {
				i++
			}
			p.tokens = append(p.tokens, token{kind: tokenNumber, text: string(runes[start:i])})
		case unicode.IsLetter(r) || r == '_':
			start := i
			for i < len(runes) && (unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i]) || runes[i] == '_') {
				i++
			}
			p.tokens = append(p.tokens, token{kind: tokenIdent, text: strings.ToLower(string(runes[start:i]))})
		default:
			return p.fail("unexpected character '%c'", r)
		}
	}
	return nil
}

func (p *parser) done() bool {
	return p.pos >= len(p.tokens)
}

func (p *parser) peek() token {
	if p.done() {
		return token{}
	}
	return p.tokens[p.pos]
}

func (p *parser) next() (token, bool) {
	if p.done() {
		return token{}, false
	}
	tok := p.tokens[p.pos]
	p.pos++
	return tok, true
}

func (p *parser) fail(format string, args ...interface{}) error {
	return errors.WithStack(&ParseDataTypeError{
		From:   p.text,
		reason: fmt.Sprintf(format, args...),
	})
}

func (p *parser) expect(punct string) error {
	tok, ok := p.next()
	if !ok {
		return p.fail("expected '%s', got end of input", punct)
	}
	if tok.kind != tokenPunct || tok.text != punct {
		return p.fail("expected '%s', got '%s'", punct, tok.text)
	}
	return nil
}

func (p *parser) number() (uint16, error) {
	tok, ok := p.next()
	if !ok || tok.kind != tokenNumber {
		return 0, p.fail("expected unsigned number")
	}
	n, err := strconv.ParseUint(tok.text, 10, 16)
	if err != nil {
		return 0, p.fail("invalid number '%s'", tok.text)
	}
	return uint16(n), nil
}

// unsigned consumes an optional trailing UNSIGNED keyword.
func (p *parser) unsigned(signed, unsigned DataType) DataType {
	if tok := p.peek(); tok.kind == tokenIdent && tok.text == "unsigned" {
		p.pos++
		return unsigned
	}
	return signed
}

func (p *parser) parseType() (DataType, error) {
	tok, ok := p.next()
	if !ok {
		return DataType{}, p.fail("expected type, got end of input")
	}
	if tok.kind != tokenIdent {
		return DataType{}, p.fail("expected type, got '%s'", tok.text)
	}

	switch tok.text {
	case "null":
		return Null, nil
	case "nothing":
		return Nothing, nil
	case "bool", "boolean":
		return Boolean, nil
	case "varchar", "string":
		return Varchar, nil
	case "date":
		return Date, nil
	case "timestamp":
		return Timestamp, nil
	case "bytea":
		return Bytea, nil
	case "jsonb":
		return Jsonb, nil
	case "tinyint", "int1":
		return p.unsigned(Int8, UInt8), nil
	case "smallint", "int2":
		return p.unsigned(Int16, UInt16), nil
	case "int", "integer", "int4":
		return p.unsigned(Int32, UInt32), nil
	case "bigint", "int8":
		return p.unsigned(Int64, UInt64), nil
	case "float", "float4":
		return Float32, nil
	case "double", "float8":
		return Float64, nil

	case "char":
		if err := p.expect("("); err != nil {
			return DataType{}, err
		}
		width, err := p.number()
		if err != nil {
			return DataType{}, err
		}
		if err := p.expect(")"); err != nil {
			return DataType{}, err
		}
		return Char(width), nil

	case "decimal":
		if err := p.expect("("); err != nil {
			return DataType{}, err
		}
		scale, err := p.number()
		if err != nil {
			return DataType{}, err
		}
		if err := p.expect(","); err != nil {
			return DataType{}, err
		}
		precision, err := p.number()
		if err != nil {
			return DataType{}, err
		}
		if err := p.expect(")"); err != nil {
			return DataType{}, err
		}
		return Decimal(scale, precision), nil

	case "list", "nullable":
		if err := p.expect("<"); err != nil {
			return DataType{}, err
		}
		inner, err := p.parseType()
		if err != nil {
			return DataType{}, err
		}
		if err := p.expect(">"); err != nil {
			return DataType{}, err
		}
		if tok.text == "list" {
			return List(inner), nil
		}
		return Nullable(inner), nil

	case "map":
		if err := p.expect("<"); err != nil {
			return DataType{}, err
		}
		key, err := p.parseType()
		if err != nil {
			return DataType{}, err
		}
		if err := p.expect(","); err != nil {
			return DataType{}, err
		}
		value, err := p.parseType()
		if err != nil {
			return DataType{}, err
		}
		if err := p.expect(">"); err != nil {
			return DataType{}, err
		}
		return Map(key, value), nil
	}

	return DataType{}, p.fail("unknown type '%s'", tok.text)
}
