package ruledsl

import (
	"strconv"

	"github.com/pact-foundation/pact-core-go/internal/rules"
)

// Parser is a single-token-lookahead recursive-descent parser over the
// rule-definition grammar.
type Parser struct {
	lex  *Lexer
	tok  Token
	prev Token
}

// Parse parses src as a comma-separated sequence of rule expressions and
// returns the merged Definition. Merging composes rule lists and widens
// the value type; conflicting example values or generators keep the
// first and are reported via Definition.Conflict rather than as an error.
func Parse(src string) (rules.Definition, error) {
	p := &Parser{lex: NewLexer(src)}
	p.advance()

	def, err := p.parseExpr()
	if err != nil {
		return rules.Definition{}, err
	}
	for p.tok.Kind == TokComma {
		p.advance()
		next, err := p.parseExpr()
		if err != nil {
			return rules.Definition{}, err
		}
		def = def.Merge(next)
	}
	if p.tok.Kind != TokEOF {
		return rules.Definition{}, errUnexpected(p.tok, "',' or end of input")
	}
	return def, nil
}

func (p *Parser) advance() {
	p.prev = p.tok
	p.tok = p.lex.Next()
}

func (p *Parser) expect(k TokenKind) (Token, error) {
	if p.tok.Kind != k {
		return Token{}, errUnexpected(p.tok, k.String())
	}
	tok := p.tok
	p.advance()
	return tok, nil
}

func (p *Parser) parseExpr() (rules.Definition, error) {
	if p.tok.Kind != TokIdent {
		return rules.Definition{}, errUnknownFunction(p.tok)
	}
	name := p.tok.Text
	switch name {
	case "matching":
		p.advance()
		if _, err := p.expect(TokLParen); err != nil {
			return rules.Definition{}, err
		}
		def, err := p.parseRule()
		if err != nil {
			return rules.Definition{}, err
		}
		if _, err := p.expect(TokRParen); err != nil {
			return rules.Definition{}, err
		}
		return def, nil
	case "notEmpty":
		p.advance()
		if _, err := p.expect(TokLParen); err != nil {
			return rules.Definition{}, err
		}
		val, vt, err := p.parsePrimitive()
		if err != nil {
			return rules.Definition{}, err
		}
		if _, err := p.expect(TokRParen); err != nil {
			return rules.Definition{}, err
		}
		return rules.Definition{Rules: rules.NewRuleList(rules.NotEmpty{}), Example: val, ValueType: vt}, nil
	case "eachKey":
		p.advance()
		if _, err := p.expect(TokLParen); err != nil {
			return rules.Definition{}, err
		}
		inner, err := p.parseExpr()
		if err != nil {
			return rules.Definition{}, err
		}
		for p.tok.Kind == TokComma {
			p.advance()
			next, err := p.parseExpr()
			if err != nil {
				return rules.Definition{}, err
			}
			inner = inner.Merge(next)
		}
		if _, err := p.expect(TokRParen); err != nil {
			return rules.Definition{}, err
		}
		return rules.Definition{Rules: rules.NewRuleList(rules.EachKey{Definition: inner})}, nil
	case "eachValue":
		p.advance()
		if _, err := p.expect(TokLParen); err != nil {
			return rules.Definition{}, err
		}
		inner, err := p.parseExpr()
		if err != nil {
			return rules.Definition{}, err
		}
		for p.tok.Kind == TokComma {
			p.advance()
			next, err := p.parseExpr()
			if err != nil {
				return rules.Definition{}, err
			}
			inner = inner.Merge(next)
		}
		if _, err := p.expect(TokRParen); err != nil {
			return rules.Definition{}, err
		}
		return rules.Definition{Rules: rules.NewRuleList(rules.EachValue{Definition: inner})}, nil
	default:
		return rules.Definition{}, errUnknownFunction(p.tok)
	}
}

func (p *Parser) parseRule() (rules.Definition, error) {
	if p.tok.Kind == TokDollar {
		p.advance()
		ref, err := p.expect(TokString)
		if err != nil {
			return rules.Definition{}, errUnquotedString(p.tok)
		}
		return rules.Definition{Rules: rules.NewRuleList(rules.Equality{}), Example: "$" + ref.Text}, nil
	}

	kindTok, err := p.expect(TokIdent)
	if err != nil {
		return rules.Definition{}, err
	}

	switch kindTok.Text {
	case "equalTo":
		if _, err := p.expect(TokComma); err != nil {
			return rules.Definition{}, err
		}
		val, vt, err := p.parsePrimitive()
		if err != nil {
			return rules.Definition{}, err
		}
		return rules.Definition{Rules: rules.NewRuleList(rules.Equality{}), Example: val, ValueType: vt}, nil
	case "regex":
		pattern, err := p.parseCommaString()
		if err != nil {
			return rules.Definition{}, err
		}
		example, err := p.parseCommaString()
		if err != nil {
			return rules.Definition{}, err
		}
		return rules.Definition{Rules: rules.NewRuleList(rules.Regex{Pattern: pattern}), Example: example, ValueType: rules.ValueString}, nil
	case "type":
		if _, err := p.expect(TokComma); err != nil {
			return rules.Definition{}, err
		}
		val, vt, err := p.parsePrimitive()
		if err != nil {
			return rules.Definition{}, err
		}
		return rules.Definition{Rules: rules.NewRuleList(rules.TypeMatch{}), Example: val, ValueType: vt}, nil
	case "datetime":
		format, err := p.parseCommaString()
		if err != nil {
			return rules.Definition{}, err
		}
		example, err := p.parseCommaString()
		if err != nil {
			return rules.Definition{}, err
		}
		return rules.Definition{Rules: rules.NewRuleList(rules.Timestamp{Format: format}), Example: example, ValueType: rules.ValueString}, nil
	case "date":
		format, err := p.parseCommaString()
		if err != nil {
			return rules.Definition{}, err
		}
		example, err := p.parseCommaString()
		if err != nil {
			return rules.Definition{}, err
		}
		return rules.Definition{Rules: rules.NewRuleList(rules.Date{Format: format}), Example: example, ValueType: rules.ValueString}, nil
	case "time":
		format, err := p.parseCommaString()
		if err != nil {
			return rules.Definition{}, err
		}
		example, err := p.parseCommaString()
		if err != nil {
			return rules.Definition{}, err
		}
		return rules.Definition{Rules: rules.NewRuleList(rules.Time{Format: format}), Example: example, ValueType: rules.ValueString}, nil
	case "number":
		if _, err := p.expect(TokComma); err != nil {
			return rules.Definition{}, err
		}
		val, err := p.parseNumber()
		if err != nil {
			return rules.Definition{}, err
		}
		return rules.Definition{Rules: rules.NewRuleList(rules.Number{}), Example: val, ValueType: rules.ValueNumber}, nil
	case "integer":
		if _, err := p.expect(TokComma); err != nil {
			return rules.Definition{}, err
		}
		val, err := p.parseNumber()
		if err != nil {
			return rules.Definition{}, err
		}
		return rules.Definition{Rules: rules.NewRuleList(rules.Integer{}), Example: val, ValueType: rules.ValueInteger}, nil
	case "decimal":
		if _, err := p.expect(TokComma); err != nil {
			return rules.Definition{}, err
		}
		val, err := p.parseNumber()
		if err != nil {
			return rules.Definition{}, err
		}
		return rules.Definition{Rules: rules.NewRuleList(rules.Decimal{}), Example: val, ValueType: rules.ValueDecimal}, nil
	case "boolean":
		if _, err := p.expect(TokComma); err != nil {
			return rules.Definition{}, err
		}
		val, err := p.parseBoolean()
		if err != nil {
			return rules.Definition{}, err
		}
		return rules.Definition{Rules: rules.NewRuleList(rules.Boolean{}), Example: val, ValueType: rules.ValueBoolean}, nil
	case "include":
		substr, err := p.parseCommaString()
		if err != nil {
			return rules.Definition{}, err
		}
		return rules.Definition{Rules: rules.NewRuleList(rules.Include{Substr: substr}), Example: substr, ValueType: rules.ValueString}, nil
	case "contentType":
		mime, err := p.parseCommaString()
		if err != nil {
			return rules.Definition{}, err
		}
		example, err := p.parseCommaString()
		if err != nil {
			return rules.Definition{}, err
		}
		return rules.Definition{Rules: rules.NewRuleList(rules.ContentType{MIME: mime}), Example: example}, nil
	case "semver":
		if _, err := p.expect(TokComma); err != nil {
			return rules.Definition{}, err
		}
		example, err := p.expect(TokString)
		if err != nil {
			return rules.Definition{}, errUnquotedString(p.tok)
		}
		return rules.Definition{Rules: rules.NewRuleList(rules.Semver{}), Example: example.Text, ValueType: rules.ValueString}, nil
	default:
		return rules.Definition{}, errUnknownRuleKind(kindTok)
	}
}

func (p *Parser) parseCommaString() (string, error) {
	if _, err := p.expect(TokComma); err != nil {
		return "", err
	}
	tok, err := p.expect(TokString)
	if err != nil {
		return "", errUnquotedString(p.tok)
	}
	return tok.Text, nil
}

func (p *Parser) parsePrimitive() (interface{}, rules.ValueType, error) {
	switch p.tok.Kind {
	case TokString:
		tok := p.tok
		p.advance()
		return tok.Text, rules.ValueString, nil
	case TokNumber:
		return p.numberToken()
	case TokBoolean:
		tok := p.tok
		p.advance()
		return tok.Text == "true", rules.ValueBoolean, nil
	case TokNull:
		p.advance()
		return nil, rules.ValueUnknown, nil
	default:
		return nil, rules.ValueUnknown, errUnexpected(p.tok, "a primitive value")
	}
}

func (p *Parser) numberToken() (interface{}, rules.ValueType, error) {
	tok := p.tok
	p.advance()
	if f, err := strconv.ParseFloat(tok.Text, 64); err == nil {
		if isWholeNumber(tok.Text) {
			return f, rules.ValueInteger, nil
		}
		return f, rules.ValueDecimal, nil
	}
	return nil, rules.ValueUnknown, Diagnostic{Start: tok.Start, End: tok.End, Message: "invalid number literal " + tok.Text}
}

func isWholeNumber(s string) bool {
	for _, r := range s {
		if r == '.' {
			return false
		}
	}
	return true
}

func (p *Parser) parseNumber() (interface{}, error) {
	v, _, err := p.numberToken2()
	return v, err
}

func (p *Parser) numberToken2() (interface{}, rules.ValueType, error) {
	if p.tok.Kind != TokNumber {
		return nil, rules.ValueUnknown, errUnexpected(p.tok, "a number")
	}
	return p.numberToken()
}

func (p *Parser) parseBoolean() (interface{}, error) {
	if p.tok.Kind != TokBoolean {
		return nil, errUnexpected(p.tok, "true or false")
	}
	tok := p.tok
	p.advance()
	return tok.Text == "true", nil
}
