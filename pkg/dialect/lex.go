// Package dialect implements the base Xyce netlist grammar and the four
// dialect grammars layered on top of it (spec §4.7–4.8).
//
// Field lexing uses goparsec combinators, like the teacher's asm/vm/jack
// parsers; classification is plain Go. A flat field tokenizer recognizes the lexical units
// of a logical line (bare fields, quoted strings, brace expressions,
// parens, commas, equals), and a second pass — the dialect-specific
// "FromAST" walk, same shape as the teacher's Parser.FromAST — groups those
// fields into paren-groups and key=value pairs and classifies them against
// the device/directive tables in devices.go and directives.go.
package dialect

import (
	"fmt"
	"strings"

	pc "github.com/prataprc/goparsec"
)

var lexAST = pc.NewAST("netlist_fields", 0)

var (
	pFieldLine = lexAST.Kleene("line", nil, pAnyField)

	pAnyField = lexAST.OrdChoice("field", nil, pBrace, pQuoted, pLParen, pRParen, pComma, pEquals, pBare)

	pBrace  = pc.Token(`\{[^{}]*\}`, "BRACE")
	pQuoted = pc.Token(`"[^"]*"`, "QUOTED")
	pLParen = pc.Atom("(", "LPAREN")
	pRParen = pc.Atom(")", "RPAREN")
	pComma  = pc.Atom(",", "COMMA")
	pEquals = pc.Atom("=", "EQUALS")
	pBare   = pc.Token(`[^\s(),={}"]+`, "BARE")
)

// FieldKind classifies a lexical field before dialect/device semantics are
// applied.
type FieldKind int

const (
	KindBare FieldKind = iota
	KindBrace
	KindQuoted
	KindParenGroup
	KindKeyValue
)

// Field is one grouped lexical unit of a logical line: a bare token, a
// {...} expression, a "..." string, a (...) group (itself a list of
// Fields), or a name=value pair.
type Field struct {
	Kind  FieldKind
	Text  string // raw text for Bare/Brace/Quoted; "name" for KeyValue
	Value string // only for KeyValue: the RHS text (may itself be "{...}")
	Group []Field
}

// Tokenize splits a logical line's statement body into grouped Fields:
// paren-enclosed runs become a single KindParenGroup field (recursively
// tokenized), and a BARE "=" BARE/BRACE/QUOTED run becomes a single
// KindKeyValue field. This mirrors the teacher's two-phase
// FromSource/FromAST split, just applied per logical line instead of per
// file.
func Tokenize(line string) ([]Field, error) {
	root, _ := lexAST.Parsewith(pFieldLine, pc.NewScanner([]byte(line)))
	if root == nil {
		return nil, fmt.Errorf("dialect: empty tokenization for %q", line)
	}

	var flat []rawTok
	for _, child := range root.GetChildren() {
		flat = append(flat, rawTok{name: child.GetName(), text: child.GetValue()})
	}
	fields, rest, err := group(flat)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("dialect: unbalanced parens in %q", line)
	}
	return fields, nil
}

type rawTok struct {
	name string
	text string
}

// group consumes flat tokens into Fields, recursing into paren groups;
// it returns the fields built at this nesting level and any unconsumed
// tail (used to let the caller detect a stray/unmatched ')').
func group(toks []rawTok) ([]Field, []rawTok, error) {
	var out []Field
	for len(toks) > 0 {
		t := toks[0]
		switch t.name {
		case "RPAREN":
			return out, toks, nil // let the caller (which saw LPAREN) consume this
		case "LPAREN":
			inner, rest, err := group(toks[1:])
			if err != nil {
				return nil, nil, err
			}
			if len(rest) == 0 || rest[0].name != "RPAREN" {
				return nil, nil, fmt.Errorf("dialect: unbalanced '('")
			}
			out = append(out, Field{Kind: KindParenGroup, Group: inner})
			toks = rest[1:]
		case "COMMA":
			toks = toks[1:] // structural separator inside paren groups; not surfaced as a Field
		case "BRACE":
			out = append(out, Field{Kind: KindBrace, Text: t.text})
			toks = toks[1:]
		case "QUOTED":
			out = append(out, Field{Kind: KindQuoted, Text: strings.Trim(t.text, `"`)})
			toks = toks[1:]
		case "EQUALS":
			// A bare "=" with nothing captured as its LHS is malformed;
			// treat it as a literal bare field rather than failing the
			// whole line (spec §7 favors local, not whole-line, recovery
			// and this function works per-statement, not per-file).
			out = append(out, Field{Kind: KindBare, Text: "="})
			toks = toks[1:]
		case "BARE":
			if len(toks) >= 2 && toks[1].name == "EQUALS" {
				var rhsText string
				rest := toks[2:]
				if len(rest) > 0 {
					switch rest[0].name {
					case "BRACE", "QUOTED", "BARE":
						rhsText = rest[0].text
						rest = rest[1:]
					}
				}
				out = append(out, Field{Kind: KindKeyValue, Text: t.text, Value: rhsText})
				toks = rest
				continue
			}
			out = append(out, Field{Kind: KindBare, Text: t.text})
			toks = toks[1:]
		default:
			toks = toks[1:]
		}
	}
	return out, nil, nil
}
