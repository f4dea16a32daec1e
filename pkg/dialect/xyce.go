package dialect

import (
	"fmt"
	"strings"

	"github.com/xyce-xdm/xdm-core/pkg/token"
)

// Xyce is the base grammar spec §4.7 describes; every other dialect
// composes it by delegation rather than by copying its productions (spec
// §9's "composition, not inheritance").
type Xyce struct{}

// NewXyce returns the base Xyce grammar.
func NewXyce() *Xyce { return &Xyce{} }

// Name identifies the grammar for diagnostics and the driver's dialect
// registry.
func (x *Xyce) Name() string { return "xyce" }

// CommentPrefixes returns the start-of-line comment markers spec §6's
// comment-prefix table assigns to the base dialect.
func (x *Xyce) CommentPrefixes() []string { return []string{"*"} }

// StripInline splits a line at its inline comment marker, if present.
func (x *Xyce) StripInline(line string) (code, comment string) {
	return stripInlineDollar(line)
}

func stripInlineDollar(line string) (code, comment string) {
	if idx := strings.Index(line, "$"); idx >= 0 {
		return line[:idx], line[idx:]
	}
	return line, ""
}

// ParseLine classifies one logical line's already-stripped body: a
// netlist_line is a device instantiation or a directive, optionally
// preceded by leading whitespace (spec §4.7's top production,
// "comment | (analog_device | directive)").
func (x *Xyce) ParseLine(body string) ([]token.Token, error) {
	return parseXyceLine(body)
}

func parseXyceLine(body string) ([]token.Token, error) {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return nil, fmt.Errorf("dialect: empty statement body")
	}

	firstWord := firstWordOf(trimmed)

	if strings.HasPrefix(firstWord, ".") {
		if !IsDirective(firstWord) {
			return nil, fmt.Errorf("dialect: %q is not a recognized directive", firstWord)
		}
		rest := strings.TrimSpace(trimmed[len(firstWord):])
		fields, err := Tokenize(rest)
		if err != nil {
			return nil, err
		}
		return ClassifyDirective(firstWord, fields), nil
	}

	letter := firstWord[0]
	if !IsDeviceLetter(letter) {
		return nil, fmt.Errorf("dialect: %q is neither a directive nor a recognized device letter", firstWord)
	}
	rest := strings.TrimSpace(trimmed[len(firstWord):])
	fields, err := Tokenize(rest)
	if err != nil {
		return nil, err
	}
	return ClassifyDevice(letter, firstWord, fields), nil
}

func firstWordOf(s string) string {
	idx := strings.IndexAny(s, " \t")
	if idx < 0 {
		return s
	}
	return s[:idx]
}
