package dialect

import (
	"fmt"

	"github.com/xyce-xdm/xdm-core/pkg/token"
)

// Dialect is the interface every grammar variant satisfies: the base Xyce
// grammar and its four dialect overlays (spec §4.8). A dialect owns its
// comment conventions and line-body classification; the driver never needs
// to know which one it's holding.
type Dialect interface {
	Name() string
	CommentPrefixes() []string
	StripInline(line string) (code, comment string)
	ParseLine(body string) ([]token.Token, error)
}

// registry is the fixed five-dialect universe spec §6 names.
var registry = map[string]func() Dialect{
	"xyce":    func() Dialect { return NewXyce() },
	"hspice":  func() Dialect { return NewHSPICE() },
	"pspice":  func() Dialect { return NewPSPICE() },
	"tspice":  func() Dialect { return NewTSPICE() },
	"spectre": func() Dialect { return NewSpectre() },
}

// New returns a fresh Dialect instance for name (case-sensitive, matching
// the driver's --dialect flag values), or an error if name isn't one of
// the five registered dialects.
func New(name string) (Dialect, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("dialect: unknown dialect %q", name)
	}
	return ctor(), nil
}

// Names returns the registered dialect names, for --help output and tests.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	return names
}
