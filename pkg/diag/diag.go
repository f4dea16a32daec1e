// Package diag provides the diagnostic sink spec §7 requires: a place for
// warnings (parse-failure recoveries, swallowed expression errors, unresolved
// parameters) to surface to a caller without making any of those conditions
// fatal.
package diag

// Sink collects messages. The zero value discards everything, matching the
// "optional" framing of every diagnostic in spec §7.
type Sink struct {
	messages []string
}

// NewSink returns a ready-to-use Sink.
func NewSink() *Sink { return &Sink{} }

// Warn appends msg. A nil *Sink is valid and a no-op, so callers that don't
// care about diagnostics can pass one around without a nil check.
func (s *Sink) Warn(msg string) {
	if s == nil {
		return
	}
	s.messages = append(s.messages, msg)
}

// Messages returns every warning recorded so far, in emission order.
func (s *Sink) Messages() []string {
	if s == nil {
		return nil
	}
	return s.messages
}

// Len reports how many warnings have been recorded.
func (s *Sink) Len() int {
	if s == nil {
		return 0
	}
	return len(s.messages)
}
