package argot

// Holder is the mutable slot tied to exactly one definition. Registration
// creates it (pre-filled with the default for optional definitions, empty for
// mandatory ones), the accumulator mutates it during parsing, and the caller
// reads it back after Parse returns.
type Holder[U any] struct {
	name   string
	value  U
	filled bool
	given  bool
}

// Value returns the held value. Reading a holder that never received a value
// (a mandatory definition before a successful parse) is a programmer error
// and panics; use Lookup to probe safely.
func (h *Holder[U]) Value() U {
	if !h.filled {
		panic("argot: reading empty value holder for " + h.name)
	}
	return h.value
}

// Lookup returns the held value and whether the holder has one at all
// (default, environment, or parsed).
func (h *Holder[U]) Lookup() (U, bool) {
	return h.value, h.filled
}

// Given reports whether the argument was explicitly present in the parsed
// token vector. Defaults and environment fallbacks leave it false.
func (h *Holder[U]) Given() bool {
	return h.given
}

func (h *Holder[U]) set(value U, given bool) {
	h.value = value
	h.filled = true
	if given {
		h.given = true
	}
}
