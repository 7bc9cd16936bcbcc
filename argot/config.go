package argot

import "strings"

// Config is the parsing policy consumed by the state machine. It is treated
// as immutable: New copies it, so later mutation by the caller has no effect
// on a schema already built against it.
type Config struct {
	// LongPrefix introduces a long option token ("--" by default).
	LongPrefix string

	// ShortPrefix introduces a short option cluster ("-" by default).
	// Empty disables short options entirely.
	ShortPrefix string

	// OptionsTerminator is the literal token that permanently disables
	// option recognition for the rest of the scope ("--" by default).
	// Empty disables the terminator.
	OptionsTerminator string

	// StopOptionsAfterPositional disables option recognition once the first
	// positional has been consumed, unless the positional overrides it.
	StopOptionsAfterPositional bool

	// ClusterShortFlags allows packing several boolean short flags into one
	// token (-abc). When false, -x still works and -xVALUE still feeds VALUE
	// to x, but a flag is never followed by further flags in the same token.
	ClusterShortFlags bool

	// InverseNamer synthesizes the inverse name for flags registered with
	// InverseAuto. Returning "" means no inverse. Nil disables generation.
	InverseNamer func(name string) string
}

// DefaultConfig returns the conventional GNU-style policy: "--name",
// "-x" with clustering, "--" terminator, and "no-" inverse generation.
func DefaultConfig() *Config {
	return &Config{
		LongPrefix:        "--",
		ShortPrefix:       "-",
		OptionsTerminator: "--",
		ClusterShortFlags: true,
		InverseNamer:      InversePrefix("no-"),
	}
}

// InversePrefix generates inverse names by prepending a fixed prefix:
// InversePrefix("no-") turns "color" into "no-color".
func InversePrefix(prefix string) func(string) string {
	return func(name string) string {
		return prefix + name
	}
}

// InverseSwap generates inverse names by replacing a leading word:
// InverseSwap("with-", "without-") turns "with-ads" into "without-ads".
// Names that do not start with the word get no inverse.
func InverseSwap(word, inverse string) func(string) string {
	return func(name string) string {
		if strings.HasPrefix(name, word) {
			return inverse + name[len(word):]
		}
		return ""
	}
}

// Inverse is the three-state inverse-name choice for a flag.
type Inverse struct {
	mode inverseMode
	name string
}

type inverseMode int

const (
	inverseAuto inverseMode = iota
	inverseNone
	inverseNamed
)

// InverseAuto asks the Config's InverseNamer to synthesize the inverse name.
func InverseAuto() Inverse {
	return Inverse{mode: inverseAuto}
}

// InverseNone registers the flag without an inverse form.
func InverseNone() Inverse {
	return Inverse{mode: inverseNone}
}

// InverseName registers an explicit inverse name for the flag.
func InverseName(name string) Inverse {
	return Inverse{mode: inverseNamed, name: name}
}

// resolve returns the inverse long name for a flag, or "" for none.
func (inv Inverse) resolve(name string, cfg *Config) string {
	switch inv.mode {
	case inverseNone:
		return ""
	case inverseNamed:
		return inv.name
	default:
		if cfg.InverseNamer == nil {
			return ""
		}
		return cfg.InverseNamer(name)
	}
}
