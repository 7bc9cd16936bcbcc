package argot

import (
	"os"
	"strings"
	"unicode/utf8"
)

// machine carries the state of one parse of one scope: the positional cursor,
// whether options are still recognized, and the option awaiting its value
// from the next token. Selecting a command hands the remaining tokens to a
// fresh machine for the child scope, so recursion depth equals the schema's
// command nesting depth.
type machine struct {
	set              *Set
	nextPositional   int
	optionsAvailable bool
	pending          *option
	pendingDisplay   string
}

// Parse consumes the raw token vector against this frozen scope, mutating
// the registered value holders in place. It returns nil on success or a
// *ParseError; holders filled before the error keep their values.
func (set *Set) Parse(tokens []string) error {
	m := &machine{set: set, optionsAvailable: true}
	return m.run(tokens)
}

func (m *machine) run(tokens []string) error {
	cfg := &m.set.cfg
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		// A pending option consumes the token whole; it is never
		// re-classified as an option or positional.
		if m.pending != nil {
			opt := m.pending
			m.pending = nil
			if err := opt.fill(tok, false); err != nil {
				return newInvalidValueError(opt.name, tok, err)
			}
			continue
		}

		if m.optionsAvailable && cfg.OptionsTerminator != "" && tok == cfg.OptionsTerminator {
			m.optionsAvailable = false
			continue
		}

		switch {
		case m.optionsAvailable && cfg.LongPrefix != "" &&
			strings.HasPrefix(tok, cfg.LongPrefix) && tok != cfg.LongPrefix:
			if err := m.longOption(tok[len(cfg.LongPrefix):]); err != nil {
				return err
			}

		case m.optionsAvailable && cfg.ShortPrefix != "" &&
			strings.HasPrefix(tok, cfg.ShortPrefix) && tok != cfg.ShortPrefix:
			if err := m.shortCluster(tok[len(cfg.ShortPrefix):]); err != nil {
				return err
			}

		default:
			// A scope with a command set always reads its first positional
			// token as the command name; the command owns every token after
			// it, with no backtracking.
			if m.set.commands != nil {
				return m.dispatchCommand(tok, tokens[i+1:])
			}
			if err := m.positionalToken(tok); err != nil {
				return err
			}
		}
	}
	return m.finish()
}

// longOption handles "name" and "name=value" forms after the long prefix.
func (m *machine) longOption(rest string) error {
	name, value, hasValue := strings.Cut(rest, "=")
	opt, ok := m.set.options[name]
	if !ok {
		return newUnknownOptionError(m.set.cfg.LongPrefix+name, name, m.set.optionNames())
	}
	// The inverse alias flips the flag: bare use means false, an explicit
	// value is parsed then negated.
	negate := opt.isFlag && opt.inverse != "" && name == opt.inverse
	switch {
	case hasValue:
		if err := opt.fill(value, negate); err != nil {
			return newInvalidValueError(name, value, err)
		}
	case opt.isFlag:
		opt.setBool(!negate)
	default:
		m.pending = opt
		m.pendingDisplay = m.set.cfg.LongPrefix + name
	}
	return nil
}

// shortCluster scans the characters of one short token left to right.
// Boolean flags keep the scan going; the first value-taking option (or a
// flag followed by '=') consumes the rest of the token as its value, or
// defers to the next token when nothing remains.
func (m *machine) shortCluster(cluster string) error {
	cfg := &m.set.cfg
	for idx := 0; idx < len(cluster); {
		r, size := utf8.DecodeRuneInString(cluster[idx:])
		long, known := m.set.shorts[r]
		if !known {
			return newUnknownOptionError(cfg.ShortPrefix+string(r), string(r), m.set.optionNames())
		}
		opt := m.set.options[long]
		rest := cluster[idx+size:]

		if opt.isFlag && !strings.HasPrefix(rest, "=") {
			if cfg.ClusterShortFlags {
				opt.setBool(true)
				idx += size
				continue
			}
			if rest == "" {
				opt.setBool(true)
				return nil
			}
			// Clustering disabled: the remainder is this flag's value.
		}

		value := strings.TrimPrefix(rest, "=")
		if value == "" {
			m.pending = opt
			m.pendingDisplay = cfg.ShortPrefix + string(r)
			return nil
		}
		if err := opt.fill(value, false); err != nil {
			return newInvalidValueError(opt.name, value, err)
		}
		return nil
	}
	return nil
}

// dispatchCommand records the selection and commits every remaining token to
// the matched command's scope.
func (m *machine) dispatchCommand(token string, remaining []string) error {
	entry, ok := m.set.commands[token]
	if !ok {
		return newUnknownCommandError(token, m.set.commandNames())
	}
	if err := m.set.selectFn(token); err != nil {
		return newInvalidValueError("command", token, err)
	}
	return entry.set.Parse(remaining)
}

func (m *machine) positionalToken(token string) error {
	if m.nextPositional >= len(m.set.positionals) {
		return newTooManyPositionalsError(token)
	}
	pos := m.set.positionals[m.nextPositional]
	if err := pos.fill(token); err != nil {
		return newInvalidValueError(pos.name, token, err)
	}
	if !pos.variadic {
		m.nextPositional++
	}
	stop := m.set.cfg.StopOptionsAfterPositional
	if pos.stopOptions != nil {
		stop = *pos.stopOptions
	}
	if stop {
		m.optionsAvailable = false
	}
	return nil
}

// finish runs the end-of-input checks for this scope. It is not reached when
// a command was dispatched; the child scope finishes instead.
func (m *machine) finish() error {
	if m.set.commands != nil {
		return newMissingCommandError()
	}
	var missing []string
	for _, pos := range m.set.positionals[m.nextPositional:] {
		if pos.required && !pos.wasGiven() {
			missing = append(missing, pos.name)
		}
	}
	if len(missing) > 0 {
		return newMissingPositionalsError(missing)
	}
	if m.pending != nil {
		return newMissingOptionValueError(m.pendingDisplay)
	}
	m.fillFromEnv()
	return nil
}

// fillFromEnv applies environment fallbacks for options that were not given.
// The first set variable wins; values the parser rejects are ignored.
func (m *machine) fillFromEnv() {
	for _, opt := range m.set.optionList {
		if len(opt.envVars) == 0 || opt.wasGiven() {
			continue
		}
		for _, key := range opt.envVars {
			raw, ok := os.LookupEnv(key)
			if !ok {
				continue
			}
			_ = opt.fillEnv(raw)
			break
		}
	}
}
