package argot

// commandRegistry is the mutable command index for one scope. The selectFn
// closure hides the identifier type parameter from the state machine.
type commandRegistry struct {
	entries  map[string]*commandEntry
	order    []string
	selectFn func(token string) error
}

type commandEntry struct {
	key         string
	description string
	group       string
	child       *Schema
}

// CommandSet declares that a scope accepts exactly one subcommand. It owns
// the holder for the selected identifier; T is the identifier type (plain
// strings or an enum-like closed set).
type CommandSet[T comparable] struct {
	schema *Schema
	print  ValuePrinter[T]
	holder *Holder[T]
	reg    *commandRegistry
}

// AddCommands attaches a command set to the scope. At most one command set
// may exist per scope. Once attached, the scope's first positional token is
// always interpreted as the command name, and reaching end of input without
// a selection is a missing_command parse error.
func AddCommands[T comparable](
	s *Schema, parse ValueParser[T], print ValuePrinter[T],
) (*CommandSet[T], error) {
	if err := s.checkMutable(); err != nil {
		return nil, err
	}
	if s.commands != nil {
		return nil, newSetupError(SetupCommandSetExists, "", "scope already has a command set")
	}
	holder := &Holder[T]{name: "command"}
	reg := &commandRegistry{
		entries: make(map[string]*commandEntry),
		selectFn: func(token string) error {
			id, err := parse(token)
			if err != nil {
				return err
			}
			holder.set(id, true)
			return nil
		},
	}
	s.commands = reg
	return &CommandSet[T]{schema: s, print: print, holder: holder, reg: reg}, nil
}

// Add registers one command under its printed identifier and returns the
// child scope's registrar. The child inherits the parent's positionals and
// options as they exist right now (a snapshot, holders shared) and starts
// with no commands of its own.
func (cs *CommandSet[T]) Add(id T, description string, opts ...DefOpt) (*Schema, error) {
	if err := cs.schema.checkMutable(); err != nil {
		return nil, err
	}
	ds := applyDefOpts(opts)
	key := cs.print(id)
	if _, exists := cs.reg.entries[key]; exists {
		return nil, newSetupError(SetupDuplicateCommand, key, "command %q already registered", key)
	}
	child := cs.schema.inherit()
	cs.reg.entries[key] = &commandEntry{
		key:         key,
		description: description,
		group:       ds.group,
		child:       child,
	}
	cs.reg.order = append(cs.reg.order, key)
	return child, nil
}

// Holder returns the slot that receives the selected command identifier.
func (cs *CommandSet[T]) Holder() *Holder[T] {
	return cs.holder
}

// Selected returns the chosen identifier once a parse has selected one.
func (cs *CommandSet[T]) Selected() (T, bool) {
	if !cs.holder.given {
		var zero T
		return zero, false
	}
	return cs.holder.value, true
}
