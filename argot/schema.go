package argot

import (
	"maps"
	"slices"
)

// Requirement tags a definition as mandatory or optional with a default.
type Requirement[U any] struct {
	mandatory bool
	fallback  U
}

// Mandatory marks a positional as required; parsing fails when it is unmet.
func Mandatory[U any]() Requirement[U] {
	return Requirement[U]{mandatory: true}
}

// Optional marks a positional as optional with the given default value.
func Optional[U any](fallback U) Requirement[U] {
	return Requirement[U]{fallback: fallback}
}

// DefOpt tweaks a single definition at registration time. Variadic and
// StopOptionsAfter apply to positionals, FromEnv to options and flags,
// Grouped to all definition kinds.
type DefOpt func(*defSettings)

type defSettings struct {
	variadic    bool
	stopOptions *bool
	group       string
	envVars     []string
}

// Variadic lets a positional consume every remaining positional token.
// Only the last registered positional may be variadic.
func Variadic() DefOpt {
	return func(ds *defSettings) { ds.variadic = true }
}

// StopOptionsAfter overrides, for one positional, the config-wide policy of
// disabling option recognition once that positional has been consumed.
func StopOptionsAfter(stop bool) DefOpt {
	return func(ds *defSettings) { s := stop; ds.stopOptions = &s }
}

// Grouped tags a definition with a usage group for external help renderers.
func Grouped(group string) DefOpt {
	return func(ds *defSettings) { ds.group = group }
}

// FromEnv names environment variables checked, in order, when the option was
// not given on the command line. The first variable that is set wins; a value
// the parser rejects is ignored. Environment fallback never marks the holder
// as given.
func FromEnv(vars ...string) DefOpt {
	return func(ds *defSettings) { ds.envVars = vars }
}

func applyDefOpts(opts []DefOpt) defSettings {
	var ds defSettings
	for _, opt := range opts {
		opt(&ds)
	}
	return ds
}

// Type-erased definitions. Registration closes the parser, accumulator, and
// holder into fill closures so the state machine never needs the type
// parameters back.

type positional struct {
	name        string
	description string
	group       string
	required    bool
	variadic    bool
	stopOptions *bool
	fill        func(raw string) error
	wasGiven    func() bool
}

type option struct {
	name        string
	description string
	group       string
	short       rune
	isFlag      bool
	inverse     string
	envVars     []string
	fill        func(raw string, negate bool) error
	fillEnv     func(raw string) error
	setBool     func(v bool)
	wasGiven    func() bool
}

// Schema is the mutable definition registry for one parsing scope. It is
// populated by AddPositional/AddOption/AddFlag/AddCommands calls, then frozen
// into a Set before parsing. Command scopes are nested Schemas.
type Schema struct {
	cfg         Config
	positionals []*positional
	options     map[string]*option // long names, including inverse aliases
	optionList  []*option          // unique definitions in registration order
	shorts      map[rune]string    // short alias -> long name
	commands    *commandRegistry   // nil until AddCommands
	frozen      *Set
}

// New creates an empty root schema under the given parsing policy.
// A nil cfg means DefaultConfig. The policy is copied; the schema never
// observes later mutation of cfg.
func New(cfg *Config) *Schema {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Schema{
		cfg:     *cfg,
		options: make(map[string]*option),
		shorts:  make(map[rune]string),
	}
}

func (s *Schema) checkMutable() error {
	if s.frozen != nil {
		return newSetupError(SetupFrozen, "", "schema is frozen; register before parsing")
	}
	return nil
}

// AddPositional registers a positional argument. T is the per-occurrence
// parsed type, U the accumulated type stored in the returned holder.
// Ordering rules are enforced here: no mandatory positional after an optional
// one, and nothing after a variadic one.
func AddPositional[T, U any](
	s *Schema, name, description string,
	req Requirement[U], parse ValueParser[T], acc Accumulator[T, U],
	opts ...DefOpt,
) (*Holder[U], error) {
	if err := s.checkMutable(); err != nil {
		return nil, err
	}
	ds := applyDefOpts(opts)
	for _, pos := range s.positionals {
		if pos.name == name {
			return nil, newSetupError(SetupDuplicateName, name, "positional %q already registered", name)
		}
		if pos.variadic {
			return nil, newSetupError(SetupVariadicNotLast, pos.name,
				"variadic positional %q must be last", pos.name)
		}
		if req.mandatory && !pos.required {
			return nil, newSetupError(SetupBadOrdering, name,
				"mandatory positional %q cannot follow optional %q", name, pos.name)
		}
	}

	h := &Holder[U]{name: name}
	if !req.mandatory {
		h.value = req.fallback
		h.filled = true
	}
	pos := &positional{
		name:        name,
		description: description,
		group:       ds.group,
		required:    req.mandatory,
		variadic:    ds.variadic,
		stopOptions: ds.stopOptions,
		fill: func(raw string) error {
			v, err := parse(raw)
			if err != nil {
				return err
			}
			h.set(acc(v, h.value), true)
			return nil
		},
		wasGiven: func() bool { return h.given },
	}
	s.positionals = append(s.positionals, pos)
	return h, nil
}

// AddOption registers a value-taking option. Options are always optional and
// always carry a default. short is the single-character alias, 0 for none.
func AddOption[T, U any](
	s *Schema, name, description string, short rune,
	fallback U, parse ValueParser[T], acc Accumulator[T, U],
	opts ...DefOpt,
) (*Holder[U], error) {
	if err := s.checkMutable(); err != nil {
		return nil, err
	}
	ds := applyDefOpts(opts)
	h := &Holder[U]{name: name, value: fallback, filled: true}
	o := &option{
		name:        name,
		description: description,
		group:       ds.group,
		short:       short,
		envVars:     ds.envVars,
		wasGiven:    func() bool { return h.given },
	}
	o.fill = func(raw string, _ bool) error {
		v, err := parse(raw)
		if err != nil {
			return err
		}
		h.set(acc(v, h.value), true)
		return nil
	}
	o.fillEnv = func(raw string) error {
		v, err := parse(raw)
		if err != nil {
			return err
		}
		h.set(acc(v, h.value), false)
		return nil
	}
	if err := s.indexOption(o); err != nil {
		return nil, err
	}
	return h, nil
}

// AddFlag registers a boolean-valued option. Presence means true; the inverse
// name, when one exists, means false. inv chooses the inverse form: auto
// (consult the config's InverseNamer), none, or an explicit name. The inverse
// name is indexed as a second key for the same definition.
func AddFlag[U any](
	s *Schema, name, description string, short rune, inv Inverse,
	fallback U, parse ValueParser[bool], acc Accumulator[bool, U],
	opts ...DefOpt,
) (*Holder[U], error) {
	if err := s.checkMutable(); err != nil {
		return nil, err
	}
	ds := applyDefOpts(opts)
	h := &Holder[U]{name: name, value: fallback, filled: true}
	o := &option{
		name:        name,
		description: description,
		group:       ds.group,
		short:       short,
		isFlag:      true,
		inverse:     inv.resolve(name, &s.cfg),
		envVars:     ds.envVars,
		wasGiven:    func() bool { return h.given },
	}
	o.fill = func(raw string, negate bool) error {
		p := parse
		if negate {
			p = Negated(parse)
		}
		v, err := p(raw)
		if err != nil {
			return err
		}
		h.set(acc(v, h.value), true)
		return nil
	}
	o.fillEnv = func(raw string) error {
		v, err := parse(raw)
		if err != nil {
			return err
		}
		h.set(acc(v, h.value), false)
		return nil
	}
	o.setBool = func(v bool) {
		h.set(acc(v, h.value), true)
	}
	if err := s.indexOption(o); err != nil {
		return nil, err
	}
	return h, nil
}

// indexOption validates name and short collisions and inserts the definition
// into the scope's lookup indices, inverse alias included.
func (s *Schema) indexOption(o *option) error {
	if _, exists := s.options[o.name]; exists {
		return newSetupError(SetupDuplicateName, o.name, "option %q already registered", o.name)
	}
	if o.inverse != "" {
		if _, exists := s.options[o.inverse]; exists {
			return newSetupError(SetupDuplicateName, o.inverse,
				"inverse name %q already registered", o.inverse)
		}
		if o.inverse == o.name {
			return newSetupError(SetupDuplicateName, o.name,
				"inverse name %q collides with the flag itself", o.name)
		}
	}
	if o.short != 0 {
		if long, exists := s.shorts[o.short]; exists {
			return newSetupError(SetupDuplicateShort, string(o.short),
				"short %q already registered for %q", string(o.short), long)
		}
	}
	s.options[o.name] = o
	if o.inverse != "" {
		s.options[o.inverse] = o
	}
	if o.short != 0 {
		s.shorts[o.short] = o.name
	}
	s.optionList = append(s.optionList, o)
	return nil
}

// inherit spawns a child scope sharing this scope's definitions (snapshot,
// not live) and its own empty command map. Value holders are shared, so a
// definition filled through either scope is visible to the caller.
func (s *Schema) inherit() *Schema {
	return &Schema{
		cfg:         s.cfg,
		positionals: slices.Clone(s.positionals),
		options:     maps.Clone(s.options),
		optionList:  slices.Clone(s.optionList),
		shorts:      maps.Clone(s.shorts),
	}
}

// Set is the frozen, read-only view of a Schema handed to the state machine.
type Set struct {
	cfg          Config
	positionals  []*positional
	options      map[string]*option
	optionList   []*option
	shorts       map[rune]string
	commands     map[string]*frozenCommand
	commandOrder []string
	selectFn     func(token string) error
}

type frozenCommand struct {
	key         string
	description string
	group       string
	set         *Set
}

// Freeze finishes registration for this scope and every command scope under
// it, returning the read-only aggregate. Freezing is idempotent; further
// registration on a frozen schema fails with SetupFrozen.
func (s *Schema) Freeze() *Set {
	if s.frozen != nil {
		return s.frozen
	}
	set := &Set{
		cfg:         s.cfg,
		positionals: s.positionals,
		options:     s.options,
		optionList:  s.optionList,
		shorts:      s.shorts,
	}
	s.frozen = set
	if s.commands != nil {
		set.selectFn = s.commands.selectFn
		set.commands = make(map[string]*frozenCommand, len(s.commands.entries))
		set.commandOrder = s.commands.order
		for key, e := range s.commands.entries {
			set.commands[key] = &frozenCommand{
				key:         e.key,
				description: e.description,
				group:       e.group,
				set:         e.child.Freeze(),
			}
		}
	}
	return set
}

// Parse freezes the schema and runs the state machine over tokens.
func (s *Schema) Parse(tokens []string) error {
	return s.Freeze().Parse(tokens)
}

func (set *Set) optionNames() []string {
	names := make([]string, 0, len(set.options))
	for name := range set.options {
		names = append(names, name)
	}
	return names
}

func (set *Set) commandNames() []string {
	return set.commandOrder
}

// Introspection surface for external usage renderers. The core never formats
// help text itself.

// PositionalInfo describes one registered positional argument.
type PositionalInfo struct {
	Name        string
	Description string
	Group       string
	Required    bool
	Variadic    bool
}

// OptionInfo describes one registered option or flag.
type OptionInfo struct {
	Name        string
	Description string
	Group       string
	Short       rune
	IsFlag      bool
	Inverse     string
}

// CommandInfo describes one registered command.
type CommandInfo struct {
	Name        string
	Description string
	Group       string
}

// PositionalInfos lists positionals in registration order.
func (set *Set) PositionalInfos() []PositionalInfo {
	infos := make([]PositionalInfo, len(set.positionals))
	for i, pos := range set.positionals {
		infos[i] = PositionalInfo{
			Name:        pos.name,
			Description: pos.description,
			Group:       pos.group,
			Required:    pos.required,
			Variadic:    pos.variadic,
		}
	}
	return infos
}

// OptionInfos lists options in registration order, one entry per definition
// (inverse aliases are reported on their primary entry).
func (set *Set) OptionInfos() []OptionInfo {
	infos := make([]OptionInfo, len(set.optionList))
	for i, o := range set.optionList {
		infos[i] = OptionInfo{
			Name:        o.name,
			Description: o.description,
			Group:       o.group,
			Short:       o.short,
			IsFlag:      o.isFlag,
			Inverse:     o.inverse,
		}
	}
	return infos
}

// CommandInfos lists commands in registration order; empty when the scope
// has no command set.
func (set *Set) CommandInfos() []CommandInfo {
	infos := make([]CommandInfo, 0, len(set.commandOrder))
	for _, key := range set.commandOrder {
		e := set.commands[key]
		infos = append(infos, CommandInfo{Name: e.key, Description: e.description, Group: e.group})
	}
	return infos
}

// Command returns the frozen scope registered under name, for renderers that
// walk the command tree.
func (set *Set) Command(name string) (*Set, bool) {
	e, ok := set.commands[name]
	if !ok {
		return nil, false
	}
	return e.set, true
}
